package vulkanengine

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// DeviceMemory maps to Vulkan DeviceMemory and can either be memory on the host or on the device
type DeviceMemory struct {
	Device         *Device
	VKDeviceMemory vk.DeviceMemory
	Size           uint64
	mapped         bool
}

// IsMapped returns true if the device memory is currently mapped
func (d *DeviceMemory) IsMapped() bool {
	return d.mapped
}

// Destroy frees this memory
func (d *DeviceMemory) Destroy() {
	if d == nil || d.VKDeviceMemory == vk.DeviceMemory(vk.NullHandle) {
		return
	}
	vk.FreeMemory(d.Device.VKDevice, d.VKDeviceMemory, nil)
	d.VKDeviceMemory = vk.DeviceMemory(vk.NullHandle)
}

// MapCopyUnmap will map this memory, copy data to it and unmap. The memory
// must be host visible and at least len(data) bytes.
func (d *DeviceMemory) MapCopyUnmap(data []byte) error {
	if uint64(len(data)) > d.Size {
		return errors.Newf("write of %d bytes exceeds memory of %d bytes", len(data), d.Size)
	}
	pm, err := d.MapWithSize(uint64(len(data)))
	if err != nil {
		return err
	}
	copy(ToBytes(pm, len(data)), data)
	d.Unmap()
	return nil
}

// MapWithSize will map this memory starting at offset 0 with a particular size
func (d *DeviceMemory) MapWithSize(size uint64) (unsafe.Pointer, error) {
	if d.mapped {
		return nil, errors.New("memory is already mapped")
	}
	var res unsafe.Pointer
	if err := vkError(vk.MapMemory(d.Device.VKDevice, d.VKDeviceMemory, 0, vk.DeviceSize(size), 0, &res), "map memory"); err != nil {
		return nil, err
	}
	d.mapped = true
	return res, nil
}

// Unmap this memory
func (d *DeviceMemory) Unmap() {
	if !d.mapped {
		return
	}
	vk.UnmapMemory(d.Device.VKDevice, d.VKDeviceMemory)
	d.mapped = false
}
