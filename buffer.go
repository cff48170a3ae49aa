package vulkanengine

import (
	vk "github.com/vulkan-go/vulkan"
)

// Buffer is a linear range of device addressable data. It owns the handle
// but not the memory bound to it, see BoundBuffer.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64
}

// CreateBuffer creates an exclusive buffer of sizeInBytes with usage.
func (d *Device) CreateBuffer(sizeInBytes uint64, usage vk.BufferUsageFlags) (*Buffer, error) {
	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(sizeInBytes),
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}

	var buffer vk.Buffer
	if err := vkError(vk.CreateBuffer(d.VKDevice, &bufferCreateInfo, nil, &buffer), "create buffer"); err != nil {
		return nil, err
	}

	return &Buffer{Device: d, VKBuffer: buffer, Size: sizeInBytes}, nil
}

func (b *Buffer) VKMemoryRequirements() vk.MemoryRequirements {
	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &memoryRequirements)
	memoryRequirements.Deref()
	return memoryRequirements
}

func (b *Buffer) AllocationRequirements() AllocationRequirements {
	mr := b.VKMemoryRequirements()
	return AllocationRequirements{
		Size:           uint64(mr.Size),
		MemoryTypeBits: mr.MemoryTypeBits,
	}
}

// Bind attaches memory at offset to this buffer.
func (b *Buffer) Bind(memory *DeviceMemory, offset uint64) error {
	return vkError(vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, vk.DeviceSize(offset)), "bind buffer memory")
}

func (b *Buffer) Destroy() {
	if b == nil || b.VKBuffer == vk.Buffer(vk.NullHandle) {
		return
	}
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
	b.VKBuffer = vk.Buffer(vk.NullHandle)
}
