package vulkanengine

import (
	"fmt"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// CreateDeviceOptions are the device level extensions and layers. Device
// layers are deprecated but older loaders still expect the instance layers
// to be repeated here.
type CreateDeviceOptions struct {
	EnabledExtensions []string
	EnabledLayers     []string
}

// Device is the logical device created on the selected PhysicalDevice.
type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
	Families       QueueFamilyIndices
}

// CreateLogicalDevice creates a device with one queue on the graphics
// family. The device enables the feature set cached on p.
func (p *PhysicalDevice) CreateLogicalDevice(options *CreateDeviceOptions) (*Device, error) {
	families := FindQueueFamilies(p.VKQueueFamilyProperties)
	if !families.IsComplete() {
		return nil, errors.Mark(errors.Newf("%s has no graphics queue family", p.DeviceName), ErrNoSuitableDevice)
	}

	queueCreateInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: families.Graphics,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(queueCreateInfos)),
		PQueueCreateInfos:    queueCreateInfos,
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{p.VKPhysicalDeviceFeatures},
	}

	if options != nil {
		if len(options.EnabledExtensions) > 0 {
			deviceCreateInfo.EnabledExtensionCount = uint32(len(options.EnabledExtensions))
			deviceCreateInfo.PpEnabledExtensionNames = safeStrings(options.EnabledExtensions)
		}
		if len(options.EnabledLayers) > 0 {
			deviceCreateInfo.EnabledLayerCount = uint32(len(options.EnabledLayers))
			deviceCreateInfo.PpEnabledLayerNames = safeStrings(options.EnabledLayers)
		}
	}

	var ldevice vk.Device
	if err := vkError(vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice), "create logical device"); err != nil {
		return nil, err
	}

	Logger().Debug("created logical device", "device", p.DeviceName, "families", families.String())

	return &Device{PhysicalDevice: p, VKDevice: ldevice, Families: families}, nil
}

// Destroy destroys the logical device. Buffers, memory, pools and fences
// created from it must be destroyed first.
func (d *Device) Destroy() {
	if d == nil || d.VKDevice == nil {
		return
	}
	vk.DestroyDevice(d.VKDevice, nil)
	d.VKDevice = nil
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s Families: %s }", d.PhysicalDevice, d.Families)
}

// WaitIdle blocks until every queue of the device is idle.
func (d *Device) WaitIdle() error {
	return vkError(vk.DeviceWaitIdle(d.VKDevice), "wait for device idle")
}

// GraphicsQueue returns queue 0 of the graphics family.
func (d *Device) GraphicsQueue() *Queue {
	var vkq vk.Queue
	vk.GetDeviceQueue(d.VKDevice, d.Families.Graphics, 0, &vkq)

	return &Queue{Device: d, FamilyIndex: d.Families.Graphics, VKQueue: vkq}
}

type AllocationRequirements struct {
	Size           uint64
	MemoryTypeBits uint32
}

// AllocateForBuffer allocates memory satisfying the requirements of b.
func (d *Device) AllocateForBuffer(b *Buffer, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	ar := b.AllocationRequirements()
	return d.Allocate(ar.Size, ar.MemoryTypeBits, memoryProperties)
}

// Allocate allocates sizeInBytes of device memory from the first memory
// type compatible with memoryTypeBits and memoryProperties.
func (d *Device) Allocate(sizeInBytes uint64, memoryTypeBits uint32, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	typeIndex, err := d.PhysicalDevice.FindMemoryType(memoryTypeBits, memoryProperties)
	if err != nil {
		return nil, err
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(sizeInBytes),
		MemoryTypeIndex: typeIndex,
	}

	var deviceMemory vk.DeviceMemory
	if err := vkError(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &deviceMemory), "allocate device memory"); err != nil {
		return nil, err
	}

	return &DeviceMemory{Device: d, VKDeviceMemory: deviceMemory, Size: sizeInBytes}, nil
}
