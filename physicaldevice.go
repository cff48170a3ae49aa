package vulkanengine

import (
	"fmt"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// PhysicalDevice is a GPU enumerated from an Instance. It does not own the
// native handle. Properties, features, queue families and memory properties
// are queried once at enumeration and never refreshed.
type PhysicalDevice struct {
	DeviceName                       string
	VKPhysicalDevice                 vk.PhysicalDevice
	VKPhysicalDeviceProperties       vk.PhysicalDeviceProperties
	VKPhysicalDeviceFeatures         vk.PhysicalDeviceFeatures
	VKPhysicalDeviceMemoryProperties vk.PhysicalDeviceMemoryProperties
	VKQueueFamilyProperties          []vk.QueueFamilyProperties
}

func queryPhysicalDevice(device vk.PhysicalDevice) *PhysicalDevice {
	p := &PhysicalDevice{VKPhysicalDevice: device}

	vk.GetPhysicalDeviceProperties(device, &p.VKPhysicalDeviceProperties)
	p.VKPhysicalDeviceProperties.Deref()
	p.VKPhysicalDeviceProperties.Limits.Deref()
	p.DeviceName = vk.ToString(p.VKPhysicalDeviceProperties.DeviceName[:])

	vk.GetPhysicalDeviceFeatures(device, &p.VKPhysicalDeviceFeatures)
	p.VKPhysicalDeviceFeatures.Deref()

	vk.GetPhysicalDeviceMemoryProperties(device, &p.VKPhysicalDeviceMemoryProperties)
	p.VKPhysicalDeviceMemoryProperties.Deref()
	for i := uint32(0); i < p.VKPhysicalDeviceMemoryProperties.MemoryTypeCount; i++ {
		p.VKPhysicalDeviceMemoryProperties.MemoryTypes[i].Deref()
	}
	for i := uint32(0); i < p.VKPhysicalDeviceMemoryProperties.MemoryHeapCount; i++ {
		p.VKPhysicalDeviceMemoryProperties.MemoryHeaps[i].Deref()
	}

	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, nil)
	if queueFamilyCount > 0 {
		queues := make([]vk.QueueFamilyProperties, queueFamilyCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, queues)
		for i := range queues {
			queues[i].Deref()
		}
		p.VKQueueFamilyProperties = queues[:queueFamilyCount]
	}

	return p
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

// IsDiscrete reports whether the device is a discrete GPU.
func (p *PhysicalDevice) IsDiscrete() bool {
	return p.VKPhysicalDeviceProperties.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu
}

// HasGeometryShader reports whether geometry shaders are supported.
func (p *PhysicalDevice) HasGeometryShader() bool {
	return p.VKPhysicalDeviceFeatures.GeometryShader == vk.True
}

// QueueFamilies returns the cached queue families in enumeration order.
func (p *PhysicalDevice) QueueFamilies() QueueFamilySlice {
	ret := make(QueueFamilySlice, len(p.VKQueueFamilyProperties))
	for i, props := range p.VKQueueFamilyProperties {
		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: props}
	}
	return ret
}

// FindMemoryType returns the index of the first memory type allowed by
// memoryTypeBits that has every flag in properties.
func (p *PhysicalDevice) FindMemoryType(memoryTypeBits uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	mp := p.VKPhysicalDeviceMemoryProperties

	/*
	   How does this search work?
	   See the documentation of VkPhysicalDeviceMemoryProperties for a detailed description.
	*/
	for i := uint32(0); i < mp.MemoryTypeCount; i++ {
		mt := mp.MemoryTypes[i]
		if memoryTypeBits&(1<<i) != 0 && mt.PropertyFlags&properties == properties {
			return i, nil
		}
	}
	return 0, errors.Newf("no memory type matching bits %#x with properties %s", memoryTypeBits, memoryPropertyString(properties))
}

func memoryPropertyString(f vk.MemoryPropertyFlags) string {
	s := ""
	if f&vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit) != 0 {
		s += "DeviceLocal|"
	}
	if f&vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit) != 0 {
		s += "HostVisible|"
	}
	if f&vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit) != 0 {
		s += "HostCoherent|"
	}
	if f&vk.MemoryPropertyFlags(vk.MemoryPropertyHostCachedBit) != 0 {
		s += "HostCached|"
	}
	if len(s) > 0 {
		s = s[:len(s)-1]
	}
	return s + fmt.Sprintf(" (%x)", uint32(f))
}
