package vulkanengine

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// QueueFamilyIndices maps the capabilities the engine needs to a queue
// family index. Only graphics is required today.
type QueueFamilyIndices struct {
	Graphics    uint32
	HasGraphics bool
}

// IsComplete reports whether every required capability has an index.
func (q QueueFamilyIndices) IsComplete() bool {
	return q.HasGraphics
}

func (q QueueFamilyIndices) String() string {
	if !q.HasGraphics {
		return "{ Graphics: none }"
	}
	return fmt.Sprintf("{ Graphics: %d }", q.Graphics)
}

// FindQueueFamilies scans families in order; the first family supporting a
// capability is the one recorded for it.
func FindQueueFamilies(families []vk.QueueFamilyProperties) QueueFamilyIndices {
	var indices QueueFamilyIndices
	for i, family := range families {
		if isGraphics(family) {
			indices.Graphics = uint32(i)
			indices.HasGraphics = true
		}
		if indices.IsComplete() {
			break
		}
	}
	return indices
}

func isGraphics(family vk.QueueFamilyProperties) bool {
	return family.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) == vk.QueueFlags(vk.QueueGraphicsBit)
}

type QueueFamilySlice []*QueueFamily

func (ql QueueFamilySlice) Filter(f func(q *QueueFamily) bool) QueueFamilySlice {
	ret := make([]*QueueFamily, 0)
	for _, q := range ql {
		if f(q) {
			ret = append(ret, q)
		}
	}
	return ret
}

func (ql QueueFamilySlice) FilterGraphics() QueueFamilySlice {
	return ql.Filter(func(q *QueueFamily) bool {
		return q.IsGraphics()
	})
}

func (ql QueueFamilySlice) FilterTransfer() QueueFamilySlice {
	return ql.Filter(func(q *QueueFamily) bool {
		return q.IsTransfer()
	})
}

type QueueFamily struct {
	Index                   int
	PhysicalDevice          *PhysicalDevice
	VKQueueFamilyProperties vk.QueueFamilyProperties
}

func (q *QueueFamily) IsCompute() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) == vk.QueueFlags(vk.QueueComputeBit)
}

func (q *QueueFamily) IsGraphics() bool {
	return isGraphics(q.VKQueueFamilyProperties)
}

func (q *QueueFamily) IsTransfer() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueTransferBit) == vk.QueueFlags(vk.QueueTransferBit)
}

func (q *QueueFamily) String() string {
	return fmt.Sprintf("{ Index: %d Compute: %v Graphics: %v Transfer: %v }", q.Index, q.IsCompute(), q.IsGraphics(), q.IsTransfer())
}
