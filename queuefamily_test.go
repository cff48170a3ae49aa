package vulkanengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func family(flags vk.QueueFlagBits, count uint32) vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(flags), QueueCount: count}
}

func TestFindQueueFamilies(t *testing.T) {
	tests := []struct {
		name     string
		families []vk.QueueFamilyProperties
		complete bool
		graphics uint32
	}{
		{"none", nil, false, 0},
		{"compute only", []vk.QueueFamilyProperties{family(vk.QueueComputeBit, 1)}, false, 0},
		{"graphics first", []vk.QueueFamilyProperties{family(vk.QueueGraphicsBit|vk.QueueComputeBit, 16), family(vk.QueueGraphicsBit, 1)}, true, 0},
		{"graphics later", []vk.QueueFamilyProperties{family(vk.QueueTransferBit, 2), family(vk.QueueGraphicsBit, 1)}, true, 1},
		{"first match wins", []vk.QueueFamilyProperties{family(vk.QueueTransferBit, 2), family(vk.QueueGraphicsBit, 1), family(vk.QueueGraphicsBit|vk.QueueComputeBit|vk.QueueTransferBit, 16)}, true, 1},
		{"capability flags decide", []vk.QueueFamilyProperties{family(vk.QueueGraphicsBit, 0), family(vk.QueueGraphicsBit, 1)}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindQueueFamilies(tt.families)
			assert.Equal(t, tt.complete, got.IsComplete())
			if tt.complete {
				assert.Equal(t, tt.graphics, got.Graphics)
			}
		})
	}
}

func TestQueueFamilySliceFilter(t *testing.T) {
	p := &PhysicalDevice{VKQueueFamilyProperties: []vk.QueueFamilyProperties{
		family(vk.QueueGraphicsBit|vk.QueueTransferBit, 1),
		family(vk.QueueComputeBit, 1),
		family(vk.QueueTransferBit, 1),
	}}

	qfs := p.QueueFamilies()
	assert.Len(t, qfs, 3)

	g := qfs.FilterGraphics()
	if assert.Len(t, g, 1) {
		assert.Equal(t, 0, g[0].Index)
	}
	assert.Len(t, qfs.FilterTransfer(), 2)
	assert.True(t, qfs[1].IsCompute())
}
