package vulkanengine

import (
	vk "github.com/vulkan-go/vulkan"
)

// CommandPool allocates the short lived command buffers used for transfers.
type CommandPool struct {
	Device        *Device
	VKCommandPool vk.CommandPool
}

// CreateCommandPool creates a transient, resettable pool on queue family
// familyIndex.
func (d *Device) CreateCommandPool(familyIndex uint32) (*CommandPool, error) {
	commandPoolCreateInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit | vk.CommandPoolCreateTransientBit),
		QueueFamilyIndex: familyIndex,
	}

	var commandPool vk.CommandPool
	if err := vkError(vk.CreateCommandPool(d.VKDevice, &commandPoolCreateInfo, nil, &commandPool), "create command pool"); err != nil {
		return nil, err
	}

	return &CommandPool{Device: d, VKCommandPool: commandPool}, nil
}

func (c *CommandPool) Destroy() {
	if c == nil || c.VKCommandPool == vk.CommandPool(vk.NullHandle) {
		return
	}
	vk.DestroyCommandPool(c.Device.VKDevice, c.VKCommandPool, nil)
	c.VKCommandPool = vk.CommandPool(vk.NullHandle)
}

func (c *CommandPool) AllocateBuffers(count int) ([]*CommandBuffer, error) {
	commandBufferAllocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.VKCommandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(count),
	}

	cmdBuffers := make([]vk.CommandBuffer, count)
	if err := vkError(vk.AllocateCommandBuffers(c.Device.VKDevice, &commandBufferAllocateInfo, cmdBuffers), "allocate command buffers"); err != nil {
		return nil, err
	}

	ret := make([]*CommandBuffer, count)
	for i := range ret {
		ret[i] = &CommandBuffer{VKCommandBuffer: cmdBuffers[i]}
	}
	return ret, nil
}

func (c *CommandPool) AllocateBuffer() (*CommandBuffer, error) {
	ret, err := c.AllocateBuffers(1)
	if err != nil {
		return nil, err
	}
	return ret[0], nil
}

func (c *CommandPool) FreeBuffer(b *CommandBuffer) {
	vk.FreeCommandBuffers(c.Device.VKDevice, c.VKCommandPool, 1, []vk.CommandBuffer{b.VKCommandBuffer})
}
