package vulkanengine

import (
	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffer describes a sequence of commands executed once submitted
// to a queue. Only transfer and bind/draw commands are wrapped; callers
// needing more use the native handle from VK.
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

// VK is a utility function for accessing the native vulkan command buffer
func (c *CommandBuffer) VK() vk.CommandBuffer {
	return c.VKCommandBuffer
}

// BeginOneTime begins recording for a buffer that is submitted once and
// then freed.
func (c *CommandBuffer) BeginOneTime() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	return vkError(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo), "begin command buffer")
}

// CmdCopyBuffer records a copy of the first size bytes of src into dst.
func (c *CommandBuffer) CmdCopyBuffer(src, dst vk.Buffer, size uint64) {
	vk.CmdCopyBuffer(c.VKCommandBuffer, src, dst, 1, []vk.BufferCopy{{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(size),
	}})
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return vkError(vk.EndCommandBuffer(c.VKCommandBuffer), "end command buffer")
}
