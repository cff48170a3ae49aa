package vulkanengine

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Queue struct {
	Device      *Device
	FamilyIndex uint32
	VKQueue     vk.Queue
}

func (q *Queue) WaitIdle() error {
	return vkError(vk.QueueWaitIdle(q.VKQueue), "wait for queue idle")
}

// SubmitWithFence submits buffers as one batch; fence is signalled once
// they have all completed.
func (q *Queue) SubmitWithFence(fence *Fence, buffers ...*CommandBuffer) error {
	b := make([]vk.CommandBuffer, len(buffers))
	for i := range buffers {
		b[i] = buffers[i].VKCommandBuffer
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: uint32(len(b)),
		PCommandBuffers:    b,
	}

	return vkError(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, fence.VKFence), "submit to queue")
}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s Family: %d}", q.Device.String(), q.FamilyIndex)
}
