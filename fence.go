package vulkanengine

import (
	"math"
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// WaitForever blocks on a fence without a timeout.
const WaitForever = time.Duration(math.MaxInt64)

type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

// CreateFence creates an unsignalled fence.
func (d *Device) CreateFence() (*Fence, error) {
	fenceCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}

	var fence vk.Fence
	if err := vkError(vk.CreateFence(d.VKDevice, &fenceCreateInfo, nil, &fence), "create fence"); err != nil {
		return nil, err
	}
	return &Fence{Device: d, VKFence: fence}, nil
}

// WaitForFences blocks until every fence is signalled or timeout elapses.
func (d *Device) WaitForFences(timeout time.Duration, fences ...*Fence) error {
	f := make([]vk.Fence, len(fences))
	for i := range fences {
		f[i] = fences[i].VKFence
	}

	timeoutNs := uint64(math.MaxUint64)
	if timeout != WaitForever {
		timeoutNs = uint64(timeout.Nanoseconds())
	}

	return vkError(vk.WaitForFences(d.VKDevice, uint32(len(f)), f, vk.True, timeoutNs), "wait for fences")
}

func (f *Fence) Destroy() {
	if f == nil || f.VKFence == vk.Fence(vk.NullHandle) {
		return
	}
	vk.DestroyFence(f.Device.VKDevice, f.VKFence, nil)
	f.VKFence = vk.Fence(vk.NullHandle)
}
