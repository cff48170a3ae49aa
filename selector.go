package vulkanengine

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

const discreteBonus = 1000

// ScorePhysicalDevice rates a device for rendering. A device scores 0, and
// is unusable, when it lacks geometry shaders or a graphics queue family.
// Otherwise the score is its maximum 2D image dimension, plus 1000 for
// discrete GPUs.
func ScorePhysicalDevice(props vk.PhysicalDeviceProperties, features vk.PhysicalDeviceFeatures, families []vk.QueueFamilyProperties) int {
	if features.GeometryShader != vk.True {
		return 0
	}
	if !FindQueueFamilies(families).IsComplete() {
		return 0
	}
	score := int(props.Limits.MaxImageDimension2D)
	if props.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu {
		score += discreteBonus
	}
	return score
}

// Score rates p with ScorePhysicalDevice using its cached properties.
func (p *PhysicalDevice) Score() int {
	return ScorePhysicalDevice(p.VKPhysicalDeviceProperties, p.VKPhysicalDeviceFeatures, p.VKQueueFamilyProperties)
}

// SelectPhysicalDevice returns the highest scoring device. Ties go to the
// device enumerated first.
func SelectPhysicalDevice(devices []*PhysicalDevice) (*PhysicalDevice, error) {
	if len(devices) == 0 {
		return nil, errors.Mark(errors.New("no GPUs with Vulkan support"), ErrNoDevicesFound)
	}

	var best *PhysicalDevice
	bestScore := 0
	for _, d := range devices {
		score := d.Score()
		Logger().Debug("scored physical device", "device", d.DeviceName, "score", score)
		if best == nil || score > bestScore {
			best, bestScore = d, score
		}
	}

	if bestScore <= 0 {
		return nil, errors.Mark(errors.Newf("none of %d GPUs is suitable", len(devices)), ErrNoSuitableDevice)
	}

	Logger().Info("selected physical device", "device", best.DeviceName, "score", bestScore)
	return best, nil
}
