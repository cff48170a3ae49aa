package vulkanengine

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

const (
	// ValidationLayerName is the Khronos validation layer enabled in debug builds.
	ValidationLayerName = "VK_LAYER_KHRONOS_validation"

	// DebugReportExtensionName is the instance extension backing the
	// diagnostic channel.
	DebugReportExtensionName = "VK_EXT_debug_report"
)

// RequiredExtensions returns the instance extensions the engine must enable:
// the window library's minimum set in order, followed by the
// debug report extension when validation is on. Duplicates are dropped.
func RequiredExtensions(window []string, validation bool) []string {
	seen := make(map[string]bool, len(window)+1)
	ret := make([]string, 0, len(window)+1)
	add := func(name string) {
		name = trimNul(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		ret = append(ret, name)
	}
	for _, name := range window {
		add(name)
	}
	if validation {
		add(DebugReportExtensionName)
	}
	return ret
}

// RequiredLayers returns the instance layers to enable, empty when
// validation is off.
func RequiredLayers(validation bool, layers []string) []string {
	if !validation {
		return nil
	}
	if len(layers) == 0 {
		return []string{ValidationLayerName}
	}
	ret := make([]string, 0, len(layers))
	for _, l := range layers {
		ret = append(ret, trimNul(l))
	}
	return ret
}

// SupportedLayers returns a list of supported layers for use by Vulkan.
// Vulkan must have been initialized, see InitLoader and InitHeadless.
func SupportedLayers() ([]string, error) {
	var count uint32
	if err := vkError(vk.EnumerateInstanceLayerProperties(&count, nil), "enumerate instance layers"); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	layers := make([]vk.LayerProperties, count)
	if err := vkError(vk.EnumerateInstanceLayerProperties(&count, layers), "enumerate instance layers"); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, layer := range layers[:count] {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	Logger().Debug("probed instance layers", "count", len(names), "layers", names)
	return names, nil
}

// SupportedExtensions returns a list of supported instance extensions.
// Vulkan must have been initialized, see InitLoader and InitHeadless.
func SupportedExtensions() ([]string, error) {
	var count uint32
	if err := vkError(vk.EnumerateInstanceExtensionProperties("", &count, nil), "enumerate instance extensions"); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	exts := make([]vk.ExtensionProperties, count)
	if err := vkError(vk.EnumerateInstanceExtensionProperties("", &count, exts), "enumerate instance extensions"); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, ext := range exts[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	Logger().Debug("probed instance extensions", "count", len(names), "extensions", names)
	return names, nil
}

// VerifyExtensions succeeds iff every required extension is available.
func VerifyExtensions(required, available []string) error {
	return verify(ExtensionCapability, required, available)
}

// VerifyLayers succeeds iff every required layer is available.
func VerifyLayers(required, available []string) error {
	err := verify(LayerCapability, required, available)
	if err != nil {
		return errors.WithHint(err, "validation layers ship with the LunarG Vulkan SDK; install it or build with -tags release")
	}
	return nil
}

func verify(kind CapabilityKind, required, available []string) error {
	have := make(map[string]struct{}, len(available))
	for _, name := range available {
		have[trimNul(name)] = struct{}{}
	}
	var missing []string
	for _, name := range required {
		name = trimNul(name)
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.Mark(&MissingCapabilityError{Kind: kind, Name: missing[0], Missing: missing}, ErrMissingCapability)
}
