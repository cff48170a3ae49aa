package vulkanengine

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Error kinds. Every setup failure returned by this package is marked with
// exactly one of these, test for them with errors.Is.
var (
	// ErrMissingCapability is returned when a required instance extension or
	// layer is not offered by the Vulkan runtime.
	ErrMissingCapability = errors.New("missing capability")

	// ErrContextCreationFailed is returned when vkCreateInstance fails.
	ErrContextCreationFailed = errors.New("context creation failed")

	// ErrExtensionNotPresent is returned when an extension entry point could
	// not be resolved from the instance at runtime.
	ErrExtensionNotPresent = errors.New("extension not present")

	// ErrNoDevicesFound is returned when the instance enumerates no GPUs.
	ErrNoDevicesFound = errors.New("no devices found")

	// ErrNoSuitableDevice is returned when no GPU scores above zero.
	ErrNoSuitableDevice = errors.New("no suitable device")

	// ErrDegenerateMesh is returned for meshes with fewer than 3 vertices.
	ErrDegenerateMesh = errors.New("degenerate mesh")

	// ErrParse is returned when a mesh file cannot be decoded.
	ErrParse = errors.New("parse error")

	// ErrEmptyUpload is returned when an upload has no elements. For index
	// data this means the index buffer is absent.
	ErrEmptyUpload = errors.New("empty upload")
)

// CapabilityKind tells extensions and layers apart in a MissingCapabilityError.
type CapabilityKind int

const (
	ExtensionCapability CapabilityKind = iota
	LayerCapability
)

func (k CapabilityKind) String() string {
	switch k {
	case ExtensionCapability:
		return "extension"
	case LayerCapability:
		return "layer"
	default:
		return fmt.Sprintf("CapabilityKind(%d)", int(k))
	}
}

// MissingCapabilityError names the first required capability that was not
// available. Missing holds every absent name, in required order.
type MissingCapabilityError struct {
	Kind    CapabilityKind
	Name    string
	Missing []string
}

func (e *MissingCapabilityError) Error() string {
	if len(e.Missing) > 1 {
		return fmt.Sprintf("required %s %q not available (missing: %s)", e.Kind, e.Name, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("required %s %q not available", e.Kind, e.Name)
}

// vkError converts a vk.Result into a wrapped error, nil on success.
func vkError(res vk.Result, msg string) error {
	if err := vk.Error(res); err != nil {
		return errors.Wrap(err, msg)
	}
	return nil
}
