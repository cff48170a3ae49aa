package vulkanengine

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// InitLoader initializes GLFW and points Vulkan at the loader GLFW found.
// It locks the calling goroutine to its OS thread, as GLFW requires every
// window call to come from the main thread.
func InitLoader() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "initialize glfw")
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return errors.WithHint(errors.New("vulkan is not supported"), "install a Vulkan capable driver and the Vulkan loader")
	}

	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		glfw.Terminate()
		return errors.Wrap(err, "initialize vulkan")
	}
	return nil
}

// InitHeadless initializes Vulkan from the system loader without a window
// library, for tools that only query devices.
func InitHeadless() error {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return errors.Wrap(err, "locate vulkan loader")
	}
	if err := vk.Init(); err != nil {
		return errors.Wrap(err, "initialize vulkan")
	}
	return nil
}

// Window is the GLFW window the engine renders into. It never creates an
// OpenGL context.
type Window struct {
	GLFW *glfw.Window
}

// NewWindow opens a window. InitLoader must have succeeded.
func NewWindow(cfg WindowConfig) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	return &Window{GLFW: w}, nil
}

// RequiredExtensionNames returns the instance extensions needed to present
// to this window.
func (w *Window) RequiredExtensionNames() []string {
	return w.GLFW.GetRequiredInstanceExtensions()
}

func (w *Window) ShouldClose() bool {
	return w.GLFW.ShouldClose()
}

// PollEvents processes pending window events without blocking.
func PollEvents() {
	glfw.PollEvents()
}

// Destroy closes the window and shuts GLFW down.
func (w *Window) Destroy() {
	if w == nil || w.GLFW == nil {
		return
	}
	w.GLFW.Destroy()
	w.GLFW = nil
	glfw.Terminate()
}
