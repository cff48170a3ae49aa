package vulkanengine

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Context is a ready GPU: instance, optional diagnostic channel, selected
// physical device, logical device, graphics queue and a transient command
// pool. It is used from one goroutine only.
type Context struct {
	Config         Config
	Instance       *Instance
	Diagnostics    *DiagnosticChannel
	PhysicalDevice *PhysicalDevice
	Device         *Device
	GraphicsQueue  *Queue
	CommandPool    *CommandPool

	teardown teardown
}

type options struct {
	logger           *slog.Logger
	sink             *DiagnosticSink
	windowExtensions []string
}

// Option configures NewContext.
type Option func(*options)

// WithLogger installs l as the engine logger, see SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSink sets where runtime diagnostics are written. The default writes
// to stderr.
func WithSink(s *DiagnosticSink) Option {
	return func(o *options) { o.sink = s }
}

// WithWindowExtensions sets the instance extensions the window needs,
// usually Window.RequiredExtensionNames.
func WithWindowExtensions(names []string) Option {
	return func(o *options) { o.windowExtensions = names }
}

// NewContext runs the whole setup sequence. On failure every object
// created so far is destroyed, newest first, and the error is marked with
// the kind of the failing stage.
func NewContext(cfg Config, opts ...Option) (*Context, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}
	if o.sink == nil {
		o.sink = NewDiagnosticSink(nil)
	}

	c := &Context{Config: cfg}
	if err := c.init(o); err != nil {
		c.teardown.run()
		return nil, err
	}
	return c, nil
}

func (c *Context) init(o *options) error {
	validation := c.Config.Validation

	extensions := RequiredExtensions(o.windowExtensions, validation)
	available, err := SupportedExtensions()
	if err != nil {
		return err
	}
	if err := VerifyExtensions(extensions, available); err != nil {
		return err
	}

	layers := RequiredLayers(validation, c.Config.Layers)
	if len(layers) > 0 {
		availableLayers, err := SupportedLayers()
		if err != nil {
			return err
		}
		if err := VerifyLayers(layers, availableLayers); err != nil {
			return err
		}
	}

	app := c.Config.Application()
	app.EnabledExtensions = extensions
	app.EnabledLayers = layers

	var debug *vk.DebugReportCallbackCreateInfo
	if validation {
		debug = DebugReportCreateInfo(o.sink)
	}

	c.Instance, err = app.CreateInstance(debug)
	if err != nil {
		return err
	}
	c.teardown.push(c.Instance.Destroy)

	if validation {
		c.Diagnostics, err = c.Instance.CreateDiagnosticChannel(o.sink)
		if err != nil {
			return err
		}
		c.teardown.push(c.Diagnostics.Destroy)
	}

	devices, err := c.Instance.PhysicalDevices()
	if err != nil {
		return err
	}
	c.PhysicalDevice, err = SelectPhysicalDevice(devices)
	if err != nil {
		return err
	}

	c.Device, err = c.PhysicalDevice.CreateLogicalDevice(&CreateDeviceOptions{EnabledLayers: layers})
	if err != nil {
		return err
	}
	c.teardown.push(func() {
		if err := c.Device.WaitIdle(); err != nil {
			Logger().Warn("wait for device idle before teardown", "err", err)
		}
		c.Device.Destroy()
	})

	c.GraphicsQueue = c.Device.GraphicsQueue()

	c.CommandPool, err = c.Device.CreateCommandPool(c.Device.Families.Graphics)
	if err != nil {
		return err
	}
	c.teardown.push(c.CommandPool.Destroy)

	return nil
}

// Destroy waits for the device to go idle and destroys everything NewContext
// created, in reverse order. Models must be destroyed first.
func (c *Context) Destroy() {
	if c == nil {
		return
	}
	c.teardown.run()
}

// NewScratch implements Transfer.
func (c *Context) NewScratch(size uint64) (ScratchBuffer, error) {
	b, err := c.Device.CreateBoundBuffer(size, scratchUsage, scratchProps)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewResident implements Transfer.
func (c *Context) NewResident(size uint64, usage vk.BufferUsageFlags) (GPUBuffer, error) {
	usage |= vk.BufferUsageFlags(vk.BufferUsageTransferDstBit)
	b, err := c.Device.CreateBoundBuffer(size, usage, residentProps)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CopyBuffer implements Transfer. It records a one time command buffer,
// submits it on the graphics queue and waits on a fence.
func (c *Context) CopyBuffer(src, dst GPUBuffer, size uint64) error {
	cb, err := c.CommandPool.AllocateBuffer()
	if err != nil {
		return err
	}
	defer c.CommandPool.FreeBuffer(cb)

	if err := cb.BeginOneTime(); err != nil {
		return err
	}
	cb.CmdCopyBuffer(src.VK(), dst.VK(), size)
	if err := cb.End(); err != nil {
		return err
	}

	fence, err := c.Device.CreateFence()
	if err != nil {
		return err
	}
	defer fence.Destroy()

	if err := c.GraphicsQueue.SubmitWithFence(fence, cb); err != nil {
		return err
	}
	return awaitCopy(
		func() error { return c.Device.WaitForFences(WaitForever, fence) },
		c.GraphicsQueue.WaitIdle,
	)
}

// awaitCopy waits for a submitted copy. When the wait fails the copy may
// still be running, so the queue is drained before returning and the
// caller's releases of the fence, command buffer and both buffers stay safe.
func awaitCopy(wait, drain func() error) error {
	err := wait()
	if err == nil {
		return nil
	}
	if derr := drain(); derr != nil {
		Logger().Error("drain queue after failed copy wait", "err", derr)
		err = errors.CombineErrors(err, derr)
	}
	return errors.Wrap(err, "wait for copy")
}
