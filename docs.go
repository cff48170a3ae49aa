/*
Package vulkanengine is the device and resource layer of a small real time
renderer built on Vulkan. It owns the GPU context, loads mesh geometry from
disk and moves it into device local memory, ready to be bound and drawn.

Vulkan leaves every object lifetime to the application: each handle is
created and destroyed explicitly, and a handle must be destroyed before the
object it was created from. This package wraps those handles in small
owning types whose Destroy methods release them, and composes them into a
Context that tears everything down in reverse creation order, including
after a setup stage fails half way.

Setup sequence

	1. Initialize the loader (InitLoader with a window, InitHeadless without)
	2. Probe and verify the required instance extensions and layers
	3. Create the instance, observing creation itself when validation is on
	4. Register the diagnostic channel (validation only)
	5. Score the physical devices and select the best one
	6. Create the logical device, its graphics queue and a transient command pool

NewContext runs all of these. Each failure is marked with one of the Err
kinds in errors.go, test for them with errors.Is.

Uploading geometry

Device local memory is usually not host visible, so every upload goes
through a scratch buffer:

	1. Allocate a host visible scratch buffer and write the data into it
	2. Allocate the device local resident buffer
	3. Copy scratch to resident on the GPU and wait on a fence
	4. Destroy the scratch buffer

Upload implements this against the Transfer interface, which Context
implements on the GPU. LoadModel combines it with the OBJ mesh loader.

Native Vulkan terms
	Instance	the vulkan runtime instance
	PhysicalDevice	the physical hardware device
	Device		the logical device, target of most of the vulkan apis
	Queue		a queue which work (command buffers) may be submitted to
	DeviceMemory	an allocation of memory on the host or device
	Buffer		a linear range of data (vertex, index, or other)
	Fence		a device to host completion signal

Native structures are exposed on every wrapper in fields prefixed with VK,
so applications are not limited to what this package provides.

Everything here is single threaded: create and use a Context from one
goroutine, the one that called InitLoader when a window is used.
*/
package vulkanengine
