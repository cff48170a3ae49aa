package vulkanengine

import (
	vk "github.com/vulkan-go/vulkan"
)

// BoundBuffer is a buffer together with the memory bound to it. Scratch
// buffers are host visible and written once; resident buffers are device
// local and only reached through copies.
type BoundBuffer struct {
	Buffer *Buffer
	Memory *DeviceMemory
}

// CreateBoundBuffer creates a buffer, allocates memory with mprops for it
// and binds the two. Nothing is leaked on failure.
func (d *Device) CreateBoundBuffer(size uint64, usage vk.BufferUsageFlags, mprops vk.MemoryPropertyFlags) (*BoundBuffer, error) {
	buffer, err := d.CreateBuffer(size, usage)
	if err != nil {
		return nil, err
	}
	memory, err := d.AllocateForBuffer(buffer, mprops)
	if err != nil {
		buffer.Destroy()
		return nil, err
	}
	if err := buffer.Bind(memory, 0); err != nil {
		memory.Destroy()
		buffer.Destroy()
		return nil, err
	}
	return &BoundBuffer{Buffer: buffer, Memory: memory}, nil
}

// Write copies data to the start of the buffer through a temporary mapping.
func (b *BoundBuffer) Write(data []byte) error {
	return b.Memory.MapCopyUnmap(data)
}

// VK returns the native buffer handle.
func (b *BoundBuffer) VK() vk.Buffer {
	return b.Buffer.VKBuffer
}

// Size returns the requested size of the buffer in bytes.
func (b *BoundBuffer) Size() uint64 {
	return b.Buffer.Size
}

// Destroy destroys the buffer then frees its memory.
func (b *BoundBuffer) Destroy() {
	if b == nil {
		return
	}
	b.Buffer.Destroy()
	b.Memory.Destroy()
}
