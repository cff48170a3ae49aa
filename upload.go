package vulkanengine

import (
	"github.com/cockroachdb/errors"
	units "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

// GPUBuffer is a buffer owned by the caller.
type GPUBuffer interface {
	VK() vk.Buffer
	Size() uint64
	Destroy()
}

// ScratchBuffer is a host visible staging buffer, written once.
type ScratchBuffer interface {
	GPUBuffer
	Write(data []byte) error
}

// Transfer is what an upload needs from a ready device. Context implements
// it on the GPU.
type Transfer interface {
	// NewScratch allocates a host visible buffer usable as a copy source.
	NewScratch(size uint64) (ScratchBuffer, error)
	// NewResident allocates a device local buffer usable as a copy
	// destination and for usage.
	NewResident(size uint64, usage vk.BufferUsageFlags) (GPUBuffer, error)
	// CopyBuffer copies size bytes from src to dst and returns once the
	// device has finished the copy.
	CopyBuffer(src, dst GPUBuffer, size uint64) error
}

const (
	scratchUsage = vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit)
	scratchProps = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)

	residentProps = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
)

// Upload moves data into a new device local buffer through a scratch
// buffer. The scratch buffer is destroyed only after the copy has
// completed. On failure nothing acquired here is left alive.
func Upload(t Transfer, data []byte, usage vk.BufferUsageFlags) (GPUBuffer, error) {
	if len(data) == 0 {
		return nil, errors.Mark(errors.New("upload of zero bytes"), ErrEmptyUpload)
	}
	size := uint64(len(data))

	scratch, err := t.NewScratch(size)
	if err != nil {
		return nil, errors.Wrap(err, "allocate scratch buffer")
	}
	defer scratch.Destroy()

	if err := scratch.Write(data); err != nil {
		return nil, errors.Wrap(err, "write scratch buffer")
	}

	resident, err := t.NewResident(size, usage)
	if err != nil {
		return nil, errors.Wrap(err, "allocate resident buffer")
	}

	if err := t.CopyBuffer(scratch, resident, size); err != nil {
		resident.Destroy()
		return nil, errors.Wrap(err, "copy scratch to resident")
	}

	Logger().Debug("uploaded buffer", "size", units.BytesSize(float64(size)))
	return resident, nil
}

// UploadVertices uploads vertices as a vertex buffer. At least three
// vertices are required.
func UploadVertices(t Transfer, vertices []Vertex) (GPUBuffer, error) {
	if len(vertices) < 3 {
		return nil, errors.Mark(errors.Newf("vertex count must be at least 3, got %d", len(vertices)), ErrDegenerateMesh)
	}
	return Upload(t, VertexSlice(vertices).Bytes(), vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit))
}

// UploadIndices uploads indices as an index buffer. An empty slice returns
// an error marked ErrEmptyUpload, which callers treat as "no index buffer".
func UploadIndices(t Transfer, indices []uint32) (GPUBuffer, error) {
	if len(indices) == 0 {
		return nil, errors.Mark(errors.New("no indices"), ErrEmptyUpload)
	}
	return Upload(t, IndexSliceUint32(indices).Bytes(), vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit))
}
