package vulkanengine

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// fakeTransfer stands in for a GPU. Resident buffers keep the bytes copied
// into them so tests can read uploads back.
type fakeTransfer struct {
	events []string
	live   int

	failScratch  error
	failWrite    error
	failResident error
	failCopy     error
}

type fakeBuffer struct {
	t         *fakeTransfer
	kind      string
	usage     vk.BufferUsageFlags
	data      []byte
	destroyed bool
}

func (b *fakeBuffer) VK() vk.Buffer { return vk.Buffer(vk.NullHandle) }
func (b *fakeBuffer) Size() uint64  { return uint64(len(b.data)) }

func (b *fakeBuffer) Destroy() {
	if b.destroyed {
		panic("double destroy of " + b.kind)
	}
	b.destroyed = true
	b.t.live--
	b.t.record("destroy " + b.kind)
}

func (b *fakeBuffer) Write(data []byte) error {
	if b.t.failWrite != nil {
		return b.t.failWrite
	}
	copy(b.data, data)
	b.t.record("write " + b.kind)
	return nil
}

func (t *fakeTransfer) record(e string) { t.events = append(t.events, e) }

func (t *fakeTransfer) NewScratch(size uint64) (ScratchBuffer, error) {
	if t.failScratch != nil {
		return nil, t.failScratch
	}
	t.live++
	t.record("new scratch")
	return &fakeBuffer{t: t, kind: "scratch", data: make([]byte, size)}, nil
}

func (t *fakeTransfer) NewResident(size uint64, usage vk.BufferUsageFlags) (GPUBuffer, error) {
	if t.failResident != nil {
		return nil, t.failResident
	}
	t.live++
	t.record("new resident")
	return &fakeBuffer{t: t, kind: "resident", usage: usage, data: make([]byte, size)}, nil
}

func (t *fakeTransfer) CopyBuffer(src, dst GPUBuffer, size uint64) error {
	if t.failCopy != nil {
		return t.failCopy
	}
	s, d := src.(*fakeBuffer), dst.(*fakeBuffer)
	if s.destroyed || d.destroyed {
		return fmt.Errorf("copy with destroyed buffer")
	}
	copy(d.data[:size], s.data[:size])
	t.record("copy")
	return nil
}

// readVertices reinterprets a resident buffer as vertices.
func readVertices(b GPUBuffer) []Vertex {
	data := b.(*fakeBuffer).data
	if len(data) == 0 {
		return nil
	}
	out := make([]Vertex, len(data)/VertexSize)
	copy(VertexSlice(out).Bytes(), data)
	return out
}

func readIndices(b GPUBuffer) []uint32 {
	data := b.(*fakeBuffer).data
	out := make([]uint32, len(data)/int(unsafe.Sizeof(uint32(0))))
	copy(IndexSliceUint32(out).Bytes(), data)
	return out
}
