package vulkanengine

import (
	"github.com/cockroachdb/errors"
	units "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

// Model is mesh geometry resident on the device. The index buffer is nil
// when the mesh has no indices; Draw then issues a non indexed draw.
type Model struct {
	VertexBuffer GPUBuffer
	IndexBuffer  GPUBuffer

	vertexCount uint32
	indexCount  uint32
}

// NewModel uploads mesh through t.
func NewModel(t Transfer, mesh *Mesh) (*Model, error) {
	vb, err := UploadVertices(t, mesh.Vertices)
	if err != nil {
		return nil, errors.Wrap(err, "upload vertices")
	}

	m := &Model{VertexBuffer: vb, vertexCount: uint32(len(mesh.Vertices))}

	ib, err := UploadIndices(t, mesh.Indices)
	switch {
	case errors.Is(err, ErrEmptyUpload):
	case err != nil:
		m.Destroy()
		return nil, errors.Wrap(err, "upload indices")
	default:
		m.IndexBuffer = ib
		m.indexCount = uint32(len(mesh.Indices))
	}

	Logger().Info("model loaded",
		"vertices", m.vertexCount,
		"indices", m.indexCount,
		"size", units.BytesSize(float64(m.size())))
	return m, nil
}

// LoadModel loads the OBJ file at path and uploads it through t.
func LoadModel(t Transfer, path string) (*Model, error) {
	mesh, err := LoadMesh(path)
	if err != nil {
		return nil, err
	}
	return NewModel(t, mesh)
}

// VertexCount returns the number of unique vertices.
func (m *Model) VertexCount() uint32 { return m.vertexCount }

// IndexCount returns the number of indices, 0 without an index buffer.
func (m *Model) IndexCount() uint32 { return m.indexCount }

func (m *Model) size() uint64 {
	s := m.VertexBuffer.Size()
	if m.IndexBuffer != nil {
		s += m.IndexBuffer.Size()
	}
	return s
}

// Bind records the vertex and index buffer bindings into cb.
func (m *Model) Bind(cb *CommandBuffer) {
	vk.CmdBindVertexBuffers(cb.VK(), 0, 1, []vk.Buffer{m.VertexBuffer.VK()}, []vk.DeviceSize{0})
	if m.IndexBuffer != nil {
		vk.CmdBindIndexBuffer(cb.VK(), m.IndexBuffer.VK(), 0, vk.IndexTypeUint32)
	}
}

// Draw records a draw of the whole model into cb. Bind must be recorded first.
func (m *Model) Draw(cb *CommandBuffer) {
	if m.IndexBuffer != nil {
		vk.CmdDrawIndexed(cb.VK(), m.indexCount, 1, 0, 0, 0)
		return
	}
	vk.CmdDraw(cb.VK(), m.vertexCount, 1, 0, 0)
}

// Destroy releases the index buffer then the vertex buffer. The device must
// no longer be using them.
func (m *Model) Destroy() {
	if m.IndexBuffer != nil {
		m.IndexBuffer.Destroy()
		m.IndexBuffer = nil
	}
	if m.VertexBuffer != nil {
		m.VertexBuffer.Destroy()
		m.VertexBuffer = nil
	}
}
