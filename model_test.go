package vulkanengine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestNewModel(t *testing.T) {
	ft := &fakeTransfer{}
	mesh := &Mesh{Vertices: triangle(), Indices: []uint32{0, 1, 2}}

	m, err := NewModel(ft, mesh)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), m.VertexCount())
	assert.Equal(t, uint32(3), m.IndexCount())
	assert.Equal(t, mesh.Vertices, readVertices(m.VertexBuffer))
	assert.Equal(t, mesh.Indices, readIndices(m.IndexBuffer))
	assert.Equal(t, 2, ft.live)

	ft.events = nil
	m.Destroy()
	assert.Equal(t, []string{"destroy resident", "destroy resident"}, ft.events)
	assert.Zero(t, ft.live)
	assert.Nil(t, m.VertexBuffer)
}

func TestNewModelWithoutIndices(t *testing.T) {
	ft := &fakeTransfer{}
	m, err := NewModel(ft, &Mesh{Vertices: triangle()})
	require.NoError(t, err)
	assert.Nil(t, m.IndexBuffer)
	assert.Zero(t, m.IndexCount())
	assert.Equal(t, 1, ft.live)
	m.Destroy()
	assert.Zero(t, ft.live)
}

func TestNewModelDegenerate(t *testing.T) {
	ft := &fakeTransfer{}
	_, err := NewModel(ft, &Mesh{Vertices: triangle()[:2], Indices: []uint32{0, 1}})
	assert.True(t, errors.Is(err, ErrDegenerateMesh))
	assert.Zero(t, ft.live)
}

func TestNewModelIndexFailureReleasesVertices(t *testing.T) {
	ft := &fakeTransfer{}
	mesh := &Mesh{Vertices: triangle(), Indices: []uint32{0, 1, 2}}

	// the second resident allocation is the index buffer
	ft2 := &failNthResident{fakeTransfer: ft, n: 2}
	_, err := NewModel(ft2, mesh)
	require.Error(t, err)
	assert.Zero(t, ft.live)
}

func TestLoadModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	ft := &fakeTransfer{}
	m, err := LoadModel(ft, path)
	require.NoError(t, err)
	defer m.Destroy()
	assert.Equal(t, uint32(4), m.VertexCount())
	assert.Equal(t, uint32(6), m.IndexCount())
}

type failNthResident struct {
	*fakeTransfer
	n     int
	count int
}

func (f *failNthResident) NewResident(size uint64, usage vk.BufferUsageFlags) (GPUBuffer, error) {
	f.count++
	if f.count == f.n {
		return nil, errors.New("out of device memory")
	}
	return f.fakeTransfer.NewResident(size, usage)
}
