package vulkanengine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func decode(t *testing.T, src string) (*Mesh, error) {
	t.Helper()
	return DecodeMesh(strings.NewReader(src), nil)
}

func TestDecodeMeshDeduplicates(t *testing.T) {
	mesh, err := decode(t, quadOBJ)
	require.NoError(t, err)

	// corners 1 and 3 are shared by both faces
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)

	v := mesh.Vertices[2]
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, v.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, v.Normal)
	assert.Equal(t, mgl32.Vec2{1, 1}, v.UV)
	assert.Equal(t, white, v.Color)
}

func TestDecodeMeshFanTriangulates(t *testing.T) {
	mesh, err := decode(t, `o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
}

func TestDecodeMeshMissingAttributesAreZero(t *testing.T) {
	mesh, err := decode(t, `o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	require.NoError(t, err)
	require.Len(t, mesh.Vertices, 3)
	for _, v := range mesh.Vertices {
		assert.Equal(t, mgl32.Vec3{}, v.Normal)
		assert.Equal(t, mgl32.Vec2{}, v.UV)
	}
}

func TestDecodeMeshIdenticalCornersShareIndex(t *testing.T) {
	// Two faces reference the same position/normal/uv combination through
	// the same indices; it is stored once and indexed twice.
	mesh, err := decode(t, `o pair
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
f 2 4 3
`)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 4)
	assert.Len(t, mesh.Indices, 6)
	assert.Equal(t, mesh.Indices[1], mesh.Indices[3])
	assert.Equal(t, mesh.Indices[2], mesh.Indices[5])
}

func TestDecodeMeshDuplicateAttributesShareIndex(t *testing.T) {
	// Lines 4, 5 and 6 repeat 1, 2 and 3 exactly, and the second normal and
	// uv repeat the first, so the second face resolves to the same vertices
	// through different index triples.
	mesh, err := decode(t, `o twins
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vn 0 0 1
vt 0.5 0.5
vt 0.5 0.5
f 1/1/1 2/1/1 3/1/1
f 4/2/2 5/2/2 6/2/2
`)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 3)
	assert.Len(t, mesh.Indices, 6)
	assert.Equal(t, []uint32{0, 1, 2, 0, 1, 2}, mesh.Indices)
}

func TestDecodeMeshVertexColors(t *testing.T) {
	mesh, err := decode(t, `o colored
v 0 0 0 1 0 0
v 1 0 0
v 0 1 0
v 0 0 0 0 1 1
f 1 2 3
f 4 2 3
`)
	require.NoError(t, err)

	// positions 1 and 4 only differ in colour
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 3, 1, 2}, mesh.Indices)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, mesh.Vertices[0].Color)
	assert.Equal(t, white, mesh.Vertices[1].Color)
	assert.Equal(t, white, mesh.Vertices[2].Color)
	assert.Equal(t, mgl32.Vec3{0, 1, 1}, mesh.Vertices[3].Color)
	assert.Equal(t, mesh.Vertices[0].Position, mesh.Vertices[3].Position)
}

func TestVertexColors(t *testing.T) {
	colors := vertexColors([]byte("# comment\nv 0 0 0 0.5 0.25 1\nvn 0 0 1\nv 1 1 1\nv 1 1 1 x y z\n"))
	assert.Equal(t, []mgl32.Vec3{{0.5, 0.25, 1}, white, white}, colors)
}

func TestDecodeMeshVertexCountBoundary(t *testing.T) {
	_, err := decode(t, `o line
v 0 0 0
v 1 0 0
f 1 2 1
`)
	assert.True(t, errors.Is(err, ErrDegenerateMesh))

	mesh, err := decode(t, `o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 3)
}

func TestDecodeMeshParseError(t *testing.T) {
	_, err := decode(t, `o broken
v 1 2
`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Error(t, perr.Err)
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Path: "a.obj", Err: errors.New("bad vertex")}
	assert.Equal(t, "parse a.obj: bad vertex", err.Error())
	assert.Equal(t, "parse mesh: bad vertex", (&ParseError{Err: errors.New("bad vertex")}).Error())
}

func TestLoadMesh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte("newmtl plain\nKd 1 1 1\n"), 0o644))

	mesh, err := LoadMesh(path)
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 4)

	_, err = LoadMesh(filepath.Join(dir, "missing.obj"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrParse))
}
