package vulkanengine

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is deduplicated geometry ready for upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// ParseError is returned when a mesh file cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	if e.Path != "" {
		b.WriteString(e.Path)
	} else {
		b.WriteString("mesh")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadMesh reads a Wavefront OBJ file. A material library next to it with
// the same base name is read when present; materials are otherwise ignored.
func LoadMesh(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open mesh %s", path)
	}
	defer f.Close()

	var mtl io.Reader
	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if m, err := os.Open(mtlPath); err == nil {
		defer m.Close()
		mtl = m
	}

	mesh, err := DecodeMesh(f, mtl)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	Logger().Debug("loaded mesh", "path", path, "vertices", len(mesh.Vertices), "indices", len(mesh.Indices))
	return mesh, nil
}

// DecodeMesh decodes OBJ data from r. mtl may be nil. Vertex colours given
// as "v x y z r g b" are kept; positions without one are white.
func DecodeMesh(r io.Reader, mtl io.Reader) (*Mesh, error) {
	if mtl == nil {
		mtl = strings.NewReader("")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read mesh")
	}
	dec, err := obj.DecodeReader(bytes.NewReader(data), mtl)
	if err != nil {
		return nil, errors.Mark(&ParseError{Err: err}, ErrParse)
	}
	for _, w := range dec.Warnings {
		Logger().Warn("mesh decode", "warning", w)
	}

	b := newMeshBuilder(dec, vertexColors(data))
	for i := range dec.Objects {
		for _, face := range dec.Objects[i].Faces {
			// fan triangulation, (0, i-1, i)
			for c := 2; c < len(face.Vertices); c++ {
				b.addCorner(face, 0)
				b.addCorner(face, c-1)
				b.addCorner(face, c)
			}
		}
	}

	if len(b.mesh.Vertices) < 3 {
		return nil, errors.Mark(errors.Newf("mesh has %d unique vertices, need at least 3", len(b.mesh.Vertices)), ErrDegenerateMesh)
	}
	return b.mesh, nil
}

var white = mgl32.Vec3{1, 1, 1}

// meshBuilder holds the dedup table for a single decode.
type meshBuilder struct {
	dec    *obj.Decoder
	colors []mgl32.Vec3
	unique map[vertexKey]uint32
	mesh   *Mesh
}

func newMeshBuilder(dec *obj.Decoder, colors []mgl32.Vec3) *meshBuilder {
	return &meshBuilder{
		dec:    dec,
		colors: colors,
		unique: make(map[vertexKey]uint32),
		mesh:   &Mesh{},
	}
}

func (b *meshBuilder) addCorner(face obj.Face, corner int) {
	position := indexAt(face.Vertices, corner)
	v := Vertex{
		Position: vec3At(b.dec.Vertices, position),
		Color:    b.colorAt(position),
		Normal:   vec3At(b.dec.Normals, indexAt(face.Normals, corner)),
		UV:       vec2At(b.dec.Uvs, indexAt(face.Uvs, corner)),
	}

	k := v.key()
	index, ok := b.unique[k]
	if !ok {
		index = uint32(len(b.mesh.Vertices))
		b.mesh.Vertices = append(b.mesh.Vertices, v)
		b.unique[k] = index
	}
	b.mesh.Indices = append(b.mesh.Indices, index)
}

func (b *meshBuilder) colorAt(position int) mgl32.Vec3 {
	if position < 0 || position >= len(b.colors) {
		return white
	}
	return b.colors[position]
}

// vertexColors returns one colour per "v" line of data, in file order. The
// decoder only reads positions, so the extended form is picked up here.
func vertexColors(data []byte) []mgl32.Vec3 {
	var colors []mgl32.Vec3
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 || fields[0] != "v" {
			continue
		}
		c := white
		if len(fields) >= 7 {
			if rgb, ok := parseFloats(fields[4:7]); ok {
				c = mgl32.Vec3{rgb[0], rgb[1], rgb[2]}
			}
		}
		colors = append(colors, c)
	}
	return colors
}

func parseFloats(fields []string) ([]float32, bool) {
	ret := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, false
		}
		ret[i] = float32(v)
	}
	return ret, true
}

func indexAt(indices []int, corner int) int {
	if corner >= len(indices) {
		return -1
	}
	return indices[corner]
}

// vec3At returns the i-th triple of data, or zero when i does not address one.
func vec3At(data []float32, i int) mgl32.Vec3 {
	if i < 0 || i*3+2 >= len(data) {
		return mgl32.Vec3{}
	}
	return mgl32.Vec3{data[i*3], data[i*3+1], data[i*3+2]}
}

func vec2At(data []float32, i int) mgl32.Vec2 {
	if i < 0 || i*2+1 >= len(data) {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{data[i*2], data[i*2+1]}
}
