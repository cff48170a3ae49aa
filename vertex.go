package vulkanengine

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
)

// Vertex is one tightly packed vertex record as laid out in a vertex buffer.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexSize is the stride of a Vertex in bytes.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// vertexKey is the bit pattern of every component of a Vertex. Two vertices
// are the same vertex iff their keys are equal, so -0 and +0 differ and
// identical NaNs match.
type vertexKey [11]uint32

func (v Vertex) key() vertexKey {
	return vertexKey{
		math.Float32bits(v.Position[0]), math.Float32bits(v.Position[1]), math.Float32bits(v.Position[2]),
		math.Float32bits(v.Color[0]), math.Float32bits(v.Color[1]), math.Float32bits(v.Color[2]),
		math.Float32bits(v.Normal[0]), math.Float32bits(v.Normal[1]), math.Float32bits(v.Normal[2]),
		math.Float32bits(v.UV[0]), math.Float32bits(v.UV[1]),
	}
}

type VertexSlice []Vertex

func (v VertexSlice) Bytes() []byte {
	if len(v) == 0 {
		return nil
	}
	return ToBytes(unsafe.Pointer(&v[0]), len(v)*VertexSize)
}

type IndexSliceUint32 []uint32

func (i IndexSliceUint32) Bytes() []byte {
	if len(i) == 0 {
		return nil
	}
	size := len(i) * int(unsafe.Sizeof(uint32(1)))
	return ToBytes(unsafe.Pointer(&i[0]), size)
}

// VertexBindingDescriptions describes the single interleaved binding.
func VertexBindingDescriptions() []vk.VertexInputBindingDescription {
	return []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    uint32(VertexSize),
		InputRate: vk.VertexInputRateVertex,
	}}
}

// VertexAttributeDescriptions describes position, color, normal and uv at
// locations 0 to 3.
func VertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{Location: 0, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: uint32(unsafe.Offsetof(Vertex{}.Position))},
		{Location: 1, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: uint32(unsafe.Offsetof(Vertex{}.Color))},
		{Location: 2, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: uint32(unsafe.Offsetof(Vertex{}.Normal))},
		{Location: 3, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: uint32(unsafe.Offsetof(Vertex{}.UV))},
	}
}
