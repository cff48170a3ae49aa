package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryIDs(t *testing.T) {
	var f Factory
	a := f.NewObject()
	b := f.NewObject()
	l := f.DefaultPointLight()

	assert.Equal(t, ID(0), a.ID())
	assert.Equal(t, ID(1), b.ID())
	assert.Equal(t, ID(2), l.ID())

	var other Factory
	assert.Equal(t, ID(0), other.NewObject().ID(), "factories do not share a counter")
}

func TestNewPointLight(t *testing.T) {
	var f Factory
	o := f.NewPointLight(5, 0.25, mgl32.Vec3{1, 0, 0})
	require.NotNil(t, o.Light)
	assert.Equal(t, float32(5), o.Light.Intensity)
	assert.Equal(t, float32(0.25), o.Transform.Scale[0])
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, o.Color)
	assert.Nil(t, o.Model)
}

func TestTransformIdentity(t *testing.T) {
	tr := Transform{Scale: mgl32.Vec3{1, 1, 1}}
	assert.True(t, tr.Mat4().ApproxEqual(mgl32.Ident4()))
	assert.True(t, tr.NormalMatrix().ApproxEqual(mgl32.Ident3()))
}

func TestTransformMat4(t *testing.T) {
	tr := Transform{
		Translation: mgl32.Vec3{1, 2, 3},
		Scale:       mgl32.Vec3{2, 2, 2},
		Rotation:    mgl32.Vec3{0, mgl32.DegToRad(90), 0},
	}
	// +x scaled by 2 then rotated 90 degrees about y lands on -z.
	p := tr.Mat4().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec4{1, 2, 1, 1}, 1e-5), "got %v", p)
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	tr := Transform{Scale: mgl32.Vec3{2, 1, 1}}
	n := tr.NormalMatrix().Mul3x1(mgl32.Vec3{1, 0, 0})
	assert.True(t, n.ApproxEqual(mgl32.Vec3{0.5, 0, 0}), "got %v", n)
}

func TestDot(t *testing.T) {
	v := mgl32.Vec3{1, 2, 3}
	u := mgl32.Vec3{4, 5, 6}
	assert.Equal(t, float32(32), v.Dot(u))
}

func TestMap(t *testing.T) {
	var f Factory
	m := Map{}
	o := f.NewObject()
	m.Add(o)
	assert.Same(t, o, m[o.ID()])
}
