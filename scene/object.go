// Package scene holds the objects placed in a rendered scene: their
// transforms, their models and optional point lights.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	vulkanengine "github.com/FWFWLL/VulkanEngine"
)

// ID identifies an Object within the Factory that created it.
type ID uint32

// Transform places an object in the world. Rotation holds Tait-Bryan
// angles in radians, applied in Y, X, Z order.
type Transform struct {
	Translation mgl32.Vec3
	Scale       mgl32.Vec3
	Rotation    mgl32.Vec3
}

// Mat4 returns translate * Ry * Rx * Rz * scale.
func (t Transform) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(mgl32.HomogRotate3DY(t.Rotation[1])).
		Mul4(mgl32.HomogRotate3DX(t.Rotation[0])).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation[2])).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of Mat4, the
// matrix that keeps normals perpendicular under non uniform scale.
func (t Transform) NormalMatrix() mgl32.Mat3 {
	return t.Mat4().Mat3().Inv().Transpose()
}

// PointLight marks an object as a light source.
type PointLight struct {
	Intensity float32
}

// Object is anything placed in the scene. Model and Light are optional.
type Object struct {
	id        ID
	Color     mgl32.Vec3
	Transform Transform
	Model     *vulkanengine.Model
	Light     *PointLight
}

// ID returns the identifier assigned by the Factory.
func (o *Object) ID() ID { return o.id }

// Factory creates objects with identifiers unique to the factory.
type Factory struct {
	next ID
}

// NewObject returns an object with unit scale and the next identifier.
func (f *Factory) NewObject() *Object {
	o := &Object{
		id:        f.next,
		Transform: Transform{Scale: mgl32.Vec3{1, 1, 1}},
	}
	f.next++
	return o
}

// NewPointLight returns a light object. The radius is stored in the x
// scale, which the light's billboard is drawn with.
func (f *Factory) NewPointLight(intensity, radius float32, color mgl32.Vec3) *Object {
	o := f.NewObject()
	o.Color = color
	o.Transform.Scale[0] = radius
	o.Light = &PointLight{Intensity: intensity}
	return o
}

// DefaultPointLight returns a light with intensity 10, radius 0.1 and
// white color.
func (f *Factory) DefaultPointLight() *Object {
	return f.NewPointLight(10, 0.1, mgl32.Vec3{1, 1, 1})
}

// Map indexes objects by identifier.
type Map map[ID]*Object

// Add stores o under its identifier.
func (m Map) Add(o *Object) {
	m[o.ID()] = o
}
