package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/kkerchmar/LinearPerspectiveTool/gpu"
)

// Uniform is a resolved uniform slot plus the value pushed on every draw.
// Callers mutate Value between draws through the typed record they got back
// from the mesh.
type Uniform interface {
	Name() string
	Location() gpu.UniformLocation
	push(ctx gpu.Context)
}

type uniformSlot struct {
	name     string
	location gpu.UniformLocation
}

func (u uniformSlot) Name() string                  { return u.name }
func (u uniformSlot) Location() gpu.UniformLocation { return u.location }

type Uniform1f struct {
	uniformSlot
	Value float32
}

func (u *Uniform1f) push(ctx gpu.Context) {
	ctx.Uniform1f(u.location, u.Value)
}

type Uniform2f struct {
	uniformSlot
	Value mgl32.Vec2
}

func (u *Uniform2f) push(ctx gpu.Context) {
	ctx.Uniform2f(u.location, u.Value[0], u.Value[1])
}

type Uniform3f struct {
	uniformSlot
	Value mgl32.Vec3
}

func (u *Uniform3f) push(ctx gpu.Context) {
	ctx.Uniform3f(u.location, u.Value[0], u.Value[1], u.Value[2])
}

type UniformMatrix4 struct {
	uniformSlot
	Value mgl32.Mat4
}

func (u *UniformMatrix4) push(ctx gpu.Context) {
	ctx.UniformMatrix4fv(u.location, u.Value)
}
