package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OpenGLToWGPU remaps clip-space depth from OpenGL's -1..1 to WebGPU's 0..1.
// Column-major: row 2 becomes (0, 0, 0.5, 0.5).
var OpenGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// CameraUniform mirrors the WGSL CameraUniform struct (64 bytes).
type CameraUniform struct {
	ViewProj [16]float32
}

func NewCameraUniform() CameraUniform {
	return CameraUniform{ViewProj: mgl32.Ident4()}
}

type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	Aspect float32
	Fovy   float32 // degrees
	Znear  float32
	Zfar   float32

	Uniform    CameraUniform
	Controller Controller
}

func NewCamera(eye, target, up mgl32.Vec3, aspect, fovy, znear, zfar float32) *Camera {
	return &Camera{
		Eye:     eye,
		Target:  target,
		Up:      up,
		Aspect:  aspect,
		Fovy:    fovy,
		Znear:   znear,
		Zfar:    zfar,
		Uniform: NewCameraUniform(),
	}
}

func (c *Camera) HasController() bool {
	return c.Controller != nil
}

// ProcessEvent forwards an input event to the controller, if any.
func (c *Camera) ProcessEvent(ev InputEvent) {
	if c.Controller == nil {
		return
	}
	switch ev.Kind {
	case EventButton:
		if ev.Button == DragButton {
			c.Controller.ProcessButton(ev.Pressed)
		}
	case EventMotion:
		c.Controller.ProcessMotion(&c.Eye, ev.DX, ev.DY)
	}
}

// ViewProjection builds the combined matrix from the current camera state.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(c.Eye, c.Target, c.Up)
	proj := mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect, c.Znear, c.Zfar)
	return OpenGLToWGPU.Mul4(proj.Mul4(view))
}

// UpdateViewProj writes a fresh view-projection matrix into the uniform.
// It has no other side effects.
func (c *Camera) UpdateViewProj() {
	c.Uniform.ViewProj = c.ViewProjection()
}

// Update runs the controller's per-frame step and then UpdateViewProj.
// Must be called before every frame's draw submission.
func (c *Camera) Update() {
	if c.Controller != nil {
		c.Controller.Update(&c.Eye)
	}
	c.UpdateViewProj()
}

// SetViewport updates the aspect ratio. Zero sizes are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}
