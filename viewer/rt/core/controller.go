package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type ControllerMode int

const (
	ModeOrbit ControllerMode = iota
	ModeAutoRotate
)

func (m ControllerMode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModeAutoRotate:
		return "auto"
	}
	return "unknown"
}

// Controller mutates the camera eye in response to input or time.
type Controller interface {
	Mode() ControllerMode
	ProcessButton(pressed bool)
	ProcessMotion(eye *mgl32.Vec3, dx, dy float32)
	Update(eye *mgl32.Vec3)
}

// OrbitController moves the eye on a sphere around the origin while the drag button is held.
// Angles accumulate in degrees.
type OrbitController struct {
	Sensitivity float32
	AngleX      float32
	AngleY      float32
	Radius      float32
	Dragging    bool
}

func NewOrbitController(sensitivity, radius float32) *OrbitController {
	return &OrbitController{
		Sensitivity: sensitivity,
		Radius:      radius,
	}
}

func (o *OrbitController) Mode() ControllerMode { return ModeOrbit }

func (o *OrbitController) ProcessButton(pressed bool) {
	o.Dragging = pressed
}

func (o *OrbitController) ProcessMotion(eye *mgl32.Vec3, dx, dy float32) {
	if !o.Dragging {
		return
	}
	o.AngleX += dx * o.Sensitivity
	o.AngleY -= dy * o.Sensitivity // dragging up moves the view up

	*eye = OrbitPosition(mgl32.DegToRad(o.AngleY), mgl32.DegToRad(o.AngleX), o.Radius)
}

func (o *OrbitController) Update(eye *mgl32.Vec3) {}

// AutoRotateController ignores input and steps the vertical angle every update.
// Angles are in radians.
type AutoRotateController struct {
	AngleX float32
	AngleY float32
	Step   float32
	Radius float32
}

func NewAutoRotateController(step, radius float32) *AutoRotateController {
	return &AutoRotateController{
		Step:   step,
		Radius: radius,
	}
}

func (a *AutoRotateController) Mode() ControllerMode { return ModeAutoRotate }

func (a *AutoRotateController) ProcessButton(pressed bool) {}

func (a *AutoRotateController) ProcessMotion(eye *mgl32.Vec3, dx, dy float32) {}

func (a *AutoRotateController) Update(eye *mgl32.Vec3) {
	a.AngleY -= a.Step
	eye[1] = float32(math.Cos(float64(a.AngleY))) * a.Radius
}

// OrbitPosition converts spherical angles to a point on a sphere of radius r
// centered on the origin. Pitch is measured from +Y; there is no pole clamping.
func OrbitPosition(pitch, yaw, r float32) mgl32.Vec3 {
	sinPitch := float32(math.Sin(float64(pitch)))
	cosPitch := float32(math.Cos(float64(pitch)))
	return mgl32.Vec3{
		r * sinPitch * float32(math.Cos(float64(yaw))),
		r * cosPitch,
		r * sinPitch * float32(math.Sin(float64(yaw))),
	}
}
