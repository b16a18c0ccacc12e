package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d: want %v got %v", i, want, got)
	}
}

func TestOrbitPosition(t *testing.T) {
	const r = 15
	tests := []struct {
		name       string
		pitch, yaw float32
		want       mgl32.Vec3
	}{
		{"equator yaw 0", 90, 0, mgl32.Vec3{r, 0, 0}},
		{"equator yaw 90", 90, 90, mgl32.Vec3{0, 0, r}},
		{"north pole", 0, 0, mgl32.Vec3{0, r, 0}},
		{"north pole ignores yaw", 0, 137, mgl32.Vec3{0, r, 0}},
		{"south pole", 180, 45, mgl32.Vec3{0, -r, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrbitPosition(mgl32.DegToRad(tt.pitch), mgl32.DegToRad(tt.yaw), r)
			assertVecNear(t, tt.want, got)
			assert.InDelta(t, r, got.Len(), 1e-4)
		})
	}
}

func TestOrbitController_Drag(t *testing.T) {
	cam := newTutorialCamera()
	ctrl := NewOrbitController(1, 15)
	cam.Controller = ctrl
	assert.Equal(t, ModeOrbit, ctrl.Mode())

	// motion before the button goes down is ignored
	cam.ProcessEvent(InputEvent{Kind: EventMotion, DX: 30, DY: 30})
	assert.Equal(t, mgl32.Vec3{0, 1, 2}, cam.Eye)
	assert.Zero(t, ctrl.AngleX)

	cam.ProcessEvent(InputEvent{Kind: EventButton, Button: DragButton, Pressed: true})
	assert.True(t, ctrl.Dragging)

	// dragging up by 90 pixels tilts pitch to 90 degrees
	cam.ProcessEvent(InputEvent{Kind: EventMotion, DX: 0, DY: -90})
	assert.Equal(t, float32(90), ctrl.AngleY)
	assertVecNear(t, mgl32.Vec3{15, 0, 0}, cam.Eye)

	cam.ProcessEvent(InputEvent{Kind: EventMotion, DX: 90, DY: 0})
	assertVecNear(t, mgl32.Vec3{0, 0, 15}, cam.Eye)
}

func TestOrbitController_PitchZeroIsPole(t *testing.T) {
	eye := mgl32.Vec3{0, 1, 2}
	ctrl := NewOrbitController(1, 15)
	ctrl.ProcessButton(true)
	ctrl.ProcessMotion(&eye, 25, 0)

	assert.Equal(t, float32(0), ctrl.AngleY)
	assertVecNear(t, mgl32.Vec3{0, 15, 0}, eye)
}

func TestOrbitController_ReleaseStopsMotion(t *testing.T) {
	cam := newTutorialCamera()
	ctrl := NewOrbitController(1, 15)
	cam.Controller = ctrl

	cam.ProcessEvent(InputEvent{Kind: EventButton, Button: DragButton, Pressed: true})
	cam.ProcessEvent(InputEvent{Kind: EventMotion, DX: 12, DY: -40})
	eye := cam.Eye
	ax, ay := ctrl.AngleX, ctrl.AngleY

	cam.ProcessEvent(InputEvent{Kind: EventButton, Button: DragButton, Pressed: false})
	for i := 0; i < 10; i++ {
		cam.ProcessEvent(InputEvent{Kind: EventMotion, DX: 5, DY: 5})
	}

	assert.False(t, ctrl.Dragging)
	assert.Equal(t, eye, cam.Eye)
	assert.Equal(t, ax, ctrl.AngleX)
	assert.Equal(t, ay, ctrl.AngleY)
}

func TestOrbitController_OtherButtonsDoNotDrag(t *testing.T) {
	cam := newTutorialCamera()
	ctrl := NewOrbitController(1, 15)
	cam.Controller = ctrl

	cam.ProcessEvent(InputEvent{Kind: EventButton, Button: MouseButtonRight, Pressed: true})
	cam.ProcessEvent(InputEvent{Kind: EventMotion, DX: 5, DY: 5})

	assert.False(t, ctrl.Dragging)
	assert.Equal(t, mgl32.Vec3{0, 1, 2}, cam.Eye)
}

func TestOrbitController_Sensitivity(t *testing.T) {
	eye := mgl32.Vec3{}
	ctrl := NewOrbitController(0.5, 10)
	ctrl.ProcessButton(true)
	ctrl.ProcessMotion(&eye, 40, -180)

	assert.Equal(t, float32(20), ctrl.AngleX)
	assert.Equal(t, float32(90), ctrl.AngleY)
	assertVecNear(t, OrbitPosition(mgl32.DegToRad(90), mgl32.DegToRad(20), 10), eye)
}

func TestOrbitController_UpdateIsNoop(t *testing.T) {
	eye := mgl32.Vec3{1, 2, 3}
	ctrl := NewOrbitController(1, 15)
	ctrl.Update(&eye)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, eye)
}

func TestAutoRotateController(t *testing.T) {
	eye := mgl32.Vec3{0, 1, 2}
	ctrl := NewAutoRotateController(0.005, 150)
	assert.Equal(t, ModeAutoRotate, ctrl.Mode())

	// input has no effect
	ctrl.ProcessButton(true)
	ctrl.ProcessMotion(&eye, 100, 100)
	assert.Equal(t, mgl32.Vec3{0, 1, 2}, eye)

	for i := 0; i < 100; i++ {
		ctrl.Update(&eye)
	}
	assert.InDelta(t, -0.5, ctrl.AngleY, 1e-4)
	assert.InDelta(t, 150*math.Cos(-0.5), eye.Y(), 1e-2)
	// only the height moves
	assert.Equal(t, float32(0), eye.X())
	assert.Equal(t, float32(2), eye.Z())
}

func TestControllerMode_String(t *testing.T) {
	assert.Equal(t, "orbit", ModeOrbit.String())
	assert.Equal(t, "auto", ModeAutoRotate.String())
	assert.Equal(t, "unknown", ControllerMode(42).String())
}
