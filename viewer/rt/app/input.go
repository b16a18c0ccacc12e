package app

import (
	"github.com/gekko3d/cubes/viewer/rt/core"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// MouseButtonFromGLFW maps a glfw button; ok is false for buttons the camera ignores.
func MouseButtonFromGLFW(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return core.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return core.MouseButtonMiddle, true
	default:
		return 0, false
	}
}

// HandleMouseButton queues a press or release. Repeats are dropped.
func (a *App) HandleMouseButton(button glfw.MouseButton, action glfw.Action) {
	mb, ok := MouseButtonFromGLFW(button)
	if !ok || action == glfw.Repeat {
		return
	}
	a.Input.MouseButton(mb, action == glfw.Press)
}

func (a *App) HandleCursorPos(x, y float64) {
	a.Input.CursorPos(x, y)
}
