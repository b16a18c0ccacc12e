package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	cubes "github.com/gekko3d/cubes"
	"github.com/gekko3d/cubes/viewer/rt/app"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	debug := flag.Bool("debug", false, "Enable debug logging and the FPS overlay")
	texture := flag.String("texture", "", "Image file used as the cube texture (default: checkerboard)")
	flag.Parse()

	log := cubes.NewDefaultLogger("cubes", *debug)
	if err := run(*configPath, *debug, *texture, log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(configPath string, debug bool, texture string, log *cubes.DefaultLogger) error {
	cfg, err := cubes.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}
	if texture != "" {
		cfg.Scene.Texture = texture
	}
	log.SetDebug(cfg.Debug)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	application := app.NewApp(window, cfg, log.Sub("renderer"))
	defer application.Release()
	if err := application.Init(); err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		application.Resize(width, height)
	})
	window.SetContentScaleCallback(func(w *glfw.Window, x, y float32) {
		application.Resize(w.GetFramebufferSize())
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		application.HandleCursorPos(xpos, ypos)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		application.HandleMouseButton(button, action)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		if err := application.Frame(); err != nil {
			return err
		}
	}
	return nil
}
