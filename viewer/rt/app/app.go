package app

import (
	"errors"
	"fmt"
	"os"

	cubes "github.com/gekko3d/cubes"
	"github.com/gekko3d/cubes/viewer/rt/core"
	"github.com/gekko3d/cubes/viewer/rt/gpu"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Settings cubes.Config
	Log      cubes.Logger

	RenderPipeline   *wgpu.RenderPipeline
	TextureBGL       *wgpu.BindGroupLayout
	CameraBGL        *wgpu.BindGroupLayout
	DiffuseTexture   *gpu.Texture
	DiffuseBindGroup *wgpu.BindGroup
	DepthTexture     *gpu.Texture

	BufferManager *gpu.BufferManager
	Mesh          core.Mesh
	Camera        *core.Camera
	Input         *core.Input
	Viewport      core.Viewport
	Profiler      *Profiler

	TextRenderer     *core.TextRenderer
	TextPipeline     *wgpu.RenderPipeline
	TextAtlas        *wgpu.Texture
	TextAtlasView    *wgpu.TextureView
	TextSampler      *wgpu.Sampler
	TextBindGroup    *wgpu.BindGroup
	TextVertexBuffer *wgpu.Buffer
	TextItems        []core.TextItem
	TextVertexCount  uint32

	MaxTextureDimension uint32
	DebugMode           bool

	// newDepth builds the depth attachment; nil uses gpu.NewDepthTexture on Device.
	newDepth func(width, height uint32) (*gpu.Texture, error)
	// failed holds a surface or depth failure from a resize, returned by the next Frame.
	failed error
}

// NewApp builds the CPU side of the renderer from settings. GPU resources are
// created by Init.
func NewApp(window *glfw.Window, settings cubes.Config, log cubes.Logger) *App {
	a := &App{
		Window:   window,
		Settings: settings,
		Log:      cubes.OrNop(log),
		Mesh:     core.MeshByName(settings.Scene.Mesh),
		Input:    core.NewInput(),
		Viewport: core.Viewport{Width: settings.Window.Width, Height: settings.Window.Height},
		Profiler: NewProfiler(),

		DebugMode: settings.Debug,
	}

	cc := settings.Camera
	a.Camera = core.NewCamera(
		mgl32.Vec3(cc.Eye),
		mgl32.Vec3(cc.Target),
		mgl32.Vec3(cc.Up),
		a.Viewport.Aspect(),
		cc.Fovy, cc.Znear, cc.Zfar,
	)
	a.Camera.Controller = NewController(cc)
	return a
}

// NewController returns the configured camera controller, or nil for a static camera.
func NewController(cc cubes.CameraConfig) core.Controller {
	switch cc.Controller {
	case cubes.ControllerOrbit:
		return core.NewOrbitController(cc.Sensitivity, cc.OrbitRadius)
	case cubes.ControllerAuto:
		return core.NewAutoRotateController(cc.AutoStep, cc.AutoRadius)
	default:
		return nil
	}
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter
	a.MaxTextureDimension = adapter.GetLimits().Limits.MaxTextureDimension2D

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	width, height := a.Window.GetFramebufferSize()
	if a.Viewport.Resize(width, height) {
		a.Camera.SetViewport(width, height)
	}

	caps := a.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		return errors.New("surface reports no supported formats")
	}
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      PickSurfaceFormat(caps.Formats),
		Width:       uint32(a.Viewport.Width),
		Height:      uint32(a.Viewport.Height),
		PresentMode: PresentMode(a.Settings.Render.PresentMode),
		AlphaMode:   PickAlphaMode(caps.AlphaModes),
	}
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
	a.Log.Infof("surface configured: %dx%d format=%v present=%s", a.Config.Width, a.Config.Height, a.Config.Format, a.Settings.Render.PresentMode)

	if err := a.recreateDepth(); err != nil {
		return err
	}

	a.TextureBGL, err = gpu.TextureBindGroupLayout(a.Device)
	if err != nil {
		return fmt.Errorf("texture bind group layout: %w", err)
	}
	a.CameraBGL, err = gpu.CameraBindGroupLayout(a.Device)
	if err != nil {
		return fmt.Errorf("camera bind group layout: %w", err)
	}

	if err := a.setupDiffuse(); err != nil {
		return err
	}

	a.RenderPipeline, err = a.createRenderPipeline()
	if err != nil {
		return err
	}

	a.BufferManager = gpu.NewBufferManager(a.Device)
	if err := a.BufferManager.UploadMesh(a.Mesh); err != nil {
		return fmt.Errorf("upload %s mesh: %w", a.Mesh.Name, err)
	}

	s := a.Settings.Scene
	bounds := core.GridBounds{X: s.Grid[0], Y: s.Grid[1], Z: s.Grid[2], Spacing: s.Spacing}
	if err := a.BufferManager.UploadInstances(core.RawInstances(core.GridInstances(bounds), bounds.Count())); err != nil {
		return fmt.Errorf("upload instances: %w", err)
	}
	a.Log.Infof("uploaded %d %s instances", a.BufferManager.InstanceCount, a.Mesh.Name)

	a.Camera.UpdateViewProj()
	if err := a.BufferManager.UpdateCamera(a.Camera.Uniform, a.CameraBGL); err != nil {
		return fmt.Errorf("camera buffer: %w", err)
	}

	if a.DebugMode {
		a.TextRenderer, err = core.NewDefaultTextRenderer(24)
		if err != nil {
			a.Log.Warnf("text overlay disabled: %v", err)
		} else if err := a.setupTextResources(); err != nil {
			a.Log.Warnf("text overlay disabled: %v", err)
			a.TextRenderer = nil
		}
	}

	a.Profiler.SetCount("instances", int(a.BufferManager.InstanceCount))
	a.Profiler.SetCount("indices", int(a.BufferManager.IndexCount))
	return nil
}

func (a *App) setupDiffuse() error {
	var (
		tex *gpu.Texture
		err error
	)
	if path := a.Settings.Scene.Texture; path != "" {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("read texture: %w", readErr)
		}
		tex, err = gpu.TextureFromBytes(a.Device, a.Queue, data, a.MaxTextureDimension, path)
	} else {
		tex, err = gpu.TextureFromImage(a.Device, a.Queue, gpu.DefaultImage(256, 8), a.MaxTextureDimension, "checkerboard")
	}
	if err != nil {
		return fmt.Errorf("load diffuse texture: %w", err)
	}
	a.DiffuseTexture = tex
	a.Log.Debugf("diffuse texture %s (%s) %dx%d", tex.ID, tex.Label, tex.Width, tex.Height)

	a.DiffuseBindGroup, err = a.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "diffuse_bind_group",
		Layout: a.TextureBGL,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: tex.View},
			{Binding: 1, Sampler: tex.Sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("diffuse bind group: %w", err)
	}
	return nil
}

// recreateDepth builds a depth attachment at the viewport size and swaps it in.
// The previous attachment stays in place when creation fails.
func (a *App) recreateDepth() error {
	if !a.Settings.Render.Depth {
		return nil
	}
	create := a.newDepth
	if create == nil {
		if a.Device == nil {
			return nil
		}
		create = func(width, height uint32) (*gpu.Texture, error) {
			return gpu.NewDepthTexture(a.Device, width, height, "depth_texture")
		}
	}
	depth, err := create(uint32(a.Viewport.Width), uint32(a.Viewport.Height))
	if err != nil {
		return fmt.Errorf("recreate depth texture at %dx%d: %w", a.Viewport.Width, a.Viewport.Height, err)
	}
	a.DepthTexture.Release()
	a.DepthTexture = depth
	return nil
}

// Resize reconfigures the surface and recreates the depth attachment in one
// step. Sizes with a zero dimension (minimized windows) are ignored. A failed
// reconfiguration is returned by the next Frame.
func (a *App) Resize(w, h int) bool {
	if !a.Viewport.Resize(w, h) {
		return false
	}
	a.Camera.SetViewport(w, h)
	if err := a.reconfigure(); err != nil {
		a.failed = err
	}
	return true
}

// reconfigure applies the last valid viewport size to the surface and depth attachment.
func (a *App) reconfigure() error {
	if a.Surface != nil && a.Config != nil {
		a.Config.Width = uint32(a.Viewport.Width)
		a.Config.Height = uint32(a.Viewport.Height)
		a.Surface.Configure(a.Adapter, a.Device, a.Config)
	}
	return a.recreateDepth()
}

func (a *App) Update() error {
	a.Profiler.BeginScope("update")
	defer a.Profiler.EndScope("update")

	a.Input.Drain(a.Camera.ProcessEvent)
	a.Camera.Update()

	if a.BufferManager != nil {
		if err := a.BufferManager.UpdateCamera(a.Camera.Uniform, a.CameraBGL); err != nil {
			return fmt.Errorf("camera buffer: %w", err)
		}
	}

	a.ClearText()
	if a.DebugMode {
		a.DrawText(fmt.Sprintf("FPS: %.1f", a.Profiler.FPS), 10, 10, 1.0, [4]float32{1, 1, 0, 1})
		a.DrawText(fmt.Sprintf("Instances: %d", a.Settings.InstanceCount()), 10, 40, 1.0, [4]float32{1, 1, 1, 1})
	}
	a.updateText()
	return nil
}

// Render records and presents one frame. Acquire failures are returned as
// *gpu.SurfaceError.
func (a *App) Render() error {
	a.Profiler.BeginScope("render")
	defer a.Profiler.EndScope("render")

	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		return gpu.NewSurfaceError(err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	rPass := encoder.BeginRenderPass(a.renderPassDescriptor(view))

	bm := a.BufferManager
	rPass.SetPipeline(a.RenderPipeline)
	rPass.SetBindGroup(0, a.DiffuseBindGroup, nil)
	rPass.SetBindGroup(1, bm.CameraBindGroup, nil)
	rPass.SetVertexBuffer(0, bm.VertexBuf, 0, wgpu.WholeSize)
	rPass.SetVertexBuffer(1, bm.InstanceBuf, 0, wgpu.WholeSize)
	rPass.SetIndexBuffer(bm.IndexBuf, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	rPass.DrawIndexed(bm.IndexCount, bm.InstanceCount, 0, 0, 0)

	a.drawText(rPass)

	if err := rPass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	a.Queue.Submit(cmd)
	a.Surface.Present()

	if a.Profiler.Frame() {
		a.Log.Debugf("%s", a.Profiler.GetStatsString())
	}
	return nil
}

func (a *App) renderPassDescriptor(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	c := a.Settings.Render.ClearColor
	desc := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{c[0], c[1], c[2], c[3]},
		}},
	}
	if a.DepthTexture != nil {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            a.DepthTexture.View,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}
	return desc
}

// Frame runs one update/render cycle. A non-nil result is fatal.
func (a *App) Frame() error {
	if a.failed != nil {
		return a.failed
	}
	if err := a.Update(); err != nil {
		return err
	}
	return a.HandleFrameError(a.Render())
}

// HandleFrameError applies the surface failure policy: lost or outdated
// surfaces are reconfigured, timeouts are skipped, out-of-memory and device
// loss are returned as fatal, as is a failed reconfiguration. Anything else is
// logged and the loop continues.
func (a *App) HandleFrameError(err error) error {
	if err == nil {
		return nil
	}

	var se *gpu.SurfaceError
	if !errors.As(err, &se) {
		a.Log.Errorf("render: %v", err)
		return nil
	}

	switch se.Status {
	case gpu.SurfaceRecoverable:
		a.Log.Warnf("surface %v, reconfiguring at %dx%d", se.Err, a.Viewport.Width, a.Viewport.Height)
		if err := a.reconfigure(); err != nil {
			return fmt.Errorf("reconfigure after %s: %w", se.Name, err)
		}
	case gpu.SurfaceTimeout:
		a.Log.Warnf("surface timeout: %v", se.Err)
	case gpu.SurfaceFatal:
		return fmt.Errorf("render: %w", se)
	default:
		a.Log.Errorf("surface: %v", se.Err)
	}
	return nil
}

func (a *App) Release() {
	a.releaseText()
	if a.BufferManager != nil {
		a.BufferManager.Release()
	}
	if a.RenderPipeline != nil {
		a.RenderPipeline.Release()
		a.RenderPipeline = nil
	}
	if a.DiffuseBindGroup != nil {
		a.DiffuseBindGroup.Release()
		a.DiffuseBindGroup = nil
	}
	a.DiffuseTexture.Release()
	a.DepthTexture.Release()
	for _, bgl := range []**wgpu.BindGroupLayout{&a.TextureBGL, &a.CameraBGL} {
		if *bgl != nil {
			(*bgl).Release()
			*bgl = nil
		}
	}
	if a.Queue != nil {
		a.Queue.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}

func GetSurfaceDescriptor(w *glfw.Window) *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w)
}

// PickSurfaceFormat prefers an sRGB format so the shader output is gamma corrected.
func PickSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb {
			return f
		}
	}
	return formats[0]
}

// PickAlphaMode takes the surface's first reported mode, or auto when it
// reports none.
func PickAlphaMode(modes []wgpu.CompositeAlphaMode) wgpu.CompositeAlphaMode {
	if len(modes) == 0 {
		return wgpu.CompositeAlphaModeAuto
	}
	return modes[0]
}

func PresentMode(name string) wgpu.PresentMode {
	switch name {
	case cubes.PresentImmediate:
		return wgpu.PresentModeImmediate
	case cubes.PresentMailbox:
		return wgpu.PresentModeMailbox
	default:
		return wgpu.PresentModeFifo
	}
}
