package app

import (
	"fmt"
	"unsafe"

	"github.com/gekko3d/cubes/viewer/rt/core"
	"github.com/gekko3d/cubes/viewer/rt/gpu"
	"github.com/gekko3d/cubes/viewer/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

func (a *App) ClearText() {
	a.TextItems = a.TextItems[:0]
	a.TextVertexCount = 0
}

func (a *App) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	a.TextItems = append(a.TextItems, core.TextItem{
		Text:     text,
		Position: [2]float32{x, y},
		Scale:    scale,
		Color:    color,
	})
}

// updateText rebuilds the overlay vertex buffer, growing it when needed.
func (a *App) updateText() {
	if len(a.TextItems) == 0 || a.TextRenderer == nil || a.Device == nil {
		return
	}
	vertices := a.TextRenderer.BuildVertices(a.TextItems, a.Viewport.Width, a.Viewport.Height)
	if len(vertices) == 0 {
		return
	}

	vSize := uint64(len(vertices) * int(unsafe.Sizeof(core.TextVertex{})))
	if a.TextVertexBuffer == nil || a.TextVertexBuffer.GetSize() < vSize {
		if a.TextVertexBuffer != nil {
			a.TextVertexBuffer.Release()
		}
		buf, err := a.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Text VB",
			Size:  vSize,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			a.Log.Errorf("text vertex buffer: %v", err)
			a.TextVertexBuffer = nil
			return
		}
		a.TextVertexBuffer = buf
	}
	a.Queue.WriteBuffer(a.TextVertexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), vSize))
	a.TextVertexCount = uint32(len(vertices))
}

func (a *App) drawText(pass *wgpu.RenderPassEncoder) {
	if a.TextVertexCount == 0 || a.TextVertexBuffer == nil || a.TextPipeline == nil {
		return
	}
	pass.SetPipeline(a.TextPipeline)
	pass.SetBindGroup(0, a.TextBindGroup, nil)
	pass.SetVertexBuffer(0, a.TextVertexBuffer, 0, wgpu.WholeSize)
	pass.Draw(a.TextVertexCount, 1, 0, 0)
}

func (a *App) setupTextResources() error {
	tr := a.TextRenderer
	w, h := tr.AtlasImage.Bounds().Dx(), tr.AtlasImage.Bounds().Dy()
	size := wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}

	tex, err := a.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Text Atlas",
		Size:          size,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("text atlas: %w", err)
	}
	a.TextAtlas = tex
	a.Queue.WriteTexture(tex.AsImageCopy(), tr.AtlasImage.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(w),
		RowsPerImage: uint32(h),
	}, &size)

	a.TextAtlasView, err = tex.CreateView(nil)
	if err != nil {
		return fmt.Errorf("text atlas view: %w", err)
	}

	a.TextSampler, err = a.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Text Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("text sampler: %w", err)
	}

	textMod, err := a.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Text Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.TextWGSL},
	})
	if err != nil {
		return fmt.Errorf("text shader module: %w", err)
	}
	defer textMod.Release()

	a.TextPipeline, err = a.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Text Pipeline",
		Vertex: wgpu.VertexState{
			Module:     textMod,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{gpu.TextVertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     textMod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: a.Config.Format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOne,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		// overlay is always on top but must match the pass's depth attachment
		DepthStencil: a.depthState(false, wgpu.CompareFunctionAlways),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("text render pipeline: %w", err)
	}

	a.TextBindGroup, err = a.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: a.TextPipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: a.TextAtlasView},
			{Binding: 1, Sampler: a.TextSampler},
		},
	})
	if err != nil {
		return fmt.Errorf("text bind group: %w", err)
	}
	return nil
}

func (a *App) releaseText() {
	if a.TextBindGroup != nil {
		a.TextBindGroup.Release()
		a.TextBindGroup = nil
	}
	if a.TextPipeline != nil {
		a.TextPipeline.Release()
		a.TextPipeline = nil
	}
	if a.TextVertexBuffer != nil {
		a.TextVertexBuffer.Release()
		a.TextVertexBuffer = nil
	}
	if a.TextSampler != nil {
		a.TextSampler.Release()
		a.TextSampler = nil
	}
	if a.TextAtlasView != nil {
		a.TextAtlasView.Release()
		a.TextAtlasView = nil
	}
	if a.TextAtlas != nil {
		a.TextAtlas.Release()
		a.TextAtlas = nil
	}
}
