package rendersystem

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/hhllhhyyds/learn-vulkano/common"
	"github.com/hhllhhyyds/learn-vulkano/engine/model"
	"github.com/hhllhhyyds/learn-vulkano/engine/window"
)

const (
	// colorTargetFormat is the G-buffer albedo accumulation format.
	colorTargetFormat = wgpu.TextureFormatRGB10A2Unorm
	// normalTargetFormat is the G-buffer normal accumulation format.
	normalTargetFormat = wgpu.TextureFormatRGBA16Float
	// depthTargetFormat is the depth buffer format shared by both passes.
	depthTargetFormat = wgpu.TextureFormatDepth24Plus
)

// wgpuBackend implements Backend on a WebGPU device. WebGPU has no subpasses,
// so the geometry and lighting subpasses are recorded as two render passes on
// one command encoder; the G-buffer targets are written as attachments in the
// first pass and bound as textures in the second.
type wgpuBackend struct {
	mu  *sync.Mutex
	win window.Window

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat

	// Frame targets, rebuilt together with the swapchain.
	extentWidth  uint32
	extentHeight uint32
	colorView    *wgpu.TextureView
	normalView   *wgpu.TextureView
	depthView    *wgpu.TextureView

	deferredPipeline    *wgpu.RenderPipeline
	ambientPipeline     *wgpu.RenderPipeline
	directionalPipeline *wgpu.RenderPipeline
	lightObjectPipeline *wgpu.RenderPipeline

	vpLayout          *wgpu.BindGroupLayout
	modelLayout       *wgpu.BindGroupLayout
	ambientLayout     *wgpu.BindGroupLayout
	directionalLayout *wgpu.BindGroupLayout

	vpBuffer      *wgpu.Buffer
	vpBindGroup   *wgpu.BindGroup
	ambientBuffer *wgpu.Buffer
	// ambientBindGroup references the color target view, so it is rebuilt
	// whenever the swapchain is.
	ambientBindGroup *wgpu.BindGroup

	quadBuffer *wgpu.Buffer

	// Frame state for the recording currently in flight.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// Transient per-draw resources released once the frame is submitted or
	// aborted.
	frameBuffers    []*wgpu.Buffer
	frameBindGroups []*wgpu.BindGroup
}

var _ Backend = &wgpuBackend{}

// newWGPUBackend creates the device, surface, pipelines, persistent uniforms
// and the initial swapchain for the given window. Failures here mean the
// process cannot render at all, so they panic.
func newWGPUBackend(win window.Window) *wgpuBackend {
	runtime.LockOSThread()
	b := &wgpuBackend{
		mu:       &sync.Mutex{},
		win:      win,
		instance: wgpu.CreateInstance(nil),
	}
	b.surface = b.instance.CreateSurface(win.SurfaceDescriptor())

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Render System Device",
	})
	if err != nil {
		panic(err)
	}
	b.device = device
	b.queue = device.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	if err := b.createLayouts(); err != nil {
		panic(err)
	}
	if err := b.createPipelines(); err != nil {
		panic(err)
	}
	if err := b.createPersistentResources(); err != nil {
		panic(err)
	}
	if err := b.RecreateSwapchain(); err != nil {
		panic(err)
	}

	return b
}

func (b *wgpuBackend) createLayouts() error {
	var err error

	b.vpLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "View Projection Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("view projection layout: %w", err)
	}

	b.modelLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Model Data Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("model data layout: %w", err)
	}

	b.ambientLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Ambient Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ambient layout: %w", err)
	}

	b.directionalLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Directional Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("directional layout: %w", err)
	}

	return nil
}

func (b *wgpuBackend) createPipelines() error {
	deferredModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Deferred Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: deferredShaderSource},
	})
	if err != nil {
		return err
	}
	ambientModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Ambient Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: ambientShaderSource},
	})
	if err != nil {
		return err
	}
	directionalModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Directional Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: directionalShaderSource},
	})
	if err != nil {
		return err
	}
	lightObjectModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Light Object Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: lightObjectShaderSource},
	})
	if err != nil {
		return err
	}

	geometryLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Geometry Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.vpLayout, b.modelLayout},
	})
	if err != nil {
		return err
	}
	ambientPipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Ambient Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.ambientLayout},
	})
	if err != nil {
		return err
	}
	directionalPipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Directional Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.directionalLayout},
	})
	if err != nil {
		return err
	}

	normalVertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: uint64(model.NormalVertexSize),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 2},
		},
	}
	coloredVertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: uint64(model.ColoredVertexSize),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
	dummyVertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: uint64(model.DummyVertexSize),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		},
	}

	// Additive accumulation for the lighting passes: each light adds its
	// contribution on top of the ambient base, alpha keeps the max.
	additiveBlend := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
		},
		Alpha: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationMax,
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
		},
	}

	b.deferredPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Deferred Render Pipeline",
		Layout: geometryLayout,
		Vertex: wgpu.VertexState{
			Module:     deferredModule,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{normalVertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     deferredModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: colorTargetFormat, WriteMask: wgpu.ColorWriteMaskAll},
				{Format: normalTargetFormat, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthTargetFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return fmt.Errorf("deferred pipeline: %w", err)
	}

	// The lighting pass keeps the depth attachment around for the marker
	// draws, so the full-screen pipelines declare depth state with testing
	// disabled.
	fullScreenDepth := &wgpu.DepthStencilState{
		Format:            depthTargetFormat,
		DepthWriteEnabled: false,
		DepthCompare:      wgpu.CompareFunctionAlways,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
	}

	b.ambientPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Ambient Render Pipeline",
		Layout: ambientPipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     ambientModule,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{dummyVertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     ambientModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: b.surfaceFormat, Blend: additiveBlend, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample:  wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		DepthStencil: fullScreenDepth,
	})
	if err != nil {
		return fmt.Errorf("ambient pipeline: %w", err)
	}

	b.directionalPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Directional Render Pipeline",
		Layout: directionalPipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     directionalModule,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{dummyVertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     directionalModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: b.surfaceFormat, Blend: additiveBlend, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample:  wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		DepthStencil: fullScreenDepth,
	})
	if err != nil {
		return fmt.Errorf("directional pipeline: %w", err)
	}

	b.lightObjectPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Light Object Render Pipeline",
		Layout: geometryLayout,
		Vertex: wgpu.VertexState{
			Module:     lightObjectModule,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{coloredVertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     lightObjectModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: b.surfaceFormat, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthTargetFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return fmt.Errorf("light object pipeline: %w", err)
	}

	return nil
}

func (b *wgpuBackend) createPersistentResources() error {
	var err error

	b.vpBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "View Projection Buffer",
		Size:  uint64(GPUViewProjection{}.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.vpBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "View Projection Bind Group",
		Layout: b.vpLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.vpBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}

	b.ambientBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Ambient Light Buffer",
		Size:  16,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	quad := model.DummyVertexList()
	quadData := common.SliceToBytes(quad[:])
	b.quadBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Full Screen Quad Buffer",
		Size:  uint64(len(quadData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(b.quadBuffer, 0, quadData)

	return nil
}

func (b *wgpuBackend) RecreateSwapchain() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	width := uint32(b.win.Width())
	height := uint32(b.win.Height())
	if width == 0 || height == 0 {
		// Minimized window; keep the old swapchain until it has an area again.
		return nil
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	colorView, err := b.createTargetView("Color Target", colorTargetFormat, width, height,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding)
	if err != nil {
		return err
	}
	normalView, err := b.createTargetView("Normal Target", normalTargetFormat, width, height,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding)
	if err != nil {
		return err
	}
	depthView, err := b.createTargetView("Depth Target", depthTargetFormat, width, height,
		wgpu.TextureUsageRenderAttachment)
	if err != nil {
		return err
	}

	ambientBindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Ambient Bind Group",
		Layout: b.ambientLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: colorView},
			{Binding: 1, Buffer: b.ambientBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}

	b.extentWidth = width
	b.extentHeight = height
	b.colorView = colorView
	b.normalView = normalView
	b.depthView = depthView
	b.ambientBindGroup = ambientBindGroup

	return nil
}

func (b *wgpuBackend) createTargetView(label string, format wgpu.TextureFormat, width, height uint32, usage wgpu.TextureUsage) (*wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("%s view: %w", label, err)
	}
	return view, nil
}

// ImageCount reports the number of independently acquirable swapchain images.
// WebGPU exposes a single current texture at a time, so the backend keeps one
// set of frame targets.
func (b *wgpuBackend) ImageCount() int { return 1 }

func (b *wgpuBackend) Extent() (uint32, uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.extentWidth, b.extentHeight
}

func (b *wgpuBackend) SetViewProjection(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(b.vpBuffer, 0, data)
}

func (b *wgpuBackend) SetAmbient(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue.WriteBuffer(b.ambientBuffer, 0, data)
}

func (b *wgpuBackend) AcquireFrame() (int, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return 0, false, fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		if isSurfaceStale(err) {
			return 0, false, ErrSurfaceOutdated
		}
		return 0, false, err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return 0, false, err
	}

	b.frameSurface = surfaceTexture
	b.frameView = view
	return 0, false, nil
}

func (b *wgpuBackend) BeginFrame(imageIndex int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.colorView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
			{
				View:       b.normalView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	return nil
}

func (b *wgpuBackend) DrawModel(modelData []byte, vertices []byte, vertexCount int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	modelBindGroup, ok := b.transientUniformGroup("Model Data", b.modelLayout, modelData)
	if !ok {
		return
	}
	vertexBuffer, ok := b.transientVertexBuffer("Model Vertices", vertices)
	if !ok {
		return
	}

	b.framePass.SetPipeline(b.deferredPipeline)
	b.framePass.SetBindGroup(0, b.vpBindGroup, nil)
	b.framePass.SetBindGroup(1, modelBindGroup, nil)
	b.framePass.SetVertexBuffer(0, vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.Draw(uint32(vertexCount), 1, 0, 0)
}

func (b *wgpuBackend) NextSubpass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.End()

	b.framePass = b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.frameView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:         b.depthView,
			DepthLoadOp:  wgpu.LoadOpLoad,
			DepthStoreOp: wgpu.StoreOpDiscard,
		},
	})
}

func (b *wgpuBackend) DrawAmbient() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.SetPipeline(b.ambientPipeline)
	b.framePass.SetBindGroup(0, b.ambientBindGroup, nil)
	b.framePass.SetVertexBuffer(0, b.quadBuffer, 0, wgpu.WholeSize)
	b.framePass.Draw(6, 1, 0, 0)
}

func (b *wgpuBackend) DrawDirectional(lightData []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lightBuffer, ok := b.transientBuffer("Directional Light", lightData, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if !ok {
		return
	}
	lightBindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Directional Bind Group",
		Layout: b.directionalLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: b.colorView},
			{Binding: 1, TextureView: b.normalView},
			{Binding: 2, Buffer: lightBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		log.Printf("rendersystem: skipping directional draw: %v", err)
		return
	}
	b.frameBindGroups = append(b.frameBindGroups, lightBindGroup)

	b.framePass.SetPipeline(b.directionalPipeline)
	b.framePass.SetBindGroup(0, lightBindGroup, nil)
	b.framePass.SetVertexBuffer(0, b.quadBuffer, 0, wgpu.WholeSize)
	b.framePass.Draw(6, 1, 0, 0)
}

func (b *wgpuBackend) DrawLightObject(modelData []byte, vertices []byte, vertexCount int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	modelBindGroup, ok := b.transientUniformGroup("Light Object Data", b.modelLayout, modelData)
	if !ok {
		return
	}
	vertexBuffer, ok := b.transientVertexBuffer("Light Object Vertices", vertices)
	if !ok {
		return
	}

	b.framePass.SetPipeline(b.lightObjectPipeline)
	b.framePass.SetBindGroup(0, b.vpBindGroup, nil)
	b.framePass.SetBindGroup(1, modelBindGroup, nil)
	b.framePass.SetVertexBuffer(0, vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.Draw(uint32(vertexCount), 1, 0, 0)
}

func (b *wgpuBackend) AbortFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass != nil {
		b.framePass.End()
		b.framePass = nil
	}
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	b.releaseFrameResources()
}

func (b *wgpuBackend) SubmitFrame(imageIndex int, after FrameFuture) (FrameFuture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
		b.releaseFrameResources()
		return nil, err
	}

	after.Wait()
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil

	b.surface.Present()
	b.releaseFrameResources()

	return &deviceFuture{device: b.device}, nil
}

func (b *wgpuBackend) Device() *wgpu.Device {
	return b.device
}

// transientBuffer creates and fills a buffer that lives until the frame is
// submitted or aborted.
func (b *wgpuBackend) transientBuffer(label string, data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, bool) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Buffer",
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		log.Printf("rendersystem: skipping draw, %s buffer: %v", label, err)
		return nil, false
	}
	b.queue.WriteBuffer(buf, 0, data)
	b.frameBuffers = append(b.frameBuffers, buf)
	return buf, true
}

func (b *wgpuBackend) transientVertexBuffer(label string, data []byte) (*wgpu.Buffer, bool) {
	return b.transientBuffer(label, data, wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst)
}

// transientUniformGroup creates a single-binding uniform bind group for one
// draw call.
func (b *wgpuBackend) transientUniformGroup(label string, layout *wgpu.BindGroupLayout, data []byte) (*wgpu.BindGroup, bool) {
	buf, ok := b.transientBuffer(label, data, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if !ok {
		return nil, false
	}
	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		log.Printf("rendersystem: skipping draw, %s bind group: %v", label, err)
		return nil, false
	}
	b.frameBindGroups = append(b.frameBindGroups, group)
	return group, true
}

func (b *wgpuBackend) releaseFrameResources() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
	for _, group := range b.frameBindGroups {
		group.Release()
	}
	b.frameBindGroups = b.frameBindGroups[:0]
	for _, buf := range b.frameBuffers {
		buf.Release()
	}
	b.frameBuffers = b.frameBuffers[:0]
}

// isSurfaceStale reports whether a surface error means the swapchain must be
// rebuilt rather than the frame failed outright.
func isSurfaceStale(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "outdated") ||
		strings.Contains(msg, "suboptimal") ||
		strings.Contains(msg, "lost") ||
		strings.Contains(msg, "timeout")
}
