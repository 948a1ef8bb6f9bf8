package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MJohnson459/bevy/common"
	"github.com/MJohnson459/bevy/engine/renderer/draw_phase"
	"github.com/MJohnson459/bevy/engine/renderer/pipeline"
	"github.com/MJohnson459/bevy/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the depth texture format used for every view depth texture.
// Depth32Float pairs with the reversed-z projection; lower-precision formats
// waste the precision reversed z exists to reclaim.
const DepthFormat = wgpu.TextureFormatDepth32Float

// SurfaceContext is a RenderContext bound to a window surface. It owns the
// GPU device, the swapchain, the per-view depth texture, and the pipeline
// cache, and it compiles pipelines for that cache.
type SurfaceContext interface {
	RenderContext

	// ConfigureSurface (re)configures the swapchain and recreates the depth
	// texture for a new surface size. Must be called after a window resize.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	ConfigureSurface(width, height int)

	// AcquireFrame acquires the next swapchain texture and returns the
	// view's render targets. Must be paired with Present after Finish.
	//
	// Returns:
	//   - *ViewTarget: the color target for this frame
	//   - *ViewDepthTexture: the depth target for this frame
	//   - error: an error if the swapchain texture could not be acquired
	AcquireFrame() (*ViewTarget, *ViewDepthTexture, error)

	// Present presents the surface to the display and releases the
	// swapchain texture. Must be called once per frame after Finish.
	Present()

	// CompilePipeline builds a GPU render pipeline for the description.
	// This is the CompileFunc backing the context's pipeline cache.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled pipeline
	//   - error: an error if shader module or pipeline creation fails
	CompilePipeline(p pipeline.Pipeline) (*wgpu.RenderPipeline, error)
}

type surfaceContextImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat    wgpu.TextureFormat
	depthTextureView *wgpu.TextureView
	presentMode      wgpu.PresentMode
	pipelines        pipeline.Cache

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	compileWorkers       int

	// Frame state for batched recording across render passes
	frameEncoder *wgpu.CommandEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ SurfaceContext = &surfaceContextImpl{}

// NewSurfaceContext creates a SurfaceContext for the given window: WebGPU
// instance, surface, adapter, device, queue, a configured swapchain sized to
// the window, and a pipeline cache compiling on background workers.
//
// Parameters:
//   - win: the window supplying the platform surface descriptor and size
//   - options: functional options to configure the context
//
// Returns:
//   - SurfaceContext: the newly created context
//   - error: an error if adapter or device acquisition fails
func NewSurfaceContext(win window.Window, options ...SurfaceContextBuilderOption) (SurfaceContext, error) {
	c := &surfaceContextImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	for _, option := range options {
		option(c)
	}

	c.surface = c.instance.CreateSurface(win.SurfaceDescriptor())

	adapter, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: c.forceFallbackAdapter,
		CompatibleSurface:    c.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request GPU adapter: %w", err)
	}
	c.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request GPU device: %w", err)
	}
	c.device = device
	c.queue = device.GetQueue()

	cacheOptions := []pipeline.CacheBuilderOption{}
	if c.compileWorkers > 0 {
		cacheOptions = append(cacheOptions, pipeline.WithCompileWorkers(c.compileWorkers))
	}
	c.pipelines = pipeline.NewCache(c.CompilePipeline, cacheOptions...)

	c.ConfigureSurface(win.Width(), win.Height())
	return c, nil
}

func (c *surfaceContextImpl) Device() *wgpu.Device {
	return c.device
}

func (c *surfaceContextImpl) Queue() *wgpu.Queue {
	return c.queue
}

func (c *surfaceContextImpl) Pipelines() pipeline.Cache {
	return c.pipelines
}

func (c *surfaceContextImpl) ConfigureSurface(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	capabilities := c.surface.GetCapabilities(c.adapter)
	c.surfaceFormat = capabilities.Formats[0]

	c.surface.Configure(c.adapter, c.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: c.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	depthTexture, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "View Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	c.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
}

func (c *surfaceContextImpl) AcquireFrame() (*ViewTarget, *ViewDepthTexture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// If a previous frame's surface texture is still held, avoid acquiring
	// another one. This prevents validation errors like "Surface image is
	// already acquired" when frames overlap.
	if c.frameSurface != nil {
		return nil, nil, errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := c.surface.GetCurrentTexture()
	if err != nil {
		return nil, nil, err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, nil, err
	}

	c.frameSurface = surfaceTexture
	c.frameView = view

	target := &ViewTarget{View: view, Format: c.surfaceFormat}
	depth := &ViewDepthTexture{View: c.depthTextureView, Format: DepthFormat}
	return target, depth, nil
}

func (c *surfaceContextImpl) BeginRenderPass(desc *wgpu.RenderPassDescriptor) (RenderPass, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frameEncoder == nil {
		encoder, err := c.device.CreateCommandEncoder(nil)
		if err != nil {
			return nil, err
		}
		c.frameEncoder = encoder
	}

	pass := c.frameEncoder.BeginRenderPass(desc)
	return &wgpuRenderPass{pass: pass, pipelines: c.pipelines}, nil
}

func (c *surfaceContextImpl) Finish() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frameEncoder == nil {
		return nil
	}

	commandBuffer, err := c.frameEncoder.Finish(nil)
	if err != nil {
		c.frameEncoder.Release()
		c.frameEncoder = nil
		return err
	}

	c.queue.Submit(commandBuffer)
	commandBuffer.Release()
	c.frameEncoder.Release()
	c.frameEncoder = nil
	return nil
}

func (c *surfaceContextImpl) Present() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frameSurface == nil {
		return
	}

	c.surface.Present()

	if c.frameView != nil {
		c.frameView.Release()
		c.frameView = nil
	}
	c.frameSurface.Release()
	c.frameSurface = nil
}

func (c *surfaceContextImpl) CompilePipeline(p pipeline.Pipeline) (*wgpu.RenderPipeline, error) {
	if p.VertexSource() == "" || p.FragmentSource() == "" {
		return nil, errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	vs, err := c.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.PipelineKey() + " Vertex Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.VertexSource(),
		},
	})
	if err != nil {
		return nil, err
	}
	fs, err := c.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.PipelineKey() + " Fragment Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.FragmentSource(),
		},
	})
	if err != nil {
		return nil, err
	}

	// Explicit layouts are needed for dynamic-offset bindings; otherwise a
	// nil layout derives bind group layouts from the shaders.
	var layout *wgpu.PipelineLayout
	if groupLayouts := p.BindGroupLayouts(); len(groupLayouts) > 0 {
		layout, err = c.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
			Label:            p.PipelineKey(),
			BindGroupLayouts: groupLayouts,
		})
		if err != nil {
			return nil, err
		}
	}

	created, err := c.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: p.VertexEntryPoint(),
			Buffers:    p.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: p.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				func() wgpu.ColorTargetState {
					state := wgpu.ColorTargetState{
						Format:    c.surfaceFormat,
						WriteMask: p.WriteMask(),
					}
					if p.BlendEnabled() {
						state.Blend = p.BlendState()
					}
					return state
				}(),
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: func() *wgpu.DepthStencilState {
			depthCompare := p.DepthCompare()
			if !p.DepthTestEnabled() {
				depthCompare = wgpu.CompareFunctionAlways
			}
			return &wgpu.DepthStencilState{
				Format:            DepthFormat,
				DepthWriteEnabled: p.DepthWriteEnabled(),
				DepthCompare:      depthCompare,
				StencilFront: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
				StencilBack: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
			}
		}(),
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// wgpuRenderPass is the wgpu-backed RenderPass.
type wgpuRenderPass struct {
	pass      *wgpu.RenderPassEncoder
	pipelines pipeline.Cache
}

var _ RenderPass = &wgpuRenderPass{}

func (p *wgpuRenderPass) SetViewport(vp common.Viewport) {
	p.pass.SetViewport(
		float32(vp.X), float32(vp.Y),
		float32(vp.Width), float32(vp.Height),
		vp.MinDepth, vp.MaxDepth,
	)
}

func (p *wgpuRenderPass) SetPipeline(rp *wgpu.RenderPipeline) {
	p.pass.SetPipeline(rp)
}

func (p *wgpuRenderPass) SetBindGroup(index uint32, group *wgpu.BindGroup, dynamicOffsets []uint32) {
	p.pass.SetBindGroup(index, group, dynamicOffsets)
}

func (p *wgpuRenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *wgpuRenderPass) DrawItem(item draw_phase.Item) error {
	rp := p.pipelines.GetRenderPipeline(item.PipelineKey)
	if rp == nil {
		if err := p.pipelines.Err(item.PipelineKey); err != nil {
			return fmt.Errorf("render pipeline %q failed to compile: %w", item.PipelineKey, err)
		}
		return fmt.Errorf("render pipeline %q not found in cache", item.PipelineKey)
	}

	p.pass.SetPipeline(rp)
	for i, binding := range item.BindGroups {
		p.pass.SetBindGroup(uint32(i), binding.Group, binding.DynamicOffsets)
	}

	instances := common.Coalesce(item.Call.InstanceCount, 1)
	if item.Call.VertexBuffer != nil {
		p.pass.SetVertexBuffer(0, item.Call.VertexBuffer, 0, wgpu.WholeSize)
	}
	if item.Call.IndexBuffer != nil {
		p.pass.SetIndexBuffer(item.Call.IndexBuffer, item.Call.IndexFormat, 0, wgpu.WholeSize)
		p.pass.DrawIndexed(item.Call.IndexCount, instances, 0, 0, 0)
	} else {
		p.pass.Draw(item.Call.VertexCount, instances, 0, 0)
	}
	return nil
}

func (p *wgpuRenderPass) End() {
	p.pass.End()
}
