package skybox

import (
	"fmt"

	"github.com/MJohnson459/bevy/common"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// viewUniformStride is the dynamic offset alignment required by WebGPU
	// for uniform buffers.
	viewUniformStride = 256

	// viewUniformSize is the bound size of one SkyboxView record: a mat4x4
	// plus a vec4.
	viewUniformSize = 80
)

// CubemapData is staging data for a cubemap: six square RGBA8 faces in the
// order +X, -X, +Y, -Y, +Z, -Z.
type CubemapData struct {
	// Size is the face edge length in pixels.
	Size uint32

	// Faces holds the pixel data for each face, Size*Size*4 bytes per face.
	Faces [6][]byte
}

// GPUResources owns the GPU objects behind a skybox bind group: the cubemap
// texture and view, the sampler, the per-view uniform buffer, and the bind
// group itself. Release frees everything.
type GPUResources struct {
	pipelineKey  string
	viewCapacity uint32

	layout       *wgpu.BindGroupLayout
	texture      *wgpu.Texture
	textureView  *wgpu.TextureView
	sampler      *wgpu.Sampler
	viewUniforms *wgpu.Buffer
	bindGroup    *wgpu.BindGroup
}

// NewGPUResources uploads the cubemap and creates the skybox bind group. The
// view uniform buffer holds one record per view at 256-byte strides; write
// each view's record with WriteViewUniform before rendering it.
//
// Parameters:
//   - device: the GPU device
//   - queue: the queue used to upload the cubemap faces
//   - cubemap: the staging data for the cubemap texture
//   - options: functional options to configure the resources
//
// Returns:
//   - *GPUResources: the created resources
//   - error: an error if any GPU object creation fails
func NewGPUResources(device *wgpu.Device, queue *wgpu.Queue, cubemap CubemapData, options ...GPUResourcesBuilderOption) (*GPUResources, error) {
	r := &GPUResources{
		pipelineKey:  DefaultPipelineKey,
		viewCapacity: 4,
	}
	for _, option := range options {
		option(r)
	}

	expected := int(cubemap.Size) * int(cubemap.Size) * 4
	for i, face := range cubemap.Faces {
		if len(face) != expected {
			return nil, fmt.Errorf("cubemap face %d has %d bytes, expected %d", i, len(face), expected)
		}
	}

	layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Skybox Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   viewUniformSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimensionCube,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	r.layout = layout

	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Skybox Cubemap",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              cubemap.Size,
			Height:             cubemap.Size,
			DepthOrArrayLayers: 6,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		r.Release()
		return nil, err
	}
	r.texture = texture

	for layer, face := range cubemap.Faces {
		queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  texture,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{Z: uint32(layer)},
				Aspect:   wgpu.TextureAspectAll,
			},
			face,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  cubemap.Size * 4,
				RowsPerImage: cubemap.Size,
			},
			&wgpu.Extent3D{
				Width:              cubemap.Size,
				Height:             cubemap.Size,
				DepthOrArrayLayers: 1,
			},
		)
	}

	r.textureView, err = texture.CreateView(&wgpu.TextureViewDescriptor{
		Label:           "Skybox Cubemap View",
		Format:          wgpu.TextureFormatRGBA8UnormSrgb,
		Dimension:       wgpu.TextureViewDimensionCube,
		MipLevelCount:   1,
		ArrayLayerCount: 6,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		r.Release()
		return nil, err
	}

	r.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Skybox Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		r.Release()
		return nil, err
	}

	r.viewUniforms, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Skybox View Uniforms",
		Size:  uint64(r.viewCapacity) * viewUniformStride,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		r.Release()
		return nil, err
	}

	r.bindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Skybox Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  r.viewUniforms,
				Offset:  0,
				Size:    viewUniformSize,
			},
			{
				Binding:     1,
				TextureView: r.textureView,
			},
			{
				Binding: 2,
				Sampler: r.sampler,
			},
		},
	})
	if err != nil {
		r.Release()
		return nil, err
	}

	return r, nil
}

// Layout returns the bind group layout, needed to build the skybox pipeline.
//
// Returns:
//   - *wgpu.BindGroupLayout: the bind group layout for group 0
func (r *GPUResources) Layout() *wgpu.BindGroupLayout {
	return r.layout
}

// WriteViewUniform uploads one view's uniform record to its slot in the
// uniform buffer.
//
// Parameters:
//   - queue: the queue to write through
//   - viewIndex: the view's slot, must be below the configured capacity
//   - inverseViewProj: the view's inverse view-projection matrix, column major
//   - worldPosition: the camera world position (x, y, z, unused)
//
// Returns:
//   - error: an error if the view index is out of range
func (r *GPUResources) WriteViewUniform(queue *wgpu.Queue, viewIndex uint32, inverseViewProj [16]float32, worldPosition [4]float32) error {
	if viewIndex >= r.viewCapacity {
		return fmt.Errorf("view index %d exceeds uniform capacity %d", viewIndex, r.viewCapacity)
	}

	data := make([]byte, 0, viewUniformSize)
	data = append(data, common.SliceToBytes(inverseViewProj[:])...)
	data = append(data, common.SliceToBytes(worldPosition[:])...)
	queue.WriteBuffer(r.viewUniforms, uint64(viewIndex)*viewUniformStride, data)
	return nil
}

// Resources returns the per-view Resources handed to the render node for the
// given view slot.
//
// Parameters:
//   - viewIndex: the view's uniform slot
//
// Returns:
//   - *Resources: the per-view skybox state
func (r *GPUResources) Resources(viewIndex uint32) *Resources {
	return &Resources{
		PipelineKey:       r.pipelineKey,
		BindGroup:         r.bindGroup,
		ViewUniformOffset: viewIndex * viewUniformStride,
	}
}

// Release frees every GPU object held by these resources.
func (r *GPUResources) Release() {
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.bindGroup = nil
	}
	if r.viewUniforms != nil {
		r.viewUniforms.Release()
		r.viewUniforms = nil
	}
	if r.sampler != nil {
		r.sampler.Release()
		r.sampler = nil
	}
	if r.textureView != nil {
		r.textureView.Release()
		r.textureView = nil
	}
	if r.texture != nil {
		r.texture.Release()
		r.texture = nil
	}
	if r.layout != nil {
		r.layout.Release()
		r.layout = nil
	}
}
