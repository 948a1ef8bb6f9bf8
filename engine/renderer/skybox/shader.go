package skybox

import (
	"github.com/MJohnson459/bevy/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultPipelineKey is the cache key for the stock skybox pipeline.
const DefaultPipelineKey = "skybox"

// ShaderSource renders a fullscreen triangle at clip depth 0 (the far plane
// under reversed z) and samples the cubemap along the unprojected view ray.
const ShaderSource = `
struct SkyboxView {
    inverse_view_proj: mat4x4<f32>,
    world_position: vec4<f32>,
};

@group(0) @binding(0) var<uniform> view: SkyboxView;
@group(0) @binding(1) var skybox_texture: texture_cube<f32>;
@group(0) @binding(2) var skybox_sampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) world_direction: vec3<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOutput {
    let uv = vec2<f32>(f32((index << 1u) & 2u), f32(index & 2u));
    let clip = vec4<f32>(uv * 2.0 - 1.0, 0.0, 1.0);
    let world = view.inverse_view_proj * clip;

    var out: VertexOutput;
    out.position = clip;
    out.world_direction = world.xyz / world.w - view.world_position.xyz;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(skybox_texture, skybox_sampler, normalize(in.world_direction));
}
`

// NewPipeline builds the skybox pipeline description: no vertex buffers, no
// depth writes, a greater-or-equal compare so the background passes at the
// cleared far value, and no culling since the triangle is viewed from inside.
//
// Parameters:
//   - key: the pipeline cache key
//   - layout: the bind group layout for group 0, required for the
//     dynamic-offset view uniform binding
//
// Returns:
//   - pipeline.Pipeline: the pipeline description, ready to queue
func NewPipeline(key string, layout *wgpu.BindGroupLayout) pipeline.Pipeline {
	return pipeline.NewPipeline(key,
		pipeline.WithVertexShader(ShaderSource, "vs_main"),
		pipeline.WithFragmentShader(ShaderSource, "fs_main"),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithDepthCompare(wgpu.CompareFunctionGreaterEqual),
		pipeline.WithCullMode(wgpu.CullModeNone),
		pipeline.WithBindGroupLayouts(layout),
	)
}
