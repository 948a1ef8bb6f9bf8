package opaque_pass

import (
	"errors"
	"strings"
	"testing"

	"github.com/MJohnson459/bevy/common"
	"github.com/MJohnson459/bevy/engine/camera"
	"github.com/MJohnson459/bevy/engine/frame_graph"
	"github.com/MJohnson459/bevy/engine/renderer"
	"github.com/MJohnson459/bevy/engine/renderer/draw_phase"
	"github.com/MJohnson459/bevy/engine/renderer/pipeline"
	"github.com/MJohnson459/bevy/engine/renderer/skybox"
	"github.com/cogentcore/webgpu/wgpu"
)

// recordingPass records every call made on the pass, in order.
type recordingPass struct {
	log      []string
	ended    bool
	failKeys map[string]error
}

func (p *recordingPass) DrawItem(item draw_phase.Item) error {
	if err := p.failKeys[item.PipelineKey]; err != nil {
		return err
	}
	p.log = append(p.log, "item:"+item.PipelineKey)
	return nil
}

func (p *recordingPass) SetViewport(vp common.Viewport) {
	p.log = append(p.log, "viewport")
}

func (p *recordingPass) SetPipeline(rp *wgpu.RenderPipeline) {
	p.log = append(p.log, "pipeline")
}

func (p *recordingPass) SetBindGroup(index uint32, group *wgpu.BindGroup, dynamicOffsets []uint32) {
	p.log = append(p.log, "bind_group")
}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.log = append(p.log, "draw")
}

func (p *recordingPass) End() {
	p.ended = true
}

// recordingContext hands out recording passes and keeps the descriptors it
// was asked to open passes with.
type recordingContext struct {
	descriptors []*wgpu.RenderPassDescriptor
	passes      []*recordingPass
	failKeys    map[string]error
	cache       pipeline.Cache
}

func (c *recordingContext) Device() *wgpu.Device      { return nil }
func (c *recordingContext) Queue() *wgpu.Queue        { return nil }
func (c *recordingContext) Pipelines() pipeline.Cache { return c.cache }
func (c *recordingContext) Finish() error             { return nil }

func (c *recordingContext) BeginRenderPass(desc *wgpu.RenderPassDescriptor) (renderer.RenderPass, error) {
	c.descriptors = append(c.descriptors, desc)
	pass := &recordingPass{failKeys: c.failKeys}
	c.passes = append(c.passes, pass)
	return pass, nil
}

// readyCache serves a fixed set of compiled pipelines.
type readyCache struct {
	ready map[string]*wgpu.RenderPipeline
}

func (c *readyCache) Queue(pipelines ...pipeline.Pipeline) {}
func (c *readyCache) GetRenderPipeline(key string) *wgpu.RenderPipeline {
	return c.ready[key]
}
func (c *readyCache) State(key string) pipeline.CacheState {
	if _, ok := c.ready[key]; ok {
		return pipeline.StateReady
	}
	return pipeline.StateUnknown
}
func (c *readyCache) Err(key string) error { return nil }
func (c *readyCache) Wait()                {}

func newContext(skyboxReady bool, failKeys map[string]error) *recordingContext {
	ready := map[string]*wgpu.RenderPipeline{}
	if skyboxReady {
		ready["skybox"] = &wgpu.RenderPipeline{}
	}
	return &recordingContext{
		failKeys: failKeys,
		cache:    &readyCache{ready: ready},
	}
}

func newInput(cam camera.Camera) *ViewInput {
	return &ViewInput{
		Camera: cam,
		Opaque: draw_phase.NewPhase(draw_phase.KindOpaque),
		Target: &renderer.ViewTarget{View: &wgpu.TextureView{}},
		Depth:  &renderer.ViewDepthTexture{View: &wgpu.TextureView{}},
	}
}

func runNode(t *testing.T, node Node, rc renderer.RenderContext) error {
	t.Helper()
	return node.Run(&frame_graph.Context{ViewName: "main"}, rc)
}

func TestRunFirstFrame(t *testing.T) {
	// Scenario: no prepasses, default clear color, depth clear. Both
	// attachments must clear, the opaque items draw in order, then the
	// ready skybox composites.
	rc := newContext(true, nil)
	node := NewNode()

	input := newInput(camera.NewCamera())
	input.Opaque.Add(
		draw_phase.Item{PipelineKey: "mesh_a"},
		draw_phase.Item{PipelineKey: "mesh_b"},
	)
	input.Skybox = &skybox.Resources{
		PipelineKey: "skybox",
		BindGroup:   &wgpu.BindGroup{},
	}
	node.Prepare(input)

	if err := runNode(t, node, rc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(rc.descriptors) != 1 {
		t.Fatalf("opened %d passes, want exactly 1", len(rc.descriptors))
	}
	desc := rc.descriptors[0]
	if desc.ColorAttachments[0].LoadOp != wgpu.LoadOpClear {
		t.Error("first frame must clear color")
	}
	if desc.DepthStencilAttachment.DepthLoadOp != wgpu.LoadOpClear {
		t.Error("first frame must clear depth")
	}
	if desc.DepthStencilAttachment.DepthClearValue != 0.0 {
		t.Errorf("depth clears to %v, want the reversed-z far plane 0.0", desc.DepthStencilAttachment.DepthClearValue)
	}

	pass := rc.passes[0]
	want := []string{"item:mesh_a", "item:mesh_b", "pipeline", "bind_group", "draw"}
	if strings.Join(pass.log, ",") != strings.Join(want, ",") {
		t.Errorf("pass log = %v, want %v", pass.log, want)
	}
	if !pass.ended {
		t.Error("pass was not ended")
	}
}

func TestRunAfterPrepasses(t *testing.T) {
	// Scenario: depth and normal prepasses ran, camera demands a custom
	// clear. Depth must load regardless; color still honors the camera.
	rc := newContext(false, nil)
	node := NewNode()

	custom := wgpu.Color{R: 1, G: 0, B: 0, A: 1}
	input := newInput(camera.NewCamera(camera.WithCustomClearColor(custom)))
	input.Prepass = common.PrepassFlags{Depth: true, Normal: true}
	node.Prepare(input)

	if err := runNode(t, node, rc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	desc := rc.descriptors[0]
	if desc.ColorAttachments[0].LoadOp != wgpu.LoadOpClear {
		t.Error("color must still clear after a depth-only prepass")
	}
	if desc.ColorAttachments[0].ClearValue != custom {
		t.Errorf("color clears to %+v, want the camera's custom color", desc.ColorAttachments[0].ClearValue)
	}
	if desc.DepthStencilAttachment.DepthLoadOp != wgpu.LoadOpLoad {
		t.Error("depth must load after a depth prepass")
	}
}

func TestRunDeferredPath(t *testing.T) {
	// Scenario: deferred prepass ran. Both attachments must load; the
	// camera's clear configuration is overridden.
	rc := newContext(false, nil)
	node := NewNode()

	input := newInput(camera.NewCamera())
	input.Prepass = common.PrepassFlags{Deferred: true}
	node.Prepare(input)

	if err := runNode(t, node, rc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	desc := rc.descriptors[0]
	if desc.ColorAttachments[0].LoadOp != wgpu.LoadOpLoad {
		t.Error("color must load after a deferred prepass")
	}
	if desc.DepthStencilAttachment.DepthLoadOp != wgpu.LoadOpLoad {
		t.Error("depth must load after a deferred prepass")
	}
}

func TestRunEmptyView(t *testing.T) {
	// Scenario: no items, no skybox. The pass still opens so the clear
	// takes effect, and it closes cleanly with no draws.
	rc := newContext(false, nil)
	node := NewNode()
	node.Prepare(newInput(camera.NewCamera()))

	if err := runNode(t, node, rc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(rc.passes) != 1 {
		t.Fatalf("opened %d passes, want 1", len(rc.passes))
	}
	if len(rc.passes[0].log) != 0 {
		t.Errorf("empty view recorded %v, want nothing", rc.passes[0].log)
	}
	if !rc.passes[0].ended {
		t.Error("pass was not ended")
	}
}

func TestRunAlphaMaskOnlyWhenNonEmpty(t *testing.T) {
	tests := []struct {
		name      string
		alphaKeys []string
		want      []string
	}{
		{
			name: "empty alpha mask phase is skipped",
			want: []string{"item:opaque_a"},
		},
		{
			name:      "alpha mask items draw after opaque",
			alphaKeys: []string{"mask_a", "mask_b"},
			want:      []string{"item:opaque_a", "item:mask_a", "item:mask_b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := newContext(false, nil)
			node := NewNode()

			input := newInput(camera.NewCamera())
			input.Opaque.Add(draw_phase.Item{PipelineKey: "opaque_a"})
			input.AlphaMask = draw_phase.NewPhase(draw_phase.KindAlphaMask)
			for _, key := range tt.alphaKeys {
				input.AlphaMask.Add(draw_phase.Item{PipelineKey: key})
			}
			node.Prepare(input)

			if err := runNode(t, node, rc); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if strings.Join(rc.passes[0].log, ",") != strings.Join(tt.want, ",") {
				t.Errorf("pass log = %v, want %v", rc.passes[0].log, tt.want)
			}
		})
	}
}

func TestRunSkyboxSkippedWhileCompiling(t *testing.T) {
	// Scenario: skybox resources are present but the pipeline has not
	// finished compiling. The frame succeeds without the skybox.
	rc := newContext(false, nil)
	node := NewNode()

	input := newInput(camera.NewCamera())
	input.Opaque.Add(draw_phase.Item{PipelineKey: "mesh_a"})
	input.Skybox = &skybox.Resources{
		PipelineKey: "skybox",
		BindGroup:   &wgpu.BindGroup{},
	}
	node.Prepare(input)

	if err := runNode(t, node, rc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"item:mesh_a"}
	if strings.Join(rc.passes[0].log, ",") != strings.Join(want, ",") {
		t.Errorf("pass log = %v, want %v", rc.passes[0].log, want)
	}
}

func TestRunViewportAppliedBeforeDraws(t *testing.T) {
	rc := newContext(false, nil)
	node := NewNode()

	input := newInput(camera.NewCamera(camera.WithViewport(common.Viewport{
		Width: 640, Height: 360, MaxDepth: 1,
	})))
	input.Opaque.Add(draw_phase.Item{PipelineKey: "mesh_a"})
	node.Prepare(input)

	if err := runNode(t, node, rc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	log := rc.passes[0].log
	if len(log) == 0 || log[0] != "viewport" {
		t.Errorf("pass log = %v, want the viewport set before any draw", log)
	}
}

func TestRunItemFailureEndsPass(t *testing.T) {
	drawErr := errors.New("render pipeline \"mesh_bad\" not found in cache")
	rc := newContext(false, map[string]error{"mesh_bad": drawErr})
	node := NewNode()

	input := newInput(camera.NewCamera())
	input.Opaque.Add(
		draw_phase.Item{PipelineKey: "mesh_a"},
		draw_phase.Item{PipelineKey: "mesh_bad"},
		draw_phase.Item{PipelineKey: "mesh_c"},
	)
	node.Prepare(input)

	err := runNode(t, node, rc)
	if !errors.Is(err, drawErr) {
		t.Fatalf("Run() error = %v, want the item failure", err)
	}

	pass := rc.passes[0]
	want := []string{"item:mesh_a"}
	if strings.Join(pass.log, ",") != strings.Join(want, ",") {
		t.Errorf("pass log = %v, want drawing to stop at the failure", pass.log)
	}
	if !pass.ended {
		t.Error("pass must be ended even when a draw fails")
	}
}

func TestRunWithoutPrepareIsNoOp(t *testing.T) {
	rc := newContext(false, nil)
	node := NewNode()

	if err := runNode(t, node, rc); err != nil {
		t.Fatalf("Run() without Prepare error = %v", err)
	}
	if len(rc.descriptors) != 0 {
		t.Error("no pass should open without prepared view state")
	}
}

func TestRunMissingAttachments(t *testing.T) {
	rc := newContext(false, nil)
	node := NewNode()

	input := newInput(camera.NewCamera())
	input.Target = nil
	node.Prepare(input)

	if err := runNode(t, node, rc); err == nil {
		t.Fatal("Run() with a missing target must fail")
	}
	if len(rc.descriptors) != 0 {
		t.Error("no pass should open with missing attachments")
	}
}
