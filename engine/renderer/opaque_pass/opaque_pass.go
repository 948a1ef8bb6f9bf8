// package opaque_pass renders the opaque geometry of one camera view: the
// opaque phase, the alpha-mask phase, and the skybox, all inside a single
// render pass so the attachments are loaded and stored exactly once.
package opaque_pass

import (
	"fmt"
	"sync"

	"github.com/MJohnson459/bevy/common"
	"github.com/MJohnson459/bevy/engine/camera"
	"github.com/MJohnson459/bevy/engine/frame_graph"
	"github.com/MJohnson459/bevy/engine/renderer"
	"github.com/MJohnson459/bevy/engine/renderer/draw_phase"
	"github.com/MJohnson459/bevy/engine/renderer/skybox"
)

// ViewInput is the per-frame state for the view the node renders. Earlier
// frame stages (extraction, phase sorting, prepasses) fill it in; the node
// only consumes it.
type ViewInput struct {
	// Camera supplies the clear color policy, depth load policy, and
	// optional sub-rectangle viewport.
	Camera camera.Camera

	// Opaque is the fully opaque geometry phase. Rendered even when empty
	// so the pass's load/clear behavior always applies.
	Opaque *draw_phase.Phase

	// AlphaMask is the alpha-tested geometry phase. Skipped entirely when
	// empty.
	AlphaMask *draw_phase.Phase

	// Target is the color attachment for this view.
	Target *renderer.ViewTarget

	// Depth is the depth attachment for this view.
	Depth *renderer.ViewDepthTexture

	// Prepass records which prepasses already ran for this view this frame.
	Prepass common.PrepassFlags

	// Skybox is the optional skybox state; nil when the view has none.
	Skybox *skybox.Resources
}

// node is the implementation of the Node interface.
type node struct {
	mu *sync.Mutex

	name  string
	input *ViewInput
}

// Node is a frame graph node that renders the main opaque pass. It must be
// fed view state through Prepare before each graph run.
type Node interface {
	frame_graph.Node

	// Prepare stores the view state the next Run will render. Call once per
	// frame, before the graph runs. A nil input makes the next Run a no-op.
	//
	// Parameters:
	//   - input: the per-frame view state
	Prepare(input *ViewInput)
}

var _ Node = &node{}

// NewNode creates the main opaque pass node.
//
// Parameters:
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the newly created node
func NewNode(options ...NodeBuilderOption) Node {
	n := &node{
		mu:   &sync.Mutex{},
		name: "main_opaque_pass",
	}
	for _, option := range options {
		option(n)
	}
	return n
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Prepare(input *ViewInput) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.input = input
}

func (n *node) Run(ctx *frame_graph.Context, rc renderer.RenderContext) error {
	n.mu.Lock()
	input := n.input
	n.mu.Unlock()

	if input == nil {
		// Nothing prepared for this frame; not an error, just no work.
		return nil
	}
	if input.Camera == nil || input.Target == nil || input.Depth == nil {
		return fmt.Errorf("opaque pass for view %q is missing camera or attachments", ctx.ViewName)
	}

	// A prepass that already wrote an attachment this frame must not be
	// clobbered by a clear, whatever the camera asked for.
	colorOps := renderer.ResolveColorOps(input.Camera.ClearColor(), input.Prepass, common.DefaultClearColor)
	depthOps := renderer.ResolveDepthOps(input.Camera.DepthLoad(), input.Prepass)

	desc := renderer.BuildRenderPassDescriptor(colorOps, depthOps, input.Target, input.Depth)
	desc.Label = n.name

	pass, err := rc.BeginRenderPass(desc)
	if err != nil {
		return err
	}

	if vp := input.Camera.Viewport(); vp != nil {
		pass.SetViewport(*vp)
	}

	// Opaque renders unconditionally: an empty phase still needs the pass
	// to run so the clear takes effect.
	if input.Opaque != nil {
		if err := input.Opaque.Render(pass); err != nil {
			pass.End()
			return fmt.Errorf("opaque phase: %w", err)
		}
	}

	if input.AlphaMask != nil && input.AlphaMask.Len() > 0 {
		if err := input.AlphaMask.Render(pass); err != nil {
			pass.End()
			return fmt.Errorf("alpha mask phase: %w", err)
		}
	}

	// Skybox draws last; depth testing rejects everything geometry covered.
	input.Skybox.Composite(pass, rc.Pipelines())

	pass.End()
	return nil
}
