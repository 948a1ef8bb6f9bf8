// package frame_graph runs an ordered list of render nodes once per frame.
// Nodes execute in insertion order; there is no dependency scheduling.
package frame_graph

import (
	"fmt"
	"sync"

	"github.com/MJohnson459/bevy/engine/renderer"
)

// Context carries per-frame state shared by every node in a single run.
type Context struct {
	// FrameIndex counts frames since the graph was created, starting at 0.
	FrameIndex uint64

	// ViewName labels the view being rendered, used in error reporting.
	ViewName string
}

// Node is a unit of render work. A node records GPU commands for one view
// using the render context it is handed.
type Node interface {
	// Name returns a stable identifier for this node, used in error reporting.
	//
	// Returns:
	//   - string: the node name
	Name() string

	// Run records this node's GPU commands for the current frame.
	//
	// Parameters:
	//   - ctx: the per-frame context
	//   - rc: the render context to record into
	//
	// Returns:
	//   - error: an error if recording fails
	Run(ctx *Context, rc renderer.RenderContext) error
}

// RunError reports which node failed during a graph run.
type RunError struct {
	Node string
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("frame graph node %q failed: %v", e.Node, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// graphImpl is the implementation of the Graph interface.
type graphImpl struct {
	mu *sync.Mutex

	nodes      []Node
	frameIndex uint64
	viewName   string
}

// Graph executes its nodes in insertion order, once per Run call. A node
// failure stops the run; later nodes do not execute that frame.
type Graph interface {
	// AddNode appends nodes to the end of the execution order.
	//
	// Parameters:
	//   - nodes: the nodes to append
	AddNode(nodes ...Node)

	// Run executes every node in order against the render context, then
	// advances the frame index. The frame index advances even when a node
	// fails, so a failed frame is not re-numbered.
	//
	// Parameters:
	//   - rc: the render context nodes record into
	//
	// Returns:
	//   - error: a *RunError wrapping the first node failure, or nil
	Run(rc renderer.RenderContext) error
}

var _ Graph = &graphImpl{}

// NewGraph creates an empty frame graph.
//
// Parameters:
//   - options: functional options to configure the graph
//
// Returns:
//   - Graph: the newly created graph
func NewGraph(options ...GraphBuilderOption) Graph {
	g := &graphImpl{
		mu:       &sync.Mutex{},
		viewName: "main",
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *graphImpl) AddNode(nodes ...Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = append(g.nodes, nodes...)
}

func (g *graphImpl) Run(rc renderer.RenderContext) error {
	g.mu.Lock()
	nodes := g.nodes
	ctx := &Context{
		FrameIndex: g.frameIndex,
		ViewName:   g.viewName,
	}
	g.frameIndex++
	g.mu.Unlock()

	for _, node := range nodes {
		if err := node.Run(ctx, rc); err != nil {
			return &RunError{Node: node.Name(), Err: err}
		}
	}
	return nil
}
