package frame_graph

import (
	"errors"
	"testing"

	"github.com/MJohnson459/bevy/engine/renderer"
)

// stubNode records run order and optionally fails.
type stubNode struct {
	name string
	err  error
	runs *[]string
	ctxs []*Context
}

func (n *stubNode) Name() string { return n.name }

func (n *stubNode) Run(ctx *Context, rc renderer.RenderContext) error {
	*n.runs = append(*n.runs, n.name)
	n.ctxs = append(n.ctxs, ctx)
	return n.err
}

func TestGraphRunsNodesInOrder(t *testing.T) {
	var runs []string
	g := NewGraph(WithNodes(
		&stubNode{name: "prepass", runs: &runs},
		&stubNode{name: "opaque", runs: &runs},
	))
	g.AddNode(&stubNode{name: "post", runs: &runs})

	if err := g.Run(nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"prepass", "opaque", "post"}
	if len(runs) != len(want) {
		t.Fatalf("ran %d nodes, want %d", len(runs), len(want))
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("run %d = %q, want %q", i, runs[i], want[i])
		}
	}
}

func TestGraphStopsOnFailure(t *testing.T) {
	var runs []string
	nodeErr := errors.New("encoder creation failed")
	g := NewGraph(WithNodes(
		&stubNode{name: "first", runs: &runs},
		&stubNode{name: "broken", runs: &runs, err: nodeErr},
		&stubNode{name: "never", runs: &runs},
	))

	err := g.Run(nil)
	if err == nil {
		t.Fatal("Run() should fail when a node fails")
	}

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("Run() error = %T, want *RunError", err)
	}
	if runErr.Node != "broken" {
		t.Errorf("RunError.Node = %q, want %q", runErr.Node, "broken")
	}
	if !errors.Is(err, nodeErr) {
		t.Error("RunError must unwrap to the node's error")
	}

	want := []string{"first", "broken"}
	if len(runs) != len(want) {
		t.Errorf("ran %v, want the run to stop at the failure", runs)
	}
}

func TestGraphFrameContext(t *testing.T) {
	var runs []string
	node := &stubNode{name: "only", runs: &runs}
	g := NewGraph(WithViewName("left_eye"), WithNodes(node))

	for range 3 {
		if err := g.Run(nil); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}

	if len(node.ctxs) != 3 {
		t.Fatalf("node saw %d contexts, want 3", len(node.ctxs))
	}
	for i, ctx := range node.ctxs {
		if ctx.FrameIndex != uint64(i) {
			t.Errorf("frame %d had index %d", i, ctx.FrameIndex)
		}
		if ctx.ViewName != "left_eye" {
			t.Errorf("frame %d had view %q, want %q", i, ctx.ViewName, "left_eye")
		}
	}
}

func TestGraphFrameIndexAdvancesPastFailure(t *testing.T) {
	var runs []string
	node := &stubNode{name: "flaky", runs: &runs, err: errors.New("boom")}
	g := NewGraph(WithNodes(node))

	_ = g.Run(nil)
	_ = g.Run(nil)

	if len(node.ctxs) != 2 {
		t.Fatalf("node saw %d contexts, want 2", len(node.ctxs))
	}
	if node.ctxs[1].FrameIndex != 1 {
		t.Errorf("second frame had index %d, want 1", node.ctxs[1].FrameIndex)
	}
}
