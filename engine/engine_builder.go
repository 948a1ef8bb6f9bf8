package engine

import (
	"github.com/MJohnson459/bevy/engine/camera"
	"github.com/MJohnson459/bevy/engine/frame_graph"
	"github.com/MJohnson459/bevy/engine/renderer"
	"github.com/MJohnson459/bevy/engine/window"
)

// EngineBuilderOption is a functional option for configuring an engine.
// Use the With* functions to create options.
type EngineBuilderOption func(*engine)

// WithWindow supplies a pre-built window instead of the default 1280x720 one.
//
// Parameters:
//   - w: the window to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera supplies a pre-built camera instead of the default one.
//
// Parameters:
//   - c: the camera to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithGraph supplies a pre-built frame graph. The engine still appends the
// opaque pass node to it.
//
// Parameters:
//   - g: the frame graph to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGraph(g frame_graph.Graph) EngineBuilderOption {
	return func(e *engine) {
		e.graph = g
	}
}

// WithContextOptions forwards options to the surface context the engine
// creates, e.g. renderer.WithForceFallbackAdapter.
//
// Parameters:
//   - options: surface context options to forward
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithContextOptions(options ...renderer.SurfaceContextBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.contextOptions = append(e.contextOptions, options...)
	}
}

// WithProfiling enables profiler output from construction.
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling() EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = true
	}
}
