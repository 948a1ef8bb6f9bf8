package engine

import (
	"fmt"
	"log"
	"sync"

	"github.com/MJohnson459/bevy/engine/camera"
	"github.com/MJohnson459/bevy/engine/frame_graph"
	"github.com/MJohnson459/bevy/engine/profiler"
	"github.com/MJohnson459/bevy/engine/renderer"
	"github.com/MJohnson459/bevy/engine/renderer/opaque_pass"
	"github.com/MJohnson459/bevy/engine/window"
)

// engine implements the Engine interface.
// Owns the window, the GPU surface context, the camera, and the frame graph,
// and drives them once per message loop iteration.
type engine struct {
	mu *sync.Mutex

	window  window.Window
	context renderer.SurfaceContext
	camera  camera.Camera
	graph   frame_graph.Graph
	opaque  opaque_pass.Node

	profiler         *profiler.Profiler
	profilingEnabled bool

	// prepareCallback fills the per-frame view state (phases, prepass flags,
	// skybox) before the graph runs. The engine supplies camera and
	// attachments; the callback supplies everything extracted from the scene.
	prepareCallback func(view *opaque_pass.ViewInput)

	contextOptions []renderer.SurfaceContextBuilderOption
	frameIndex     uint64
}

// Engine wires the window, renderer, and frame graph together and runs the
// frame loop. One engine renders one view.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Context returns the GPU surface context.
	//
	// Returns:
	//   - renderer.SurfaceContext: the surface context
	Context() renderer.SurfaceContext

	// Camera returns the view camera.
	//
	// Returns:
	//   - camera.Camera: the camera instance
	Camera() camera.Camera

	// Graph returns the frame graph. Additional nodes may be appended; the
	// opaque pass node is always first.
	//
	// Returns:
	//   - frame_graph.Graph: the frame graph
	Graph() frame_graph.Graph

	// OpaquePass returns the opaque pass node, for callers that prepare it
	// directly instead of through the prepare callback.
	//
	// Returns:
	//   - opaque_pass.Node: the opaque pass node
	OpaquePass() opaque_pass.Node

	// SetPrepareCallback registers the function called once per frame with
	// the partially-filled view state. The engine fills Camera, Target, and
	// Depth; the callback fills the draw phases, prepass flags, and skybox.
	//
	// Parameters:
	//   - callback: function to call each frame (or nil to disable)
	SetPrepareCallback(callback func(view *opaque_pass.ViewInput))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Run starts the main loop (blocks until the window closes).
	Run()

	// Quit closes the window, ending the main loop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine: a window, a surface context bound to it, a
// camera matching the window's aspect ratio, and a frame graph seeded with
// the main opaque pass node.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if GPU initialization fails
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mu:       &sync.Mutex{},
		profiler: profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow()
	}
	if e.camera == nil {
		e.camera = camera.NewCamera(
			camera.WithAspect(float32(e.window.Width()) / float32(e.window.Height())),
		)
	}

	context, err := renderer.NewSurfaceContext(e.window, e.contextOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create surface context: %w", err)
	}
	e.context = context

	e.opaque = opaque_pass.NewNode()
	if e.graph == nil {
		e.graph = frame_graph.NewGraph()
	}
	e.graph.AddNode(e.opaque)

	e.window.SetResizeCallback(func(width, height int) {
		if width == 0 || height == 0 {
			return
		}
		e.context.ConfigureSurface(width, height)
		e.camera.SetAspect(float32(width) / float32(height))
	})
	e.window.SetRenderCallback(e.renderFrame)

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Context() renderer.SurfaceContext {
	return e.context
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Graph() frame_graph.Graph {
	return e.graph
}

func (e *engine) OpaquePass() opaque_pass.Node {
	return e.opaque
}

func (e *engine) SetPrepareCallback(callback func(view *opaque_pass.ViewInput)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.prepareCallback = callback
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() {
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	if err := e.window.Close(); err != nil {
		log.Printf("failed to close window: %v", err)
	}
}

// renderFrame records and submits one frame. Acquire and present bracket the
// graph run; a failed acquire (e.g. mid-resize) skips the frame.
func (e *engine) renderFrame() {
	target, depth, err := e.context.AcquireFrame()
	if err != nil {
		log.Printf("frame %d: failed to acquire surface texture: %v", e.frameIndex, err)
		return
	}
	e.frameIndex++

	view := &opaque_pass.ViewInput{
		Camera: e.camera,
		Target: target,
		Depth:  depth,
	}

	e.mu.Lock()
	prepare := e.prepareCallback
	e.mu.Unlock()
	if prepare != nil {
		prepare(view)
	}
	e.opaque.Prepare(view)

	if err := e.graph.Run(e.context); err != nil {
		log.Printf("frame %d: %v", e.frameIndex-1, err)
	}

	if err := e.context.Finish(); err != nil {
		log.Printf("frame %d: failed to submit commands: %v", e.frameIndex-1, err)
	}
	e.context.Present()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}
