package pipeline

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
)

// CacheState describes where a queued pipeline is in its compilation lifecycle.
type CacheState int

const (
	// StateUnknown means the key was never queued.
	StateUnknown CacheState = iota

	// StateQueued means compilation has been submitted but has not finished.
	StateQueued

	// StateReady means the compiled pipeline is available.
	StateReady

	// StateFailed means compilation returned an error; the pipeline will
	// never become ready unless re-queued.
	StateFailed
)

// CompileFunc builds the GPU render pipeline for a pipeline description.
// The renderer supplies a device-backed implementation; tests inject fakes.
type CompileFunc func(p Pipeline) (*wgpu.RenderPipeline, error)

// cacheImpl is the implementation of the Cache interface.
type cacheImpl struct {
	mu *sync.Mutex

	compile CompileFunc
	entries map[string]*cacheEntry

	workers int
	pool    worker.DynamicWorkerPool

	// inFlight provides per-batch barrier sync for Wait(); pool.Wait() blocks
	// until workers idle-exit, which is unsuitable for frame-rate workloads.
	inFlight *sync.WaitGroup
	taskID   int
}

type cacheEntry struct {
	state    CacheState
	pipeline *wgpu.RenderPipeline
	err      error
}

// Cache compiles pipelines asynchronously and serves compiled GPU pipelines
// by key. Compilation happens on a background worker pool, so a queued
// pipeline is not immediately available: GetRenderPipeline returns nil until
// compilation completes, and callers decide per call site whether "not ready
// yet" is a skip (skybox composite) or a failure (geometry draw items).
//
// Lookups are safe to call concurrently from multiple views in one frame.
type Cache interface {
	// Queue submits pipelines for asynchronous compilation. Keys that are
	// already queued, ready, or failed are skipped; re-queue after a failure
	// is not supported through Queue.
	//
	// Parameters:
	//   - pipelines: the pipeline descriptions to compile
	Queue(pipelines ...Pipeline)

	// GetRenderPipeline returns the compiled pipeline for the key, or nil
	// while compilation is pending, after a compile failure, or for a key
	// that was never queued.
	//
	// Parameters:
	//   - key: the pipeline cache key
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled pipeline, or nil
	GetRenderPipeline(key string) *wgpu.RenderPipeline

	// State returns the compilation state for the key.
	//
	// Parameters:
	//   - key: the pipeline cache key
	//
	// Returns:
	//   - CacheState: the current state (StateUnknown for unqueued keys)
	State(key string) CacheState

	// Err returns the compile error for the key, or nil if the key is not in
	// StateFailed.
	//
	// Parameters:
	//   - key: the pipeline cache key
	//
	// Returns:
	//   - error: the compile error, or nil
	Err(key string) error

	// Wait blocks until every queued compilation has finished, in either
	// state. Intended for startup preloading and tests, not the frame loop.
	Wait()
}

var _ Cache = &cacheImpl{}

// NewCache creates a pipeline cache that compiles with the given function.
//
// Parameters:
//   - compile: the function that builds GPU pipelines
//   - options: functional options to configure the cache
//
// Returns:
//   - Cache: the newly created cache
func NewCache(compile CompileFunc, options ...CacheBuilderOption) Cache {
	c := &cacheImpl{
		mu:       &sync.Mutex{},
		compile:  compile,
		entries:  make(map[string]*cacheEntry),
		workers:  max(runtime.NumCPU()-1, 1),
		inFlight: &sync.WaitGroup{},
	}
	for _, option := range options {
		option(c)
	}

	// Queue size of 64 accommodates typical startup pipeline batches.
	c.pool = worker.NewDynamicWorkerPool(c.workers, 64, 1*time.Second)
	return c
}

func (c *cacheImpl) Queue(pipelines ...Pipeline) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := c.entries[key]; exists {
			continue
		}
		entry := &cacheEntry{state: StateQueued}
		c.entries[key] = entry

		c.inFlight.Add(1)
		pCap := p // capture for closure
		id := c.taskID
		c.taskID++
		c.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer c.inFlight.Done()

				compiled, err := c.compile(pCap)

				c.mu.Lock()
				defer c.mu.Unlock()
				if err != nil {
					entry.state = StateFailed
					entry.err = err
					return nil, err
				}
				entry.state = StateReady
				entry.pipeline = compiled
				pCap.SetRenderPipeline(compiled)
				return nil, nil
			},
		})
	}
}

func (c *cacheImpl) GetRenderPipeline(key string) *wgpu.RenderPipeline {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists || entry.state != StateReady {
		return nil
	}
	return entry.pipeline
}

func (c *cacheImpl) State(key string) CacheState {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return StateUnknown
	}
	return entry.state
}

func (c *cacheImpl) Err(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists || entry.state != StateFailed {
		return nil
	}
	return entry.err
}

func (c *cacheImpl) Wait() {
	c.inFlight.Wait()
}
