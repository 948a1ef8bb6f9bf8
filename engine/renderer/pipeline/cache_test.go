package pipeline

import (
	"errors"
	"sync"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestCacheCompilesAsynchronously(t *testing.T) {
	compiled := &wgpu.RenderPipeline{}
	release := make(chan struct{})

	cache := NewCache(func(p Pipeline) (*wgpu.RenderPipeline, error) {
		<-release
		return compiled, nil
	}, WithCompileWorkers(1))

	p := NewPipeline("held")
	cache.Queue(p)

	// The compile function is blocked, so the pipeline cannot be ready yet.
	if got := cache.GetRenderPipeline("held"); got != nil {
		t.Error("GetRenderPipeline returned a pipeline before compilation finished")
	}
	if state := cache.State("held"); state != StateQueued {
		t.Errorf("State = %v, want StateQueued", state)
	}

	close(release)
	cache.Wait()

	if got := cache.GetRenderPipeline("held"); got != compiled {
		t.Error("GetRenderPipeline did not return the compiled pipeline after Wait")
	}
	if state := cache.State("held"); state != StateReady {
		t.Errorf("State = %v, want StateReady", state)
	}
	if p.RenderPipeline() != compiled {
		t.Error("compiled pipeline was not stored on the description")
	}
}

func TestCacheCompileFailure(t *testing.T) {
	compileErr := errors.New("shader validation failed")
	cache := NewCache(func(p Pipeline) (*wgpu.RenderPipeline, error) {
		return nil, compileErr
	}, WithCompileWorkers(1))

	cache.Queue(NewPipeline("broken"))
	cache.Wait()

	if got := cache.GetRenderPipeline("broken"); got != nil {
		t.Error("failed pipeline must never be served")
	}
	if state := cache.State("broken"); state != StateFailed {
		t.Errorf("State = %v, want StateFailed", state)
	}
	if err := cache.Err("broken"); !errors.Is(err, compileErr) {
		t.Errorf("Err = %v, want %v", err, compileErr)
	}
}

func TestCacheUnknownKey(t *testing.T) {
	cache := NewCache(func(p Pipeline) (*wgpu.RenderPipeline, error) {
		return &wgpu.RenderPipeline{}, nil
	})

	if got := cache.GetRenderPipeline("never-queued"); got != nil {
		t.Error("unqueued key returned a pipeline")
	}
	if state := cache.State("never-queued"); state != StateUnknown {
		t.Errorf("State = %v, want StateUnknown", state)
	}
	if err := cache.Err("never-queued"); err != nil {
		t.Errorf("Err = %v, want nil", err)
	}
}

func TestCacheQueueIsIdempotent(t *testing.T) {
	var mu sync.Mutex
	compiles := 0

	cache := NewCache(func(p Pipeline) (*wgpu.RenderPipeline, error) {
		mu.Lock()
		compiles++
		mu.Unlock()
		return &wgpu.RenderPipeline{}, nil
	}, WithCompileWorkers(1))

	p := NewPipeline("once")
	cache.Queue(p)
	cache.Queue(p)
	cache.Wait()
	cache.Queue(p)
	cache.Wait()

	mu.Lock()
	defer mu.Unlock()
	if compiles != 1 {
		t.Errorf("compiled %d times, want 1", compiles)
	}
}

func TestCacheConcurrentLookups(t *testing.T) {
	cache := NewCache(func(p Pipeline) (*wgpu.RenderPipeline, error) {
		return &wgpu.RenderPipeline{}, nil
	}, WithCompileWorkers(2))

	keys := []string{"a", "b", "c", "d"}
	for _, key := range keys {
		cache.Queue(NewPipeline(key))
	}
	cache.Wait()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, key := range keys {
				if cache.GetRenderPipeline(key) == nil {
					t.Errorf("pipeline %q missing after Wait", key)
				}
			}
		}()
	}
	wg.Wait()
}
