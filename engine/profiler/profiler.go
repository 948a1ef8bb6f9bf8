package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate and frame time statistics for the render loop.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTick       time.Time
	lastReport     time.Time
	updateInterval time.Duration

	maxFrame time.Duration
	memStats runtime.MemStats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	now := time.Now()
	return &Profiler{
		lastTick:       now,
		lastReport:     now,
		updateInterval: time.Second,
	}
}

// Tick should be called once per frame. Logs FPS, average and worst frame
// time, and heap usage when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	now := time.Now()
	frame := now.Sub(p.lastTick)
	p.lastTick = now
	p.frameCount++
	if frame > p.maxFrame {
		p.maxFrame = frame
	}

	elapsed := now.Sub(p.lastReport)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	avgMs := elapsed.Seconds() * 1000 / float64(p.frameCount)

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024

	log.Printf("[Profiler] FPS: %.2f | Frame: %.2f ms avg, %.2f ms max | Heap: %.2f MB",
		fps, avgMs, float64(p.maxFrame.Microseconds())/1000, heapMB)

	p.frameCount = 0
	p.maxFrame = 0
	p.lastReport = now
	return true
}
