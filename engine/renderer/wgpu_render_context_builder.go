package renderer

import "github.com/cogentcore/webgpu/wgpu"

// SurfaceContextBuilderOption is a functional option for configuring a
// SurfaceContext created by NewSurfaceContext.
type SurfaceContextBuilderOption func(*surfaceContextImpl)

// WithForceFallbackAdapter forces software rendering instead of a hardware
// adapter. Useful on machines without a working GPU driver.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - SurfaceContextBuilderOption: the option to apply
func WithForceFallbackAdapter(force bool) SurfaceContextBuilderOption {
	return func(c *surfaceContextImpl) {
		c.forceFallbackAdapter = force
	}
}

// WithPresentMode sets the surface present mode. The default is
// wgpu.PresentModeFifo (vsync).
//
// Parameters:
//   - mode: the present mode to use
//
// Returns:
//   - SurfaceContextBuilderOption: the option to apply
func WithPresentMode(mode wgpu.PresentMode) SurfaceContextBuilderOption {
	return func(c *surfaceContextImpl) {
		c.presentMode = mode
	}
}

// WithPipelineCompileWorkers sets the number of background workers the
// context's pipeline cache uses for compilation.
//
// Parameters:
//   - workers: the worker count, must be positive to take effect
//
// Returns:
//   - SurfaceContextBuilderOption: the option to apply
func WithPipelineCompileWorkers(workers int) SurfaceContextBuilderOption {
	return func(c *surfaceContextImpl) {
		c.compileWorkers = workers
	}
}
