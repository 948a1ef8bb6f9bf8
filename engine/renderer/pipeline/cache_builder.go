package pipeline

// CacheBuilderOption is a functional option used to configure a Cache during construction.
type CacheBuilderOption func(*cacheImpl)

// WithCompileWorkers sets the number of background workers used for pipeline
// compilation. Defaults to NumCPU-1 (minimum 1).
//
// Parameters:
//   - workers: the worker count (values < 1 are clamped to 1)
//
// Returns:
//   - CacheBuilderOption: a function that sets the worker count
func WithCompileWorkers(workers int) CacheBuilderOption {
	return func(c *cacheImpl) {
		c.workers = max(workers, 1)
	}
}
