package skybox

// GPUResourcesBuilderOption is a functional option for configuring
// GPUResources during construction.
type GPUResourcesBuilderOption func(*GPUResources)

// WithPipelineKey overrides the pipeline cache key carried in the per-view
// Resources. The default is DefaultPipelineKey.
//
// Parameters:
//   - key: the pipeline cache key
//
// Returns:
//   - GPUResourcesBuilderOption: the option to apply
func WithPipelineKey(key string) GPUResourcesBuilderOption {
	return func(r *GPUResources) {
		r.pipelineKey = key
	}
}

// WithViewCapacity sets how many views the uniform buffer holds slots for.
// The default is 4.
//
// Parameters:
//   - capacity: the number of view slots
//
// Returns:
//   - GPUResourcesBuilderOption: the option to apply
func WithViewCapacity(capacity uint32) GPUResourcesBuilderOption {
	return func(r *GPUResources) {
		if capacity > 0 {
			r.viewCapacity = capacity
		}
	}
}
