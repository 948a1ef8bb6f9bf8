package camera

import (
	"github.com/MJohnson459/bevy/common"
	"github.com/cogentcore/webgpu/wgpu"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithTarget sets the point the camera looks at.
//
// Parameters:
//   - x, y, z: target components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithClearColor sets the camera's color-attachment initialization policy.
//
// Parameters:
//   - cfg: the clear color configuration
//
// Returns:
//   - CameraBuilderOption: a function that sets the clear color config
func WithClearColor(cfg common.ClearColorConfig) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.clearColor = cfg
	}
}

// WithCustomClearColor sets the camera to clear its color attachment to the
// given color. Shorthand for WithClearColor with ClearColorCustom.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - CameraBuilderOption: a function that sets a custom clear color
func WithCustomClearColor(color wgpu.Color) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.clearColor = common.ClearColorConfig{
			Mode:  common.ClearColorCustom,
			Color: color,
		}
	}
}

// WithDepthLoad sets the camera's depth-attachment initialization policy.
//
// Parameters:
//   - cfg: the depth load configuration
//
// Returns:
//   - CameraBuilderOption: a function that sets the depth load config
func WithDepthLoad(cfg common.DepthLoadConfig) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.depthLoad = cfg
	}
}

// WithViewport restricts the camera to a sub-rectangle of the render target.
//
// Parameters:
//   - vp: the viewport
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport
func WithViewport(vp common.Viewport) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewport = &vp
	}
}
