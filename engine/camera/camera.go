package camera

import (
	"math"
	"sync"

	"github.com/MJohnson459/bevy/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	clearColor common.ClearColorConfig
	depthLoad  common.DepthLoadConfig
	viewport   *common.Viewport

	viewMatrix              [16]float32
	projectionMatrix        [16]float32
	viewProjectionMatrix    [16]float32
	inverseProjectionMatrix [16]float32
}

// Camera defines the interface for a single rendered view. It carries the
// perspective settings and view/projection matrices, plus the attachment
// initialization policies (clear color, depth load) and optional viewport
// that the main render pass consults when it opens the view's render pass.
//
// Projection uses the reversed-z convention: depth clears default to 0.0,
// which is the far plane under a reversed-z projection.
type Camera interface {
	// Position returns the camera position in world space.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - x, y, z: target components
	Target() (x, y, z float32)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ClearColor returns the camera's color-attachment initialization policy.
	//
	// Returns:
	//   - common.ClearColorConfig: the clear color configuration
	ClearColor() common.ClearColorConfig

	// DepthLoad returns the camera's depth-attachment initialization policy,
	// applied only when no prepass has already written the depth buffer.
	//
	// Returns:
	//   - common.DepthLoadConfig: the depth load configuration
	DepthLoad() common.DepthLoadConfig

	// Viewport returns the camera's viewport restriction, or nil when the
	// camera renders to the full target.
	//
	// Returns:
	//   - *common.Viewport: the viewport, or nil
	Viewport() *common.Viewport

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// InverseProjectionMatrix returns the inverse of the current projection
	// matrix as 16 floats (column-major). Skybox shaders use it to unproject
	// the fullscreen triangle back onto the view frustum.
	//
	// Returns:
	//   - [16]float32: the inverse projection matrix
	InverseProjectionMatrix() [16]float32

	// SetPosition moves the camera and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetTarget repoints the camera and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetClearColor sets the camera's color-attachment initialization policy.
	//
	// Parameters:
	//   - cfg: the clear color configuration
	SetClearColor(cfg common.ClearColorConfig)

	// SetDepthLoad sets the camera's depth-attachment initialization policy.
	//
	// Parameters:
	//   - cfg: the depth load configuration
	SetDepthLoad(cfg common.DepthLoadConfig)

	// SetViewport restricts the camera to a sub-rectangle of the target.
	// Pass nil to render to the full target.
	//
	// Parameters:
	//   - vp: the viewport, or nil
	SetViewport(vp *common.Viewport)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings: 45 degree
// vertical field of view, reversed-z projection, clear color from the process
// default, and depth cleared to 0.0 (the reversed-z far plane).
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{0, 0, 5},
		up:       [3]float32{0, 1, 0},
		fov:      45.0 * (math.Pi / 180.0), // radians
		aspect:   1.0,
		near:     0.1,
		far:      100.0,
		clearColor: common.ClearColorConfig{
			Mode: common.ClearColorDefault,
		},
		depthLoad: common.DepthLoadConfig{
			Action:     common.DepthClear,
			ClearValue: 0.0,
		},
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position[0], c.position[1], c.position[2]
}

func (c *cameraImpl) Target() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target[0], c.target[1], c.target[2]
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ClearColor() common.ClearColorConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearColor
}

func (c *cameraImpl) DepthLoad() common.DepthLoadConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depthLoad
}

func (c *cameraImpl) Viewport() *common.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetClearColor(cfg common.ClearColorConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearColor = cfg
}

func (c *cameraImpl) SetDepthLoad(cfg common.DepthLoadConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.depthLoad = cfg
}

func (c *cameraImpl) SetViewport(vp *common.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = vp
}

// updateMatrices recalculates the view, projection, view-projection, and
// inverse projection matrices. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	common.LookAt(c.viewMatrix[:],
		c.position[0], c.position[1], c.position[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2],
	)

	common.PerspectiveReverseZ(c.projectionMatrix[:],
		c.fov, c.aspect, c.near,
	)

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	common.Invert4(c.inverseProjectionMatrix[:], c.projectionMatrix[:])
}
