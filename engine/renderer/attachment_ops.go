package renderer

import (
	"github.com/MJohnson459/bevy/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ColorOps is the resolved color-attachment initialization for one render
// pass. Clear is only meaningful when Load is wgpu.LoadOpClear. The store op
// is always store; color must persist for later passes.
type ColorOps struct {
	Load  wgpu.LoadOp
	Clear wgpu.Color
}

// DepthOps is the resolved depth-attachment initialization for one render
// pass. Clear is only meaningful when Load is wgpu.LoadOpClear. The store op
// is always store.
type DepthOps struct {
	Load  wgpu.LoadOp
	Clear float32
}

// ResolveColorOps decides how the main pass initializes the color attachment.
//
// When a deferred lighting pass has already run this frame it has written
// final or partial color, so the attachment must be loaded; clearing would
// destroy that work. Otherwise the camera's clear color configuration
// applies: the process default, a custom color, or no clear at all.
//
// This is a pure function. A deferred lighting node elsewhere in the frame
// graph makes the same decision independently from the same inputs, and the
// two must agree; any divergence is a frame-graph correctness bug, not a
// runtime-recoverable condition.
//
// Parameters:
//   - cfg: the camera's clear color configuration
//   - prepass: which earlier passes ran this frame
//   - defaultClear: the process-wide default clear color
//
// Returns:
//   - ColorOps: the resolved color load operation
func ResolveColorOps(cfg common.ClearColorConfig, prepass common.PrepassFlags, defaultClear wgpu.Color) ColorOps {
	if prepass.Deferred {
		// The deferred lighting pass has already written color this frame.
		return ColorOps{Load: wgpu.LoadOpLoad}
	}
	switch cfg.Mode {
	case common.ClearColorCustom:
		return ColorOps{Load: wgpu.LoadOpClear, Clear: cfg.Color}
	case common.ClearColorNone:
		return ColorOps{Load: wgpu.LoadOpLoad}
	default:
		return ColorOps{Load: wgpu.LoadOpClear, Clear: defaultClear}
	}
}

// ResolveDepthOps decides how the main pass initializes the depth attachment.
//
// If any prepass ran this frame it produced a depth buffer, so the main pass
// must load it — even when only a normal or motion-vector prepass was enabled.
// Otherwise the camera's configured depth policy applies; its clear value is
// forwarded as-is (0.0 is the far plane under a reversed-z projection).
//
// Pure function, independent of ResolveColorOps.
//
// Parameters:
//   - cfg: the camera's depth load configuration
//   - prepass: which earlier passes ran this frame
//
// Returns:
//   - DepthOps: the resolved depth load operation
func ResolveDepthOps(cfg common.DepthLoadConfig, prepass common.PrepassFlags) DepthOps {
	if prepass.Any() {
		return DepthOps{Load: wgpu.LoadOpLoad}
	}
	if cfg.Action == common.DepthLoad {
		return DepthOps{Load: wgpu.LoadOpLoad}
	}
	return DepthOps{Load: wgpu.LoadOpClear, Clear: cfg.ClearValue}
}
