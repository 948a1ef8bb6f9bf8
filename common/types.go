// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultClearColor is the process-wide color used when a camera's clear color
// configuration is ClearColorDefault. Views that want a different background
// either set a custom clear color or opt out of clearing entirely.
var DefaultClearColor = wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0}

// ClearColorMode selects how a view's color attachment is initialized at the
// start of its main render pass.
type ClearColorMode int

const (
	// ClearColorDefault clears the color attachment to DefaultClearColor.
	ClearColorDefault ClearColorMode = iota

	// ClearColorCustom clears the color attachment to the color carried in
	// ClearColorConfig.Color.
	ClearColorCustom

	// ClearColorNone loads the existing contents of the color attachment
	// instead of clearing it.
	ClearColorNone
)

// ClearColorConfig is a camera's color-attachment initialization policy.
// Color is only meaningful when Mode is ClearColorCustom.
type ClearColorConfig struct {
	Mode  ClearColorMode
	Color wgpu.Color
}

// DepthLoadAction selects how a view's depth attachment is initialized at the
// start of its main render pass, when no earlier pass has written depth.
type DepthLoadAction int

const (
	// DepthClear clears the depth attachment to DepthLoadConfig.ClearValue.
	DepthClear DepthLoadAction = iota

	// DepthLoad loads the existing contents of the depth attachment.
	DepthLoad
)

// DepthLoadConfig is a camera's depth-attachment initialization policy.
//
// ClearValue is an opaque parameter: under the reversed-z convention used by
// PerspectiveReverseZ the far plane is 0.0, under a conventional projection it
// is 1.0. The renderer never interprets the value, it only forwards it.
type DepthLoadConfig struct {
	Action     DepthLoadAction
	ClearValue float32
}

// PrepassFlags records which earlier passes have already populated the view's
// attachments this frame. Any depth-writing prepass obligates the main pass to
// load depth rather than clear it; a deferred lighting pass additionally
// obligates it to load color.
type PrepassFlags struct {
	// Depth is true when a depth prepass wrote the depth buffer.
	Depth bool
	// Normal is true when a normal prepass ran (it writes depth as a side effect).
	Normal bool
	// MotionVector is true when a motion-vector prepass ran (also writes depth).
	MotionVector bool
	// Deferred is true when a deferred lighting pass wrote both depth and color.
	Deferred bool
}

// Any reports whether any prepass wrote the depth buffer this frame.
//
// Returns:
//   - bool: true if at least one prepass flag is set
func (f PrepassFlags) Any() bool {
	return f.Depth || f.Normal || f.MotionVector || f.Deferred
}

// Viewport restricts rasterization to a sub-rectangle of the render target.
// A nil *Viewport means the full target.
type Viewport struct {
	// X, Y are the top-left corner of the viewport in pixels.
	X, Y uint32
	// Width, Height are the viewport dimensions in pixels.
	Width, Height uint32
	// MinDepth, MaxDepth define the viewport's depth range, normally [0, 1].
	MinDepth, MaxDepth float32
}
