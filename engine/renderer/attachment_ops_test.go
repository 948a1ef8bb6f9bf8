package renderer

import (
	"testing"

	"github.com/MJohnson459/bevy/common"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestResolveColorOps(t *testing.T) {
	defaultClear := wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0}
	customClear := wgpu.Color{R: 0.5, G: 0.25, B: 0.0, A: 1.0}

	tests := []struct {
		name    string
		cfg     common.ClearColorConfig
		prepass common.PrepassFlags
		want    ColorOps
	}{
		{
			name: "default policy clears with default color",
			cfg:  common.ClearColorConfig{Mode: common.ClearColorDefault},
			want: ColorOps{Load: wgpu.LoadOpClear, Clear: defaultClear},
		},
		{
			name: "custom policy clears with camera color",
			cfg:  common.ClearColorConfig{Mode: common.ClearColorCustom, Color: customClear},
			want: ColorOps{Load: wgpu.LoadOpClear, Clear: customClear},
		},
		{
			name: "none policy loads",
			cfg:  common.ClearColorConfig{Mode: common.ClearColorNone},
			want: ColorOps{Load: wgpu.LoadOpLoad},
		},
		{
			name:    "deferred prepass forces load over default clear",
			cfg:     common.ClearColorConfig{Mode: common.ClearColorDefault},
			prepass: common.PrepassFlags{Deferred: true},
			want:    ColorOps{Load: wgpu.LoadOpLoad},
		},
		{
			name:    "deferred prepass forces load over custom clear",
			cfg:     common.ClearColorConfig{Mode: common.ClearColorCustom, Color: customClear},
			prepass: common.PrepassFlags{Deferred: true},
			want:    ColorOps{Load: wgpu.LoadOpLoad},
		},
		{
			name:    "depth prepass alone does not affect color",
			cfg:     common.ClearColorConfig{Mode: common.ClearColorDefault},
			prepass: common.PrepassFlags{Depth: true},
			want:    ColorOps{Load: wgpu.LoadOpClear, Clear: defaultClear},
		},
		{
			name:    "normal and motion vector prepasses do not affect color",
			cfg:     common.ClearColorConfig{Mode: common.ClearColorCustom, Color: customClear},
			prepass: common.PrepassFlags{Normal: true, MotionVector: true},
			want:    ColorOps{Load: wgpu.LoadOpClear, Clear: customClear},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColorOps(tt.cfg, tt.prepass, defaultClear)
			if got != tt.want {
				t.Errorf("ResolveColorOps() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveDepthOps(t *testing.T) {
	clearCfg := common.DepthLoadConfig{Action: common.DepthClear, ClearValue: 0.0}
	loadCfg := common.DepthLoadConfig{Action: common.DepthLoad}

	tests := []struct {
		name    string
		cfg     common.DepthLoadConfig
		prepass common.PrepassFlags
		want    DepthOps
	}{
		{
			name: "clear policy clears to far plane",
			cfg:  clearCfg,
			want: DepthOps{Load: wgpu.LoadOpClear, Clear: 0.0},
		},
		{
			name: "clear policy forwards custom clear value",
			cfg:  common.DepthLoadConfig{Action: common.DepthClear, ClearValue: 1.0},
			want: DepthOps{Load: wgpu.LoadOpClear, Clear: 1.0},
		},
		{
			name: "load policy loads",
			cfg:  loadCfg,
			want: DepthOps{Load: wgpu.LoadOpLoad},
		},
		{
			name:    "depth prepass overrides clear policy",
			cfg:     clearCfg,
			prepass: common.PrepassFlags{Depth: true},
			want:    DepthOps{Load: wgpu.LoadOpLoad},
		},
		{
			name:    "normal prepass overrides clear policy",
			cfg:     clearCfg,
			prepass: common.PrepassFlags{Normal: true},
			want:    DepthOps{Load: wgpu.LoadOpLoad},
		},
		{
			name:    "motion vector prepass overrides clear policy",
			cfg:     clearCfg,
			prepass: common.PrepassFlags{MotionVector: true},
			want:    DepthOps{Load: wgpu.LoadOpLoad},
		},
		{
			name:    "deferred prepass overrides clear policy",
			cfg:     clearCfg,
			prepass: common.PrepassFlags{Deferred: true},
			want:    DepthOps{Load: wgpu.LoadOpLoad},
		},
		{
			name:    "prepass with load policy still loads",
			cfg:     loadCfg,
			prepass: common.PrepassFlags{Depth: true, Normal: true},
			want:    DepthOps{Load: wgpu.LoadOpLoad},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDepthOps(tt.cfg, tt.prepass)
			if got != tt.want {
				t.Errorf("ResolveDepthOps() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveDepthOpsAllPrepassCombinations(t *testing.T) {
	// Any prepass flag at all must force a load; only the all-false record
	// falls through to the camera policy.
	for mask := 0; mask < 16; mask++ {
		prepass := common.PrepassFlags{
			Depth:        mask&1 != 0,
			Normal:       mask&2 != 0,
			MotionVector: mask&4 != 0,
			Deferred:     mask&8 != 0,
		}
		got := ResolveDepthOps(common.DepthLoadConfig{Action: common.DepthClear}, prepass)

		wantLoad := wgpu.LoadOpClear
		if mask != 0 {
			wantLoad = wgpu.LoadOpLoad
		}
		if got.Load != wantLoad {
			t.Errorf("ResolveDepthOps(%+v).Load = %v, want %v", prepass, got.Load, wantLoad)
		}
	}
}
