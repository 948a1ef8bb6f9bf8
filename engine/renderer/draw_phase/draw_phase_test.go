package draw_phase

import (
	"errors"
	"testing"
)

// recordingDrawer records drawn pipeline keys and optionally fails on one.
type recordingDrawer struct {
	drawn   []string
	failKey string
}

func (d *recordingDrawer) DrawItem(item Item) error {
	if d.failKey != "" && item.PipelineKey == d.failKey {
		return errors.New("draw failed")
	}
	d.drawn = append(d.drawn, item.PipelineKey)
	return nil
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindOpaque, "opaque"},
		{KindAlphaMask, "alpha_mask"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPhaseRenderOrder(t *testing.T) {
	phase := NewPhase(KindOpaque)
	phase.Add(
		Item{PipelineKey: "a"},
		Item{PipelineKey: "b"},
		Item{PipelineKey: "c"},
	)

	drawer := &recordingDrawer{}
	if err := phase.Render(drawer); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(drawer.drawn) != len(want) {
		t.Fatalf("drew %d items, want %d", len(drawer.drawn), len(want))
	}
	for i := range want {
		if drawer.drawn[i] != want[i] {
			t.Errorf("draw %d = %q, want %q", i, drawer.drawn[i], want[i])
		}
	}
}

func TestPhaseRenderEmpty(t *testing.T) {
	phase := NewPhase(KindAlphaMask)
	drawer := &recordingDrawer{}

	if err := phase.Render(drawer); err != nil {
		t.Fatalf("Render() on empty phase error = %v", err)
	}
	if len(drawer.drawn) != 0 {
		t.Errorf("empty phase drew %d items", len(drawer.drawn))
	}
}

func TestPhaseRenderStopsOnFirstFailure(t *testing.T) {
	phase := NewPhase(KindOpaque)
	phase.Add(
		Item{PipelineKey: "a"},
		Item{PipelineKey: "bad"},
		Item{PipelineKey: "c"},
	)

	drawer := &recordingDrawer{failKey: "bad"}
	if err := phase.Render(drawer); err == nil {
		t.Fatal("Render() should propagate the item failure")
	}

	if len(drawer.drawn) != 1 || drawer.drawn[0] != "a" {
		t.Errorf("drew %v, want only the item before the failure", drawer.drawn)
	}
}

func TestPhaseSort(t *testing.T) {
	phase := NewPhase(KindOpaque)
	phase.Add(
		Item{SortKey: 3.0, PipelineKey: "far"},
		Item{SortKey: 1.0, PipelineKey: "near"},
		Item{SortKey: 2.0, PipelineKey: "mid_first"},
		Item{SortKey: 2.0, PipelineKey: "mid_second"},
	)
	phase.Sort()

	drawer := &recordingDrawer{}
	if err := phase.Render(drawer); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Stable sort: equal keys keep insertion order.
	want := []string{"near", "mid_first", "mid_second", "far"}
	for i := range want {
		if drawer.drawn[i] != want[i] {
			t.Errorf("draw %d = %q, want %q", i, drawer.drawn[i], want[i])
		}
	}
}

func TestPhaseClear(t *testing.T) {
	phase := NewPhase(KindOpaque)
	phase.Add(Item{PipelineKey: "a"}, Item{PipelineKey: "b"})

	if phase.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", phase.Len())
	}
	phase.Clear()
	if phase.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", phase.Len())
	}

	phase.Add(Item{PipelineKey: "c"})
	if phase.Len() != 1 {
		t.Errorf("Len() after reuse = %d, want 1", phase.Len())
	}
}
