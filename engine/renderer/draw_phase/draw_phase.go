// package draw_phase holds the per-view, per-frame ordered draw-item lists
// consumed by the geometry passes. Phases are populated and sorted by whoever
// extracts visible geometry; the passes only replay them.
package draw_phase

import (
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

// Kind identifies which geometry phase an item list belongs to.
type Kind int

const (
	// KindOpaque is fully opaque geometry, sorted front-to-back so early
	// depth testing rejects occluded fragments.
	KindOpaque Kind = iota

	// KindAlphaMask is binary alpha-tested geometry. No ordering is mandated.
	KindAlphaMask
)

// String returns the phase kind's name.
func (k Kind) String() string {
	switch k {
	case KindOpaque:
		return "opaque"
	case KindAlphaMask:
		return "alpha_mask"
	default:
		return "unknown"
	}
}

// Binding is one bind group to set before an item's draw call, together with
// its dynamic uniform offsets.
type Binding struct {
	Group          *wgpu.BindGroup
	DynamicOffsets []uint32
}

// Call describes the geometry of one draw. When IndexBuffer is nil the draw
// is non-indexed and VertexCount vertices are drawn; otherwise IndexCount
// indices are drawn from the index buffer.
type Call struct {
	VertexBuffer *wgpu.Buffer
	IndexBuffer  *wgpu.Buffer
	IndexFormat  wgpu.IndexFormat

	VertexCount   uint32
	IndexCount    uint32
	InstanceCount uint32
}

// Item is a single draw within a phase: which pipeline to bind, which bind
// groups to set, and the draw call to issue. SortKey orders opaque items
// front-to-back (ascending view-space distance).
type Item struct {
	SortKey     float32
	PipelineKey string
	BindGroups  []Binding
	Call        Call
}

// ItemDrawer binds and draws a single phase item. It is implemented by the
// render pass scope so that phase replay carries no dependency on the
// concrete GPU API.
type ItemDrawer interface {
	// DrawItem binds the item's pipeline, bind groups, and buffers on the
	// open pass and issues its draw call.
	//
	// Parameters:
	//   - item: the phase item to draw
	//
	// Returns:
	//   - error: an error if the item's pipeline or resources are invalid
	DrawItem(item Item) error
}

// Phase is the ordered draw-item list for one phase kind of one view.
// It is not safe for concurrent mutation; a phase belongs to a single view's
// extraction and render flow within a frame.
type Phase struct {
	kind  Kind
	items []Item
}

// NewPhase creates an empty phase of the given kind.
//
// Parameters:
//   - kind: the phase kind (opaque or alpha-mask)
//
// Returns:
//   - *Phase: the newly created phase
func NewPhase(kind Kind) *Phase {
	return &Phase{kind: kind}
}

// Kind returns the phase's kind.
func (p *Phase) Kind() Kind {
	return p.kind
}

// Len returns the number of items queued in the phase.
func (p *Phase) Len() int {
	return len(p.items)
}

// Add appends items to the phase in the order given.
//
// Parameters:
//   - items: the items to append
func (p *Phase) Add(items ...Item) {
	p.items = append(p.items, items...)
}

// Clear empties the phase for reuse next frame, keeping its backing storage.
func (p *Phase) Clear() {
	p.items = p.items[:0]
}

// Sort orders items by ascending SortKey. For the opaque phase this is
// front-to-back. The sort is stable so items with equal keys keep their
// insertion order.
func (p *Phase) Sort() {
	sort.SliceStable(p.items, func(i, j int) bool {
		return p.items[i].SortKey < p.items[j].SortKey
	})
}

// Render replays every item against the drawer in stored order. The first
// item failure aborts the replay and is returned; remaining items are not
// drawn. Render never reorders or mutates the item list.
//
// Parameters:
//   - d: the drawer for the open render pass
//
// Returns:
//   - error: the first item error encountered, or nil
func (p *Phase) Render(d ItemDrawer) error {
	for i := range p.items {
		if err := d.DrawItem(p.items[i]); err != nil {
			return err
		}
	}
	return nil
}
