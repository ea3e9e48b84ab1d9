package chart

import (
	"github.com/raykavin/chartdraw/pkg/core"
)

// State enumerates the interaction states for in-progress drawing
type State int

const (
	StateIdle State = iota
	StateToolSelected
	StateFirstPointPlaced
	StatePreviewing
)

// String returns a readable state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateToolSelected:
		return "tool_selected"
	case StateFirstPointPlaced:
		return "first_point_placed"
	case StatePreviewing:
		return "previewing"
	}
	return "unknown"
}

// Interaction is the state machine governing primitive creation. Pointer
// events arrive already translated into domain coordinates by the host.
//
// Flow: Idle -> ToolSelected -> FirstPointPlaced -> Previewing (pointer
// move loops) -> committed back to Idle. Reselecting a tool or an
// explicit cancel from any non-Idle state discards the active drawing
// unsaved.
type Interaction struct {
	model *Model
	state State
	tool  Tool
}

// NewInteraction creates an idle interaction bound to a drawing model
func NewInteraction(model *Model) *Interaction {
	return &Interaction{model: model}
}

// State returns the current interaction state
func (i *Interaction) State() State { return i.state }

// ActiveTool returns the selected tool, empty when idle
func (i *Interaction) ActiveTool() Tool { return i.tool }

// SelectTool arms a drawing tool. Any in-progress drawing is discarded
// unsaved, including when the same tool is reselected.
func (i *Interaction) SelectTool(tool Tool) {
	i.model.Cancel()
	if tool == "" {
		i.state = StateIdle
		i.tool = ""
		return
	}
	i.tool = tool
	i.state = StateToolSelected
}

// PointerDown anchors the first point of a new drawing when a tool is
// armed; otherwise it is ignored
func (i *Interaction) PointerDown(point core.Point) {
	if i.state != StateToolSelected {
		return
	}
	i.model.Start(i.tool, point)
	i.state = StateFirstPointPlaced
}

// PointerMove updates the live preview of the second point
func (i *Interaction) PointerMove(point core.Point) {
	switch i.state {
	case StateFirstPointPlaced, StatePreviewing:
		i.model.Continue(point)
		i.state = StatePreviewing
	}
}

// PointerUp commits the drawing and returns to Idle for the tool. An
// underdrawn primitive (no move since the first point) is dropped by the
// model's finish contract rather than persisted partially.
func (i *Interaction) PointerUp() {
	switch i.state {
	case StateFirstPointPlaced, StatePreviewing:
		i.model.Finish()
		i.state = StateIdle
		i.tool = ""
	}
}

// Cancel discards any in-progress drawing and disarms the tool
func (i *Interaction) Cancel() {
	i.model.Cancel()
	i.state = StateIdle
	i.tool = ""
}
