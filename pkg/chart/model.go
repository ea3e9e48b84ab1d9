package chart

import (
	"github.com/raykavin/chartdraw/pkg/core"
)

// Model holds the persisted drawing collections and the transient active
// drawing, all in domain coordinates. Every operation is total: invalid
// calls degrade to no-ops and absence of geometry is represented by
// empty collections, never by errors.
//
// The model is mutated only from the host's event dispatch loop (see
// Manager), so it carries no locking of its own.
type Model struct {
	lines  []Line
	shapes []Shape
	texts  []Text

	active *ActiveDrawing
	nextID int64
}

// NewModel creates an empty drawing model
func NewModel() *Model {
	return &Model{
		lines:  make([]Line, 0),
		shapes: make([]Shape, 0),
		texts:  make([]Text, 0),
	}
}

// Start begins a new active drawing with a single anchored point,
// binding the tool's default style. Any previous active drawing is
// discarded unsaved.
func (m *Model) Start(tool Tool, point core.Point) {
	m.active = &ActiveDrawing{
		Tool:   tool,
		Points: []core.Point{point},
		Style:  DefaultStyle(tool),
	}
}

// Continue extends the active drawing: the second point is appended on
// first call and overwritten on subsequent calls, giving a live drag
// preview. The active drawing never exceeds two points.
func (m *Model) Continue(point core.Point) {
	if m.active == nil {
		return
	}

	if len(m.active.Points) < 2 {
		m.active.Points = append(m.active.Points, point)
		return
	}
	m.active.Points[1] = point
}

// Finish persists the active drawing into the line or shape collection
// when it holds at least two points. The active drawing is cleared
// afterwards regardless of outcome, so an underdrawn primitive is
// dropped rather than persisted partially.
func (m *Model) Finish() {
	active := m.active
	m.active = nil

	if active == nil || len(active.Points) < 2 {
		return
	}

	switch {
	case active.Tool.IsLine():
		m.nextID++
		m.lines = append(m.lines, Line{
			ID:      m.nextID,
			Subtype: active.Tool,
			P1:      active.Points[0],
			P2:      active.Points[1],
			Style:   active.Style,
		})
	case active.Tool.IsShape():
		m.nextID++
		m.shapes = append(m.shapes, Shape{
			ID:      m.nextID,
			Subtype: active.Tool,
			P1:      active.Points[0],
			P2:      active.Points[1],
			Style:   active.Style,
		})
	}
}

// Cancel discards the active drawing unsaved
func (m *Model) Cancel() {
	m.active = nil
}

// AddText persists a text annotation directly; text does not go through
// the two-point drawing flow
func (m *Model) AddText(at core.Point, content string) {
	style := DefaultStyle(ToolText)
	m.nextID++
	m.texts = append(m.texts, Text{
		ID:      m.nextID,
		At:      at,
		Content: content,
		Color:   style.Color,
		Size:    style.Width,
	})
}

// ClearAll empties every drawing collection
func (m *Model) ClearAll() {
	m.lines = m.lines[:0]
	m.shapes = m.shapes[:0]
	m.texts = m.texts[:0]
}

// RemoveLast pops the most recent shape if any exist, otherwise the most
// recent line. The order is collection-local: shapes are always popped
// before lines regardless of true chronological creation order across
// both collections. Calling it with both collections empty is a no-op.
func (m *Model) RemoveLast() {
	if len(m.shapes) > 0 {
		m.shapes = m.shapes[:len(m.shapes)-1]
		return
	}
	if len(m.lines) > 0 {
		m.lines = m.lines[:len(m.lines)-1]
	}
}

// Lines returns the persisted lines in insertion order
func (m *Model) Lines() []Line { return m.lines }

// Shapes returns the persisted shapes in insertion order
func (m *Model) Shapes() []Shape { return m.shapes }

// Texts returns the persisted text annotations in insertion order
func (m *Model) Texts() []Text { return m.texts }

// Active returns the in-progress drawing, or nil when there is none
func (m *Model) Active() *ActiveDrawing { return m.active }
