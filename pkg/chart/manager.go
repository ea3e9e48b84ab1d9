package chart

import (
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/raykavin/chartdraw/pkg/logger"
)

// Surface is the host-provided drawing surface acquisition point. An
// acquisition error means the host container is missing; the manager
// then stays inert rather than surfacing the failure.
type Surface interface {
	Acquire() (Canvas, error)
	Release()
}

// SVGSurface is a Surface backed by an in-memory SVG canvas
type SVGSurface struct {
	canvas *SVGCanvas
}

// NewSVGSurface creates a surface of the given pixel size
func NewSVGSurface(width, height float64) *SVGSurface {
	return &SVGSurface{canvas: NewSVGCanvas(width, height)}
}

// Acquire returns the backing canvas
func (s *SVGSurface) Acquire() (Canvas, error) {
	if s.canvas == nil {
		return nil, core.ErrSurfaceUnavailable
	}
	return s.canvas, nil
}

// Release drops the reference to the backing canvas
func (s *SVGSurface) Release() {}

// Canvas returns the backing SVG canvas for snapshot output
func (s *SVGSurface) Canvas() *SVGCanvas { return s.canvas }

// adjustableViewport is implemented by host viewports that let the
// manager apply view-range and resize events directly
type adjustableViewport interface {
	SetTimeRange(start, end time.Time)
	Resize(width, height float64)
}

// resizableCanvas is implemented by canvases whose surface dimensions
// can follow container resizes
type resizableCanvas interface {
	Resize(width, height float64)
}

// Manager ties the drawing model, interaction state machine and render
// pipeline to a host surface and event feed. All methods are expected to
// run on the host's single-threaded dispatch loop; rendering completes
// synchronously inside the triggering callback.
//
// When the surface cannot be acquired at attach time the manager is a
// no-op: every operation degrades silently and nothing is drawn.
type Manager struct {
	log         logger.Logger
	model       *Model
	interaction *Interaction
	renderer    Renderer
	viewport    Viewport
	surface     Surface
	feed        *EventFeed

	canvas    Canvas
	subID     int64
	attached  bool
	dataframe *core.Dataframe
}

// ManagerOption configures a Manager instance
type ManagerOption func(*Manager)

// WithRenderer overrides the default renderer
func WithRenderer(renderer Renderer) ManagerOption {
	return func(m *Manager) {
		m.renderer = renderer
	}
}

// NewManager creates a detached manager bound to a host surface,
// viewport and event feed
func NewManager(log logger.Logger, surface Surface, viewport Viewport, feed *EventFeed, options ...ManagerOption) *Manager {
	manager := &Manager{
		log:      log,
		surface:  surface,
		viewport: viewport,
		feed:     feed,
		model:    NewModel(),
	}
	manager.interaction = NewInteraction(manager.model)

	for _, option := range options {
		option(manager)
	}

	return manager
}

// Attach acquires the drawing surface and installs the event
// subscription. A missing surface aborts setup silently, leaving the
// manager inert; attaching twice is a no-op, so a remount cannot stack
// duplicate subscriptions.
func (m *Manager) Attach() {
	if m.attached {
		return
	}

	canvas, err := m.surface.Acquire()
	if err != nil {
		m.log.WithError(err).Debug("chart: surface unavailable, drawing tools disabled")
		return
	}

	m.canvas = canvas
	m.subID = m.feed.Subscribe(m.onEvent)
	m.attached = true
	m.redraw()
}

// Detach removes the event subscription and releases the surface. Safe
// to call in any state and on every exit path.
func (m *Manager) Detach() {
	if !m.attached {
		return
	}

	m.feed.Unsubscribe(m.subID)
	m.surface.Release()
	m.canvas = nil
	m.attached = false
}

// Destroy clears the drawing collections and detaches from the host
func (m *Manager) Destroy() {
	m.model.ClearAll()
	m.model.Cancel()
	m.Detach()
}

// Attached reports whether the manager holds a live surface
func (m *Manager) Attached() bool { return m.attached }

// Model exposes the drawing model for read access (serialization,
// inspection); mutation goes through the manager surface
func (m *Manager) Model() *Model { return m.model }

// Interaction exposes the interaction state for inspection
func (m *Manager) Interaction() *Interaction { return m.interaction }

// Dataframe returns the current candle dataframe, nil before the first
// refresh
func (m *Manager) Dataframe() *core.Dataframe { return m.dataframe }

// SetCandles replaces the candle data wholesale and triggers a redraw.
// There is no incremental append: every refresh rebuilds the dataframe.
func (m *Manager) SetCandles(pair string, candles []core.Candle) {
	m.dataframe = core.NewDataframe(pair, candles)
	if m.attached {
		m.redraw()
	}
}

// SelectTool arms a drawing tool, discarding any in-progress drawing
func (m *Manager) SelectTool(tool Tool) {
	if !m.attached {
		return
	}
	m.interaction.SelectTool(tool)
	m.redraw()
}

// PointerDown anchors the first point of a new drawing
func (m *Manager) PointerDown(point core.Point) {
	if !m.attached {
		return
	}
	m.interaction.PointerDown(point)
	m.redraw()
}

// PointerMove updates the live preview point
func (m *Manager) PointerMove(point core.Point) {
	if !m.attached {
		return
	}
	m.interaction.PointerMove(point)
	m.redraw()
}

// PointerUp commits the in-progress drawing
func (m *Manager) PointerUp() {
	if !m.attached {
		return
	}
	m.interaction.PointerUp()
	m.redraw()
}

// Cancel discards the in-progress drawing unsaved
func (m *Manager) Cancel() {
	if !m.attached {
		return
	}
	m.interaction.Cancel()
	m.redraw()
}

// AddText persists a text annotation at the given domain point
func (m *Manager) AddText(at core.Point, content string) {
	if !m.attached {
		return
	}
	m.model.AddText(at, content)
	m.redraw()
}

// ClearAll removes every persisted primitive
func (m *Manager) ClearAll() {
	if !m.attached {
		return
	}
	m.model.ClearAll()
	m.redraw()
}

// RemoveLast pops the most recent shape, or line when no shapes remain
func (m *Manager) RemoveLast() {
	if !m.attached {
		return
	}
	m.model.RemoveLast()
	m.redraw()
}

// Snapshot returns the rendered surface bytes when the backing canvas
// can serialize itself, as the SVG canvas does
func (m *Manager) Snapshot() ([]byte, bool) {
	if !m.attached {
		return nil, false
	}
	canvas, ok := m.canvas.(interface{ Bytes() []byte })
	if !ok {
		return nil, false
	}
	return canvas.Bytes(), true
}

// onEvent applies host view events and redraws synchronously
func (m *Manager) onEvent(event Event) {
	switch event.Kind {
	case EventViewChanged:
		if viewport, ok := m.viewport.(adjustableViewport); ok && !event.Start.IsZero() {
			viewport.SetTimeRange(event.Start, event.End)
		}
	case EventResized:
		if viewport, ok := m.viewport.(adjustableViewport); ok && event.Width > 0 {
			viewport.Resize(event.Width, event.Height)
		}
		if canvas, ok := m.canvas.(resizableCanvas); ok && event.Width > 0 {
			canvas.Resize(event.Width, event.Height)
		}
	}
	m.redraw()
}

// redraw runs the render pipeline; it owns the surface exclusively
func (m *Manager) redraw() {
	if !m.attached {
		return
	}
	m.renderer.Draw(m.model, m.viewport, m.canvas)
}
