package chart

import (
	"math"
	"strconv"

	"github.com/raykavin/chartdraw/pkg/core"
)

const (
	// rayExtent extends a ray by a fixed large multiple of its defining
	// segment so it visually reaches the surface edge
	rayExtent = 1000.0

	// handleRadius is the pixel radius of endpoint handle markers
	handleRadius = 4.0

	priceLabelSize   = 11.0
	priceLabelInsetX = 4.0
	priceLabelInsetY = 4.0
)

// Renderer projects the drawing model into pixel space on a canvas. It
// is stateless: the full surface is cleared and redrawn on every call,
// so identical model and viewport state yields a pixel-identical result.
type Renderer struct{}

// Draw clears the surface and redraws every primitive: lines first, then
// shapes, then texts, each in insertion order, and finally the active
// drawing on top. A primitive with any point outside the visible range
// is skipped entirely for this pass.
func (r Renderer) Draw(model *Model, viewport Viewport, canvas Canvas) {
	canvas.Clear()

	for _, line := range model.Lines() {
		r.drawLine(canvas, viewport, line)
	}
	for _, shape := range model.Shapes() {
		r.drawShape(canvas, viewport, shape)
	}
	for _, text := range model.Texts() {
		r.drawText(canvas, viewport, text)
	}

	r.drawActive(canvas, viewport, model.Active())
}

// drawActive renders the in-progress drawing with the same subtype rules
// as a persisted primitive; with fewer than two points there is no
// geometry to preview yet
func (r Renderer) drawActive(canvas Canvas, viewport Viewport, active *ActiveDrawing) {
	if active == nil || len(active.Points) < 2 {
		return
	}

	if active.Tool.IsLine() {
		r.drawLine(canvas, viewport, Line{
			Subtype: active.Tool,
			P1:      active.Points[0],
			P2:      active.Points[1],
			Style:   active.Style,
		})
		return
	}
	if active.Tool.IsShape() {
		r.drawShape(canvas, viewport, Shape{
			Subtype: active.Tool,
			P1:      active.Points[0],
			P2:      active.Points[1],
			Style:   active.Style,
		})
	}
}

func (r Renderer) drawLine(canvas Canvas, viewport Viewport, line Line) {
	p1, p2, ok := projectPair(viewport, line.P1, line.P2)
	if !ok {
		return
	}

	stroke := Stroke{Color: line.Style.Color, Width: line.Style.Width}

	switch line.Subtype {
	case ToolTrendline:
		canvas.StrokeLine(p1.X, p1.Y, p2.X, p2.Y, stroke)
		r.drawHandle(canvas, p1, line.Style.Color)
		r.drawHandle(canvas, p2, line.Style.Color)

	case ToolHorizontal:
		canvas.StrokeLine(0, p1.Y, viewport.Width(), p1.Y, stroke)
		canvas.FillText(viewport.Width()-priceLabelInsetX, p1.Y-priceLabelInsetY,
			formatPrice(line.P1.Price), TextStyle{
				Color:  line.Style.Color,
				Size:   priceLabelSize,
				Anchor: "end",
			})

	case ToolVertical:
		canvas.StrokeLine(p1.X, 0, p1.X, viewport.Height(), stroke)

	case ToolRay:
		dx, dy := p2.X-p1.X, p2.Y-p1.Y
		canvas.StrokeLine(p1.X, p1.Y, p1.X+dx*rayExtent, p1.Y+dy*rayExtent, stroke)
		r.drawHandle(canvas, p1, line.Style.Color)
	}
}

func (r Renderer) drawShape(canvas Canvas, viewport Viewport, shape Shape) {
	p1, p2, ok := projectPair(viewport, shape.P1, shape.P2)
	if !ok {
		return
	}

	stroke := Stroke{Color: shape.Style.Color, Width: shape.Style.Width}

	switch shape.Subtype {
	case ToolRectangle:
		x, y := math.Min(p1.X, p2.X), math.Min(p1.Y, p2.Y)
		w, h := math.Abs(p2.X-p1.X), math.Abs(p2.Y-p1.Y)
		if shape.Style.Fill != "" {
			canvas.FillRect(x, y, w, h, shape.Style.Fill)
		}
		canvas.StrokeRect(x, y, w, h, stroke)
		for _, corner := range []XY{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
			r.drawHandle(canvas, corner, shape.Style.Color)
		}

	case ToolCircle:
		radius := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
		if shape.Style.Fill != "" {
			canvas.FillCircle(p1.X, p1.Y, radius, shape.Style.Fill)
		}
		canvas.StrokeCircle(p1.X, p1.Y, radius, stroke)
		r.drawHandle(canvas, p1, shape.Style.Color)
		r.drawHandle(canvas, p2, shape.Style.Color)

	case ToolTriangle:
		// Apex above a base centered on the apex x: the base corners are
		// point 2 and its mirror around the apex
		apex := XY{p1.X, p1.Y}
		left := XY{2*p1.X - p2.X, p2.Y}
		right := XY{p2.X, p2.Y}
		vertices := []XY{apex, left, right}

		if shape.Style.Fill != "" {
			canvas.FillPolygon(vertices, shape.Style.Fill)
		}
		canvas.StrokePolygon(vertices, stroke)
		for _, vertex := range vertices {
			r.drawHandle(canvas, vertex, shape.Style.Color)
		}
	}
}

func (r Renderer) drawText(canvas Canvas, viewport Viewport, text Text) {
	at, ok := project(viewport, text.At)
	if !ok {
		return
	}
	canvas.FillText(at.X, at.Y, text.Content, TextStyle{Color: text.Color, Size: text.Size})
}

func (r Renderer) drawHandle(canvas Canvas, at XY, color string) {
	canvas.FillCircle(at.X, at.Y, handleRadius, color)
}

// project maps a domain point into pixel space; false means the point is
// outside the visible range and the caller must omit the primitive
func project(viewport Viewport, p core.Point) (XY, bool) {
	x, ok := viewport.TimeToX(p.Time)
	if !ok {
		return XY{}, false
	}
	y, ok := viewport.PriceToY(p.Price)
	if !ok {
		return XY{}, false
	}
	return XY{X: x, Y: y}, true
}

// projectPair maps both points of a two-point primitive; failure of
// either lookup rejects the pair
func projectPair(viewport Viewport, a, b core.Point) (XY, XY, bool) {
	p1, ok := project(viewport, a)
	if !ok {
		return XY{}, XY{}, false
	}
	p2, ok := project(viewport, b)
	if !ok {
		return XY{}, XY{}, false
	}
	return p1, p2, true
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
