package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type canvasOp struct {
	kind  string
	args  []float64
	color string
	text  string
}

// recordingCanvas captures the operation stream for assertions
type recordingCanvas struct {
	clears int
	ops    []canvasOp
}

func (r *recordingCanvas) Clear() {
	r.clears++
	r.ops = r.ops[:0]
}

func (r *recordingCanvas) StrokeLine(x1, y1, x2, y2 float64, stroke Stroke) {
	r.ops = append(r.ops, canvasOp{kind: "line", args: []float64{x1, y1, x2, y2}, color: stroke.Color})
}

func (r *recordingCanvas) StrokeRect(x, y, w, h float64, stroke Stroke) {
	r.ops = append(r.ops, canvasOp{kind: "strokeRect", args: []float64{x, y, w, h}, color: stroke.Color})
}

func (r *recordingCanvas) FillRect(x, y, w, h float64, color string) {
	r.ops = append(r.ops, canvasOp{kind: "fillRect", args: []float64{x, y, w, h}, color: color})
}

func (r *recordingCanvas) StrokeCircle(cx, cy, radius float64, stroke Stroke) {
	r.ops = append(r.ops, canvasOp{kind: "strokeCircle", args: []float64{cx, cy, radius}, color: stroke.Color})
}

func (r *recordingCanvas) FillCircle(cx, cy, radius float64, color string) {
	r.ops = append(r.ops, canvasOp{kind: "fillCircle", args: []float64{cx, cy, radius}, color: color})
}

func (r *recordingCanvas) StrokePolygon(points []XY, stroke Stroke) {
	r.ops = append(r.ops, canvasOp{kind: "strokePolygon", args: flatten(points), color: stroke.Color})
}

func (r *recordingCanvas) FillPolygon(points []XY, color string) {
	r.ops = append(r.ops, canvasOp{kind: "fillPolygon", args: flatten(points), color: color})
}

func (r *recordingCanvas) FillText(x, y float64, content string, style TextStyle) {
	r.ops = append(r.ops, canvasOp{kind: "text", args: []float64{x, y}, color: style.Color, text: content})
}

func flatten(points []XY) []float64 {
	args := make([]float64, 0, len(points)*2)
	for _, p := range points {
		args = append(args, p.X, p.Y)
	}
	return args
}

func (r *recordingCanvas) kinds() []string {
	kinds := make([]string, len(r.ops))
	for i, op := range r.ops {
		kinds[i] = op.kind
	}
	return kinds
}

// testViewport covers unix seconds [0,100], prices [0,200], on 800x400
func testViewport() *LinearViewport {
	return NewLinearViewport(
		time.Unix(0, 0).UTC(), time.Unix(100, 0).UTC(),
		0, 200, 800, 400,
	)
}

func drawPrimitive(model *Model, tool Tool, p1, p2 int) {
	model.Start(tool, domainPoint(int64(p1), float64(p1)*10))
	model.Continue(domainPoint(int64(p2), float64(p2)*10))
	model.Finish()
}

func TestRenderer_TrendlineProjection(t *testing.T) {
	model := NewModel()
	drawPrimitive(model, ToolTrendline, 10, 20)

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)

	require.Equal(t, 1, canvas.clears)
	require.Equal(t, []string{"line", "fillCircle", "fillCircle"}, canvas.kinds())

	// time 10 -> x 80; price 100 -> y 200 (y axis inverted)
	line := canvas.ops[0]
	require.InDelta(t, 80, line.args[0], 1e-9)
	require.InDelta(t, 200, line.args[1], 1e-9)
	require.InDelta(t, 160, line.args[2], 1e-9)
	require.InDelta(t, 0, line.args[3], 1e-9)
}

func TestRenderer_SkipsUnmappablePrimitive(t *testing.T) {
	model := NewModel()
	model.Start(ToolTrendline, domainPoint(10, 100))
	model.Continue(domainPoint(500, 110)) // outside the visible time range
	model.Finish()

	canvas := &recordingCanvas{}
	require.NotPanics(t, func() {
		Renderer{}.Draw(model, testViewport(), canvas)
	})

	require.Equal(t, 1, canvas.clears)
	require.Empty(t, canvas.ops, "a primitive with any unmapped point is omitted entirely")
}

func TestRenderer_LinesDrawUnderShapes(t *testing.T) {
	model := NewModel()
	// Shape created first; lines must still be rendered before shapes
	drawPrimitive(model, ToolRectangle, 10, 20)
	drawPrimitive(model, ToolTrendline, 5, 15)

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)

	require.Equal(t, "line", canvas.ops[0].kind)
}

func TestRenderer_HorizontalLine(t *testing.T) {
	model := NewModel()
	drawPrimitive(model, ToolHorizontal, 10, 20)

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)

	require.Equal(t, []string{"line", "text"}, canvas.kinds())

	line := canvas.ops[0]
	require.InDelta(t, 0, line.args[0], 1e-9)
	require.InDelta(t, 800, line.args[2], 1e-9)
	require.InDelta(t, line.args[1], line.args[3], 1e-9)

	label := canvas.ops[1]
	require.Equal(t, "100.00", label.text)
}

func TestRenderer_VerticalLine(t *testing.T) {
	model := NewModel()
	drawPrimitive(model, ToolVertical, 10, 20)

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)

	require.Equal(t, []string{"line"}, canvas.kinds())
	line := canvas.ops[0]
	require.InDelta(t, 80, line.args[0], 1e-9)
	require.InDelta(t, 0, line.args[1], 1e-9)
	require.InDelta(t, 80, line.args[2], 1e-9)
	require.InDelta(t, 400, line.args[3], 1e-9)
}

func TestRenderer_RayExtension(t *testing.T) {
	model := NewModel()
	drawPrimitive(model, ToolRay, 10, 20)

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)

	require.Equal(t, []string{"line", "fillCircle"}, canvas.kinds())
	line := canvas.ops[0]

	// Extended far beyond the defining segment: x = 80 + (160-80)*rayExtent
	require.InDelta(t, 80+(160-80)*rayExtent, line.args[2], 1e-6)
	require.Greater(t, line.args[2], testViewport().Width())
}

func TestRenderer_CircleRadius(t *testing.T) {
	model := NewModel()
	drawPrimitive(model, ToolCircle, 10, 20)

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)

	require.Equal(t, []string{"fillCircle", "strokeCircle", "fillCircle", "fillCircle"}, canvas.kinds())

	// center (80,200), edge point (160,0): radius = hypot(80,200)
	stroked := canvas.ops[1]
	require.InDelta(t, 80, stroked.args[0], 1e-9)
	require.InDelta(t, 200, stroked.args[1], 1e-9)
	require.InDelta(t, 215.40659228538015, stroked.args[2], 1e-6)
}

func TestRenderer_TriangleMirroredBase(t *testing.T) {
	model := NewModel()
	drawPrimitive(model, ToolTriangle, 10, 20)

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)

	kinds := canvas.kinds()
	require.Equal(t, "fillPolygon", kinds[0])
	require.Equal(t, "strokePolygon", kinds[1])

	// apex (80,200); p2 (160,0); mirrored corner (0,0)
	require.Equal(t, []float64{80, 200, 0, 0, 160, 0}, canvas.ops[1].args)
}

func TestRenderer_RectangleNormalizesCorners(t *testing.T) {
	model := NewModel()
	// Drag up-left: p2 above and left of p1
	model.Start(ToolRectangle, domainPoint(20, 100))
	model.Continue(domainPoint(10, 150))
	model.Finish()

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)

	stroked := canvas.ops[1]
	require.Equal(t, "strokeRect", stroked.kind)
	require.InDelta(t, 80, stroked.args[0], 1e-9)  // min x
	require.InDelta(t, 100, stroked.args[1], 1e-9) // min y (price 150)
	require.InDelta(t, 80, stroked.args[2], 1e-9)  // width
	require.InDelta(t, 100, stroked.args[3], 1e-9) // height
}

func TestRenderer_ActiveDrawingOnTop(t *testing.T) {
	model := NewModel()
	drawPrimitive(model, ToolTrendline, 10, 20)
	model.Start(ToolCircle, domainPoint(30, 100))
	model.Continue(domainPoint(40, 120))

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)

	kinds := canvas.kinds()
	require.Equal(t, "strokeCircle", kinds[len(kinds)-3], "active preview renders after persisted primitives")
}

func TestRenderer_ActiveWithSinglePointNotRendered(t *testing.T) {
	model := NewModel()
	model.Start(ToolTrendline, domainPoint(10, 100))

	canvas := &recordingCanvas{}
	Renderer{}.Draw(model, testViewport(), canvas)
	require.Empty(t, canvas.ops)
}

func TestRenderer_IdempotentSVGOutput(t *testing.T) {
	model := NewModel()
	drawPrimitive(model, ToolTrendline, 10, 20)
	drawPrimitive(model, ToolRectangle, 5, 15)
	model.AddText(domainPoint(60, 80), "note")

	viewport := testViewport()
	canvas := NewSVGCanvas(viewport.Width(), viewport.Height())

	Renderer{}.Draw(model, viewport, canvas)
	first := string(canvas.Bytes())

	Renderer{}.Draw(model, viewport, canvas)
	second := string(canvas.Bytes())

	require.NotEmpty(t, first)
	require.Equal(t, first, second, "identical model and mapper output must repaint identically")
}
