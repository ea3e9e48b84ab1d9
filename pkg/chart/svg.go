package chart

import (
	"bytes"
	"fmt"
	"html"
)

// SVGCanvas renders canvas operations into an SVG document. Output is
// deterministic for a given operation sequence, so repeated draws of an
// identical model through an identical viewport are byte-identical.
type SVGCanvas struct {
	width    float64
	height   float64
	elements []string
}

// NewSVGCanvas creates an empty SVG surface with the given pixel size
func NewSVGCanvas(width, height float64) *SVGCanvas {
	return &SVGCanvas{width: width, height: height}
}

// Clear erases all drawn elements
func (s *SVGCanvas) Clear() {
	s.elements = s.elements[:0]
}

// Resize changes the surface dimensions and erases its content
func (s *SVGCanvas) Resize(width, height float64) {
	s.width, s.height = width, height
	s.Clear()
}

// StrokeLine draws a straight segment
func (s *SVGCanvas) StrokeLine(x1, y1, x2, y2 float64, stroke Stroke) {
	s.add("<line x1='%.2f' y1='%.2f' x2='%.2f' y2='%.2f' stroke='%s' stroke-width='%.1f' />",
		x1, y1, x2, y2, stroke.Color, stroke.Width)
}

// StrokeRect draws a rectangle outline
func (s *SVGCanvas) StrokeRect(x, y, w, h float64, stroke Stroke) {
	s.add("<rect x='%.2f' y='%.2f' width='%.2f' height='%.2f' fill='none' stroke='%s' stroke-width='%.1f' />",
		x, y, w, h, stroke.Color, stroke.Width)
}

// FillRect draws a filled rectangle
func (s *SVGCanvas) FillRect(x, y, w, h float64, color string) {
	s.add("<rect x='%.2f' y='%.2f' width='%.2f' height='%.2f' fill='%s' />",
		x, y, w, h, color)
}

// StrokeCircle draws a circle outline
func (s *SVGCanvas) StrokeCircle(cx, cy, r float64, stroke Stroke) {
	s.add("<circle cx='%.2f' cy='%.2f' r='%.2f' fill='none' stroke='%s' stroke-width='%.1f' />",
		cx, cy, r, stroke.Color, stroke.Width)
}

// FillCircle draws a filled circle
func (s *SVGCanvas) FillCircle(cx, cy, r float64, color string) {
	s.add("<circle cx='%.2f' cy='%.2f' r='%.2f' fill='%s' />", cx, cy, r, color)
}

// StrokePolygon draws a closed polygon outline
func (s *SVGCanvas) StrokePolygon(points []XY, stroke Stroke) {
	s.add("<polygon points='%s' fill='none' stroke='%s' stroke-width='%.1f' />",
		polygonPoints(points), stroke.Color, stroke.Width)
}

// FillPolygon draws a filled closed polygon
func (s *SVGCanvas) FillPolygon(points []XY, color string) {
	s.add("<polygon points='%s' fill='%s' />", polygonPoints(points), color)
}

// FillText draws a text run anchored at the given position. Content is
// caller-provided and must be entity-escaped to keep the document valid.
func (s *SVGCanvas) FillText(x, y float64, content string, style TextStyle) {
	anchor := style.Anchor
	if anchor == "" {
		anchor = "start"
	}
	s.add("<text x='%.2f' y='%.2f' fill='%s' font-size='%.1f' text-anchor='%s'>%s</text>",
		x, y, style.Color, style.Size, anchor, html.EscapeString(content))
}

// Bytes returns the complete SVG document
func (s *SVGCanvas) Bytes() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<svg xmlns='http://www.w3.org/2000/svg' width='%.0f' height='%.0f' viewBox='0 0 %.0f %.0f'>",
		s.width, s.height, s.width, s.height)
	for _, e := range s.elements {
		b.WriteString(e)
	}
	b.WriteString("</svg>")
	return b.Bytes()
}

func (s *SVGCanvas) add(format string, args ...any) {
	s.elements = append(s.elements, fmt.Sprintf(format, args...))
}

func polygonPoints(points []XY) string {
	var b bytes.Buffer
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	return b.String()
}
