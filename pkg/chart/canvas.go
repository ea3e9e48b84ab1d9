package chart

// Stroke describes the outline style of a drawn element
type Stroke struct {
	Color string
	Width float64
}

// TextStyle describes rendered text
type TextStyle struct {
	Color  string
	Size   float64
	Anchor string // "start" (default) or "end"
}

// XY is a pixel coordinate pair
type XY struct {
	X float64
	Y float64
}

// Canvas is the 2D drawing surface the render pipeline writes to. The
// renderer is the sole writer: no other component touches the surface.
// All coordinates are pixels with the origin at the top-left corner.
type Canvas interface {
	// Clear erases the entire surface
	Clear()

	StrokeLine(x1, y1, x2, y2 float64, stroke Stroke)
	StrokeRect(x, y, w, h float64, stroke Stroke)
	FillRect(x, y, w, h float64, color string)
	StrokeCircle(cx, cy, r float64, stroke Stroke)
	FillCircle(cx, cy, r float64, color string)
	StrokePolygon(points []XY, stroke Stroke)
	FillPolygon(points []XY, color string)
	FillText(x, y float64, content string, style TextStyle)
}
