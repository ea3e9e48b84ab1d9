package chart

import (
	"github.com/raykavin/chartdraw/pkg/core"
)

// Tool identifies a drawing tool and doubles as the persisted primitive
// subtype
type Tool string

const (
	ToolTrendline  Tool = "trendline"
	ToolHorizontal Tool = "horizontal"
	ToolVertical   Tool = "vertical"
	ToolRay        Tool = "ray"
	ToolRectangle  Tool = "rectangle"
	ToolCircle     Tool = "circle"
	ToolTriangle   Tool = "triangle"
	ToolText       Tool = "text"
)

// IsLine reports whether the tool produces a line primitive
func (t Tool) IsLine() bool {
	switch t {
	case ToolTrendline, ToolHorizontal, ToolVertical, ToolRay:
		return true
	}
	return false
}

// IsShape reports whether the tool produces a shape primitive
func (t Tool) IsShape() bool {
	switch t {
	case ToolRectangle, ToolCircle, ToolTriangle:
		return true
	}
	return false
}

// Style carries the visual attributes bound to a primitive at creation
// time. Primitives are never restyled afterwards.
type Style struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Fill  string  `json:"fill,omitempty"`
}

// defaultStyles binds each tool to the style a new drawing starts with
var defaultStyles = map[Tool]Style{
	ToolTrendline:  {Color: "#2962ff", Width: 2},
	ToolHorizontal: {Color: "#787b86", Width: 1},
	ToolVertical:   {Color: "#787b86", Width: 1},
	ToolRay:        {Color: "#2962ff", Width: 2},
	ToolRectangle:  {Color: "#2962ff", Width: 1, Fill: "rgba(41,98,255,0.15)"},
	ToolCircle:     {Color: "#f23645", Width: 1, Fill: "rgba(242,54,69,0.15)"},
	ToolTriangle:   {Color: "#089981", Width: 1, Fill: "rgba(8,153,129,0.15)"},
	ToolText:       {Color: "#d1d4dc", Width: 14},
}

// DefaultStyle returns the creation-time style for a tool
func DefaultStyle(tool Tool) Style {
	if style, ok := defaultStyles[tool]; ok {
		return style
	}
	return Style{Color: "#2962ff", Width: 1}
}

// Line is a persisted line primitive in domain coordinates. A persisted
// line always holds exactly two points, even for subtypes that only use
// the first one when rendered.
type Line struct {
	ID      int64      `json:"id"`
	Subtype Tool       `json:"subtype"`
	P1      core.Point `json:"p1"`
	P2      core.Point `json:"p2"`
	Style   Style      `json:"style"`
}

// Shape is a persisted shape primitive; the two points bound its geometry
type Shape struct {
	ID      int64      `json:"id"`
	Subtype Tool       `json:"subtype"`
	P1      core.Point `json:"p1"`
	P2      core.Point `json:"p2"`
	Style   Style      `json:"style"`
}

// Text is a persisted text annotation anchored at a single domain point
type Text struct {
	ID      int64      `json:"id"`
	At      core.Point `json:"at"`
	Content string     `json:"content"`
	Color   string     `json:"color"`
	Size    float64    `json:"size"`
}

// ActiveDrawing is the single transient in-progress primitive. It becomes
// a persisted Line or Shape on finish, or is discarded.
type ActiveDrawing struct {
	Tool   Tool
	Points []core.Point // at most two for the 2-point tools
	Style  Style
}
