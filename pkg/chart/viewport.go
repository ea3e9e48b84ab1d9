package chart

import (
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
)

// Viewport is the narrow capability surface the host chart exposes for
// coordinate projection. Both lookups are partial: the boolean is false
// when the domain coordinate falls outside the currently plotted range,
// which is a normal outcome and never an error.
type Viewport interface {
	TimeToX(t time.Time) (float64, bool)
	PriceToY(price float64) (float64, bool)
	Width() float64
	Height() float64
}

// LinearViewport projects a visible time/price window linearly onto a
// pixel surface. It is the host-side mapper used by the chart server,
// the snapshot command and the tests.
type LinearViewport struct {
	start, end time.Time
	min, max   float64
	width      float64
	height     float64
}

// NewLinearViewport creates a viewport over the given visible window
func NewLinearViewport(start, end time.Time, minPrice, maxPrice, width, height float64) *LinearViewport {
	return &LinearViewport{
		start:  start,
		end:    end,
		min:    minPrice,
		max:    maxPrice,
		width:  width,
		height: height,
	}
}

// ViewportFromCandles derives a visible window covering the full candle
// range with a small vertical margin
func ViewportFromCandles(candles []core.Candle, width, height float64) *LinearViewport {
	if len(candles) == 0 {
		return NewLinearViewport(time.Time{}, time.Time{}, 0, 0, width, height)
	}

	min, max := candles[0].Low, candles[0].High
	for _, c := range candles {
		if c.Low < min {
			min = c.Low
		}
		if c.High > max {
			max = c.High
		}
	}

	margin := (max - min) * 0.05
	return NewLinearViewport(
		candles[0].Time,
		candles[len(candles)-1].Time,
		min-margin,
		max+margin,
		width,
		height,
	)
}

// TimeToX maps a timestamp to a horizontal pixel position
func (v *LinearViewport) TimeToX(t time.Time) (float64, bool) {
	span := v.end.Sub(v.start)
	if span <= 0 || t.Before(v.start) || t.After(v.end) {
		return 0, false
	}
	return float64(t.Sub(v.start)) / float64(span) * v.width, true
}

// PriceToY maps a price to a vertical pixel position, y grows downward
func (v *LinearViewport) PriceToY(price float64) (float64, bool) {
	span := v.max - v.min
	if span <= 0 || price < v.min || price > v.max {
		return 0, false
	}
	return v.height - (price-v.min)/span*v.height, true
}

// Width returns the surface width in pixels
func (v *LinearViewport) Width() float64 { return v.width }

// Height returns the surface height in pixels
func (v *LinearViewport) Height() float64 { return v.height }

// SetTimeRange moves the visible time window
func (v *LinearViewport) SetTimeRange(start, end time.Time) {
	v.start, v.end = start, end
}

// SetPriceRange moves the visible price window
func (v *LinearViewport) SetPriceRange(min, max float64) {
	v.min, v.max = min, max
}

// Resize updates the pixel dimensions of the surface
func (v *LinearViewport) Resize(width, height float64) {
	v.width, v.height = width, height
}
