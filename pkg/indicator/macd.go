package indicator

import (
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
)

// MACDConfig holds the periods for the MACD computation
type MACDConfig struct {
	Fast   int
	Slow   int
	Signal int
}

// DefaultMACDConfig returns the conventional 12/26/9 configuration
func DefaultMACDConfig() MACDConfig {
	return MACDConfig{Fast: 12, Slow: 26, Signal: 9}
}

// MACDPoint is a single MACD output aligned to an input timestamp.
// Nil fields mark positions with insufficient lookback.
type MACDPoint struct {
	Time      time.Time `json:"time"`
	MACD      *float64  `json:"macd"`
	Signal    *float64  `json:"signal"`
	Histogram *float64  `json:"histogram"`
}

// ComputeMACD computes the MACD line, signal line and histogram aligned
// 1:1 with the input time sequence. When the series is shorter than the
// slow period the result is all-null rather than an error. Positions
// before slow-1 are null in all three fields; the histogram is defined
// only where both the MACD and signal values are.
//
// The fast EMA is offset by fast-1 against the slow EMA when forming the
// MACD line. That offset is kept as-is for behavioral compatibility with
// the charting frontends consuming this series.
func ComputeMACD(close []float64, times []time.Time, config MACDConfig) []MACDPoint {
	points := make([]MACDPoint, len(times))
	for i, t := range times {
		points[i] = MACDPoint{Time: t}
	}

	if len(close) < config.Slow {
		return points
	}

	fastEMA := EMA(close, config.Fast)
	slowEMA := EMA(close, config.Slow)

	macdLine := make([]float64, 0, len(slowEMA))
	for i := range slowEMA {
		j := i + config.Fast - 1
		if j >= len(fastEMA) {
			break
		}
		macdLine = append(macdLine, fastEMA[j]-slowEMA[i])
	}

	signalLine := EMA(macdLine, config.Signal)

	// MACD values start where the slow EMA becomes defined
	offset := config.Slow - 1
	for i, v := range macdLine {
		if offset+i >= len(points) {
			break
		}
		points[offset+i].MACD = core.Float(v)
	}

	// The signal line trails the MACD line by its own warmup
	signalOffset := offset + config.Signal - 1
	for i, v := range signalLine {
		if signalOffset+i >= len(points) {
			break
		}
		points[signalOffset+i].Signal = core.Float(v)
	}

	for i := range points {
		if points[i].MACD != nil && points[i].Signal != nil {
			points[i].Histogram = core.Float(*points[i].MACD - *points[i].Signal)
		}
	}

	return points
}
