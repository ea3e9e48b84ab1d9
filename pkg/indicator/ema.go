package indicator

import (
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
)

// EMA computes an exponential moving average over the series.
// The first output is the arithmetic mean of the first 'period' inputs;
// each subsequent value follows v = (x - prev)*mult + prev with
// mult = 2/(period+1). The warmup positions are trimmed, so the output
// length is len(series) - period + 1. Inputs shorter than the period
// yield an empty output.
func EMA(series []float64, period int) []float64 {
	if period <= 0 || len(series) < period {
		return []float64{}
	}

	multiplier := 2.0 / float64(period+1)

	// Seed with the simple average of the first window
	var sum float64
	for _, v := range series[:period] {
		sum += v
	}

	values := make([]float64, 0, len(series)-period+1)
	prev := sum / float64(period)
	values = append(values, prev)

	for _, v := range series[period:] {
		prev = (v-prev)*multiplier + prev
		values = append(values, prev)
	}

	return values
}

// ComputeEMA returns the EMA aligned 1:1 with the input time sequence.
// Positions before the first full window are null.
func ComputeEMA(close []float64, times []time.Time, period int) []core.DataPoint {
	points := nullPoints(times)

	values := EMA(close, period)
	if len(values) == 0 {
		return points
	}

	offset := period - 1
	for i, v := range values {
		if offset+i >= len(points) {
			break
		}
		points[offset+i].Value = core.Float(v)
	}

	return points
}

// nullPoints builds an all-null series aligned to the given timestamps
func nullPoints(times []time.Time) []core.DataPoint {
	points := make([]core.DataPoint, len(times))
	for i, t := range times {
		points[i] = core.DataPoint{Time: t}
	}
	return points
}
