package indicator

import (
	"math"
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
)

// DefaultRSIPeriod is the conventional RSI lookback
const DefaultRSIPeriod = 14

// ComputeRSI computes the Relative Strength Index with Wilder smoothing,
// aligned 1:1 with the input time sequence. When the series is shorter
// than period+1 the result is all-null rather than an error; the first
// 'period' positions are always null.
//
// When the average loss is zero, RS is pinned to 100 and the RSI reported
// as exactly 100. This is a fixed convention inherited from the charting
// frontend, not the mathematical limit; it is preserved verbatim so
// stored values stay comparable across versions.
func ComputeRSI(close []float64, times []time.Time, period int) []core.DataPoint {
	points := nullPoints(times)

	if period <= 0 || len(close) < period+1 {
		return points
	}

	// Seed the averages with the mean gain/loss over the first window
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := close[i] - close[i-1]
		avgGain += math.Max(delta, 0)
		avgLoss += math.Max(-delta, 0)
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	setPoint := func(index int) {
		if index >= len(points) {
			return
		}
		points[index].Value = core.Float(rsiValue(avgGain, avgLoss))
	}
	setPoint(period)

	// Wilder recurrence for the remaining positions
	for i := period + 1; i < len(close); i++ {
		delta := close[i] - close[i-1]
		gain := math.Max(delta, 0)
		loss := math.Max(-delta, 0)

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		setPoint(i)
	}

	return points
}

// rsiValue converts smoothed averages into a bounded RSI value,
// rounded to two decimals
func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		// RS pinned to 100, reported as a hard 100
		return 100
	}

	rs := avgGain / avgLoss
	return math.Round((100-100/(1+rs))*100) / 100
}
