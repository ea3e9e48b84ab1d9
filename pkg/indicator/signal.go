package indicator

import (
	"github.com/raykavin/chartdraw/pkg/core"
)

// Signal classifies how the close price relates to an indicator series
// on the newest candle
type Signal string

const (
	SignalNone      Signal = ""
	SignalCrossUp   Signal = "cross-up"
	SignalCrossDown Signal = "cross-down"
)

// DetectCross reports whether the close series crossed the indicator on
// the newest candle. The comparison needs the last two positions of
// both inputs; a null indicator value in that window yields SignalNone.
func DetectCross(dataframe *core.Dataframe, points []core.DataPoint) Signal {
	sampled := dataframe.Sample(2)
	if sampled.Close.Length() < 2 || len(points) < 2 {
		return SignalNone
	}

	tail := points[len(points)-2:]
	if tail[0].Value == nil || tail[1].Value == nil {
		return SignalNone
	}

	values := core.Series[float64]{*tail[0].Value, *tail[1].Value}
	switch {
	case sampled.Close.Crossover(values):
		return SignalCrossUp
	case sampled.Close.Crossunder(values):
		return SignalCrossDown
	}
	return SignalNone
}
