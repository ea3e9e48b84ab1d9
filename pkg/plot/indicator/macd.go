package indicator

import (
	"fmt"

	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/raykavin/chartdraw/pkg/indicator"
	"github.com/raykavin/chartdraw/pkg/plot"
)

// MACD creates a new Moving Average Convergence Divergence indicator
// fast: the fast period
// slow: the slow period
// signal: the signal period
// colorMACD: color for the MACD line
// colorMACDSignal: color for the signal line
// colorMACDHist: color for the histogram
func MACD(fast, slow, signal int, colorMACD, colorMACDSignal, colorMACDHist string) plot.Indicator {
	return &macd{
		Config:          indicator.MACDConfig{Fast: fast, Slow: slow, Signal: signal},
		ColorMACD:       colorMACD,
		ColorMACDSignal: colorMACDSignal,
		ColorMACDHist:   colorMACDHist,
	}
}

type macd struct {
	BaseIndicator
	Config           indicator.MACDConfig
	ColorMACD        string
	ColorMACDSignal  string
	ColorMACDHist    string
	ValuesMACD       []*float64
	ValuesMACDSignal []*float64
	ValuesMACDHist   []*float64
}

// Warmup returns the number of candles needed to calculate the indicator
func (m macd) Warmup() int {
	return m.Config.Slow + m.Config.Signal
}

// Name returns the formatted name of the indicator
func (m macd) Name() string {
	return fmt.Sprintf("MACD(%d, %d, %d)", m.Config.Fast, m.Config.Slow, m.Config.Signal)
}

// Overlay returns true if the indicator should be drawn on the price chart
func (m macd) Overlay() bool {
	return false
}

// Load calculates the indicator values from the provided dataframe
func (m *macd) Load(dataframe *core.Dataframe) {
	points := indicator.ComputeMACD(dataframe.Close, dataframe.Time, m.Config)

	m.ValuesMACD = make([]*float64, len(points))
	m.ValuesMACDSignal = make([]*float64, len(points))
	m.ValuesMACDHist = make([]*float64, len(points))
	for i, p := range points {
		m.ValuesMACD[i] = p.MACD
		m.ValuesMACDSignal[i] = p.Signal
		m.ValuesMACDHist[i] = p.Histogram
	}
	m.Time = dataframe.Time
}

// Metrics returns the visual representation of the indicator
func (m macd) Metrics() []plot.IndicatorMetric {
	return []plot.IndicatorMetric{
		CreateMetric("line", m.ColorMACD, m.ValuesMACD, m.Time, "MACD"),
		CreateMetric("line", m.ColorMACDSignal, m.ValuesMACDSignal, m.Time, "MACDSignal"),
		CreateMetric("bar", m.ColorMACDHist, m.ValuesMACDHist, m.Time, "MACDHist"),
	}
}
