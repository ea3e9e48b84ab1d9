package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/raykavin/chartdraw/pkg/plot"
)

// Bollinger creates a new Bollinger Bands indicator
// period: the number of periods to use for calculations
// deviation: the standard deviation multiplier for the bands
// upDnColor: the color for the upper and lower bands
// midColor: the color for the middle band
func Bollinger(period int, deviation float64, upDnColor, midColor string) plot.Indicator {
	return &bollinger{
		BaseIndicator: BaseIndicator{
			Period: period,
			Color:  upDnColor,
		},
		Deviation: deviation,
		MidColor:  midColor,
	}
}

type bollinger struct {
	BaseIndicator
	Deviation float64
	MidColor  string
	Upper     []*float64
	Middle    []*float64
	Lower     []*float64
}

// Warmup returns the number of candles needed to calculate the indicator
func (b bollinger) Warmup() int {
	return b.Period
}

// Name returns the formatted name of the indicator
func (b bollinger) Name() string {
	return fmt.Sprintf("BB(%d,%.1f)", b.Period, b.Deviation)
}

// Overlay returns true if the indicator should be drawn on the price chart
func (b bollinger) Overlay() bool {
	return true
}

// Load calculates the indicator values from the provided dataframe
func (b *bollinger) Load(dataframe *core.Dataframe) {
	total := len(dataframe.Time)
	if !ValidateDataframe(dataframe, b.Period) {
		b.Upper = make([]*float64, total)
		b.Middle = make([]*float64, total)
		b.Lower = make([]*float64, total)
		b.Time = dataframe.Time
		return
	}

	upper, middle, lower := talib.BBands(
		dataframe.Close, b.Period, b.Deviation, b.Deviation, talib.SMA,
	)

	offset := b.Period - 1
	b.Upper = AlignValues(upper[offset:], offset, total)
	b.Middle = AlignValues(middle[offset:], offset, total)
	b.Lower = AlignValues(lower[offset:], offset, total)
	b.Time = dataframe.Time
}

// Metrics returns the visual representation of the indicator
func (b bollinger) Metrics() []plot.IndicatorMetric {
	return []plot.IndicatorMetric{
		CreateMetric("line", b.Color, b.Upper, b.Time, "upper"),
		CreateMetric("line", b.MidColor, b.Middle, b.Time, "middle"),
		CreateMetric("line", b.Color, b.Lower, b.Time, "lower"),
	}
}
