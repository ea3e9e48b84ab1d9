package indicator

import (
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/raykavin/chartdraw/pkg/plot"
)

// BaseIndicator provides common functionality for all indicators
type BaseIndicator struct {
	Period int
	Color  string
	Time   []time.Time
}

// CreateMetric creates a standard indicator metric
func CreateMetric(style, color string, values []*float64, time []time.Time, name ...string) plot.IndicatorMetric {
	metric := plot.IndicatorMetric{
		Style:  style,
		Color:  color,
		Values: values,
		Time:   time,
	}

	if len(name) > 0 {
		metric.Name = name[0]
	}

	return metric
}

// ValidateDataframe checks if the dataframe has enough data points for the indicator period
func ValidateDataframe(dataframe *core.Dataframe, period int) bool {
	return len(dataframe.Time) >= period
}

// PointValues extracts the nullable value column from aligned data points
func PointValues(points []core.DataPoint) []*float64 {
	values := make([]*float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}

// AlignValues places raw indicator outputs into a nullable slice aligned
// to 'total' positions, padding the first 'offset' positions with null
func AlignValues(raw []float64, offset, total int) []*float64 {
	values := make([]*float64, total)
	for i, v := range raw {
		if offset+i >= total {
			break
		}
		values[offset+i] = core.Float(v)
	}
	return values
}
