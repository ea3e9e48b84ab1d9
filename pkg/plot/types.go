package plot

import (
	"time"

	"github.com/raykavin/chartdraw/pkg/chart"
	"github.com/raykavin/chartdraw/pkg/core"
)

// Candle is the JSON serializable OHLCV representation served to the
// chart frontend
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	Close  float64   `json:"close"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Volume float64   `json:"volume"`
}

// IndicatorMetric represents a single metric within an indicator. Values
// are aligned 1:1 with Time; nil marks insufficient lookback and is
// serialized as JSON null.
type IndicatorMetric struct {
	Name   string
	Color  string
	Style  string
	Values []*float64
	Time   []time.Time
}

// Indicator interface defines the methods required to implement a chart indicator
type Indicator interface {
	Name() string
	Overlay() bool
	Warmup() int
	Metrics() []IndicatorMetric
	Load(dataframe *core.Dataframe)
}

// indicatorMetric is the JSON serializable version of IndicatorMetric
type indicatorMetric struct {
	Name   string      `json:"name"`
	Time   []time.Time `json:"time"`
	Values []*float64  `json:"value"`
	Color  string      `json:"color"`
	Style  string      `json:"style"`
}

// plotIndicator is the JSON serializable version of an Indicator
type plotIndicator struct {
	Name    string            `json:"name"`
	Overlay bool              `json:"overlay"`
	Metrics []indicatorMetric `json:"metrics"`
	Warmup  int               `json:"-"`
}

// drawing is the JSON serializable form of a persisted primitive, tagged
// by kind and emitted in global creation order
type drawing struct {
	ID      int64        `json:"id"`
	Kind    string       `json:"kind"` // "line", "shape" or "text"
	Subtype chart.Tool   `json:"subtype,omitempty"`
	P1      *core.Point  `json:"p1,omitempty"`
	P2      *core.Point  `json:"p2,omitempty"`
	At      *core.Point  `json:"at,omitempty"`
	Content string       `json:"content,omitempty"`
	Style   *chart.Style `json:"style,omitempty"`
}
