package plot

import (
	"sort"
	"time"

	"github.com/StudioSol/set"
	"github.com/raykavin/chartdraw/pkg/core"
)

// OnCandles replaces the candle data for a pair wholesale. There is no
// incremental append: every refresh rebuilds the serialized candles and
// the dataframe feeding the indicator panes.
func (c *Chart) OnCandles(pair string, candles []core.Candle) {
	c.Lock()
	defer c.Unlock()

	serialized := make([]Candle, 0, len(candles))
	for _, candle := range candles {
		serialized = append(serialized, Candle{
			Time:   candle.Time,
			Open:   candle.Open,
			Close:  candle.Close,
			High:   candle.High,
			Low:    candle.Low,
			Volume: candle.Volume,
		})
	}

	c.candles[pair] = serialized
	c.dataframe[pair] = core.NewDataframe(pair, candles)
	if _, ok := c.drawingIDs[pair]; !ok {
		c.drawingIDs[pair] = set.NewLinkedHashSetINT64()
	}
	c.lastUpdate = time.Now()

	if manager, ok := c.managers[pair]; ok {
		manager.SetCandles(pair, candles)
	}
}

// candlesByPair returns the serialized candles for a trading pair
func (c *Chart) candlesByPair(pair string) []Candle {
	if _, ok := c.candles[pair]; !ok {
		return []Candle{}
	}
	return c.candles[pair]
}

// indicatorsByPair computes the indicator series for a trading pair
func (c *Chart) indicatorsByPair(pair string) []plotIndicator {
	// Check if dataframe exists for this pair
	if _, ok := c.dataframe[pair]; !ok {
		return []plotIndicator{}
	}

	indicators := make([]plotIndicator, 0)

	for _, i := range c.indicators {
		i.Load(c.dataframe[pair])
		indicator := plotIndicator{
			Name:    i.Name(),
			Overlay: i.Overlay(),
			Warmup:  i.Warmup(),
			Metrics: make([]indicatorMetric, 0),
		}

		for _, metric := range i.Metrics() {
			indicator.Metrics = append(indicator.Metrics, indicatorMetric{
				Name:   metric.Name,
				Values: metric.Values,
				Time:   metric.Time,
				Color:  metric.Color,
				Style:  metric.Style,
			})
		}

		indicators = append(indicators, indicator)
	}

	return indicators
}

// drawingsByPair returns the persisted primitives for a pair in global
// creation order. The per-kind collections only preserve order within
// their own kind, so the ids are merged through an insertion-ordered set
// that survives across refreshes.
func (c *Chart) drawingsByPair(pair string) []drawing {
	manager, ok := c.managers[pair]
	if !ok {
		return []drawing{}
	}

	model := manager.Model()
	byID := make(map[int64]drawing)

	for _, line := range model.Lines() {
		line := line
		byID[line.ID] = drawing{
			ID:      line.ID,
			Kind:    "line",
			Subtype: line.Subtype,
			P1:      &line.P1,
			P2:      &line.P2,
			Style:   &line.Style,
		}
	}
	for _, shape := range model.Shapes() {
		shape := shape
		byID[shape.ID] = drawing{
			ID:      shape.ID,
			Kind:    "shape",
			Subtype: shape.Subtype,
			P1:      &shape.P1,
			P2:      &shape.P2,
			Style:   &shape.Style,
		}
	}
	for _, text := range model.Texts() {
		text := text
		byID[text.ID] = drawing{
			ID:      text.ID,
			Kind:    "text",
			At:      &text.At,
			Content: text.Content,
		}
	}

	// Record ids first-seen in ascending creation order; the set keeps
	// that order stable across refreshes and dedupes repeated polls
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tracker := c.drawingIDs[pair]
	tracker.Add(ids...)

	drawings := make([]drawing, 0, len(byID))
	for id := range tracker.Iter() {
		// Skip ids removed from the model since they were tracked
		if d, ok := byID[id]; ok {
			drawings = append(drawings, d)
		}
	}

	return drawings
}
