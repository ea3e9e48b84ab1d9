package core

import (
	"fmt"
	"strconv"
	"time"
)

type CandleSubscriber interface {
	OnCandles(pair string, candles []Candle)
}

// Candle represents a trading candle with OHLCV data.
// Candles are externally produced and treated as immutable; ascending
// time order is assumed and not verified here.
type Candle struct {
	Pair   string
	Time   time.Time
	Open   float64
	Close  float64
	Low    float64
	High   float64
	Volume float64
}

// ToSlice converts a candle to a string slice for serialization
// with the specified decimal precision
func (c Candle) ToSlice(precision int) []string {
	return []string{
		fmt.Sprintf("%d", c.Time.Unix()),
		strconv.FormatFloat(c.Open, 'f', precision, 64),
		strconv.FormatFloat(c.Close, 'f', precision, 64),
		strconv.FormatFloat(c.Low, 'f', precision, 64),
		strconv.FormatFloat(c.High, 'f', precision, 64),
		strconv.FormatFloat(c.Volume, 'f', precision, 64),
	}
}
