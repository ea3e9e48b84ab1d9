package core

import (
	"time"
)

// Dataframe is a columnar time series container for OHLCV data
type Dataframe struct {
	Pair string

	Close  Series[float64]
	Open   Series[float64]
	High   Series[float64]
	Low    Series[float64]
	Volume Series[float64]

	Time       []time.Time
	LastUpdate time.Time
}

// NewDataframe builds a dataframe from a candle slice.
// Candle data arrives as a full replacement on every refresh, so the
// previous columns are discarded rather than appended to.
func NewDataframe(pair string, candles []Candle) *Dataframe {
	df := &Dataframe{
		Pair:   pair,
		Close:  make(Series[float64], 0, len(candles)),
		Open:   make(Series[float64], 0, len(candles)),
		High:   make(Series[float64], 0, len(candles)),
		Low:    make(Series[float64], 0, len(candles)),
		Volume: make(Series[float64], 0, len(candles)),
		Time:   make([]time.Time, 0, len(candles)),
	}

	for _, candle := range candles {
		df.Close = append(df.Close, candle.Close)
		df.Open = append(df.Open, candle.Open)
		df.High = append(df.High, candle.High)
		df.Low = append(df.Low, candle.Low)
		df.Volume = append(df.Volume, candle.Volume)
		df.Time = append(df.Time, candle.Time)
	}

	if len(candles) > 0 {
		df.LastUpdate = candles[len(candles)-1].Time
	}

	return df
}

// Sample returns a trailing window of the dataframe holding the last
// 'positions' candles, sharing the underlying columns. A window larger
// than the dataframe returns it unchanged.
func (df Dataframe) Sample(positions int) Dataframe {
	size := len(df.Time)
	start := size - positions
	if start <= 0 {
		return df
	}

	return Dataframe{
		Pair:       df.Pair,
		Close:      df.Close.LastValues(positions),
		Open:       df.Open.LastValues(positions),
		High:       df.High.LastValues(positions),
		Low:        df.Low.LastValues(positions),
		Volume:     df.Volume.LastValues(positions),
		Time:       df.Time[start:],
		LastUpdate: df.LastUpdate,
	}
}
