package core

import "time"

// Point is a domain coordinate on the chart: a semantic (time, price)
// location, distinct from pixel coordinates.
type Point struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// DataPoint is a single indicator output aligned to an input timestamp.
// A nil Value marks insufficient lookback at that position.
type DataPoint struct {
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}

// Float returns a pointer to v, for building nullable indicator points
func Float(v float64) *float64 {
	return &v
}
