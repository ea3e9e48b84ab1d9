package core

import "errors"

var (
	ErrInsufficientData   = errors.New("insufficient data")
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")
	ErrInvalidTimeframe   = errors.New("invalid timeframe")
)
