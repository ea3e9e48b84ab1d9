package feed

import (
	"context"
	"testing"
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/stretchr/testify/require"
)

// stubSource serves a fixed candle window and counts calls
type stubSource struct {
	candles     []core.Candle
	periodCalls int
	limitCalls  int
}

func (s *stubSource) CandlesByLimit(_ context.Context, _, _ string, limit int) ([]core.Candle, error) {
	s.limitCalls++
	if limit > len(s.candles) {
		limit = len(s.candles)
	}
	return s.candles[len(s.candles)-limit:], nil
}

func (s *stubSource) CandlesByPeriod(_ context.Context, _, _ string, start, end time.Time) ([]core.Candle, error) {
	s.periodCalls++
	result := make([]core.Candle, 0)
	for _, candle := range s.candles {
		if candle.Time.Before(start) || candle.Time.After(end) {
			continue
		}
		result = append(result, candle)
	}
	return result, nil
}

func minuteCandles(pair string, count int) []core.Candle {
	candles := make([]core.Candle, count)
	for i := range candles {
		candles[i] = core.Candle{
			Pair:  pair,
			Time:  time.Unix(int64(i)*60, 0).UTC(),
			Open:  100 + float64(i),
			Close: 101 + float64(i),
			Low:   99 + float64(i),
			High:  102 + float64(i),
		}
	}
	return candles
}

func TestCache_CandlesByPeriodReusesStoredWindow(t *testing.T) {
	source := &stubSource{candles: minuteCandles("BTCUSDT", 5)}
	cache, err := CacheInMemory(source)
	require.NoError(t, err)
	defer cache.Close()

	start := time.Unix(0, 0).UTC()
	end := time.Unix(240, 0).UTC()

	candles, err := cache.CandlesByPeriod(context.Background(), "BTCUSDT", "1m", start, end)
	require.NoError(t, err)
	require.Len(t, candles, 5)
	require.Equal(t, 1, source.periodCalls)

	// Full window is cached, the source is not consulted again
	candles, err = cache.CandlesByPeriod(context.Background(), "BTCUSDT", "1m", start, end)
	require.NoError(t, err)
	require.Len(t, candles, 5)
	require.Equal(t, 1, source.periodCalls)
	require.Equal(t, 100.0, candles[0].Open)
	require.Equal(t, 105.0, candles[4].Close)
}

func TestCache_PartialWindowFetchesSource(t *testing.T) {
	source := &stubSource{candles: minuteCandles("BTCUSDT", 5)}
	cache, err := CacheInMemory(source)
	require.NoError(t, err)
	defer cache.Close()

	start := time.Unix(0, 0).UTC()

	_, err = cache.CandlesByPeriod(context.Background(), "BTCUSDT", "1m", start, time.Unix(120, 0).UTC())
	require.NoError(t, err)
	require.Equal(t, 1, source.periodCalls)

	// Wider range misses the cache and refetches
	_, err = cache.CandlesByPeriod(context.Background(), "BTCUSDT", "1m", start, time.Unix(240, 0).UTC())
	require.NoError(t, err)
	require.Equal(t, 2, source.periodCalls)
}

func TestCache_CandlesByLimitAlwaysHitsSource(t *testing.T) {
	source := &stubSource{candles: minuteCandles("BTCUSDT", 5)}
	cache, err := CacheInMemory(source)
	require.NoError(t, err)
	defer cache.Close()

	candles, err := cache.CandlesByLimit(context.Background(), "BTCUSDT", "1m", 3)
	require.NoError(t, err)
	require.Len(t, candles, 3)

	_, err = cache.CandlesByLimit(context.Background(), "BTCUSDT", "1m", 3)
	require.NoError(t, err)
	require.Equal(t, 2, source.limitCalls)
}

func TestCache_InvalidTimeframe(t *testing.T) {
	source := &stubSource{candles: minuteCandles("BTCUSDT", 5)}
	cache, err := CacheInMemory(source)
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.CandlesByPeriod(context.Background(), "BTCUSDT", "bogus", time.Unix(0, 0), time.Unix(60, 0))
	require.ErrorIs(t, err, core.ErrInvalidTimeframe)
}
