package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/stretchr/testify/require"
)

// writeCandleFile writes a 1m candle fixture with ten rows starting at
// 2021-01-01 00:00:00 UTC
func writeCandleFile(t *testing.T, withHeaders bool) string {
	t.Helper()

	var content string
	if withHeaders {
		content = "time,open,close,low,high,volume\n"
	}

	base := int64(1609459200)
	for i := 0; i < 10; i++ {
		content += fmt.Sprintf("%d,%d,%d,%d,%d,10\n",
			base+int64(i)*60, 100+i, 101+i, 99+i, 102+i)
	}

	file := filepath.Join(t.TempDir(), "btcusdt-1m.csv")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestCSVFeed_LoadWithHeaders(t *testing.T) {
	feed, err := NewCSVFeed("1m", PairFeed{
		Pair:      "BTCUSDT",
		File:      writeCandleFile(t, true),
		Timeframe: "1m",
	})
	require.NoError(t, err)

	candles := feed.CandlePairTimeFrame["BTCUSDT--1m"]
	require.Len(t, candles, 10)
	require.Equal(t, "BTCUSDT", candles[0].Pair)
	require.Equal(t, time.Unix(1609459200, 0).UTC(), candles[0].Time)
	require.Equal(t, 100.0, candles[0].Open)
	require.Equal(t, 110.0, candles[9].Close)
}

func TestCSVFeed_LoadWithoutHeaders(t *testing.T) {
	feed, err := NewCSVFeed("1m", PairFeed{
		Pair:      "BTCUSDT",
		File:      writeCandleFile(t, false),
		Timeframe: "1m",
	})
	require.NoError(t, err)
	require.Len(t, feed.CandlePairTimeFrame["BTCUSDT--1m"], 10)
}

func TestCSVFeed_Resample(t *testing.T) {
	feed, err := NewCSVFeed("5m", PairFeed{
		Pair:      "BTCUSDT",
		File:      writeCandleFile(t, true),
		Timeframe: "1m",
	})
	require.NoError(t, err)

	candles := feed.CandlePairTimeFrame["BTCUSDT--5m"]
	require.Len(t, candles, 2)

	first := candles[0]
	require.Equal(t, time.Unix(1609459200, 0).UTC(), first.Time)
	require.Equal(t, 100.0, first.Open)
	require.Equal(t, 105.0, first.Close)
	require.Equal(t, 99.0, first.Low)
	require.Equal(t, 106.0, first.High)
	require.Equal(t, 50.0, first.Volume)

	second := candles[1]
	require.Equal(t, time.Unix(1609459500, 0).UTC(), second.Time)
	require.Equal(t, 105.0, second.Open)
	require.Equal(t, 110.0, second.Close)
}

func TestCSVFeed_ResampleInvalidTimeframe(t *testing.T) {
	_, err := NewCSVFeed("3m", PairFeed{
		Pair:      "BTCUSDT",
		File:      writeCandleFile(t, true),
		Timeframe: "1m",
	})
	require.ErrorIs(t, err, core.ErrInvalidTimeframe)
}

func TestCSVFeed_CandlesByLimit(t *testing.T) {
	feed, err := NewCSVFeed("1m", PairFeed{
		Pair:      "BTCUSDT",
		File:      writeCandleFile(t, true),
		Timeframe: "1m",
	})
	require.NoError(t, err)

	candles, err := feed.CandlesByLimit(context.Background(), "BTCUSDT", "1m", 4)
	require.NoError(t, err)
	require.Len(t, candles, 4)
	require.Equal(t, 100.0, candles[0].Open)

	// Consumed candles are removed from the feed
	candles, err = feed.CandlesByLimit(context.Background(), "BTCUSDT", "1m", 4)
	require.NoError(t, err)
	require.Equal(t, 104.0, candles[0].Open)

	_, err = feed.CandlesByLimit(context.Background(), "BTCUSDT", "1m", 4)
	require.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestCSVFeed_CandlesByPeriod(t *testing.T) {
	feed, err := NewCSVFeed("1m", PairFeed{
		Pair:      "BTCUSDT",
		File:      writeCandleFile(t, true),
		Timeframe: "1m",
	})
	require.NoError(t, err)

	start := time.Unix(1609459260, 0).UTC()
	end := time.Unix(1609459380, 0).UTC()

	candles, err := feed.CandlesByPeriod(context.Background(), "BTCUSDT", "1m", start, end)
	require.NoError(t, err)
	require.Len(t, candles, 3)
	require.Equal(t, start, candles[0].Time)
	require.Equal(t, end, candles[2].Time)
}

func TestCSVFeed_Limit(t *testing.T) {
	feed, err := NewCSVFeed("1m", PairFeed{
		Pair:      "BTCUSDT",
		File:      writeCandleFile(t, true),
		Timeframe: "1m",
	})
	require.NoError(t, err)

	feed.Limit(3 * time.Minute)
	require.Len(t, feed.CandlePairTimeFrame["BTCUSDT--1m"], 3)
}
