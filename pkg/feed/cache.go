package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/tidwall/buntdb"
	"github.com/xhit/go-str2duration/v2"
)

// Cache is a candle source backed by BuntDB that avoids refetching
// ranges already served. Candles are keyed by pair, timeframe and open
// time, so overlapping requests reuse previously stored data.
type Cache struct {
	db     *buntdb.DB
	source Source
}

// CacheInMemory creates a cache that is not persisted across restarts
func CacheInMemory(source Source) (*Cache, error) {
	return NewCache(":memory:", source)
}

// NewCache creates a candle cache stored at the given file path
func NewCache(sourceFile string, source Source) (*Cache, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	return &Cache{
		db:     db,
		source: source,
	}, nil
}

// candleKey builds a lexically sortable key for a candle.
// Unix time is zero-padded so string order matches time order.
func candleKey(pair, timeframe string, t time.Time) string {
	return fmt.Sprintf("candle:%s:%s:%020d", pair, timeframe, t.Unix())
}

// CandlesByPeriod returns cached candles for the range when the cache
// holds the full window, otherwise fetches from the source and stores
// the result
func (c *Cache) CandlesByPeriod(ctx context.Context, pair, timeframe string, start, end time.Time) ([]core.Candle, error) {
	interval, err := str2duration.ParseDuration(timeframe)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidTimeframe, timeframe)
	}

	cached, err := c.cachedRange(pair, timeframe, start, end)
	if err != nil {
		return nil, err
	}

	expected := int(end.Sub(start)/interval) + 1
	if len(cached) >= expected {
		return cached, nil
	}

	candles, err := c.source.CandlesByPeriod(ctx, pair, timeframe, start, end)
	if err != nil {
		return nil, err
	}

	if err := c.store(timeframe, candles); err != nil {
		return nil, err
	}

	return candles, nil
}

// CandlesByLimit always goes to the source, trailing windows move with
// the clock and cannot be answered from the cache reliably. The result
// is stored so later period queries can reuse it.
func (c *Cache) CandlesByLimit(ctx context.Context, pair, timeframe string, limit int) ([]core.Candle, error) {
	candles, err := c.source.CandlesByLimit(ctx, pair, timeframe, limit)
	if err != nil {
		return nil, err
	}

	if err := c.store(timeframe, candles); err != nil {
		return nil, err
	}

	return candles, nil
}

// cachedRange reads all stored candles for a pair and timeframe whose
// open time falls inside the range
func (c *Cache) cachedRange(pair, timeframe string, start, end time.Time) ([]core.Candle, error) {
	candles := make([]core.Candle, 0)
	pattern := fmt.Sprintf("candle:%s:%s:*", pair, timeframe)

	err := c.db.View(func(tx *buntdb.Tx) error {
		var unmarshalErr error
		err := tx.AscendKeys(pattern, func(_, value string) bool {
			var candle core.Candle
			if err := json.Unmarshal([]byte(value), &candle); err != nil {
				unmarshalErr = fmt.Errorf("failed to unmarshal candle: %w", err)
				return false
			}

			if candle.Time.Before(start) || candle.Time.After(end) {
				return true
			}

			candles = append(candles, candle)
			return true
		})
		if err != nil {
			return err
		}
		return unmarshalErr
	})

	if err != nil {
		return nil, err
	}

	return candles, nil
}

// store persists candles keyed by open time
func (c *Cache) store(timeframe string, candles []core.Candle) error {
	return c.db.Update(func(tx *buntdb.Tx) error {
		for _, candle := range candles {
			content, err := json.Marshal(candle)
			if err != nil {
				return fmt.Errorf("failed to marshal candle: %w", err)
			}

			_, _, err = tx.Set(candleKey(candle.Pair, timeframe, candle.Time), string(content), nil)
			if err != nil {
				return fmt.Errorf("failed to store candle: %w", err)
			}
		}
		return nil
	})
}

// Close closes the underlying database
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
