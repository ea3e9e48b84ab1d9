package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/raykavin/chartdraw/pkg/logger"
)

// Source provides historical candle data for a pair and timeframe
type Source interface {
	CandlesByLimit(ctx context.Context, pair, timeframe string, limit int) ([]core.Candle, error)
	CandlesByPeriod(ctx context.Context, pair, timeframe string, start, end time.Time) ([]core.Candle, error)
}

// Streamer is a source that can also push live candle updates
type Streamer interface {
	Source
	CandlesSubscription(ctx context.Context, pair, timeframe string) (chan core.Candle, chan error)
}

// subscription binds a consumer to a pair and timeframe
type subscription struct {
	pair      string
	timeframe string
	consumer  core.CandleSubscriber
}

// Dispatcher fans candle data out from a source to registered consumers.
// Every sync delivers the full window again, consumers are expected to
// replace their data rather than append.
type Dispatcher struct {
	log           logger.Logger
	source        Source
	subscriptions []subscription
	window        int
}

// NewDispatcher creates a dispatcher reading from the given source.
// window is the number of candles delivered on each sync.
func NewDispatcher(log logger.Logger, source Source, window int) *Dispatcher {
	return &Dispatcher{
		log:    log,
		source: source,
		window: window,
	}
}

// Subscribe registers a consumer for candle updates of a pair and timeframe
func (d *Dispatcher) Subscribe(pair, timeframe string, consumer core.CandleSubscriber) {
	d.subscriptions = append(d.subscriptions, subscription{
		pair:      pair,
		timeframe: timeframe,
		consumer:  consumer,
	})
}

// Sync fetches the current candle window for every subscription and
// delivers it to the consumers
func (d *Dispatcher) Sync(ctx context.Context) error {
	for _, sub := range d.subscriptions {
		candles, err := d.source.CandlesByLimit(ctx, sub.pair, sub.timeframe, d.window)
		if err != nil {
			return fmt.Errorf("failed to fetch candles for %s: %w", sub.pair, err)
		}

		d.log.WithFields(map[string]any{
			"pair":    sub.pair,
			"candles": len(candles),
		}).Debug("delivering candle window")

		sub.consumer.OnCandles(sub.pair, candles)
	}

	return nil
}

// Run syncs all subscriptions on a fixed interval until the context is done.
// The first sync happens immediately.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) error {
	if err := d.Sync(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.Sync(ctx); err != nil {
				d.log.WithError(err).Error("candle sync failed")
			}
		}
	}
}
