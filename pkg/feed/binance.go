package feed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/jpillora/backoff"
	"github.com/raykavin/chartdraw/pkg/core"
)

// Binance serves candles from the Binance spot market API
type Binance struct {
	ctx    context.Context
	client *binance.Client
}

// BinanceOption is a function that configures a Binance feed
type BinanceOption func(*Binance)

// WithCredentials sets the API credentials for the client
func WithCredentials(key, secret string) BinanceOption {
	return func(b *Binance) {
		b.client = binance.NewClient(key, secret)
	}
}

// WithTestNet enables the Binance testnet
func WithTestNet() BinanceOption {
	return func(_ *Binance) {
		binance.UseTestnet = true
	}
}

// NewBinance creates a new Binance candle feed
func NewBinance(ctx context.Context, options ...BinanceOption) (*Binance, error) {
	binance.WebsocketKeepalive = true

	feed := &Binance{
		ctx:    ctx,
		client: binance.NewClient("", ""),
	}

	for _, option := range options {
		option(feed)
	}

	// Test connection
	err := feed.client.NewPingService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance ping fail: %w", err)
	}

	return feed, nil
}

// CandlesByLimit gets the last limit complete candles for a pair
func (b *Binance) CandlesByLimit(ctx context.Context, pair, timeframe string, limit int) ([]core.Candle, error) {
	klineService := b.client.NewKlinesService()

	data, err := klineService.Symbol(pair).
		Interval(timeframe).
		Limit(limit + 1). // +1 to discard the last incomplete candle
		Do(ctx)

	if err != nil {
		return nil, err
	}

	candles := make([]core.Candle, 0, len(data))
	for i, d := range data {
		// Skip the last candle as it's incomplete
		if i == len(data)-1 {
			break
		}
		candles = append(candles, convertKlineToCandle(pair, *d))
	}

	return candles, nil
}

// CandlesByPeriod gets candles for a pair within a time range
func (b *Binance) CandlesByPeriod(ctx context.Context, pair, timeframe string,
	start, end time.Time) ([]core.Candle, error) {

	klineService := b.client.NewKlinesService()

	data, err := klineService.Symbol(pair).
		Interval(timeframe).
		StartTime(start.UnixNano() / int64(time.Millisecond)).
		EndTime(end.UnixNano() / int64(time.Millisecond)).
		Do(ctx)

	if err != nil {
		return nil, err
	}

	candles := make([]core.Candle, 0, len(data))
	for _, d := range data {
		candles = append(candles, convertKlineToCandle(pair, *d))
	}

	return candles, nil
}

// CandlesSubscription subscribes to live candle updates for a pair.
// The websocket connection is re-established with backoff when dropped.
func (b *Binance) CandlesSubscription(ctx context.Context, pair, timeframe string) (chan core.Candle, chan error) {
	candleChan := make(chan core.Candle)
	errChan := make(chan error)
	retry := setupBackoffRetry()

	go func() {
		for {
			done, _, err := binance.WsKlineServe(pair, timeframe, func(event *binance.WsKlineEvent) {
				retry.Reset()
				if event.Kline.IsFinal {
					candleChan <- convertWsKlineToCandle(pair, event.Kline)
				}
			}, func(err error) {
				errChan <- err
			})

			if err != nil {
				errChan <- err
				close(errChan)
				close(candleChan)
				return
			}

			select {
			case <-ctx.Done():
				close(errChan)
				close(candleChan)
				return
			case <-done:
				time.Sleep(retry.Duration())
			}
		}
	}()

	return candleChan, errChan
}

// setupBackoffRetry creates a backoff with sensible defaults
func setupBackoffRetry() *backoff.Backoff {
	return &backoff.Backoff{
		Min: 100 * time.Millisecond,
		Max: 1 * time.Second,
	}
}

// convertKlineToCandle converts a Binance kline to a core.Candle
func convertKlineToCandle(pair string, k binance.Kline) core.Candle {
	candle := core.Candle{
		Pair: pair,
		Time: time.Unix(0, k.OpenTime*int64(time.Millisecond)),
	}

	candle.Open, _ = strconv.ParseFloat(k.Open, 64)
	candle.Close, _ = strconv.ParseFloat(k.Close, 64)
	candle.High, _ = strconv.ParseFloat(k.High, 64)
	candle.Low, _ = strconv.ParseFloat(k.Low, 64)
	candle.Volume, _ = strconv.ParseFloat(k.Volume, 64)

	return candle
}

// convertWsKlineToCandle converts a Binance websocket kline to a core.Candle
func convertWsKlineToCandle(pair string, k binance.WsKline) core.Candle {
	candle := core.Candle{
		Pair: pair,
		Time: time.Unix(0, k.StartTime*int64(time.Millisecond)),
	}

	candle.Open, _ = strconv.ParseFloat(k.Open, 64)
	candle.Close, _ = strconv.ParseFloat(k.Close, 64)
	candle.High, _ = strconv.ParseFloat(k.High, 64)
	candle.Low, _ = strconv.ParseFloat(k.Low, 64)
	candle.Volume, _ = strconv.ParseFloat(k.Volume, 64)

	return candle
}
