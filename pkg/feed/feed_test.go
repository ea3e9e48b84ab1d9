package feed

import (
	"context"
	"testing"

	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/raykavin/chartdraw/pkg/logger"
	zologger "github.com/raykavin/chartdraw/pkg/logger/zerolog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingConsumer struct {
	pairs   []string
	lengths []int
}

func (r *recordingConsumer) OnCandles(pair string, candles []core.Candle) {
	r.pairs = append(r.pairs, pair)
	r.lengths = append(r.lengths, len(candles))
}

func quietLogger() logger.Logger {
	log := zerolog.Nop()
	return zologger.NewAdapter(&log)
}

func TestDispatcher_SyncDeliversFullWindow(t *testing.T) {
	source := &stubSource{candles: minuteCandles("BTCUSDT", 5)}
	consumer := &recordingConsumer{}

	dispatcher := NewDispatcher(quietLogger(), source, 5)
	dispatcher.Subscribe("BTCUSDT", "1m", consumer)

	require.NoError(t, dispatcher.Sync(context.Background()))
	require.Equal(t, []string{"BTCUSDT"}, consumer.pairs)
	require.Equal(t, []int{5}, consumer.lengths)

	// Each sync replays the whole window
	require.NoError(t, dispatcher.Sync(context.Background()))
	require.Equal(t, []int{5, 5}, consumer.lengths)
}

func TestDispatcher_MultipleSubscriptions(t *testing.T) {
	source := &stubSource{candles: minuteCandles("BTCUSDT", 5)}
	first := &recordingConsumer{}
	second := &recordingConsumer{}

	dispatcher := NewDispatcher(quietLogger(), source, 3)
	dispatcher.Subscribe("BTCUSDT", "1m", first)
	dispatcher.Subscribe("ETHUSDT", "1m", second)

	require.NoError(t, dispatcher.Sync(context.Background()))
	require.Equal(t, []int{3}, first.lengths)
	require.Equal(t, []int{3}, second.lengths)
}
