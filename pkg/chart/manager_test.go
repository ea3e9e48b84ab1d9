package chart

import (
	"testing"
	"time"

	"github.com/raykavin/chartdraw/pkg/core"
	"github.com/raykavin/chartdraw/pkg/logger"
	zerologadapter "github.com/raykavin/chartdraw/pkg/logger/zerolog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func nopLogger() logger.Logger {
	log := zerolog.Nop()
	return zerologadapter.NewAdapter(&log)
}

type missingSurface struct{}

func (missingSurface) Acquire() (Canvas, error) { return nil, core.ErrSurfaceUnavailable }
func (missingSurface) Release()                 {}

func newTestManager() (*Manager, *SVGSurface, *EventFeed) {
	surface := NewSVGSurface(800, 400)
	feed := NewEventFeed()
	manager := NewManager(nopLogger(), surface, testViewport(), feed)
	return manager, surface, feed
}

func TestManager_AttachSubscribesOnce(t *testing.T) {
	manager, _, feed := newTestManager()

	manager.Attach()
	require.True(t, manager.Attached())
	require.Equal(t, 1, feed.Len())

	// A second attach must not stack a duplicate subscription
	manager.Attach()
	require.Equal(t, 1, feed.Len())
}

func TestManager_DetachRemovesSubscription(t *testing.T) {
	manager, _, feed := newTestManager()

	manager.Attach()
	manager.Detach()

	require.False(t, manager.Attached())
	require.Zero(t, feed.Len())

	// Detaching again stays a no-op
	manager.Detach()
	require.Zero(t, feed.Len())
}

func TestManager_ReattachAfterDetach(t *testing.T) {
	manager, _, feed := newTestManager()

	manager.Attach()
	manager.Detach()
	manager.Attach()

	require.True(t, manager.Attached())
	require.Equal(t, 1, feed.Len(), "remount must not leak stale subscriptions")
}

func TestManager_InertWhenSurfaceMissing(t *testing.T) {
	feed := NewEventFeed()
	manager := NewManager(nopLogger(), missingSurface{}, testViewport(), feed)

	// Setup aborts silently and every operation degrades to a no-op
	require.NotPanics(t, func() {
		manager.Attach()
		manager.SelectTool(ToolTrendline)
		manager.PointerDown(domainPoint(10, 100))
		manager.PointerMove(domainPoint(20, 110))
		manager.PointerUp()
		manager.ClearAll()
		manager.RemoveLast()
		manager.Destroy()
	})

	require.False(t, manager.Attached())
	require.Zero(t, feed.Len())
	require.Empty(t, manager.Model().Lines())
}

func TestManager_DrawFlowRendersToSurface(t *testing.T) {
	manager, surface, _ := newTestManager()
	manager.Attach()

	manager.SelectTool(ToolTrendline)
	manager.PointerDown(domainPoint(10, 100))
	manager.PointerMove(domainPoint(20, 110))
	manager.PointerUp()

	require.Len(t, manager.Model().Lines(), 1)
	require.Contains(t, string(surface.Canvas().Bytes()), "<line")
}

func TestManager_ViewEventsTriggerRedraw(t *testing.T) {
	manager, surface, feed := newTestManager()
	manager.Attach()

	manager.SelectTool(ToolTrendline)
	manager.PointerDown(domainPoint(10, 100))
	manager.PointerMove(domainPoint(20, 110))
	manager.PointerUp()
	require.Contains(t, string(surface.Canvas().Bytes()), "<line")

	// Panning the view past the drawing omits it from the redraw
	feed.Publish(Event{
		Kind:  EventViewChanged,
		Start: time.Unix(1000, 0).UTC(),
		End:   time.Unix(2000, 0).UTC(),
	})
	require.NotContains(t, string(surface.Canvas().Bytes()), "<line")
}

func TestManager_ResizeInvalidatesWholeSurface(t *testing.T) {
	manager, surface, feed := newTestManager()
	manager.Attach()

	manager.SelectTool(ToolVertical)
	manager.PointerDown(domainPoint(50, 100))
	manager.PointerMove(domainPoint(50, 120))
	manager.PointerUp()

	feed.Publish(Event{Kind: EventResized, Width: 1600, Height: 800})

	svg := string(surface.Canvas().Bytes())
	require.Contains(t, svg, "width='1600'")
	// Redrawn against the new projection, not stale pixels
	require.Contains(t, svg, "y2='800.00'")
}

func TestManager_DestroyClearsCollections(t *testing.T) {
	manager, _, feed := newTestManager()
	manager.Attach()

	manager.SelectTool(ToolRectangle)
	manager.PointerDown(domainPoint(10, 100))
	manager.PointerMove(domainPoint(20, 120))
	manager.PointerUp()
	require.Len(t, manager.Model().Shapes(), 1)

	manager.Destroy()
	require.Empty(t, manager.Model().Shapes())
	require.False(t, manager.Attached())
	require.Zero(t, feed.Len())
}

func TestManager_SetCandlesReplacesDataframe(t *testing.T) {
	manager, _, _ := newTestManager()
	manager.Attach()

	first := []core.Candle{
		{Pair: "BTCUSDT", Time: time.Unix(10, 0).UTC(), Open: 1, Close: 2, Low: 1, High: 2, Volume: 5},
		{Pair: "BTCUSDT", Time: time.Unix(20, 0).UTC(), Open: 2, Close: 3, Low: 2, High: 3, Volume: 6},
	}
	manager.SetCandles("BTCUSDT", first)
	require.Equal(t, 2, manager.Dataframe().Close.Length())

	// Refresh is a full replacement, never an append
	second := first[:1]
	manager.SetCandles("BTCUSDT", second)
	require.Equal(t, 1, manager.Dataframe().Close.Length())
}
