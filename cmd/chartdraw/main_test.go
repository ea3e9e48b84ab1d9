package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/raykavin/chartdraw/pkg/chart"
	"github.com/raykavin/chartdraw/pkg/logger"
	zologger "github.com/raykavin/chartdraw/pkg/logger/zerolog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func nopLogger() logger.Logger {
	log := zerolog.Nop()
	return zologger.NewAdapter(&log)
}

func newSnapshotManager() *chart.Manager {
	manager := chart.NewManager(
		nopLogger(),
		chart.NewSVGSurface(800, 400),
		chart.NewLinearViewport(
			time.Unix(0, 0).UTC(), time.Unix(36000, 0).UTC(),
			0, 200, 800, 400,
		),
		chart.NewEventFeed(),
	)
	manager.Attach()
	return manager
}

func writeAnnotations(t *testing.T, specs []annotationSpec) string {
	t.Helper()

	data, err := json.Marshal(specs)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "annotations.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestApplyAnnotations_SnapshotContainsReplayedDrawings(t *testing.T) {
	manager := newSnapshotManager()

	path := writeAnnotations(t, []annotationSpec{
		{
			Tool: "trendline",
			From: annotationPoint{Time: time.Unix(3600, 0).UTC(), Price: 50},
			To:   annotationPoint{Time: time.Unix(18000, 0).UTC(), Price: 150},
		},
		{
			Tool: "rectangle",
			From: annotationPoint{Time: time.Unix(7200, 0).UTC(), Price: 80},
			To:   annotationPoint{Time: time.Unix(14400, 0).UTC(), Price: 120},
		},
		{
			Tool: "text",
			From: annotationPoint{Time: time.Unix(10800, 0).UTC(), Price: 160},
			Text: "note",
		},
	})

	require.NoError(t, applyAnnotations(manager, path))

	require.Len(t, manager.Model().Lines(), 1)
	require.Len(t, manager.Model().Shapes(), 1)
	require.Len(t, manager.Model().Texts(), 1)

	svg, ok := manager.Snapshot()
	require.True(t, ok)
	require.Contains(t, string(svg), "<line")
	require.Contains(t, string(svg), "<rect")
	require.Contains(t, string(svg), ">note</text>")
}

func TestApplyAnnotations_UnknownTool(t *testing.T) {
	manager := newSnapshotManager()

	path := writeAnnotations(t, []annotationSpec{
		{Tool: "fibonacci", From: annotationPoint{Time: time.Unix(3600, 0).UTC(), Price: 50}},
	})

	err := applyAnnotations(manager, path)
	require.ErrorContains(t, err, "unknown annotation tool")
}

func TestApplyAnnotations_MissingFile(t *testing.T) {
	manager := newSnapshotManager()
	require.Error(t, applyAnnotations(manager, filepath.Join(t.TempDir(), "absent.json")))
}
