package chart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInteraction_FullFlow(t *testing.T) {
	model := NewModel()
	interaction := NewInteraction(model)

	require.Equal(t, StateIdle, interaction.State())

	interaction.SelectTool(ToolTrendline)
	require.Equal(t, StateToolSelected, interaction.State())

	interaction.PointerDown(domainPoint(10, 100))
	require.Equal(t, StateFirstPointPlaced, interaction.State())

	interaction.PointerMove(domainPoint(15, 105))
	interaction.PointerMove(domainPoint(20, 110))
	require.Equal(t, StatePreviewing, interaction.State())

	interaction.PointerUp()
	require.Equal(t, StateIdle, interaction.State())
	require.Empty(t, interaction.ActiveTool())

	require.Len(t, model.Lines(), 1)
	require.Equal(t, domainPoint(20, 110), model.Lines()[0].P2)
}

func TestInteraction_PointerEventsIgnoredWhenIdle(t *testing.T) {
	model := NewModel()
	interaction := NewInteraction(model)

	interaction.PointerDown(domainPoint(1, 10))
	interaction.PointerMove(domainPoint(2, 20))
	interaction.PointerUp()

	require.Equal(t, StateIdle, interaction.State())
	require.Empty(t, model.Lines())
	require.Empty(t, model.Shapes())
}

func TestInteraction_ReselectDiscardsUnsaved(t *testing.T) {
	model := NewModel()
	interaction := NewInteraction(model)

	interaction.SelectTool(ToolRectangle)
	interaction.PointerDown(domainPoint(1, 10))
	interaction.PointerMove(domainPoint(2, 20))

	// Reselecting, even the same tool, drops the preview unsaved
	interaction.SelectTool(ToolRectangle)
	require.Equal(t, StateToolSelected, interaction.State())
	require.Nil(t, model.Active())
	require.Empty(t, model.Shapes())
}

func TestInteraction_CancelFromAnyState(t *testing.T) {
	model := NewModel()
	interaction := NewInteraction(model)

	interaction.SelectTool(ToolRay)
	interaction.PointerDown(domainPoint(1, 10))
	interaction.PointerMove(domainPoint(2, 20))

	interaction.Cancel()
	require.Equal(t, StateIdle, interaction.State())
	require.Empty(t, interaction.ActiveTool())
	require.Nil(t, model.Active())
	require.Empty(t, model.Lines())
}

func TestInteraction_ClickWithoutDragPersistsNothing(t *testing.T) {
	model := NewModel()
	interaction := NewInteraction(model)

	interaction.SelectTool(ToolTrendline)
	interaction.PointerDown(domainPoint(1, 10))
	interaction.PointerUp()

	require.Equal(t, StateIdle, interaction.State())
	require.Empty(t, model.Lines())
	require.Nil(t, model.Active())
}

func TestInteraction_EmptyToolReturnsToIdle(t *testing.T) {
	model := NewModel()
	interaction := NewInteraction(model)

	interaction.SelectTool(ToolCircle)
	interaction.SelectTool("")

	require.Equal(t, StateIdle, interaction.State())
	require.Empty(t, interaction.ActiveTool())
}
