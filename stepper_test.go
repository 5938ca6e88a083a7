package gridastar_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridastar"
)

func stepToEnd(t *testing.T, s *gridastar.Stepper) gridastar.Snapshot {
	t.Helper()
	for {
		snapshot, err := s.Step()
		require.NoError(t, err)
		if snapshot.Done {
			return snapshot
		}
	}
}

func TestStepperFindsSameCostAsSearch(t *testing.T) {
	cells := [][]int{
		{1, 3, 1, 1},
		{1, 0, 2, 1},
		{5, 1, 0, 1},
		{1, 1, 1, 1},
	}
	grid := mustGrid(t, cells)
	start := gridastar.Cell{X: 0, Y: 0}
	goal := gridastar.Cell{X: 3, Y: 3}

	result, err := gridastar.Search(context.Background(), grid, start, goal)
	require.NoError(t, err)

	stepper, err := gridastar.NewStepper(context.Background(), grid, start, goal)
	require.NoError(t, err)
	defer stepper.Close()

	final := stepToEnd(t, stepper)
	require.True(t, final.Found)
	require.Equal(t, result.Cost, final.Cost)
	require.Equal(t, goal, final.Path[0].Pos)
	require.Equal(t, start, final.Path[len(final.Path)-1].Pos)
}

func TestStepperSnapshotsAreConsistent(t *testing.T) {
	grid := mustGrid(t, [][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	})
	stepper, err := gridastar.NewStepper(context.Background(), grid,
		gridastar.Cell{X: 0, Y: 0}, gridastar.Cell{X: 2, Y: 2})
	require.NoError(t, err)
	defer stepper.Close()

	for {
		snapshot, err := stepper.Step()
		require.NoError(t, err)
		if snapshot.Done {
			break
		}
		assert.True(t, snapshot.Closed[snapshot.Current], "current cell must be closed")
		for pos := range snapshot.Open {
			assert.False(t, snapshot.Closed[pos], "cell %v in both open and closed sets", pos)
		}
		assert.Positive(t, snapshot.StepIndex)
	}
}

func TestStepperUnreachable(t *testing.T) {
	grid := mustGrid(t, [][]int{
		{1, 0, 1},
		{0, 1, 0},
		{1, 0, 1},
	})
	stepper, err := gridastar.NewStepper(context.Background(), grid,
		gridastar.Cell{X: 0, Y: 0}, gridastar.Cell{X: 1, Y: 1})
	require.NoError(t, err)
	defer stepper.Close()

	final := stepToEnd(t, stepper)
	require.True(t, final.Done)
	require.False(t, final.Found)
	require.Nil(t, final.Path)
}

func TestStepperValidatesEndpoints(t *testing.T) {
	grid := mustGrid(t, [][]int{{1, 0}, {1, 1}})

	_, err := gridastar.NewStepper(context.Background(), grid,
		gridastar.Cell{X: 0, Y: 1}, gridastar.Cell{X: 1, Y: 1})
	require.ErrorIs(t, err, gridastar.ErrImpassableEndpoint)

	_, err = gridastar.NewStepper(context.Background(), grid,
		gridastar.Cell{X: 0, Y: 0}, gridastar.Cell{X: 9, Y: 9})
	require.ErrorIs(t, err, gridastar.ErrOutOfBounds)
}

func TestStepperRepeatsFinalState(t *testing.T) {
	grid := mustGrid(t, [][]int{{2}})
	origin := gridastar.Cell{}

	stepper, err := gridastar.NewStepper(context.Background(), grid, origin, origin)
	require.NoError(t, err)
	defer stepper.Close()

	final := stepToEnd(t, stepper)
	require.True(t, final.Found)
	require.Equal(t, 2, final.Cost)

	again, err := stepper.Step()
	require.NoError(t, err)
	require.True(t, again.Done)
	require.True(t, again.Found)
	require.Equal(t, final.StepIndex, again.StepIndex)
}

func TestStepperCloseStopsSearch(t *testing.T) {
	grid := mustGrid(t, [][]int{{1}, {1}, {1}})
	stepper, err := gridastar.NewStepper(context.Background(), grid,
		gridastar.Cell{X: 0, Y: 0}, gridastar.Cell{X: 2, Y: 0})
	require.NoError(t, err)

	stepper.Close()
	snapshot, err := stepper.Step()
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, snapshot.Done)
}
