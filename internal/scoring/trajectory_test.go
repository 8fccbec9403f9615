package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTrajectoryTooFewPoints(t *testing.T) {
	assert.Nil(t, ComputeTrajectory(nil))
	assert.Nil(t, ComputeTrajectory([]int{12}))
}

func TestComputeTrajectoryImproving(t *testing.T) {
	tr := ComputeTrajectory([]int{18, 15, 12, 9, 6})
	require.NotNil(t, tr)
	assert.Equal(t, "improving", tr.Direction)
	assert.Negative(t, tr.Slope)
	assert.True(t, tr.Significant)
	assert.Equal(t, 18, tr.FirstScore)
	assert.Equal(t, 6, tr.LatestScore)
	assert.Equal(t, -12, tr.Change)
	assert.InDelta(t, -66.7, tr.ChangePct, 0.01)
}

func TestComputeTrajectoryWorsening(t *testing.T) {
	tr := ComputeTrajectory([]int{5, 9, 14, 19})
	require.NotNil(t, tr)
	assert.Equal(t, "worsening", tr.Direction)
	assert.Positive(t, tr.Slope)
}

func TestComputeTrajectoryStable(t *testing.T) {
	tr := ComputeTrajectory([]int{10, 10, 11, 10})
	require.NotNil(t, tr)
	assert.Equal(t, "stable", tr.Direction)
}

func TestComputeTrajectoryZeroFirstScore(t *testing.T) {
	tr := ComputeTrajectory([]int{0, 4, 8})
	require.NotNil(t, tr)
	assert.Equal(t, 0.0, tr.ChangePct)
	assert.Equal(t, 8, tr.Change)
}
