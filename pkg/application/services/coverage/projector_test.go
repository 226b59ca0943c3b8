package coverage

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	testCases := []struct {
		name          string
		stock         float64
		demand        []float64
		replenishment []float64
		expected      []float64
	}{
		{"fractional day", 50, []float64{100}, []float64{0}, []float64{0.5}},
		{"zero stock", 0, []float64{10}, []float64{0}, []float64{0}},
		{"full coverage", 100, []float64{10, 20, 30}, []float64{0, 0, 0}, []float64{3, 2, 1}},
		{"partial days", 25, []float64{10, 20}, []float64{0, 0}, []float64{1.75, 0.75}},
		{"zero demand is always covered", 0, []float64{0, 0}, []float64{0, 0}, []float64{2, 1}},
		{"later replenishment is ignored by earlier days", 10, []float64{10, 10, 10}, []float64{0, 100, 0}, []float64{1, 0, 1}},
		{"replenishment raises the next day's stock", 0, []float64{0, 10, 10}, []float64{20, 0, 0}, []float64{1, 2, 1}},
		{"last day counts its own replenishment", 0, []float64{10, 10}, []float64{10, 10}, []float64{0, 1}},
		{"empty horizon", 10, []float64{}, []float64{}, []float64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Project(tc.stock, tc.demand, tc.replenishment)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestProject_NegativeRunningStockYieldsZero(t *testing.T) {
	got, err := Project(5, []float64{20, 10, 10}, []float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0, 0}, got)
}

func TestProject_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(20)
		demand := make([]float64, n)
		replenishment := make([]float64, n)
		for i := range demand {
			demand[i] = float64(rng.Intn(50))
			replenishment[i] = float64(rng.Intn(50))
		}
		stock := float64(rng.Intn(300))

		got, err := Project(stock, demand, replenishment)
		require.NoError(t, err)
		require.Len(t, got, n)
		for d, v := range got {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, float64(n-d))
		}
	}
}

func TestProject_FullCoverageIsExact(t *testing.T) {
	demand := []float64{3, 7, 11, 13}
	got, err := Project(34, demand, []float64{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 4.0, got[0])
}

func TestProject_Preconditions(t *testing.T) {
	_, err := Project(-1, []float64{1}, []float64{0})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, err = Project(1, []float64{-1}, []float64{0})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, err = Project(1, []float64{1}, []float64{math.NaN()})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, err = Project(1, []float64{1, 2}, []float64{0})
	assert.ErrorIs(t, err, ErrSeriesLength)
}

func TestDaysOfSupply(t *testing.T) {
	assert.Equal(t, 0.0, DaysOfSupply(0, []float64{1}))
	assert.Equal(t, 0.0, DaysOfSupply(-5, []float64{0, 1}))
	assert.Equal(t, 2.5, DaysOfSupply(25, []float64{10, 10, 10}))
	assert.Equal(t, 3.0, DaysOfSupply(1000, []float64{10, 10, 10}))
	assert.Equal(t, 0.0, DaysOfSupply(10, nil))
}
