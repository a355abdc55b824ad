package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pasarumkm/internal/domain"
)

func orderAt(status domain.OrderStatus, created time.Time, totalPrep time.Duration) *domain.Order {
	return &domain.Order{
		ID:              "o1",
		Status:          status,
		CreatedAt:       created,
		ExpectedReadyAt: created.Add(totalPrep),
	}
}

func TestEstimateStartsAtZero(t *testing.T) {
	created := time.Now()
	p := Estimate(orderAt(domain.StatusNew, created, 20*time.Minute), created)

	assert.Equal(t, 0.0, p.Ratio)
	assert.Equal(t, 0, p.Step)
	assert.True(t, p.Estimated)
}

func TestEstimateGrowsWithElapsedTime(t *testing.T) {
	created := time.Now()
	order := orderAt(domain.StatusNew, created, 20*time.Minute)

	p := Estimate(order, created.Add(10*time.Minute))
	assert.InDelta(t, 0.5, p.Ratio, 0.001)
	assert.Equal(t, 2, p.Step)
	assert.True(t, p.Estimated)
}

// The time-based guess is capped below certainty until the real status
// says the order is ready.
func TestEstimateNeverExceedsCap(t *testing.T) {
	created := time.Now()
	order := orderAt(domain.StatusNew, created, 20*time.Minute)

	for _, elapsed := range []time.Duration{20 * time.Minute, time.Hour, 24 * time.Hour} {
		p := Estimate(order, created.Add(elapsed))
		assert.Equal(t, 0.95, p.Ratio, "elapsed %v", elapsed)
		assert.Equal(t, 2, p.Step, "estimate alone must not reach the terminal step")
		assert.True(t, p.Estimated)
	}
}

// A push update to a terminal status snaps the display to 100% no matter
// where the clock-based estimate sits.
func TestTerminalStatusSnapsToFull(t *testing.T) {
	created := time.Now()

	// 40% elapsed, then the authoritative status arrives.
	completed := orderAt(domain.StatusCompleted, created, 20*time.Minute)
	p := Estimate(completed, created.Add(8*time.Minute))
	assert.Equal(t, 1.0, p.Ratio)
	assert.Equal(t, 3, p.Step)
	assert.False(t, p.Estimated)

	ready := orderAt(domain.StatusReady, created, 20*time.Minute)
	p = Estimate(ready, created.Add(8*time.Minute))
	assert.Equal(t, 1.0, p.Ratio)
	assert.Equal(t, 2, p.Step)
	assert.False(t, p.Estimated)
}

// The authoritative status floors the display: a processing order never
// renders behind the position that status implies.
func TestStatusFloorsTheRatio(t *testing.T) {
	created := time.Now()
	order := orderAt(domain.StatusProcessing, created, 20*time.Minute)

	p := Estimate(order, created.Add(time.Minute))
	assert.Equal(t, 0.25, p.Ratio)
	assert.Equal(t, 1, p.Step)
}

func TestEstimateClampsClockSkew(t *testing.T) {
	created := time.Now()
	order := orderAt(domain.StatusNew, created, 20*time.Minute)

	p := Estimate(order, created.Add(-time.Minute))
	assert.Equal(t, 0.0, p.Ratio)
}

func TestEstimateZeroWindow(t *testing.T) {
	created := time.Now()
	order := orderAt(domain.StatusNew, created, 0)

	p := Estimate(order, created.Add(time.Minute))
	assert.Equal(t, 0.0, p.Ratio)
	assert.Equal(t, 0, p.Step)
}
