package tracker

import (
	"time"

	"pasarumkm/internal/domain"
)

// estimateCap keeps the time-based guess below certainty until the
// authoritative status says otherwise.
const estimateCap = 0.95

// Progress is what the customer-facing progress bar renders.
type Progress struct {
	Ratio     float64 `json:"ratio"`
	Step      int     `json:"step"`
	Estimated bool    `json:"estimated"`
}

// Estimate reconciles two sources of truth: the authoritative order
// status and a local guess from elapsed time vs the expected-ready
// window. Once the status reaches ready or completed the estimate is
// irrelevant and the result snaps to 100% / the terminal step, no matter
// how far along the clock says we are. The estimate only ever moves the
// display forward; it can never outrank the cap or regress below the
// step implied by the real status.
func Estimate(order *domain.Order, now time.Time) Progress {
	statusStep := domain.StatusRank(order.Status)
	if statusStep < 0 {
		statusStep = 0
	}

	if order.Status == domain.StatusReady || order.Status == domain.StatusCompleted {
		return Progress{Ratio: 1.0, Step: statusStep, Estimated: false}
	}

	total := order.ExpectedReadyAt.Sub(order.CreatedAt)
	ratio := 0.0
	if total > 0 {
		ratio = float64(now.Sub(order.CreatedAt)) / float64(total)
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > estimateCap {
		ratio = estimateCap
	}

	// Derive a display step from the ratio, but never show the terminal
	// step from an estimate alone.
	estimatedStep := int(ratio * 4)
	if estimatedStep > 2 {
		estimatedStep = 2
	}

	step := statusStep
	if estimatedStep > step {
		step = estimatedStep
	}

	// The real status also puts a floor under the ratio so a fresh push
	// update is never shown behind the bar position it implies.
	statusFloor := float64(statusStep) * 0.25
	if ratio < statusFloor {
		ratio = statusFloor
	}

	return Progress{Ratio: ratio, Step: step, Estimated: true}
}
