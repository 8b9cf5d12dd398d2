// Package statistics provides uncertainty estimates for Monte Carlo
// win-rate proportions.
package statistics

import (
	"fmt"
	"math"
)

// Proportion summarises a binomial estimate: successes observed over a
// number of independent trials.
type Proportion struct {
	Successes int
	Trials    int
}

// Estimate returns the point estimate of the proportion
func (p Proportion) Estimate() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Successes) / float64(p.Trials)
}

// StdError returns the standard error of the estimate
func (p Proportion) StdError() float64 {
	if p.Trials == 0 {
		return 0
	}
	est := p.Estimate()
	return math.Sqrt(est * (1 - est) / float64(p.Trials))
}

// ConfidenceInterval95 returns the normal-approximation 95% confidence
// interval, clamped to [0, 1]. The approximation is poor for very small
// trial counts or estimates near 0 or 1.
func (p Proportion) ConfidenceInterval95() (float64, float64) {
	est := p.Estimate()
	margin := 1.96 * p.StdError()
	return math.Max(0, est-margin), math.Min(1, est+margin)
}

// MarginPct returns the 95% confidence margin as a percentage
func (p Proportion) MarginPct() float64 {
	return 1.96 * p.StdError() * 100
}

// String renders the estimate with its 95% margin, e.g. "85.2% ±1.0%"
func (p Proportion) String() string {
	return fmt.Sprintf("%.1f%% ±%.1f%%", p.Estimate()*100, p.MarginPct())
}
