package sim

import "strategy-sandbox/internal/domain"

// behavior fixes the per-strategy ledger generation profile: how eagerly a
// template enters, how long it holds, and how rough its synthetic price is.
type behavior struct {
	entryProb   float64 // per-day entry probability (ignored when monthly)
	holdMean    float64 // mean holding period in tradable days
	volatility  float64 // daily multiplicative walk amplitude
	returnScale float64 // scales realized per-trade returns
	monthly     bool    // rebalance on month transitions instead of draws
	limitUp     bool    // winners pinned near the daily limit (~9-11%)
}

func behaviorFor(strategy domain.StrategyType) behavior {
	switch strategy {
	case domain.StrategyT0:
		return behavior{entryProb: 0.3, holdMean: 1, volatility: 0.015, returnScale: 0.2}
	case domain.StrategyGrid:
		return behavior{entryProb: 0.15, holdMean: 3, volatility: 0.03, returnScale: 1}
	case domain.StrategyLimitUp:
		return behavior{entryProb: 0.05, holdMean: 2, volatility: 0.03, returnScale: 1, limitUp: true}
	case domain.StrategySmallCap:
		return behavior{holdMean: 20, volatility: 0.03, returnScale: 1, monthly: true}
	default:
		// Trend-following templates (DualMA, SingleMA).
		return behavior{entryProb: 0.02, holdMean: 10, volatility: 0.03, returnScale: 1}
	}
}
