package sim

import "strategy-sandbox/internal/domain"

// Fixed seed offsets, one per headline metric, so the draws stay
// uncorrelated while sharing the run's seed family.
const (
	offAnnualReturn = 1
	offMaxDrawdown  = 2
	offSharpe       = 3
	offWinRate      = 4
	offBenchmark    = 6
)

// winRateCeiling keeps the synthesized win rate below a believable 100%.
const winRateCeiling = 95

// Summarize derives the headline statistics for a run. ledgerLen is the
// length of the ledger generated from the same inputs in the same call and
// is copied into TradeCount verbatim; the summarizer never re-derives a
// count of its own, so the two artifacts cannot drift.
func Summarize(strategy domain.StrategyType, instrumentCode string, p domain.ParameterSet, ledgerLen int) domain.Metrics {
	seed := Hash(Signature(strategy, instrumentCode, p))
	val := func(offset int32, min, max float64) float64 {
		return Scaled(abs32(seed+offset), min, max)
	}

	ret := val(offAnnualReturn, 5, 55)
	drawdown := val(offMaxDrawdown, 6, 15)
	sharpe := ret/20 + val(offSharpe, 0, 0.5)

	winRate := 45 + ret*0.4 + val(offWinRate, 0, 10)
	if winRate > winRateCeiling {
		winRate = winRateCeiling
	}

	// Benchmark is strategy-flavored noise from a narrower band.
	benchmark := val(offBenchmark, 2, 12)

	return domain.Metrics{
		AnnualReturn:    round2(ret),
		BenchmarkReturn: round2(benchmark),
		SharpeRatio:     round2(sharpe),
		MaxDrawdown:     round2(drawdown),
		WinRate:         round2(winRate),
		TradeCount:      ledgerLen,
	}
}
