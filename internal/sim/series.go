package sim

import "strategy-sandbox/internal/domain"

// Default moving-average windows when the parameter set leaves them unset.
const (
	defaultShortWindow = 5
	defaultLongWindow  = 10
)

// chartSeedTag separates the chart-only walk's seed family from the
// ledger's, so neither stream perturbs the other.
const chartSeedTag = "chart-"

// BuildSeries renders one ChartPoint per tradable day in the configured
// range. Ledger days reuse the trade's exact price, direction, and P&L; the
// chart and ledger can never disagree. Quiet days evolve the price with a
// smaller deterministic walk. Equity converts cash to shares on a buy,
// marks to market while holding, and freezes (realized P&L included) while
// flat.
func BuildSeries(p domain.ParameterSet, ledger []domain.Trade, instrumentCode string) []domain.ChartPoint {
	days := parseRange(p.StartDate, p.EndDate)
	if len(days) == 0 {
		return nil
	}

	tradeByDate := make(map[string]domain.Trade, len(ledger))
	for _, t := range ledger {
		tradeByDate[t.Date] = t
	}

	seed := Hash(chartSeedTag + instrumentCode + "-" + encodeParams(p))

	price := 1220.0
	if len(ledger) > 0 {
		price = ledger[0].Price * 0.95
	}
	equity := p.InitialCapital
	shares := 0.0
	holding := false

	shortWindow := maWindow(p.ShortPeriod, defaultShortWindow)
	longWindow := maWindow(p.LongPeriod, defaultLongWindow)

	closes := make([]float64, 0, len(days))
	points := make([]domain.ChartPoint, 0, len(days))

	for i, date := range days {
		dateStr := date.Format(dateLayout)
		point := domain.ChartPoint{Date: dateStr}

		if trade, ok := tradeByDate[dateStr]; ok {
			price = trade.Price
			if trade.Direction == domain.Buy {
				point.Signal = "buy"
				if !holding && price > 0 {
					holding = true
					shares = equity / price
				}
			} else {
				point.Signal = "sell"
				if holding {
					holding = false
					equity = shares * price
					shares = 0
				}
			}
			point.PL = trade.PL
		} else {
			delta := (draw(seed, int32(i)*dayStride+offWalk) - 0.5) * price * 0.02
			price += delta
			if price < 1 {
				price = 1
			}
			if holding {
				equity = shares * price
			}
		}

		closes = append(closes, price)

		point.Price = round2(price)
		point.MAShort = round2(trailingMean(closes, shortWindow))
		point.MALong = round2(trailingMean(closes, longWindow))
		point.Equity = round2(equity)
		points = append(points, point)
	}

	return points
}

func maWindow(param float64, fallback int) int {
	if param >= 1 {
		return int(param)
	}
	return fallback
}

// trailingMean averages the last window closes, or every close available
// when the series is still shorter than the window.
func trailingMean(closes []float64, window int) float64 {
	n := len(closes)
	if n == 0 {
		return 0
	}
	if window > n {
		window = n
	}
	var sum float64
	for _, c := range closes[n-window:] {
		sum += c
	}
	return sum / float64(window)
}
