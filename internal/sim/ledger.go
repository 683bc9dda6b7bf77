package sim

import (
	"math"
	"time"

	"strategy-sandbox/internal/domain"
)

// dayStride spaces per-day sub-seeds far enough apart that one day's draws
// never collide with the next day's offsets.
const dayStride = 100

// Per-day draw offsets.
const (
	offWalk  = 1
	offExit  = 2
	offWin   = 3
	offMagn  = 4
	offEntry = 5
)

// GenerateLedger produces the ordered buy/sell event sequence for one
// backtest run. Same inputs, same ledger: every draw comes from the
// signature-derived seed family. A malformed or inverted date range yields
// an empty ledger.
func GenerateLedger(strategy domain.StrategyType, instrumentCode string, p domain.ParameterSet) []domain.Trade {
	days := parseRange(p.StartDate, p.EndDate)
	if len(days) == 0 {
		return nil
	}

	seed := Hash(Signature(strategy, instrumentCode, p))
	beh := behaviorFor(strategy)

	var trades []domain.Trade
	holding := false
	entryPrice := 0.0
	basePrice := 1000 + Unit(seed)*1000
	lastRebalance := 0

	for i, date := range days {
		day := int32(i)
		daily := func(offset int32) float64 {
			return draw(seed, day*dayStride+offset)
		}

		basePrice *= 1 + (daily(offWalk)-0.5)*beh.volatility
		if basePrice < 1 {
			basePrice = 1
		}

		// Tradable days remaining after this one.
		remaining := len(days) - 1 - i
		monthKey := monthOf(date)

		if holding {
			var shouldExit bool
			if beh.monthly {
				shouldExit = monthKey != lastRebalance
			} else {
				shouldExit = daily(offExit) < 1/beh.holdMean
			}
			if remaining <= 1 {
				// Never let the ledger end mid-position.
				shouldExit = true
			}
			if !shouldExit {
				continue
			}

			sellPrice, pl := closePosition(p, beh, entryPrice, daily)
			plOut := round2(pl)
			trades = append(trades, domain.Trade{
				Date:      date.Format(dateLayout),
				Direction: domain.Sell,
				Price:     round2(sellPrice),
				PL:        &plOut,
			})
			holding = false
			lastRebalance = monthKey
			// Snap the walk back to the realized price.
			basePrice = sellPrice
			continue
		}

		// Entries too close to the range end could not be closed in time.
		if remaining < 2 {
			continue
		}
		var enter bool
		if beh.monthly {
			enter = monthKey != lastRebalance
		} else {
			enter = daily(offEntry) < beh.entryProb
		}
		if enter {
			entryPrice = basePrice
			trades = append(trades, domain.Trade{
				Date:      date.Format(dateLayout),
				Direction: domain.Buy,
				Price:     round2(entryPrice),
			})
			holding = true
			lastRebalance = monthKey
		}
	}

	return trades
}

// closePosition draws the exit outcome: win/loss, magnitude scaled by the
// configured take-profit/stop-loss, cash P&L at half-capital sizing floored
// to whole shares.
func closePosition(p domain.ParameterSet, beh behavior, entryPrice float64, daily func(int32) float64) (sellPrice, pl float64) {
	isWin := daily(offWin) > 0.45

	var returnPct float64
	if isWin {
		maxTP := p.TakeProfit
		if maxTP <= 0 {
			maxTP = 10
		}
		returnPct = (0.5 + daily(offMagn)*maxTP) / 100
	} else {
		maxSL := p.StopLoss
		if maxSL <= 0 {
			maxSL = 5
		}
		returnPct = -(0.5 + daily(offMagn)*maxSL) / 100
	}

	returnPct *= beh.returnScale
	if beh.limitUp && isWin {
		// Winners ride the daily limit board.
		returnPct = 0.09 + daily(offEntry)*0.02
	}

	sellPrice = entryPrice * (1 + returnPct)
	positionSize := p.InitialCapital * 0.5
	shares := math.Floor(positionSize / entryPrice)
	pl = (sellPrice - entryPrice) * shares
	return sellPrice, pl
}

func monthOf(t time.Time) int {
	return t.Year()*12 + int(t.Month())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
