package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"strategy-sandbox/internal/domain"
	"strategy-sandbox/internal/listing"
	"strategy-sandbox/internal/service"
	"strategy-sandbox/internal/sim"
)

// One-shot runner for the deterministic pipeline: same flags, same output,
// every time. Useful for eyeballing a configuration without the HTTP API.
func main() {
	strategyFlag := flag.String("strategy", "DualMA", "Strategy template: DualMA, SingleMA, SmallCap, Grid, T0, LimitUp")
	instrumentFlag := flag.String("instrument", "300539.SZ", "Instrument code from the catalog")
	startFlag := flag.String("start", "2024-01-01", "Backtest start date (ISO)")
	endFlag := flag.String("end", "2024-12-31", "Backtest end date (ISO)")
	capitalFlag := flag.Float64("capital", 100000, "Initial capital")
	shortFlag := flag.Float64("short-period", 10, "Fast MA period")
	longFlag := flag.Float64("long-period", 20, "Slow MA period")
	stopFlag := flag.Float64("stop-loss", 5, "Stop loss %")
	takeFlag := flag.Float64("take-profit", 15, "Take profit %")
	jsonFlag := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	logger := log.New(os.Stderr, "[backtest] ", log.LstdFlags)

	strategy := domain.StrategyType(*strategyFlag)
	if !domain.IsSupportedStrategy(strategy) {
		logger.Fatalf("unknown strategy %q", *strategyFlag)
	}

	params := domain.DefaultParameters()
	params.StartDate = *startFlag
	params.EndDate = *endFlag
	params.InitialCapital = *capitalFlag
	params.ShortPeriod = *shortFlag
	params.LongPeriod = *longFlag
	params.StopLoss = *stopFlag
	params.TakeProfit = *takeFlag

	instrumentCode := *instrumentFlag
	if !domain.InstrumentEligible(strategy, instrumentCode) {
		forced := domain.DefaultInstrumentFor(strategy)
		logger.Printf("instrument %s is not eligible for %s, using %s", instrumentCode, strategy, forced.Code)
		instrumentCode = forced.Code
	}

	if v := service.Validate(strategy, instrumentCode, params); !v.OK {
		logger.Fatalf("rejected: %s", v.Reason)
	}

	ledger := sim.GenerateLedger(strategy, instrumentCode, params)
	metrics := sim.Summarize(strategy, instrumentCode, params, len(ledger))
	series := sim.BuildSeries(params, ledger, instrumentCode)

	if *jsonFlag {
		result := domain.BacktestResult{
			Signature: sim.Signature(strategy, instrumentCode, params),
			Metrics:   metrics,
			Trades:    ledger,
			Series:    series,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatalf("encode: %v", err)
		}
		return
	}

	fmt.Printf("%s on %s, %s to %s\n", strategy, instrumentCode, params.StartDate, params.EndDate)
	fmt.Printf("  annual return   %8.2f%%\n", metrics.AnnualReturn)
	fmt.Printf("  benchmark       %8.2f%%\n", metrics.BenchmarkReturn)
	fmt.Printf("  sharpe ratio    %8.2f\n", metrics.SharpeRatio)
	fmt.Printf("  max drawdown    %8.2f%%\n", metrics.MaxDrawdown)
	fmt.Printf("  win rate        %8.2f%%\n", metrics.WinRate)
	fmt.Printf("  trades          %8d\n", metrics.TradeCount)
	fmt.Printf("  chart points    %8d\n", len(series))

	fmt.Println("\nLedger:")
	for _, t := range ledger {
		if t.PL != nil {
			fmt.Printf("  %s  %-4s  %10.2f  pl %12.2f\n", t.Date, t.Direction, t.Price, *t.PL)
		} else {
			fmt.Printf("  %s  %-4s  %10.2f\n", t.Date, t.Direction, t.Price)
		}
	}

	fmt.Println("\nListing:")
	fmt.Println(listing.InsertCapital(listing.Template(strategy), params.InitialCapital))
}
