package sim

import (
	"reflect"
	"testing"

	"strategy-sandbox/internal/domain"
)

func TestBuildSeriesCoversEveryTradableDay(t *testing.T) {
	t.Parallel()

	p := domain.DefaultParameters()
	p.StartDate = "2024-03-01"
	p.EndDate = "2024-04-30"
	ledger := GenerateLedger(domain.StrategyDualMA, "300539.SZ", p)
	series := BuildSeries(p, ledger, "300539.SZ")

	days := TradingDays(date(p.StartDate), date(p.EndDate))
	if len(series) != len(days) {
		t.Fatalf("series has %d points, range has %d tradable days", len(series), len(days))
	}
	for i, pt := range series {
		if want := days[i].Format("2006-01-02"); pt.Date != want {
			t.Fatalf("point %d dated %s, want %s", i, pt.Date, want)
		}
	}
}

func TestBuildSeriesDeterministic(t *testing.T) {
	t.Parallel()

	p := domain.DefaultParameters()
	ledger := GenerateLedger(domain.StrategyGrid, "603019.SH", p)
	a := BuildSeries(p, ledger, "603019.SH")
	b := BuildSeries(p, ledger, "603019.SH")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two renders differ")
	}
}

func TestBuildSeriesEchoesLedgerDays(t *testing.T) {
	t.Parallel()

	p := domain.DefaultParameters()
	ledger := GenerateLedger(domain.StrategyDualMA, "300539.SZ", p)
	if len(ledger) == 0 {
		t.Skip("no trades in range")
	}
	series := BuildSeries(p, ledger, "300539.SZ")

	byDate := make(map[string]domain.ChartPoint, len(series))
	for _, pt := range series {
		byDate[pt.Date] = pt
	}
	for _, tr := range ledger {
		pt, ok := byDate[tr.Date]
		if !ok {
			t.Fatalf("no chart point for trade day %s", tr.Date)
		}
		if pt.Price != tr.Price {
			t.Fatalf("day %s: chart price %v, trade price %v", tr.Date, pt.Price, tr.Price)
		}
		want := "buy"
		if tr.Direction == domain.Sell {
			want = "sell"
		}
		if pt.Signal != want {
			t.Fatalf("day %s: signal %q, want %q", tr.Date, pt.Signal, want)
		}
	}
}

func TestBuildSeriesEquityLifecycle(t *testing.T) {
	t.Parallel()

	p := domain.DefaultParameters()
	ledger := GenerateLedger(domain.StrategyDualMA, "300539.SZ", p)
	if len(ledger) == 0 {
		t.Skip("no trades in range")
	}
	series := BuildSeries(p, ledger, "300539.SZ")

	// Equity starts at initial capital and stays flat until the first entry.
	firstTrade := ledger[0].Date
	for _, pt := range series {
		if pt.Date == firstTrade {
			break
		}
		if pt.Equity != p.InitialCapital {
			t.Fatalf("equity moved to %v on %s before any trade", pt.Equity, pt.Date)
		}
	}

	for _, pt := range series {
		if pt.Equity <= 0 {
			t.Fatalf("non-positive equity %v on %s", pt.Equity, pt.Date)
		}
	}
}

func TestBuildSeriesMovingAverages(t *testing.T) {
	t.Parallel()

	p := domain.DefaultParameters()
	p.StartDate = "2024-02-01"
	p.EndDate = "2024-02-29"
	series := BuildSeries(p, nil, "300539.SZ")
	if len(series) == 0 {
		t.Fatal("empty series")
	}

	// First point: every window collapses to the single close.
	first := series[0]
	if first.MAShort != first.Price || first.MALong != first.Price {
		t.Fatalf("day-one MAs %v/%v do not equal price %v", first.MAShort, first.MALong, first.Price)
	}
	for _, pt := range series {
		if pt.MAShort <= 0 || pt.MALong <= 0 {
			t.Fatalf("non-positive MA on %s", pt.Date)
		}
	}
}

func TestBuildSeriesEmptyOnBadRange(t *testing.T) {
	t.Parallel()

	p := domain.DefaultParameters()
	p.StartDate = "2025-01-01"
	p.EndDate = "2024-01-01"
	if got := BuildSeries(p, nil, "300539.SZ"); got != nil {
		t.Fatalf("inverted range produced %d points", len(got))
	}
}
