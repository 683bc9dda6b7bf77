package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"strategy-sandbox/internal/domain"
)

func TestSessionCreateDefaults(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	sess := svc.Create(context.Background())

	if sess.ID == "" {
		t.Fatal("empty session id")
	}
	if sess.Strategy != domain.StrategyDualMA {
		t.Fatalf("default strategy %s, want %s", sess.Strategy, domain.StrategyDualMA)
	}
	if sess.Instrument.Code != "300539.SZ" {
		t.Fatalf("default instrument %s, want 300539.SZ", sess.Instrument.Code)
	}
	if sess.Params != domain.DefaultParameters() {
		t.Fatalf("parameters are not defaults: %+v", sess.Params)
	}
	if sess.ExecutedParams != sess.Params {
		t.Fatal("executed parameters diverge from live at creation")
	}
	if !strings.Contains(sess.Listing, "# Initial Capital: 100000") {
		t.Fatal("listing missing capital comment")
	}

	got, err := svc.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if got.ID != sess.ID {
		t.Fatal("get returned a different session")
	}
}

func TestSessionGetUnknown(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	if _, err := svc.Get(context.Background(), "no-such"); err != ErrSessionNotFound {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSelectStrategyLoadsTemplateAndKeepsCapital(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	sess := svc.Create(context.Background())

	p := sess.Params
	p.InitialCapital = 300000
	if _, err := svc.UpdateParams(context.Background(), sess.ID, p); err != nil {
		t.Fatalf("update params: %v", err)
	}

	got, err := svc.SelectStrategy(context.Background(), sess.ID, domain.StrategyGrid)
	if err != nil {
		t.Fatalf("select strategy: %v", err)
	}
	if got.Strategy != domain.StrategyGrid {
		t.Fatalf("strategy = %s", got.Strategy)
	}
	if !strings.Contains(got.Listing, "GridStrategy") {
		t.Fatal("grid template not loaded")
	}
	if !strings.Contains(got.Listing, "# Initial Capital: 300000") {
		t.Fatal("capital not carried into the new listing")
	}
	// Template defaults land in the grid fields.
	if got.Params.GridStep != 2.0 || got.Params.GridSize != 1000 {
		t.Fatalf("grid defaults not parsed: %+v", got.Params)
	}
}

func TestSelectStrategyForcesInstrument(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	sess := svc.Create(context.Background())

	got, err := svc.SelectStrategy(context.Background(), sess.ID, domain.StrategySmallCap)
	if err != nil {
		t.Fatalf("select strategy: %v", err)
	}
	if got.Instrument.Code != domain.CompositeIndexCode {
		t.Fatalf("instrument %s, want %s", got.Instrument.Code, domain.CompositeIndexCode)
	}

	// And back again: the composite index is not eligible under DualMA.
	got, err = svc.SelectStrategy(context.Background(), sess.ID, domain.StrategyDualMA)
	if err != nil {
		t.Fatalf("select strategy: %v", err)
	}
	if got.Instrument.Code == domain.CompositeIndexCode {
		t.Fatal("composite index survived the switch away from SmallCap")
	}
}

func TestSelectStrategyUnknown(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	sess := svc.Create(context.Background())
	if _, err := svc.SelectStrategy(context.Background(), sess.ID, domain.StrategyType("momentum")); err == nil {
		t.Fatal("unknown strategy accepted")
	}
}

func TestSelectInstrument(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	sess := svc.Create(context.Background())

	got, v, err := svc.SelectInstrument(context.Background(), sess.ID, "603019.SH")
	if err != nil {
		t.Fatalf("select instrument: %v", err)
	}
	if !v.OK {
		t.Fatalf("eligible instrument rejected: %s", v.Reason)
	}
	if got.Instrument.Code != "603019.SH" {
		t.Fatalf("instrument %s", got.Instrument.Code)
	}

	// Ineligible pick is rejected, session untouched.
	got, v, err = svc.SelectInstrument(context.Background(), sess.ID, domain.CompositeIndexCode)
	if err != nil {
		t.Fatalf("select instrument: %v", err)
	}
	if v.OK {
		t.Fatal("composite index accepted under DualMA")
	}
	if got.Instrument.Code != "603019.SH" {
		t.Fatal("rejected selection mutated the session")
	}

	if _, v, err = svc.SelectInstrument(context.Background(), sess.ID, "000001.XX"); err != nil {
		t.Fatalf("select instrument: %v", err)
	} else if v.OK {
		t.Fatal("unknown instrument accepted")
	}
}

func TestUpdateParamsRewritesListing(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	sess := svc.Create(context.Background())

	p := sess.Params
	p.StopLoss = 12
	got, err := svc.UpdateParams(context.Background(), sess.ID, p)
	if err != nil {
		t.Fatalf("update params: %v", err)
	}
	if got.Params.StopLoss != 12 {
		t.Fatalf("StopLoss = %v", got.Params.StopLoss)
	}
	if !strings.Contains(got.Listing, "('stop_loss', 12)") {
		t.Fatal("listing not rewritten from parameters")
	}
}

func TestUpdateListingParsesParams(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	sess := svc.Create(context.Background())

	text := strings.Replace(sess.Listing, "('period_fast', 10)", "('period_fast', 7)", 1)
	got, err := svc.UpdateListing(context.Background(), sess.ID, text)
	if err != nil {
		t.Fatalf("update listing: %v", err)
	}
	if got.Params.ShortPeriod != 7 {
		t.Fatalf("ShortPeriod = %v, want 7", got.Params.ShortPeriod)
	}
	if got.Listing != text {
		t.Fatal("listing not stored verbatim")
	}
}

func TestCommitRunSnapshotsExecutedParams(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	sess := svc.Create(context.Background())

	p := sess.Params
	p.TakeProfit = 25
	if _, err := svc.UpdateParams(context.Background(), sess.ID, p); err != nil {
		t.Fatalf("update params: %v", err)
	}

	result := &domain.BacktestResult{Signature: "sig"}
	got, err := svc.CommitRun(context.Background(), sess.ID, result)
	if err != nil {
		t.Fatalf("commit run: %v", err)
	}
	if got.ExecutedParams.TakeProfit != 25 {
		t.Fatalf("executed TakeProfit = %v", got.ExecutedParams.TakeProfit)
	}
	if got.LastResult == nil || got.LastResult.Signature != "sig" {
		t.Fatal("result not attached")
	}
}

func TestAppendAnalysisKeepsListingParsable(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	sess := svc.Create(context.Background())

	got, err := svc.AppendAnalysis(context.Background(), sess.ID, "Consider a wider stop.")
	if err != nil {
		t.Fatalf("append analysis: %v", err)
	}
	if !strings.Contains(got.Listing, "# Consider a wider stop.") {
		t.Fatal("commentary not appended as comments")
	}
	if got.Params != sess.Params {
		t.Fatal("analysis mutated parameters")
	}
}

func TestReapDropsIdleSessions(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(testTracer)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	stale := svc.Create(context.Background())

	svc.now = func() time.Time { return base.Add(2 * time.Hour) }
	fresh := svc.Create(context.Background())

	svc.now = func() time.Time { return base.Add(150 * time.Minute) }
	if removed := svc.Reap(context.Background(), 2*time.Hour); removed != 1 {
		t.Fatalf("removed %d sessions, want 1", removed)
	}
	if _, err := svc.Get(context.Background(), stale.ID); err != ErrSessionNotFound {
		t.Fatal("stale session survived the reap")
	}
	if _, err := svc.Get(context.Background(), fresh.ID); err != nil {
		t.Fatal("fresh session was reaped")
	}
}
