package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"strategy-sandbox/internal/domain"
	"strategy-sandbox/internal/listing"
	"strategy-sandbox/internal/sim"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const resultCacheTTL = 10 * time.Minute

// RedisClient is the slice of the redis API the memoization cache needs.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// BacktestService composes the deterministic pipeline: validation gate,
// ledger, metrics derived from the ledger's length, chart series from the
// ledger's trades. One call produces all three artifacts so they can never
// drift apart. Results are memoized by signature as a pure optimization;
// the recomputation would be bit-identical.
type BacktestService struct {
	tracer trace.Tracer
	redis  RedisClient
	delay  time.Duration
	now    func() time.Time
}

// NewBacktestService wires the pipeline. redisClient may be nil (no
// memoization); delay is the presentational pause before results are
// considered ready, zero to disable.
func NewBacktestService(tracer trace.Tracer, redisClient RedisClient, delay time.Duration) *BacktestService {
	return &BacktestService{
		tracer: tracer,
		redis:  redisClient,
		delay:  delay,
		now:    time.Now,
	}
}

// Validate checks the run preconditions that do not involve the listing
// text. Rejections are user-correctable states, not errors.
func Validate(strategy domain.StrategyType, instrumentCode string, p domain.ParameterSet) domain.Validation {
	if !domain.IsSupportedStrategy(strategy) {
		return domain.Rejected("unknown strategy: " + string(strategy))
	}
	if !domain.InstrumentEligible(strategy, instrumentCode) {
		return domain.Rejected("instrument " + instrumentCode + " is not eligible for strategy " + string(strategy))
	}

	start, err := sim.ParseDate(p.StartDate)
	if err != nil {
		return domain.Rejected("start date is not a valid ISO date: " + p.StartDate)
	}
	end, err := sim.ParseDate(p.EndDate)
	if err != nil {
		return domain.Rejected("end date is not a valid ISO date: " + p.EndDate)
	}
	if start.After(end) {
		return domain.Rejected("start date must not be after end date")
	}

	if strategy == domain.StrategyDualMA && p.ShortPeriod >= p.LongPeriod {
		return domain.Rejected(fmt.Sprintf(
			"fast MA period (%g) must be strictly less than slow MA period (%g)",
			p.ShortPeriod, p.LongPeriod))
	}

	return domain.Valid()
}

// Run executes one backtest for the session's current strategy, instrument,
// parameters, and listing. A failed gate returns the rejection with a nil
// result; the only error is context cancellation during the artificial
// delay.
func (s *BacktestService) Run(ctx context.Context, sess domain.Session) (*domain.BacktestResult, domain.Validation, error) {
	ctx, span := s.tracer.Start(ctx, "backtest.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("strategy", string(sess.Strategy)),
		attribute.String("instrument", sess.Instrument.Code),
	)

	if v := Validate(sess.Strategy, sess.Instrument.Code, sess.Params); !v.OK {
		return nil, v, nil
	}
	if !listing.IsStructurallyValid(sess.Strategy, sess.Listing) {
		return nil, domain.Rejected("listing structure does not match the " + string(sess.Strategy) + " template; only numeric edits are allowed"), nil
	}

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, domain.Validation{}, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	signature := sim.Signature(sess.Strategy, sess.Instrument.Code, sess.Params)

	if cached := s.getCached(ctx, signature); cached != nil {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		cached.Log = s.runLog()
		return cached, domain.Valid(), nil
	}

	ledger := sim.GenerateLedger(sess.Strategy, sess.Instrument.Code, sess.Params)
	metrics := sim.Summarize(sess.Strategy, sess.Instrument.Code, sess.Params, len(ledger))
	series := sim.BuildSeries(sess.Params, ledger, sess.Instrument.Code)

	result := &domain.BacktestResult{
		Signature: signature,
		Metrics:   metrics,
		Trades:    ledger,
		Series:    series,
	}
	s.setCached(ctx, signature, result)

	result.Log = s.runLog()
	return result, domain.Valid(), nil
}

// runLog is the staged engine log shown alongside results. Timestamps are
// presentational; the log carries no simulation state.
func (s *BacktestService) runLog() []domain.LogEntry {
	ts := s.now().Format("15:04:05")
	entry := func(level domain.LogLevel, msg string) domain.LogEntry {
		return domain.LogEntry{Time: ts, Level: level, Message: msg}
	}
	return []domain.LogEntry{
		entry(domain.LogInfo, "[data] instrument permission verified"),
		entry(domain.LogInfo, "[data] downloading price history..."),
		entry(domain.LogSuccess, "[data] candle data ready"),
		entry(domain.LogInfo, "[compile] strategy listing compiled"),
		entry(domain.LogWarn, "[engine] backtest engine started..."),
		entry(domain.LogSuccess, "[trade] strategy execution finished"),
		entry(domain.LogSuccess, "[stats] equity settlement complete"),
	}
}

func (s *BacktestService) getCached(ctx context.Context, signature string) *domain.BacktestResult {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, cacheKey(signature)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis cache read error: %v", err)
		}
		return nil
	}
	var result domain.BacktestResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Printf("corrupt cached backtest result: %v", err)
		return nil
	}
	return &result
}

func (s *BacktestService) setCached(ctx context.Context, signature string, result *domain.BacktestResult) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(signature), data, resultCacheTTL).Err(); err != nil {
		log.Printf("redis cache write error: %v", err)
	}
}

func cacheKey(signature string) string {
	return "backtest:" + signature
}
