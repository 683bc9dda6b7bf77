package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"strategy-sandbox/internal/domain"
	"strategy-sandbox/internal/listing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService owns the transient per-user sandbox contexts. Everything
// lives in memory; nothing is persisted anywhere, by design.
type SessionService struct {
	tracer trace.Tracer

	mu       sync.RWMutex
	sessions map[string]*domain.Session

	newID func() string
	now   func() time.Time
}

func NewSessionService(tracer trace.Tracer) *SessionService {
	return &SessionService{
		tracer:   tracer,
		sessions: make(map[string]*domain.Session),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Create opens a fresh session with the default DualMA setup: default
// parameters, first catalog instrument, and the canonical listing with the
// capital comment inserted.
func (s *SessionService) Create(ctx context.Context) domain.Session {
	_, span := s.tracer.Start(ctx, "session.create")
	defer span.End()

	params := domain.DefaultParameters()
	now := s.now()
	sess := &domain.Session{
		ID:             s.newID(),
		Strategy:       domain.StrategyDualMA,
		Instrument:     domain.DefaultInstrumentFor(domain.StrategyDualMA),
		Params:         params,
		ExecutedParams: params,
		Listing:        listing.InsertCapital(listing.Template(domain.StrategyDualMA), params.InitialCapital),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	span.SetAttributes(attribute.String("session_id", sess.ID))

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return *sess
}

// Get returns a snapshot of the session.
func (s *SessionService) Get(ctx context.Context, id string) (domain.Session, error) {
	_, span := s.tracer.Start(ctx, "session.get")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}
	return *sess, nil
}

// SelectStrategy switches the session to another template: the canonical
// listing is loaded, its defaults parsed back into the parameter set
// (fields of other templates survive untouched), and the instrument is
// forced onto eligible ground: SmallCap takes the composite index, every
// other template leaves it.
func (s *SessionService) SelectStrategy(ctx context.Context, id string, strategy domain.StrategyType) (domain.Session, error) {
	_, span := s.tracer.Start(ctx, "session.select-strategy")
	defer span.End()
	span.SetAttributes(attribute.String("strategy", string(strategy)))

	if !domain.IsSupportedStrategy(strategy) {
		return domain.Session{}, errors.New("unknown strategy: " + string(strategy))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}

	text := listing.InsertCapital(listing.Template(strategy), sess.Params.InitialCapital)
	sess.Strategy = strategy
	sess.Listing = text
	sess.Params = listing.FromListing(strategy, text, sess.Params)

	if !domain.InstrumentEligible(strategy, sess.Instrument.Code) {
		sess.Instrument = domain.DefaultInstrumentFor(strategy)
	}
	sess.UpdatedAt = s.now()

	return *sess, nil
}

// SelectInstrument validates eligibility and switches the backtest target.
func (s *SessionService) SelectInstrument(ctx context.Context, id, code string) (domain.Session, domain.Validation, error) {
	_, span := s.tracer.Start(ctx, "session.select-instrument")
	defer span.End()
	span.SetAttributes(attribute.String("instrument", code))

	inst, ok := domain.LookupInstrument(code)
	if !ok {
		return domain.Session{}, domain.Rejected("unknown instrument: " + code), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, found := s.sessions[id]
	if !found {
		return domain.Session{}, domain.Validation{}, ErrSessionNotFound
	}

	if !domain.InstrumentEligible(sess.Strategy, code) {
		return *sess, domain.Rejected("instrument " + code + " is not eligible for strategy " + string(sess.Strategy)), nil
	}

	sess.Instrument = inst
	sess.UpdatedAt = s.now()
	return *sess, domain.Valid(), nil
}

// UpdateParams is the slider path: the parameter set is replaced wholesale
// and the listing rewritten to match.
func (s *SessionService) UpdateParams(ctx context.Context, id string, params domain.ParameterSet) (domain.Session, error) {
	_, span := s.tracer.Start(ctx, "session.update-params")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}

	sess.Params = params
	sess.Listing = listing.ToListing(sess.Strategy, params, sess.Listing)
	sess.UpdatedAt = s.now()
	return *sess, nil
}

// UpdateListing is the editor path: the text is stored as-is and parsed
// back into the parameter set. Unparseable tokens leave their fields alone.
func (s *SessionService) UpdateListing(ctx context.Context, id, text string) (domain.Session, error) {
	_, span := s.tracer.Start(ctx, "session.update-listing")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}

	sess.Listing = text
	sess.Params = listing.FromListing(sess.Strategy, text, sess.Params)
	sess.UpdatedAt = s.now()
	return *sess, nil
}

// CommitRun records a completed backtest: the live parameters become the
// executed set the results belong to.
func (s *SessionService) CommitRun(ctx context.Context, id string, result *domain.BacktestResult) (domain.Session, error) {
	_, span := s.tracer.Start(ctx, "session.commit-run")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}

	sess.ExecutedParams = sess.Params
	sess.LastResult = result
	sess.UpdatedAt = s.now()
	return *sess, nil
}

// AppendAnalysis attaches advisor commentary to the session listing as an
// opaque comment block.
func (s *SessionService) AppendAnalysis(ctx context.Context, id, commentary string) (domain.Session, error) {
	_, span := s.tracer.Start(ctx, "session.append-analysis")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}

	sess.Listing = listing.AppendAnalysis(sess.Listing, commentary)
	sess.UpdatedAt = s.now()
	return *sess, nil
}

// Reap drops sessions idle for longer than ttl and reports how many went.
func (s *SessionService) Reap(ctx context.Context, ttl time.Duration) int {
	_, span := s.tracer.Start(ctx, "session.reap")
	defer span.End()

	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	span.SetAttributes(attribute.Int("removed", removed))
	return removed
}
