package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"cafetalk/internal/modules/progress/domain"
	progressout "cafetalk/internal/modules/progress/port/out"
	"cafetalk/internal/platform/clock"
	apperrors "cafetalk/internal/platform/errors"
	"cafetalk/internal/platform/id"
	"cafetalk/internal/platform/logging"
)

// ProgressService owns the in-memory ProgressState. Every access goes
// through mu; publishers run while it is held and must not call back in.
type ProgressService struct {
	mu        sync.Mutex
	clock     clock.Clock
	idGen     id.Generator
	slot      progressout.StateSlot
	publisher progressout.Publisher
	journal   progressout.SessionJournal
	projector progressout.SessionProjector
	logger    *zap.Logger

	state *domain.ProgressState
}

// NewProgressService wires the service. journal and projector are optional.
func NewProgressService(
	clock clock.Clock,
	idGen id.Generator,
	slot progressout.StateSlot,
	publisher progressout.Publisher,
	journal progressout.SessionJournal,
	projector progressout.SessionProjector,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		clock:     clock,
		idGen:     idGen,
		slot:      slot,
		publisher: publisher,
		journal:   journal,
		projector: projector,
		logger:    logging.OrNop(logger).Named("progress"),
	}
}

func (s *ProgressService) Now() time.Time {
	return s.clock.Now()
}

// Record applies one session and commits it. The returned state is a copy.
func (s *ProgressService) Record(ctx context.Context, details domain.SessionDetails) (domain.Outcome, domain.ProgressState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	next := s.loadLocked(ctx).Clone()
	outcome := next.RecordSession(details, s.idGen.New(), now)

	if err := s.saveLocked(ctx, next); err != nil {
		return domain.Outcome{}, domain.ProgressState{}, err
	}
	if outcome.LeveledUp() {
		s.publisher.PublishLevelUp(ctx, LevelUpOutput(outcome, next.TotalXP))
	}
	s.logger.Info("session recorded",
		zap.String("scenario", outcome.Session.Scenario),
		zap.String("language", outcome.Session.Language),
		zap.Int("xp", outcome.XPEarned),
		zap.Int("achievement_xp", outcome.AchievementXP),
		zap.Int("total_xp", next.TotalXP),
		zap.Int("level", next.Level),
	)

	s.projectLocked(ctx, len(next.Sessions), outcome.Session)
	return outcome, next.Clone(), nil
}

func (s *ProgressService) State(ctx context.Context) domain.ProgressState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx).Clone()
}

func (s *ProgressService) Stats(ctx context.Context) domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeStats(*s.loadLocked(ctx), s.clock.Now())
}

// Reset clears the slot and commits a fresh default state.
func (s *ProgressService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Clear(ctx); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	s.state = nil
	if err := s.saveLocked(ctx, domain.NewState(s.clock.Now())); err != nil {
		return err
	}
	s.logger.Info("progress reset")
	s.rebuildIndexLocked(ctx)
	return nil
}

// Replace commits an already validated state wholesale.
func (s *ProgressService) Replace(ctx context.Context, state domain.ProgressState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidPayload, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveLocked(ctx, state.Clone()); err != nil {
		return err
	}
	s.logger.Info("progress imported", zap.Int("sessions", len(state.Sessions)), zap.Int("total_xp", state.TotalXP))
	s.rebuildIndexLocked(ctx)
	return nil
}

// Reload drops the cached state, re-reads the slot and publishes the result.
func (s *ProgressService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = nil
	state := s.loadLocked(ctx)
	s.publisher.PublishProgress(ctx, StatsOutput(domain.ComputeStats(*state, s.clock.Now())))
	return nil
}

func (s *ProgressService) Reindex(ctx context.Context) error {
	if s.projector == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.projector.Reset(ctx); err != nil {
		return fmt.Errorf("reset session index: %w", err)
	}
	for i, rec := range s.loadLocked(ctx).Sessions {
		if err := s.projector.UpsertSession(ctx, i+1, rec); err != nil {
			return fmt.Errorf("index session %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *ProgressService) History(ctx context.Context, query progressout.SessionQuery) ([]progressout.IndexedSession, error) {
	if s.projector == nil {
		return s.historyFromState(ctx, query), nil
	}
	sessions, err := s.projector.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query session index: %w", err)
	}
	return sessions, nil
}

func (s *ProgressService) historyFromState(ctx context.Context, query progressout.SessionQuery) []progressout.IndexedSession {
	state := s.State(ctx)
	out := []progressout.IndexedSession{}
	for i := len(state.Sessions) - 1; i >= 0; i-- {
		rec := state.Sessions[i]
		if query.Scenario != "" && rec.Scenario != query.Scenario {
			continue
		}
		if query.Language != "" && rec.Language != query.Language {
			continue
		}
		out = append(out, progressout.IndexedSession{Seq: i + 1, Record: rec})
		if query.Limit > 0 && len(out) == query.Limit {
			break
		}
	}
	return out
}

// loadLocked returns the cached state, reading the slot on first use. A
// missing or unreadable blob yields a fresh default state.
func (s *ProgressService) loadLocked(ctx context.Context) *domain.ProgressState {
	if s.state != nil {
		return s.state
	}
	state := s.readSlotLocked(ctx)
	s.state = &state
	return s.state
}

func (s *ProgressService) readSlotLocked(ctx context.Context) domain.ProgressState {
	data, err := s.slot.Read(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("progress unreadable, starting fresh", zap.Error(err))
		}
		return domain.NewState(s.clock.Now())
	}
	state, err := domain.DecodeState(data)
	if err != nil {
		s.logger.Warn("progress corrupt, starting fresh", zap.Error(err))
		return domain.NewState(s.clock.Now())
	}
	return state
}

func (s *ProgressService) saveLocked(ctx context.Context, state domain.ProgressState) error {
	data, err := domain.EncodeState(state)
	if err != nil {
		return err
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	s.state = &state
	s.publisher.PublishProgress(ctx, StatsOutput(domain.ComputeStats(state, s.clock.Now())))
	return nil
}

// projectLocked feeds the side projections. Their failures never undo a commit.
func (s *ProgressService) projectLocked(ctx context.Context, seq int, rec domain.SessionRecord) {
	if s.journal != nil {
		path, err := s.journal.Append(ctx, rec)
		if err != nil {
			s.logger.Warn("journal session", zap.Error(err))
		} else {
			s.logger.Debug("journal session", zap.String("path", path))
		}
	}
	if s.projector != nil {
		if err := s.projector.UpsertSession(ctx, seq, rec); err != nil {
			s.logger.Warn("index session", zap.Int("seq", seq), zap.Error(err))
		}
	}
}

func (s *ProgressService) rebuildIndexLocked(ctx context.Context) {
	if s.projector == nil {
		return
	}
	if err := s.projector.Reset(ctx); err != nil {
		s.logger.Warn("reset session index", zap.Error(err))
		return
	}
	for i, rec := range s.state.Sessions {
		if err := s.projector.UpsertSession(ctx, i+1, rec); err != nil {
			s.logger.Warn("index session", zap.Int("seq", i+1), zap.Error(err))
			return
		}
	}
}
