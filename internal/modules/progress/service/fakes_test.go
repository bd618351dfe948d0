package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cafetalk/internal/modules/progress/domain"
	"cafetalk/internal/modules/progress/dto"
	progressout "cafetalk/internal/modules/progress/port/out"
	apperrors "cafetalk/internal/platform/errors"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("s%d", g.n)
}

type memorySlot struct {
	mu       sync.Mutex
	data     []byte
	writeErr error
	writes   int
}

func (m *memorySlot) Read(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, apperrors.ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memorySlot) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memorySlot) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

type recordingPublisher struct {
	progress []dto.StatsOutput
	levelUps []dto.LevelUpOutput
}

func (p *recordingPublisher) PublishProgress(_ context.Context, stats dto.StatsOutput) {
	p.progress = append(p.progress, stats)
}

func (p *recordingPublisher) PublishLevelUp(_ context.Context, event dto.LevelUpOutput) {
	p.levelUps = append(p.levelUps, event)
}

type fakeJournal struct {
	err     error
	records []domain.SessionRecord
}

func (j *fakeJournal) Append(_ context.Context, rec domain.SessionRecord) (string, error) {
	if j.err != nil {
		return "", j.err
	}
	j.records = append(j.records, rec)
	return "sessions/" + rec.ID + ".md", nil
}

type fakeProjector struct {
	err    error
	resets int
	rows   map[int]domain.SessionRecord
}

func newFakeProjector() *fakeProjector {
	return &fakeProjector{rows: map[int]domain.SessionRecord{}}
}

func (p *fakeProjector) Reset(context.Context) error {
	p.resets++
	p.rows = map[int]domain.SessionRecord{}
	return nil
}

func (p *fakeProjector) UpsertSession(_ context.Context, seq int, rec domain.SessionRecord) error {
	if p.err != nil {
		return p.err
	}
	p.rows[seq] = rec
	return nil
}

func (p *fakeProjector) Query(_ context.Context, q progressout.SessionQuery) ([]progressout.IndexedSession, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := []progressout.IndexedSession{}
	for seq := len(p.rows); seq >= 1; seq-- {
		out = append(out, progressout.IndexedSession{Seq: seq, Record: p.rows[seq]})
	}
	return out, nil
}

var errDiskFull = errors.New("disk full")
