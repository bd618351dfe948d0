package out

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"cafetalk/internal/modules/progress/dto"
	"cafetalk/internal/platform/logging"
)

type Handler func(ctx context.Context, event dto.ProgressEvent)

type subscription struct {
	id      uint64
	handler Handler
}

// Hub fans progress events out to subscribers synchronously, in the order
// they subscribed. A panicking subscriber is logged and skipped.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{logger: logging.OrNop(logger).Named("hub")}
}

// Subscribe registers handler and returns a function that removes it.
func (h *Hub) Subscribe(handler Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (h *Hub) PublishProgress(ctx context.Context, stats dto.StatsOutput) {
	h.dispatch(ctx, dto.ProgressEvent{Kind: dto.EventProgress, Stats: stats})
}

func (h *Hub) PublishLevelUp(ctx context.Context, event dto.LevelUpOutput) {
	h.dispatch(ctx, dto.ProgressEvent{Kind: dto.EventLevelUp, LevelUp: event})
}

func (h *Hub) dispatch(ctx context.Context, event dto.ProgressEvent) {
	h.mu.RLock()
	subs := append([]subscription(nil), h.subs...)
	h.mu.RUnlock()

	for _, s := range subs {
		h.deliver(ctx, s, event)
	}
}

func (h *Hub) deliver(ctx context.Context, s subscription, event dto.ProgressEvent) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("subscriber panicked",
				zap.Uint64("subscriber", s.id),
				zap.String("event", string(event.Kind)),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	s.handler(ctx, event)
}

// LogEvents is a subscriber that writes every event to logger.
func LogEvents(logger *zap.Logger) Handler {
	logger = logging.OrNop(logger)
	return func(_ context.Context, event dto.ProgressEvent) {
		switch event.Kind {
		case dto.EventLevelUp:
			logger.Info("level up",
				zap.Int("from", event.LevelUp.OldLevel),
				zap.Int("to", event.LevelUp.NewLevel),
				zap.Int("total_xp", event.LevelUp.TotalXP),
			)
		default:
			logger.Debug("progress updated",
				zap.Int("total_xp", event.Stats.TotalXP),
				zap.Int("level", event.Stats.Level),
				zap.Int("streak", event.Stats.Streak.Current),
			)
		}
	}
}
