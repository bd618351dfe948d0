package in

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"cafetalk/internal/modules/progress/dto"
	progressin "cafetalk/internal/modules/progress/port/in"
	"cafetalk/internal/platform/logging"
)

// Reminder checks the streak once a day and nudges when it is about to lapse.
type Reminder struct {
	scheduler *gocron.Scheduler
	usecase   progressin.Usecase
	notify    func(string)
	logger    *zap.Logger
	at        string
}

func NewReminder(loc *time.Location, hour, minute int, usecase progressin.Usecase, notify func(string), logger *zap.Logger) *Reminder {
	return &Reminder{
		scheduler: gocron.NewScheduler(loc),
		usecase:   usecase,
		notify:    notify,
		logger:    logging.OrNop(logger).Named("reminder"),
		at:        fmt.Sprintf("%02d:%02d", hour, minute),
	}
}

// Start schedules the daily check and returns immediately.
func (r *Reminder) Start(ctx context.Context) error {
	if _, err := r.scheduler.Every(1).Day().At(r.at).Do(func() { r.run(ctx) }); err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}
	r.scheduler.StartAsync()
	r.logger.Info("reminder scheduled", zap.String("at", r.at))
	return nil
}

func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

func (r *Reminder) run(ctx context.Context) {
	msg, ok, err := r.Check(ctx)
	if err != nil {
		r.logger.Warn("reminder check", zap.Error(err))
		return
	}
	if !ok {
		r.logger.Debug("no reminder needed")
		return
	}
	r.logger.Info("reminder sent", zap.String("message", msg))
	r.notify(msg)
}

// Check returns the nudge for the current stats, if one is due.
func (r *Reminder) Check(ctx context.Context) (string, bool, error) {
	stats, err := r.usecase.GetStats(ctx)
	if err != nil {
		return "", false, err
	}
	return nudge(stats)
}

func nudge(stats dto.StatsOutput) (string, bool, error) {
	switch {
	case stats.Streak.PracticedToday:
		return "", false, nil
	case stats.Streak.AtRisk:
		return fmt.Sprintf("Your %d-day streak ends at midnight. One conversation keeps it alive.", stats.Streak.Current), true, nil
	case stats.ConversationsCompleted > 0:
		return "The café misses you. Start a new streak with a quick conversation today.", true, nil
	default:
		return "Ready for your first café conversation?", true, nil
	}
}
