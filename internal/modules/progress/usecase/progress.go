package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cafetalk/internal/modules/progress/domain"
	"cafetalk/internal/modules/progress/dto"
	progressin "cafetalk/internal/modules/progress/port/in"
	progressout "cafetalk/internal/modules/progress/port/out"
	"cafetalk/internal/modules/progress/service"
	apperrors "cafetalk/internal/platform/errors"
)

type Interactor struct {
	svc      *service.ProgressService
	exporter progressout.SpreadsheetExporter
}

func NewInteractor(svc *service.ProgressService, exporter progressout.SpreadsheetExporter) progressin.Usecase {
	return &Interactor{svc: svc, exporter: exporter}
}

func (i *Interactor) RecordConversation(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	score, _ := domain.ParseGrammarScore(input.GrammarScore)
	outcome, state, err := i.svc.Record(ctx, domain.SessionDetails{
		Scenario:     input.Scenario,
		Language:     input.Language,
		Exchanges:    input.Exchanges,
		GrammarScore: score,
		Duration:     input.Duration,
	})
	if err != nil {
		return dto.RecordOutput{}, err
	}
	out := dto.RecordOutput{
		XPEarned:        outcome.XPEarned,
		AchievementXP:   outcome.AchievementXP,
		TotalXP:         state.TotalXP,
		Level:           outcome.Level,
		PreviousLevel:   outcome.PreviousLevel,
		LeveledUp:       outcome.LeveledUp(),
		NewBadges:       make([]dto.BadgeOutput, 0, len(outcome.NewBadges)),
		NewAchievements: make([]dto.AchievementOutput, 0, len(outcome.NewAchievements)),
		Streak:          service.StreakOutput(state.Streak, outcome.Session.Timestamp),
	}
	for _, b := range outcome.NewBadges {
		out.NewBadges = append(out.NewBadges, service.BadgeOutput(b, true))
	}
	for _, a := range outcome.NewAchievements {
		out.NewAchievements = append(out.NewAchievements, service.AchievementOutput(a, true))
	}
	return out, nil
}

func (i *Interactor) GetStats(ctx context.Context) (dto.StatsOutput, error) {
	return service.StatsOutput(i.svc.Stats(ctx)), nil
}

func (i *Interactor) GetAllBadges(ctx context.Context) ([]dto.BadgeOutput, error) {
	state := i.svc.State(ctx)
	catalog := domain.Badges()
	out := make([]dto.BadgeOutput, 0, len(catalog))
	for _, b := range catalog {
		out = append(out, service.BadgeOutput(b, state.HasBadge(b.ID)))
	}
	return out, nil
}

// GetEarnedBadges lists unlocked badges in the order they were earned.
func (i *Interactor) GetEarnedBadges(ctx context.Context) ([]dto.BadgeOutput, error) {
	state := i.svc.State(ctx)
	out := make([]dto.BadgeOutput, 0, len(state.Badges))
	for _, id := range state.Badges {
		b, ok := domain.BadgeByID(id)
		if !ok {
			continue
		}
		out = append(out, service.BadgeOutput(b, true))
	}
	return out, nil
}

func (i *Interactor) GetAchievements(ctx context.Context) ([]dto.AchievementOutput, error) {
	state := i.svc.State(ctx)
	catalog := domain.Achievements()
	out := make([]dto.AchievementOutput, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, service.AchievementOutput(a, state.HasAchievement(a.ID)))
	}
	return out, nil
}

func (i *Interactor) ResetProgress(ctx context.Context, input dto.ResetInput) error {
	if !input.Confirmed {
		return apperrors.ErrConfirmationRequired
	}
	return i.svc.Reset(ctx)
}

func (i *Interactor) ExportProgress(ctx context.Context) (dto.ExportOutput, error) {
	payload, err := domain.EncodeSnapshot(i.svc.State(ctx))
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{FileName: service.ExportFileName(i.svc.Now(), "json"), Payload: payload}, nil
}

// ImportProgress replaces the whole state. A payload that does not decode
// into a valid state is reported through OK and leaves the current state alone.
func (i *Interactor) ImportProgress(ctx context.Context, payload []byte) (dto.ImportOutput, error) {
	state, err := domain.DecodeState(payload)
	if err != nil {
		return dto.ImportOutput{OK: false, Reason: err.Error()}, nil
	}
	if err := i.svc.Replace(ctx, state); err != nil {
		if errors.Is(err, apperrors.ErrInvalidPayload) {
			return dto.ImportOutput{OK: false, Reason: err.Error()}, nil
		}
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{OK: true}, nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.SessionOutput, error) {
	query := progressout.SessionQuery{Limit: input.Limit}
	if input.Scenario != "" {
		query.Scenario = domain.NormalizeScenario(input.Scenario)
	}
	if input.Language != "" {
		query.Language = domain.NormalizeLanguage(input.Language)
	}
	sessions, err := i.svc.History(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, service.SessionOutput(s.Seq, s.Record))
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

// ExportSpreadsheet writes an xlsx workbook of every session to w and
// returns the suggested file name.
func (i *Interactor) ExportSpreadsheet(ctx context.Context, w io.Writer) (string, error) {
	if i.exporter == nil {
		return "", fmt.Errorf("spreadsheet export is not configured")
	}
	state := i.svc.State(ctx)
	stats := domain.ComputeStats(state, i.svc.Now())
	if err := i.exporter.WriteSessions(ctx, w, stats, state.Sessions); err != nil {
		return "", fmt.Errorf("export spreadsheet: %w", err)
	}
	return service.ExportFileName(i.svc.Now(), "xlsx"), nil
}

func (i *Interactor) Reload(ctx context.Context) error {
	return i.svc.Reload(ctx)
}
