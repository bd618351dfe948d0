package in

import (
	"context"
	"io"

	"cafetalk/internal/modules/progress/dto"
	progressin "cafetalk/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, scenario, language string, exchanges int, grammarScore string, duration int) (dto.RecordOutput, error) {
	return h.usecase.RecordConversation(ctx, dto.RecordInput{
		Scenario:     scenario,
		Language:     language,
		Exchanges:    exchanges,
		GrammarScore: grammarScore,
		Duration:     duration,
	})
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.GetStats(ctx)
}

func (h CLIHandler) Badges(ctx context.Context, earnedOnly bool) ([]dto.BadgeOutput, error) {
	if earnedOnly {
		return h.usecase.GetEarnedBadges(ctx)
	}
	return h.usecase.GetAllBadges(ctx)
}

func (h CLIHandler) Achievements(ctx context.Context) ([]dto.AchievementOutput, error) {
	return h.usecase.GetAchievements(ctx)
}

func (h CLIHandler) History(ctx context.Context, scenario, language string, limit int) ([]dto.SessionOutput, error) {
	return h.usecase.History(ctx, dto.HistoryInput{Scenario: scenario, Language: language, Limit: limit})
}

func (h CLIHandler) Export(ctx context.Context) (dto.ExportOutput, error) {
	return h.usecase.ExportProgress(ctx)
}

func (h CLIHandler) ExportSpreadsheet(ctx context.Context, w io.Writer) (string, error) {
	return h.usecase.ExportSpreadsheet(ctx, w)
}

func (h CLIHandler) Import(ctx context.Context, payload []byte) (dto.ImportOutput, error) {
	return h.usecase.ImportProgress(ctx, payload)
}

func (h CLIHandler) Reset(ctx context.Context, confirmed bool) error {
	return h.usecase.ResetProgress(ctx, dto.ResetInput{Confirmed: confirmed})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Reload(ctx context.Context) error {
	return h.usecase.Reload(ctx)
}
