package in

import (
	"context"
	"io"

	"cafetalk/internal/modules/progress/dto"
)

type Usecase interface {
	RecordConversation(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	GetStats(ctx context.Context) (dto.StatsOutput, error)
	GetAllBadges(ctx context.Context) ([]dto.BadgeOutput, error)
	GetEarnedBadges(ctx context.Context) ([]dto.BadgeOutput, error)
	GetAchievements(ctx context.Context) ([]dto.AchievementOutput, error)
	ResetProgress(ctx context.Context, input dto.ResetInput) error
	ExportProgress(ctx context.Context) (dto.ExportOutput, error)
	ImportProgress(ctx context.Context, payload []byte) (dto.ImportOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.SessionOutput, error)
	Reindex(ctx context.Context) error
	ExportSpreadsheet(ctx context.Context, w io.Writer) (string, error)
	Reload(ctx context.Context) error
}
