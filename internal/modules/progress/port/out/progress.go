package out

import (
	"context"
	"io"

	"cafetalk/internal/modules/progress/domain"
	"cafetalk/internal/modules/progress/dto"
)

// StateSlot holds the single serialized progress blob. Read returns
// apperrors.ErrNotFound when nothing has been written yet.
type StateSlot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

type Publisher interface {
	PublishProgress(ctx context.Context, stats dto.StatsOutput)
	PublishLevelUp(ctx context.Context, event dto.LevelUpOutput)
}

type SessionJournal interface {
	Append(ctx context.Context, record domain.SessionRecord) (string, error)
}

type SessionQuery struct {
	Scenario string
	Language string
	Limit    int
}

type IndexedSession struct {
	Seq    int
	Record domain.SessionRecord
}

type SessionProjector interface {
	Reset(ctx context.Context) error
	UpsertSession(ctx context.Context, seq int, record domain.SessionRecord) error
	Query(ctx context.Context, query SessionQuery) ([]IndexedSession, error)
}

type SpreadsheetExporter interface {
	WriteSessions(ctx context.Context, w io.Writer, stats domain.Stats, sessions []domain.SessionRecord) error
}
