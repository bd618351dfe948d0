package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"cafetalk/internal/modules/progress/domain"
	progressout "cafetalk/internal/modules/progress/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteSessionIndex is a queryable projection of the session list. The
// progress blob stays authoritative; Reindex rebuilds this table from it.
type SQLiteSessionIndex struct {
	db *sqlx.DB
}

type sessionRow struct {
	Seq          int    `db:"seq"`
	ID           string `db:"id"`
	RecordedAt   string `db:"recorded_at"`
	Scenario     string `db:"scenario"`
	Language     string `db:"language"`
	Exchanges    int    `db:"exchanges"`
	GrammarScore string `db:"grammar_score"`
	Duration     int    `db:"duration"`
	XP           int    `db:"xp"`
}

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

func OpenSQLiteSessionIndex(dbPath string) (*SQLiteSessionIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	index := &SQLiteSessionIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return index, nil
}

func (s *SQLiteSessionIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteSessionIndex) ensureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
  seq INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  recorded_at TEXT NOT NULL,
  scenario TEXT NOT NULL,
  language TEXT NOT NULL,
  exchanges INTEGER NOT NULL,
  grammar_score TEXT NOT NULL,
  duration INTEGER NOT NULL,
  xp INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS sessions_scenario ON sessions(scenario)`,
		`CREATE INDEX IF NOT EXISTS sessions_language ON sessions(language)`,
	}
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create sessions schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteSessionIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionIndex) UpsertSession(ctx context.Context, seq int, rec domain.SessionRecord) error {
	const stmt = `
INSERT INTO sessions (seq, id, recorded_at, scenario, language, exchanges, grammar_score, duration, xp)
VALUES (:seq, :id, :recorded_at, :scenario, :language, :exchanges, :grammar_score, :duration, :xp)
ON CONFLICT(seq) DO UPDATE SET
  id=excluded.id,
  recorded_at=excluded.recorded_at,
  scenario=excluded.scenario,
  language=excluded.language,
  exchanges=excluded.exchanges,
  grammar_score=excluded.grammar_score,
  duration=excluded.duration,
  xp=excluded.xp;
`
	row := sessionRow{
		Seq:          seq,
		ID:           rec.ID,
		RecordedAt:   rec.Timestamp.Format(time.RFC3339Nano),
		Scenario:     rec.Scenario,
		Language:     rec.Language,
		Exchanges:    rec.Exchanges,
		GrammarScore: string(rec.GrammarScore),
		Duration:     rec.Duration,
		XP:           rec.XP,
	}
	if _, err := s.db.NamedExecContext(ctx, stmt, row); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Query returns matching sessions, newest first.
func (s *SQLiteSessionIndex) Query(ctx context.Context, q progressout.SessionQuery) ([]progressout.IndexedSession, error) {
	var (
		where []string
		args  []any
	)
	if q.Scenario != "" {
		where = append(where, "scenario = ?")
		args = append(args, q.Scenario)
	}
	if q.Language != "" {
		where = append(where, "language = ?")
		args = append(args, q.Language)
	}
	query := `SELECT seq, id, recorded_at, scenario, language, exchanges, grammar_score, duration, xp FROM sessions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	var rows []sessionRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	out := make([]progressout.IndexedSession, 0, len(rows))
	for _, row := range rows {
		recordedAt, err := time.Parse(time.RFC3339Nano, row.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse session %d time: %w", row.Seq, err)
		}
		out = append(out, progressout.IndexedSession{
			Seq: row.Seq,
			Record: domain.SessionRecord{
				ID:           row.ID,
				Timestamp:    recordedAt,
				Scenario:     row.Scenario,
				Language:     row.Language,
				Exchanges:    row.Exchanges,
				GrammarScore: domain.GrammarScore(row.GrammarScore),
				Duration:     row.Duration,
				XP:           row.XP,
			},
		})
	}
	return out, nil
}
