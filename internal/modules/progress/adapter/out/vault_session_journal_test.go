package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafetalk/internal/modules/progress/domain"
	"cafetalk/internal/platform/markdown"
)

func TestVaultSessionJournalWritesDatedNote(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	journal := NewVaultSessionJournal(dir)
	rec := domain.SessionRecord{
		ID:           "abc",
		Timestamp:    time.Date(2026, time.March, 4, 21, 5, 9, 0, time.UTC),
		Scenario:     domain.ScenarioFullExperience,
		Language:     "es",
		Exchanges:    12,
		GrammarScore: domain.GrammarExcellent,
		Duration:     320,
		XP:           80,
	}

	path, err := journal.Append(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2026", "03", "04", "210509-full-experience.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var meta sessionNote
	body, err := markdown.Split(content, &meta)
	require.NoError(t, err)

	assert.Equal(t, sessionNote{
		SchemaVersion: 1,
		ID:            "abc",
		RecordedAt:    "2026-03-04T21:05:09Z",
		Scenario:      domain.ScenarioFullExperience,
		Language:      "es",
		Exchanges:     12,
		GrammarScore:  "Excellent",
		DurationSec:   320,
		XP:            80,
	}, meta)
	assert.Contains(t, body, "# Full Experience session (Spanish)")
	assert.Contains(t, body, "- Duration: 5m20s")
}

func TestVaultSessionJournalSlugsUnknownScenario(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rec := domain.SessionRecord{Timestamp: time.Date(2026, time.March, 4, 8, 0, 0, 0, time.UTC), Scenario: "../Drive Thru", Language: "en"}

	path, err := NewVaultSessionJournal(dir).Append(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2026", "03", "04", "080000-drive-thru.md"), path)
}

func TestVaultSessionJournalKeepsSessionsInTheSameSecond(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	journal := NewVaultSessionJournal(dir)
	at := time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)

	var paths []string
	for i, id := range []string{"first", "second", "third"} {
		rec := domain.SessionRecord{ID: id, Timestamp: at.Add(time.Duration(i) * 300 * time.Millisecond), Scenario: domain.ScenarioHost, Language: "en"}
		path, err := journal.Append(context.Background(), rec)
		require.NoError(t, err)
		paths = append(paths, path)
	}

	day := filepath.Join(dir, "2026", "03", "04")
	assert.Equal(t, []string{
		filepath.Join(day, "093000-host-only.md"),
		filepath.Join(day, "093000-host-only-2.md"),
		filepath.Join(day, "093000-host-only-3.md"),
	}, paths)

	entries, err := os.ReadDir(day)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	var meta sessionNote
	_, err = markdown.Split(content, &meta)
	require.NoError(t, err)
	assert.Equal(t, "first", meta.ID)
}
