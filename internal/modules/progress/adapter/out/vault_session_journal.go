package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cafetalk/internal/modules/progress/domain"
	progressout "cafetalk/internal/modules/progress/port/out"
	"cafetalk/internal/platform/markdown"
	"cafetalk/internal/platform/slug"
)

const journalSchemaVersion = 1

// sessionNote is the frontmatter of one journal entry.
type sessionNote struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	RecordedAt    string `yaml:"recorded_at"`
	Scenario      string `yaml:"scenario"`
	Language      string `yaml:"language"`
	Exchanges     int    `yaml:"exchanges"`
	GrammarScore  string `yaml:"grammar_score,omitempty"`
	DurationSec   int    `yaml:"duration_seconds"`
	XP            int    `yaml:"xp"`
}

// VaultSessionJournal writes one markdown note per session under
// <dir>/YYYY/MM/DD/.
type VaultSessionJournal struct {
	dir string
}

func NewVaultSessionJournal(dir string) progressout.SessionJournal {
	return &VaultSessionJournal{dir: dir}
}

func (j *VaultSessionJournal) Append(_ context.Context, rec domain.SessionRecord) (string, error) {
	at := rec.Timestamp
	dir := filepath.Join(j.dir, at.Format("2006"), at.Format("01"), at.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	base := fmt.Sprintf("%s-%s", at.Format("150405"), slug.Make(rec.Scenario))

	meta := sessionNote{
		SchemaVersion: journalSchemaVersion,
		ID:            rec.ID,
		RecordedAt:    at.Format(time.RFC3339),
		Scenario:      rec.Scenario,
		Language:      rec.Language,
		Exchanges:     rec.Exchanges,
		GrammarScore:  string(rec.GrammarScore),
		DurationSec:   rec.Duration,
		XP:            rec.XP,
	}
	rendered, err := markdown.Render(meta, journalBody(rec))
	if err != nil {
		return "", err
	}
	return writeNew(dir, base, rendered)
}

// writeNew creates <base>.md, or <base>-2.md, <base>-3.md... when an earlier
// session in the same second already took the name.
func writeNew(dir, base string, data []byte) (string, error) {
	for n := 1; ; n++ {
		name := base + ".md"
		if n > 1 {
			name = fmt.Sprintf("%s-%d.md", base, n)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create journal note: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", fmt.Errorf("write journal note: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close journal note: %w", err)
		}
		return path, nil
	}
}

func journalBody(rec domain.SessionRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s session (%s)\n\n", domain.ScenarioName(rec.Scenario), domain.LanguageName(rec.Language))
	fmt.Fprintf(&b, "- Exchanges: %d\n", rec.Exchanges)
	fmt.Fprintf(&b, "- Duration: %s\n", (time.Duration(rec.Duration) * time.Second).String())
	if rec.GrammarScore != "" {
		fmt.Fprintf(&b, "- Grammar: %s\n", rec.GrammarScore)
	}
	fmt.Fprintf(&b, "- XP earned: %d\n", rec.XP)
	b.WriteString("\n## Notes\n\n")
	return b.String()
}
