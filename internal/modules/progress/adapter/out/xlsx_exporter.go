package out

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"cafetalk/internal/modules/progress/domain"
	progressout "cafetalk/internal/modules/progress/port/out"
)

var sessionHeader = []any{"#", "Recorded", "Scenario", "Language", "Exchanges", "Grammar", "Duration (s)", "XP"}

// XLSXExporter writes a workbook with a short summary followed by one row
// per session.
type XLSXExporter struct{}

func NewXLSXExporter() progressout.SpreadsheetExporter {
	return XLSXExporter{}
}

func (XLSXExporter) WriteSessions(ctx context.Context, w io.Writer, stats domain.Stats, sessions []domain.SessionRecord) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	summary := [][]any{
		{"Level", stats.Level},
		{"Total XP", stats.TotalXP},
		{"Conversations", stats.ConversationsCompleted},
		{"Current streak", stats.Streak.Current},
		{"Longest streak", stats.Streak.Longest},
		{"Favorite language", stats.FavoriteLanguage},
		{"Favorite scenario", stats.FavoriteScenario},
	}
	row := 1
	for _, values := range summary {
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}

	row++
	if err := setRow(f, sheet, row, sessionHeader); err != nil {
		return err
	}
	for i, rec := range sessions {
		if err := ctx.Err(); err != nil {
			return err
		}
		row++
		values := []any{
			i + 1,
			rec.Timestamp.Format(time.RFC3339),
			domain.ScenarioName(rec.Scenario),
			domain.LanguageName(rec.Language),
			rec.Exchanges,
			string(rec.GrammarScore),
			rec.Duration,
			rec.XP,
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "H", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
