package out

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cafetalk/internal/modules/progress/domain"
)

func TestXLSXExporterWritesSummaryAndSessions(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	state := domain.NewState(start)
	state.RecordSession(domain.SessionDetails{Scenario: domain.ScenarioServer, Language: "es", Exchanges: 12, GrammarScore: domain.GrammarExcellent, Duration: 320}, "a", start.Add(time.Hour))
	state.RecordSession(domain.SessionDetails{Scenario: domain.ScenarioHost}, "b", start.Add(2*time.Hour))

	var buf bytes.Buffer
	err := NewXLSXExporter().WriteSessions(context.Background(), &buf, domain.ComputeStats(state, start.Add(3*time.Hour)), state.Sessions)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)

	require.Len(t, rows, 7+1+1+2)
	assert.Equal(t, []string{"Level", "4"}, rows[0])
	assert.Equal(t, []string{"Total XP", "90"}, rows[1])
	assert.Equal(t, "#", rows[8][0])
	assert.Equal(t, []string{"1", "2026-03-01T10:00:00Z", "Server", "Spanish", "12", "Excellent", "320", "80"}, rows[9])
	assert.Equal(t, "Host", rows[10][2])
}
