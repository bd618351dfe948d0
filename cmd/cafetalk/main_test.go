package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CAFETALK_TIMEZONE", "UTC")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	base := []string{"--config", filepath.Join(dataDir, "missing.yaml"), "--data-dir", dataDir}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRecordStatsAndHistory(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "record", "--scenario", "server", "--exchanges", "12", "--grammar", "Excelente", "--duration", "320")
	require.NoError(t, err)
	assert.Contains(t, out, "+80 XP")
	assert.Contains(t, out, "level up! 1 -> 3")
	assert.Contains(t, out, "badge unlocked: ")

	out, err = execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "level: 3 (80 XP, 10 to next)")
	assert.Contains(t, out, "conversations: 1")

	out, err = execute(t, dir, "history", "--scenario", "server")
	require.NoError(t, err)
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "grammar=Excellent")

	out, err = execute(t, dir, "badges", "--earned")
	require.NoError(t, err)
	assert.Contains(t, out, "first_conversation")
	assert.NotContains(t, out, "earned=false")
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	exportDir := filepath.Join(dir, "exports")

	_, err := execute(t, dir, "record", "--scenario", "host")
	require.NoError(t, err)

	out, err := execute(t, dir, "export", "--out", exportDir)
	require.NoError(t, err)
	path := strings.TrimSpace(strings.TrimPrefix(out, "exported "))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "cafe-progress-"))
	assert.Equal(t, ".json", filepath.Ext(path))

	_, err = execute(t, dir, "reset", "--yes")
	require.NoError(t, err)
	out, err = execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "conversations: 0")

	_, err = execute(t, dir, "import", path)
	require.NoError(t, err)
	out, err = execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "conversations: 1")

	out, err = execute(t, dir, "export", "--out", exportDir, "--format", "xlsx")
	require.NoError(t, err)
	assert.Contains(t, out, ".xlsx")
}

func TestImportRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))

	_, err := execute(t, dir, "import", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import rejected")
}

func TestResetNeedsConfirmation(t *testing.T) {
	_, err := execute(t, t.TempDir(), "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestReportRaw(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "record", "--language", "es")
	require.NoError(t, err)

	out, err := execute(t, dir, "report", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# ☕ Café progress")
	assert.Contains(t, out, "| Favourite language | Spanish |")
}

func TestRemindOnce(t *testing.T) {
	out, err := execute(t, t.TempDir(), "remind", "--once")
	require.NoError(t, err)
	assert.Contains(t, out, "first café conversation")
}

func TestRoleScenarioUnlocksProBadge(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		_, err := execute(t, dir, "record", "--scenario", "server")
		require.NoError(t, err)
	}

	out, err := execute(t, dir, "badges", "--earned")
	require.NoError(t, err)
	assert.Contains(t, out, "server_pro")

	out, err = execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "favorite scenario: Server")
}
