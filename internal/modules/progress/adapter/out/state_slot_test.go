package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	progressout "cafetalk/internal/modules/progress/port/out"
	apperrors "cafetalk/internal/platform/errors"
)

func exerciseSlot(t *testing.T, slot progressout.StateSlot) {
	t.Helper()
	ctx := context.Background()

	_, err := slot.Read(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, slot.Write(ctx, []byte(`{"totalXP":10}`)))
	require.NoError(t, slot.Write(ctx, []byte(`{"totalXP":20}`)))
	got, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"totalXP":20}`, string(got))

	require.NoError(t, slot.Clear(ctx))
	_, err = slot.Read(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.NoError(t, slot.Clear(ctx))
}

func TestFileStateSlot(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "progress.json")

	exerciseSlot(t, NewFileStateSlot(path))

	require.NoError(t, NewFileStateSlot(path).Write(context.Background(), []byte("{}")))
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "progress.json", entries[0].Name())
}

func TestBoltStateSlot(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "progress.db")
	slot, err := OpenBoltStateSlot(path)
	require.NoError(t, err)

	exerciseSlot(t, slot)
	require.NoError(t, slot.Write(context.Background(), []byte(`{"level":1}`)))
	require.NoError(t, slot.Close())

	reopened, err := OpenBoltStateSlot(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	got, err := reopened.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"level":1}`, string(got))
}
