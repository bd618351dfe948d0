package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	progressout "cafetalk/internal/modules/progress/port/out"
	apperrors "cafetalk/internal/platform/errors"
)

type FileStateSlot struct {
	path string
}

func NewFileStateSlot(path string) progressout.StateSlot {
	return &FileStateSlot{path: path}
}

func (s *FileStateSlot) Read(_ context.Context) ([]byte, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("read progress file: %w", err)
	}
	return payload, nil
}

// Write replaces the blob through a sibling temp file and a rename, so a
// reader sees either the old blob or the new one.
func (s *FileStateSlot) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".progress-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp progress file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp progress file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp progress file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod progress file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}

func (s *FileStateSlot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear progress file: %w", err)
	}
	return nil
}
