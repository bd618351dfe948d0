package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	apperrors "cafetalk/internal/platform/errors"
)

var (
	progressBucket = []byte("progress")
	progressKey    = []byte("cafe_progress")
)

// BoltStateSlot keeps the blob under one key of a bbolt database.
type BoltStateSlot struct {
	db *bbolt.DB
}

func OpenBoltStateSlot(path string) (*BoltStateSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create bolt dir: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(progressBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create progress bucket: %w", err)
	}
	return &BoltStateSlot{db: db}, nil
}

func (s *BoltStateSlot) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStateSlot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		value := tx.Bucket(progressBucket).Get(progressKey)
		if value == nil {
			return apperrors.ErrNotFound
		}
		// value is only valid inside the transaction.
		payload = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *BoltStateSlot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(progressBucket).Put(progressKey, data)
	}); err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}

func (s *BoltStateSlot) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(progressBucket).Delete(progressKey)
	}); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}
