package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/pubsub/internal/client/storage"
	"github.com/iudanet/pubsub/internal/models"
)

// SaveCursor saves the cursor of the last fully dispatched batch
func (s *Storage) SaveCursor(ctx context.Context, key string, cursor models.Cursor) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}

		data, err := json.Marshal(storage.SavedCursor{
			Key:     key,
			Cursor:  cursor,
			SavedAt: time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal cursor: %w", err)
		}

		if err := bucket.Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to save cursor: %w", err)
		}

		return nil
	})
}

// GetCursor retrieves the saved cursor
func (s *Storage) GetCursor(ctx context.Context, key string) (*storage.SavedCursor, error) {
	var saved *storage.SavedCursor

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrCursorNotFound
		}

		saved = &storage.SavedCursor{}
		if err := json.Unmarshal(data, saved); err != nil {
			return fmt.Errorf("failed to unmarshal cursor: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return saved, nil
}

// DeleteCursor removes the saved cursor
func (s *Storage) DeleteCursor(ctx context.Context, key string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}

		if bucket.Get([]byte(key)) == nil {
			return storage.ErrCursorNotFound
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete cursor: %w", err)
		}

		return nil
	})
}

// ListCursors returns every saved cursor ordered by key
func (s *Storage) ListCursors(ctx context.Context) ([]storage.SavedCursor, error) {
	var cursors []storage.SavedCursor

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var saved storage.SavedCursor
			if err := json.Unmarshal(v, &saved); err != nil {
				return fmt.Errorf("failed to unmarshal cursor %q: %w", k, err)
			}
			cursors = append(cursors, saved)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list cursors: %w", err)
	}

	return cursors, nil
}
