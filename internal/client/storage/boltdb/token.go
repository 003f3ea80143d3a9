package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/pubsub/internal/client/storage"
)

var tokenKey = []byte("current")

// SaveToken stores the access token
func (s *Storage) SaveToken(ctx context.Context, token *storage.TokenData) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketToken)
		if bucket == nil {
			return fmt.Errorf("token bucket not found")
		}

		// Сериализуем данные в JSON
		data, err := json.Marshal(token)
		if err != nil {
			return fmt.Errorf("failed to marshal token data: %w", err)
		}

		if err := bucket.Put(tokenKey, data); err != nil {
			return fmt.Errorf("failed to save token data: %w", err)
		}

		return nil
	})
}

// GetToken retrieves the stored access token
func (s *Storage) GetToken(ctx context.Context) (*storage.TokenData, error) {
	var token *storage.TokenData

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketToken)
		if bucket == nil {
			return fmt.Errorf("token bucket not found")
		}

		data := bucket.Get(tokenKey)
		if data == nil {
			return storage.ErrTokenNotFound
		}

		token = &storage.TokenData{}
		if err := json.Unmarshal(data, token); err != nil {
			return fmt.Errorf("failed to unmarshal token data: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return token, nil
}

// DeleteToken removes the stored access token
func (s *Storage) DeleteToken(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketToken)
		if bucket == nil {
			return fmt.Errorf("token bucket not found")
		}

		if bucket.Get(tokenKey) == nil {
			return storage.ErrTokenNotFound
		}

		if err := bucket.Delete(tokenKey); err != nil {
			return fmt.Errorf("failed to delete token data: %w", err)
		}

		return nil
	})
}
