package storage

import (
	"context"
	"time"
)

//go:generate moq -out token_mock.go . TokenStorage

// TokenStorage stores the access token sent as the auth query parameter
type TokenStorage interface {
	// SaveToken stores the token
	SaveToken(ctx context.Context, token *TokenData) error

	// GetToken retrieves the stored token
	// Returns ErrTokenNotFound if no token is stored
	GetToken(ctx context.Context) (*TokenData, error)

	// DeleteToken removes the stored token
	DeleteToken(ctx context.Context) error
}

// TokenData токен доступа и сведения о нем.
// ExpiresAt нулевой, если токен не удалось разобрать (например, старый auth key).
type TokenData struct {
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id,omitempty"` // UserID пользователь, для которого выдан токен
}

// Expired сообщает, что срок действия токена истек
func (t *TokenData) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
