// Package objects lists user, channel and membership metadata.
//
// Listings are paged with opaque server tokens (models.HashedPage); the
// tokens are handed back to the server unchanged.
package objects

import (
	"context"
	"log/slog"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/models"
	pkgapi "github.com/iudanet/pubsub/pkg/api"
)

// Page одна страница листинга
type Page[T any] struct {
	TotalCount *int
	// Next страница после этой; nil если сервер не вернул токен
	Next *models.HashedPage
	// Prev страница перед этой; nil если сервер не вернул токен
	Prev  *models.HashedPage
	Items []T
}

// ListFunc выполняет один запрос листинга
type ListFunc[T any] func(ctx context.Context, req api.ListRequest) (*pkgapi.ListResponse[T], error)

// Service строит постраничные обходы objects API
type Service struct {
	api    api.ClientAPI
	logger *slog.Logger
}

// NewService создает сервис листингов
func NewService(client api.ClientAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{api: client, logger: logger}
}

// UUIDs обходит метаданные пользователей
func (s *Service) UUIDs(req api.ListRequest) *Pager[pkgapi.UUIDMetadata] {
	return NewPager(s.api.ListUUIDMetadata, req, s.logger.With("listing", "uuids"))
}

// Channels обходит метаданные каналов
func (s *Service) Channels(req api.ListRequest) *Pager[pkgapi.ChannelMetadata] {
	return NewPager(s.api.ListChannelMetadata, req, s.logger.With("listing", "channels"))
}

// Memberships обходит членства пользователя; пустой userID означает текущего
func (s *Service) Memberships(userID string, req api.ListRequest) *Pager[pkgapi.Membership] {
	list := func(ctx context.Context, req api.ListRequest) (*pkgapi.ListResponse[pkgapi.Membership], error) {
		return s.api.ListMemberships(ctx, userID, req)
	}
	return NewPager(list, req, s.logger.With("listing", "memberships", "user_id", userID))
}
