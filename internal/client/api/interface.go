package api

import (
	"context"
	"encoding/json"

	"github.com/iudanet/pubsub/internal/models"
	"github.com/iudanet/pubsub/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI defines the server operations used by the CLI and the pagers
type ClientAPI interface {
	// Subscribe выполняет один long-poll запрос и возвращает сырое тело ответа
	Subscribe(ctx context.Context, req SubscribeRequest) ([]byte, error)

	// Leave уведомляет сервер о выходе из каналов
	Leave(ctx context.Context, channels, groups []string) error

	// Time возвращает текущий timetoken сервера
	Time(ctx context.Context) (models.Timetoken, error)

	Publish(ctx context.Context, req PublishRequest) (models.Timetoken, error)
	Signal(ctx context.Context, channel string, message json.RawMessage) (models.Timetoken, error)

	// FetchHistory получает одну страницу истории
	FetchHistory(ctx context.Context, req HistoryRequest) (*api.HistoryResponse, error)

	ListUUIDMetadata(ctx context.Context, req ListRequest) (*api.ListResponse[api.UUIDMetadata], error)
	ListChannelMetadata(ctx context.Context, req ListRequest) (*api.ListResponse[api.ChannelMetadata], error)
	ListMemberships(ctx context.Context, userID string, req ListRequest) (*api.ListResponse[api.Membership], error)

	// SetAuthKey заменяет токен доступа для последующих запросов
	SetAuthKey(authKey string)
}

var _ ClientAPI = (*Client)(nil)
