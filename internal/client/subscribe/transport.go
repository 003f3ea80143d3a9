package subscribe

import (
	"context"

	"github.com/iudanet/pubsub/internal/client/api"
)

//go:generate moq -out transport_mock.go . Transport

// Transport выполняет long-poll запросы. *api.Client удовлетворяет интерфейсу.
// Таймауты и повторы остаются на стороне транспорта.
type Transport interface {
	// Subscribe возвращает тело ответа для курсора запроса или ошибку.
	// Отмена ctx должна прерывать ожидающий запрос.
	Subscribe(ctx context.Context, req api.SubscribeRequest) ([]byte, error)

	// Leave уведомляет сервер о выходе из каналов
	Leave(ctx context.Context, channels, groups []string) error
}

var _ Transport = (*api.Client)(nil)
