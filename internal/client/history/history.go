// Package history reads stored channel messages page by page.
//
// Pages are timetoken windows (models.BoundedPage). Each follow-up page starts
// at the oldest timetoken actually returned, so a message is never returned
// twice even if the server answers with a wider set than requested.
package history

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/client/decode"
	"github.com/iudanet/pubsub/internal/models"
	pkgapi "github.com/iudanet/pubsub/pkg/api"
)

// Message одно сообщение истории после расшифровки
type Message struct {
	Payload      json.RawMessage
	Meta         json.RawMessage
	MessageType  *int
	DecryptError error
	Channel      string
	UserID       string
	Timetoken    models.Timetoken
}

// Options дополнительные поля, запрашиваемые у сервера
type Options struct {
	IncludeMeta        bool
	IncludeUUID        bool
	IncludeMessageType bool
}

// Result одна страница истории по всем запрошенным каналам
type Result struct {
	// Channels сообщения по каналам, от новых к старым
	Channels map[string][]Message
	// More подсказка сервера, что в окне остались сообщения
	More *pkgapi.HistoryMore
	// Returned сколько сообщений по всем каналам попало в окно страницы
	Returned int
}

// Service читает историю через ClientAPI и расшифровывает сообщения
type Service struct {
	api     api.ClientAPI
	decoder *decode.Decoder
	logger  *slog.Logger
}

// NewService создает сервис истории. decoder может быть nil, тогда payload не расшифровывается.
func NewService(client api.ClientAPI, decoder *decode.Decoder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if decoder == nil {
		decoder = decode.NewDecoder(nil, logger)
	}
	return &Service{api: client, decoder: decoder, logger: logger}
}

// Fetch получает одну страницу для нескольких каналов. Сообщения каждого
// канала отсортированы от новых к старым и ограничены окном страницы.
func (s *Service) Fetch(ctx context.Context, channels []string, page *models.BoundedPage, opts Options) (*Result, error) {
	resp, err := s.api.FetchHistory(ctx, api.HistoryRequest{
		Channels:           channels,
		Page:               page,
		IncludeMeta:        opts.IncludeMeta,
		IncludeUUID:        opts.IncludeUUID,
		IncludeMessageType: opts.IncludeMessageType,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Channels: make(map[string][]Message, len(resp.Channels)),
		More:     resp.More,
	}
	for channel, items := range resp.Channels {
		messages, err := s.convert(channel, items, page)
		if err != nil {
			return nil, err
		}
		result.Channels[models.StripPresenceSuffix(channel)] = messages
		result.Returned += len(messages)
	}
	return result, nil
}

// convert разбирает timetoken, отбрасывает сообщения вне окна и расшифровывает payload
func (s *Service) convert(channel string, items []pkgapi.HistoryMessage, page *models.BoundedPage) ([]Message, error) {
	messages := make([]Message, 0, len(items))
	for _, item := range items {
		tt, err := models.ParseTimetoken(item.Timetoken.String())
		if err != nil {
			return nil, fmt.Errorf("invalid history timetoken %q: %w", item.Timetoken, err)
		}
		if !page.Contains(tt) {
			s.logger.Debug("Dropping history message outside of page window",
				"channel", channel,
				"timetoken", tt.String(),
			)
			continue
		}

		payload, decryptErr := s.decoder.DecryptPayload(channel, item.Message)
		messages = append(messages, Message{
			Channel:      channel,
			Payload:      payload,
			Meta:         item.Meta,
			Timetoken:    tt,
			UserID:       item.UUID,
			MessageType:  item.MessageType,
			DecryptError: decryptErr,
		})
	}

	// Новые сообщения первыми
	slices.SortStableFunc(messages, func(a, b Message) int {
		return cmp.Compare(b.Timetoken, a.Timetoken)
	})
	return messages, nil
}
