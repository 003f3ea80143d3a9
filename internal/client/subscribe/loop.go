package subscribe

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/pubsub/internal/client/decode"
	"github.com/iudanet/pubsub/internal/models"
)

// Run executes the subscribe loop until Stop, context cancellation or the
// last unsubscribe (all return nil), or until a transport failure or an
// unrecoverable response (returned to the caller).
func (s *Subscriber) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	if len(s.channels) == 0 && len(s.groups) == 0 {
		s.mu.Unlock()
		return ErrNoSubscriptions
	}
	s.running = true
	s.cancel = cancel
	s.connected = false
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.cancel = nil
		s.mu.Unlock()
	}()

	for {
		req, ok := s.nextRequest()
		if !ok {
			s.logger.Info("No subscriptions left, stopping subscribe loop")
			s.status(models.StatusDisconnected, nil, nil)
			return nil
		}

		body, err := s.transport.Subscribe(ctx, req)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				// Частично полученный ответ отбрасывается
				s.logger.Info("Subscribe loop stopped")
				s.status(models.StatusDisconnected, nil, nil)
				return nil
			}
			s.logger.Error("Subscribe request failed", "error", err)
			s.status(models.StatusUnexpected, err, nil)
			return fmt.Errorf("subscribe failed: %w", err)
		}

		batch, err := s.decoder.DecodeResponse(body)
		if err != nil {
			respErr, ok := decode.AsResponseError(err)
			if !ok || !respErr.Salvaged() {
				s.logger.Error("Subscribe response is unrecoverable", "error", err)
				s.status(models.StatusUnexpected, err, nil)
				return fmt.Errorf("subscribe failed: %w", err)
			}
			if *respErr.Cursor == req.Cursor {
				// Повтор того же запроса вернул бы тот же сломанный ответ
				s.logger.Error("Malformed subscribe response did not move the cursor",
					"cursor", req.Cursor.String(), "error", err)
				s.status(models.StatusUnexpected, err, respErr.Cursor)
				return fmt.Errorf("subscribe failed: %w: %w", ErrCursorStalled, err)
			}
			// Пропускаем сломанный пакет и продолжаем с восстановленного курсора
			s.status(models.StatusMalformedResponse, err, respErr.Cursor)
			s.advance(ctx, req.Cursor, *respErr.Cursor)
			continue
		}

		s.handleBatch(ctx, req.Cursor, batch)
	}
}

// handleBatch доставляет пакет и только после этого сдвигает курсор
func (s *Subscriber) handleBatch(ctx context.Context, used models.Cursor, batch *decode.Batch) {
	s.mu.Lock()
	announce := !s.connected
	s.connected = true
	s.mu.Unlock()
	if announce {
		s.status(models.StatusConnected, nil, &batch.Cursor)
	}

	s.dispatcher.Dispatch(batch.Events)

	for _, itemErr := range batch.Errors {
		s.status(models.StatusDecodeError, itemErr, nil)
	}
	for _, event := range batch.Events {
		if err := decryptError(event); err != nil {
			s.status(models.StatusDecryptError, fmt.Errorf("channel %q: %w", event.Common().Channel, err), nil)
		}
	}

	s.advance(ctx, used, batch.Cursor)
}

func decryptError(event models.Event) error {
	switch ev := event.(type) {
	case *models.MessageEvent:
		return ev.DecryptError
	case *models.SignalEvent:
		return ev.DecryptError
	}
	return nil
}

// advance заменяет курсор, если его не изменили через SetCursor во время
// запроса, и сохраняет его для возобновления
func (s *Subscriber) advance(ctx context.Context, used, next models.Cursor) {
	s.mu.Lock()
	if s.cursor != used {
		s.mu.Unlock()
		s.logger.Debug("Cursor was changed during request, ignoring response cursor",
			"response_cursor", next.String())
		return
	}
	advanced := s.cursor.Advance(next)
	s.cursor = advanced
	s.mu.Unlock()

	if s.cursors == nil || s.cursorKey == "" {
		return
	}
	// Сохраняем даже при отмене, чтобы не потерять доставленный пакет
	if err := s.cursors.SaveCursor(context.WithoutCancel(ctx), s.cursorKey, advanced); err != nil {
		s.logger.Warn("Failed to persist cursor", "cursor", advanced.String(), "error", err)
	}
}

// status отправляет статусное событие слушателям
func (s *Subscriber) status(category models.StatusCategory, err error, cursor *models.Cursor) {
	channels, groups := s.Subscriptions()
	s.dispatcher.DispatchStatus(&models.StatusEvent{
		Category: category,
		Err:      err,
		Cursor:   cursor,
		Channels: channels,
		Groups:   groups,
	})
}
