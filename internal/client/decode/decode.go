package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/iudanet/pubsub/internal/crypto"
	"github.com/iudanet/pubsub/internal/models"
)

// Batch результат разбора одного ответа subscribe
type Batch struct {
	Events []models.Event
	Errors []*ItemError
	Cursor models.Cursor
}

// Decoder разбирает ответы subscribe. Безопасен для конкурентного использования:
// шифр и логгер только читаются.
type Decoder struct {
	cipher *crypto.CipherContext
	logger *slog.Logger
}

// NewDecoder создает декодер. cipher может быть nil, тогда payload не расшифровывается.
func NewDecoder(cipher *crypto.CipherContext, logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Decoder{cipher: cipher, logger: logger}
}

// DecodeResponse разбирает тело ответа long-poll.
//
// Ошибки отдельных элементов не прерывают разбор: они собираются в Batch.Errors.
// Если тело не разбирается целиком, возвращается *ResponseError, возможно
// с восстановленным курсором.
func (d *Decoder) DecodeResponse(body []byte) (*Batch, error) {
	var resp wireResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		respErr := newResponseError(body, err)
		d.logger.Warn("Failed to decode subscribe response",
			"error", err,
			"cursor_recovered", respErr.Salvaged(),
			"bytes", len(body),
		)
		return nil, respErr
	}
	// null вместо timetoken не должен сбрасывать курсор в "сейчас"
	if resp.Cursor == nil || !isTimetokenValue(gjson.GetBytes(body, "t.t")) {
		d.logger.Warn("Subscribe response has no cursor", "bytes", len(body))
		return nil, &ResponseError{Err: errors.New("response has no cursor")}
	}

	batch := &Batch{
		Cursor: *resp.Cursor,
		Events: make([]models.Event, 0, len(resp.Messages)),
	}
	for i, raw := range resp.Messages {
		event, err := d.DecodeEnvelope(raw)
		if err != nil {
			itemErr := &ItemError{Index: i, Raw: raw, Err: err}
			var env wireEnvelope
			if json.Unmarshal(raw, &env) == nil {
				itemErr.Channel = models.StripPresenceSuffix(env.Channel)
			}
			d.logger.Warn("Skipping malformed subscribe item",
				"index", i,
				"channel", itemErr.Channel,
				"error", err,
			)
			batch.Errors = append(batch.Errors, itemErr)
			continue
		}
		batch.Events = append(batch.Events, event)
	}
	return batch, nil
}

// DecodeEnvelope classifies one envelope. See the package documentation for
// the probing order.
func (d *Decoder) DecodeEnvelope(raw json.RawMessage) (models.Event, error) {
	var env wireEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch probe(env.Payload) {
	case shapePresence:
		event, err := decodePresence(&env)
		if err != nil {
			return nil, fmt.Errorf("invalid presence payload: %w", err)
		}
		return event, nil
	case shapeObject:
		event, err := decodeObject(&env)
		if err != nil {
			return nil, fmt.Errorf("invalid object payload: %w", err)
		}
		return event, nil
	case shapeMessageAction:
		event, err := decodeMessageAction(&env)
		if err != nil {
			return nil, fmt.Errorf("invalid message action payload: %w", err)
		}
		return event, nil
	}

	messageType := models.MessageTypeMessage
	if env.MessageType != nil {
		messageType = models.MessageType(*env.MessageType)
	}

	switch messageType {
	case models.MessageTypeSignal:
		event := &models.SignalEvent{Envelope: env.common(), Payload: env.Payload}
		event.Payload, event.DecryptError = d.DecryptPayload(event.Channel, env.Payload)
		return event, nil
	case models.MessageTypeObject, models.MessageTypeAction, models.MessageTypePresence:
		return nil, fmt.Errorf("%w: e=%d", ErrUnexpectedShape, messageType)
	default:
		// 0, отсутствующий и неизвестные типы доставляются как сообщения
		if len(env.Payload) == 0 {
			return nil, errors.New("message has no payload")
		}
		event := &models.MessageEvent{Envelope: env.common(), Payload: env.Payload}
		event.Payload, event.DecryptError = d.DecryptPayload(event.Channel, env.Payload)
		return event, nil
	}
}

func decodeObject(env *wireEnvelope) (*models.ObjectEvent, error) {
	var obj wireObject
	if err := json.Unmarshal(env.Payload, &obj); err != nil {
		return nil, err
	}
	return &models.ObjectEvent{
		Envelope:   env.common(),
		Data:       obj.Data,
		ObjectType: objectTypes[obj.Type],
		Action:     objectActions[obj.Event],
	}, nil
}

func decodeMessageAction(env *wireEnvelope) (*models.MessageActionEvent, error) {
	var action wireMessageAction
	if err := json.Unmarshal(env.Payload, &action); err != nil {
		return nil, err
	}

	common := env.common()
	return &models.MessageActionEvent{
		Envelope: common,
		Kind:     models.MessageActionKind(action.Event),
		Action: models.MessageAction{
			Type:             action.Data.Type,
			Value:            action.Data.Value,
			ActionTimetoken:  action.Data.ActionTimetoken,
			MessageTimetoken: action.Data.MessageTimetoken,
			// издатель и канал в payload действия отсутствуют
			UserID:  common.Issuer,
			Channel: common.Channel,
		},
	}, nil
}
