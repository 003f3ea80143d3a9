package decode

import (
	"encoding/json"

	"github.com/iudanet/pubsub/internal/models"
)

// wireResponse тело ответа subscribe
type wireResponse struct {
	Cursor   *models.Cursor    `json:"t"`
	Messages []json.RawMessage `json:"m"`
}

// wireEnvelope один элемент массива "m" с короткими ключами
type wireEnvelope struct {
	OriginCursor      *models.Cursor  `json:"o"`
	PublishCursor     *models.Cursor  `json:"p"`
	MessageType       *int            `json:"e"`
	Shard             string          `json:"a"`
	SubscriptionMatch string          `json:"b"`
	Channel           string          `json:"c"`
	Issuer            string          `json:"i"`
	SubscribeKey      string          `json:"k"`
	Payload           json.RawMessage `json:"d"`
	Metadata          json.RawMessage `json:"u"`
	Flags             int             `json:"f"`
}

// common переносит общие поля в models.Envelope, убирая presence-суффикс
func (w *wireEnvelope) common() models.Envelope {
	env := models.Envelope{
		Metadata:          w.Metadata,
		OriginCursor:      w.OriginCursor,
		Shard:             w.Shard,
		SubscriptionMatch: models.StripPresenceSuffix(w.SubscriptionMatch),
		Channel:           models.StripPresenceSuffix(w.Channel),
		Issuer:            w.Issuer,
		SubscribeKey:      w.SubscribeKey,
		Flags:             w.Flags,
	}
	if w.PublishCursor != nil {
		env.PublishCursor = *w.PublishCursor
	}
	return env
}

// wirePresence payload presence-события
type wirePresence struct {
	Data           json.RawMessage  `json:"data"`
	State          json.RawMessage  `json:"state"`
	Action         string           `json:"action"`
	UUID           string           `json:"uuid"`
	Join           []string         `json:"join"`
	Leave          []string         `json:"leave"`
	Timeout        []string         `json:"timeout"`
	Timestamp      models.Timetoken `json:"timestamp"`
	Occupancy      int              `json:"occupancy"`
	HereNowRefresh bool             `json:"here_now_refresh"`
}

// wireObject payload изменения метаданных
type wireObject struct {
	Data    json.RawMessage `json:"data"`
	Source  string          `json:"source"`
	Version string          `json:"version"`
	Event   string          `json:"event"`
	Type    string          `json:"type"`
}

// wireMessageAction payload добавления/удаления действия над сообщением
type wireMessageAction struct {
	Source  string `json:"source"`
	Version string `json:"version"`
	Event   string `json:"event"`
	Data    struct {
		Type             string           `json:"type"`
		Value            string           `json:"value"`
		ActionTimetoken  models.Timetoken `json:"actionTimetoken"`
		MessageTimetoken models.Timetoken `json:"messageTimetoken"`
	} `json:"data"`
}
