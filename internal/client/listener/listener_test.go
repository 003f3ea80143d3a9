package listener

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/pubsub/internal/models"
)

func message(channel string, tt models.Timetoken, payload string) *models.MessageEvent {
	return &models.MessageEvent{
		Envelope: models.Envelope{Channel: channel, PublishCursor: models.Cursor{Timetoken: tt}},
		Payload:  json.RawMessage(payload),
	}
}

// TestDispatcher_Order проверяет порядок доставки и маршрутизацию по типам
func TestDispatcher_Order(t *testing.T) {
	d := NewDispatcher(nil)

	var got []string
	d.Add(Listener{
		OnMessage:  func(e *models.MessageEvent) { got = append(got, "message:"+string(e.Payload)) },
		OnSignal:   func(e *models.SignalEvent) { got = append(got, "signal:"+string(e.Payload)) },
		OnPresence: func(e *models.PresenceEvent) { got = append(got, "presence:"+e.Joined()[0]) },
		OnObject:   func(e *models.ObjectEvent) { got = append(got, "object:"+string(e.ObjectType)) },
		OnMessageAction: func(e *models.MessageActionEvent) {
			got = append(got, "action:"+e.Action.Value)
		},
	})

	d.Dispatch([]models.Event{
		&models.PresenceEvent{Envelope: models.Envelope{Channel: "a"}, Delta: models.PresenceDelta{Joined: []string{"u1"}}},
		message("a", 1, `"hi"`),
		&models.SignalEvent{Envelope: models.Envelope{Channel: "a"}, Payload: json.RawMessage(`1`)},
		&models.ObjectEvent{Envelope: models.Envelope{Channel: "a"}, ObjectType: models.ObjectSpace},
		&models.MessageActionEvent{Envelope: models.Envelope{Channel: "a"}, Action: models.MessageAction{Value: "like"}},
	})

	assert.Equal(t, []string{"presence:u1", `message:"hi"`, "signal:1", "object:space", "action:like"}, got)
}

// TestDispatcher_ChannelScope проверяет фильтрацию по каналам с нормализацией имен
func TestDispatcher_ChannelScope(t *testing.T) {
	d := NewDispatcher(nil)

	var scoped, all []string
	d.Add(Listener{
		Channels:  []string{"news-pnpres", "group-1"},
		OnMessage: func(e *models.MessageEvent) { scoped = append(scoped, e.Channel) },
	})
	d.Add(Listener{
		OnMessage: func(e *models.MessageEvent) { all = append(all, e.Channel) },
	})

	viaGroup := message("sports", 3, `3`)
	viaGroup.SubscriptionMatch = "group-1"

	d.Dispatch([]models.Event{message("news", 1, `1`), message("weather", 2, `2`), viaGroup})

	assert.Equal(t, []string{"news", "sports"}, scoped)
	assert.Equal(t, []string{"news", "weather", "sports"}, all)
}

// TestDispatcher_Remove проверяет удаление слушателя
func TestDispatcher_Remove(t *testing.T) {
	d := NewDispatcher(nil)

	calls := 0
	id := d.Add(Listener{OnMessage: func(*models.MessageEvent) { calls++ }})
	assert.Equal(t, 1, d.Len())

	d.Dispatch([]models.Event{message("a", 1, `1`)})
	assert.True(t, d.Remove(id))
	assert.False(t, d.Remove(id))
	d.Dispatch([]models.Event{message("a", 2, `2`)})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.Len())
}

// TestDispatcher_PanicRecovery проверяет, что паника слушателя не прерывает доставку
func TestDispatcher_PanicRecovery(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	d := NewDispatcher(logger)

	d.Add(Listener{OnMessage: func(*models.MessageEvent) { panic("boom") }})

	var delivered []string
	d.Add(Listener{OnMessage: func(e *models.MessageEvent) { delivered = append(delivered, string(e.Payload)) }})

	require.NotPanics(t, func() {
		d.Dispatch([]models.Event{message("a", 1, `1`), message("a", 2, `2`)})
	})

	assert.Equal(t, []string{"1", "2"}, delivered)
	assert.Contains(t, logs.String(), "Listener panic recovered")
	assert.Contains(t, logs.String(), "boom")
}

// TestDispatcher_Status проверяет доставку статусов без учета каналов
func TestDispatcher_Status(t *testing.T) {
	d := NewDispatcher(nil)

	var got []models.StatusCategory
	d.Add(Listener{
		Channels: []string{"only-this"},
		OnStatus: func(s *models.StatusEvent) { got = append(got, s.Category) },
	})
	d.Add(Listener{OnMessage: func(*models.MessageEvent) {}})

	d.DispatchStatus(&models.StatusEvent{Category: models.StatusConnected})
	d.DispatchStatus(&models.StatusEvent{Category: models.StatusDecryptError, Err: errors.New("bad key")})

	assert.Equal(t, []models.StatusCategory{models.StatusConnected, models.StatusDecryptError}, got)
}

// TestDispatcher_AddFromCallback проверяет, что обработчик может регистрировать слушателей
func TestDispatcher_AddFromCallback(t *testing.T) {
	d := NewDispatcher(nil)

	d.Add(Listener{OnMessage: func(*models.MessageEvent) {
		d.Add(Listener{})
	}})

	require.NotPanics(t, func() {
		d.Dispatch([]models.Event{message("a", 1, `1`)})
	})
	assert.Equal(t, 2, d.Len())
}

// TestDispatcher_Dedupe проверяет подавление повторной доставки
func TestDispatcher_Dedupe(t *testing.T) {
	d := NewDispatcher(nil, WithDedupe(10))

	var got []string
	d.Add(Listener{
		OnMessage:  func(e *models.MessageEvent) { got = append(got, string(e.Payload)) },
		OnPresence: func(e *models.PresenceEvent) { got = append(got, "presence") },
	})

	presence := &models.PresenceEvent{Envelope: models.Envelope{Channel: "a"}}
	d.Dispatch([]models.Event{message("a", 1, `"x"`), presence})
	// повторная доставка после возобновления с сохраненного курсора
	d.Dispatch([]models.Event{message("a", 1, `"x"`), message("a", 2, `"x"`), presence})

	assert.Equal(t, []string{`"x"`, "presence", `"x"`, "presence"}, got)
}
