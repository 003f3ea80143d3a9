package models

import (
	"encoding/json"
	"strings"
)

// PresenceSuffix серверный маркер, добавляемый к имени presence-канала
const PresenceSuffix = "-pnpres"

// StripPresenceSuffix возвращает имя канала без presence-маркера
func StripPresenceSuffix(name string) string {
	return strings.TrimSuffix(name, PresenceSuffix)
}

// PresenceChannel возвращает имя presence-канала для обычного канала
func PresenceChannel(name string) string {
	if strings.HasSuffix(name, PresenceSuffix) {
		return name
	}
	return name + PresenceSuffix
}

// IsPresenceChannel сообщает, является ли имя presence-каналом
func IsPresenceChannel(name string) bool {
	return strings.HasSuffix(name, PresenceSuffix)
}

// MessageType is the integer discriminant carried in the "e" key of a
// subscribe envelope.
type MessageType int

const (
	MessageTypeMessage  MessageType = 0
	MessageTypeSignal   MessageType = 1
	MessageTypeObject   MessageType = 2
	MessageTypeAction   MessageType = 3
	MessageTypePresence MessageType = 99
)

// Envelope holds the fields shared by every item of a subscribe batch.
// Channel and SubscriptionMatch never carry the presence suffix.
type Envelope struct {
	Metadata          json.RawMessage // Metadata произвольный JSON из ключа "u"
	OriginCursor      *Cursor         // OriginCursor курсор исходного региона ("o"), если есть
	Shard             string          // Shard значение ключа "a"
	SubscriptionMatch string          // SubscriptionMatch группа каналов или wildcard, по которой пришло событие
	Channel           string          // Channel канал события
	Issuer            string          // Issuer идентификатор издателя ("i")
	SubscribeKey      string          // SubscribeKey ключ подписки ("k")
	PublishCursor     Cursor          // PublishCursor курсор публикации ("p")
	Flags             int             // Flags значение ключа "f"
}

// Event is the closed set of decoded subscribe items. The concrete types are
// *MessageEvent, *SignalEvent, *PresenceEvent, *ObjectEvent and
// *MessageActionEvent.
type Event interface {
	// Common возвращает общие поля конверта
	Common() *Envelope
	isEvent()
}

// MessageEvent обычное опубликованное сообщение
type MessageEvent struct {
	Envelope
	Payload json.RawMessage
	// DecryptError is set when a cipher is configured and the payload could
	// not be decrypted. Payload then holds the original wire value.
	DecryptError error
}

// SignalEvent сигнал; от сообщения отличается только дискриминантом
type SignalEvent struct {
	Envelope
	Payload      json.RawMessage
	DecryptError error
}

// PresenceAction тип presence-события
type PresenceAction string

const (
	PresenceJoin        PresenceAction = "join"
	PresenceLeave       PresenceAction = "leave"
	PresenceTimeout     PresenceAction = "timeout"
	PresenceStateChange PresenceAction = "state-change"
	PresenceInterval    PresenceAction = "interval"
)

// Valid сообщает, известно ли действие
func (a PresenceAction) Valid() bool {
	switch a {
	case PresenceJoin, PresenceLeave, PresenceTimeout, PresenceStateChange, PresenceInterval:
		return true
	}
	return false
}

// PresenceEvent normalized presence change for one channel
type PresenceEvent struct {
	Envelope
	StateByUser     map[string]json.RawMessage
	Action          PresenceAction
	Delta           PresenceDelta
	Occupancy       int
	CursorTimetoken Timetoken // CursorTimetoken значение "timestamp" из payload
	HereNowRefresh  bool
}

// Joined возвращает пользователей, вошедших в канал
func (e *PresenceEvent) Joined() []string { return e.Delta.Joined }

// Left возвращает пользователей, покинувших канал
func (e *PresenceEvent) Left() []string { return e.Delta.Left }

// TimedOut возвращает пользователей, отключенных по таймауту
func (e *PresenceEvent) TimedOut() []string { return e.Delta.TimedOut }

// ObjectType тип объекта метаданных
type ObjectType string

const (
	ObjectUser       ObjectType = "user"
	ObjectSpace      ObjectType = "space"
	ObjectMembership ObjectType = "membership"
)

// ObjectAction действие над объектом метаданных
type ObjectAction string

const (
	ObjectAdd    ObjectAction = "add"
	ObjectUpdate ObjectAction = "update"
	ObjectDelete ObjectAction = "delete"
)

// ObjectEvent изменение метаданных пользователя, пространства или членства
type ObjectEvent struct {
	Envelope
	Data       json.RawMessage
	ObjectType ObjectType
	Action     ObjectAction
}

// MessageActionKind добавлено или удалено действие над сообщением
type MessageActionKind string

const (
	MessageActionAdded   MessageActionKind = "added"
	MessageActionRemoved MessageActionKind = "removed"
)

// MessageAction реакция (или другое действие), привязанная к сообщению
type MessageAction struct {
	Type             string    `json:"type"`
	Value            string    `json:"value"`
	UserID           string    `json:"uuid,omitempty"`
	Channel          string    `json:"channel,omitempty"`
	ActionTimetoken  Timetoken `json:"actionTimetoken"`
	MessageTimetoken Timetoken `json:"messageTimetoken"`
}

// MessageActionEvent событие добавления/удаления действия над сообщением.
// UserID и Channel действия заполняются из конверта.
type MessageActionEvent struct {
	Envelope
	Kind   MessageActionKind
	Action MessageAction
}

func (e *Envelope) Common() *Envelope { return e }

func (*MessageEvent) isEvent()       {}
func (*SignalEvent) isEvent()        {}
func (*PresenceEvent) isEvent()      {}
func (*ObjectEvent) isEvent()        {}
func (*MessageActionEvent) isEvent() {}
