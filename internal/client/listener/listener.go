package listener

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"

	"github.com/iudanet/pubsub/internal/models"
)

// Listener набор необязательных обработчиков по типам событий.
// Обработчики вызываются синхронно в горутине цикла подписки и задерживают
// следующий long-poll запрос, поэтому не должны блокироваться надолго.
type Listener struct {
	OnMessage       func(*models.MessageEvent)
	OnSignal        func(*models.SignalEvent)
	OnPresence      func(*models.PresenceEvent)
	OnObject        func(*models.ObjectEvent)
	OnMessageAction func(*models.MessageActionEvent)
	OnStatus        func(*models.StatusEvent)

	// Channels ограничивает события перечисленными каналами или группами.
	// Пустой список означает все каналы. Статусы доставляются всегда.
	Channels []string
}

// ID идентификатор зарегистрированного слушателя
type ID uint64

type entry struct {
	listener Listener
	channels []string // нормализованные и отсортированные
	id       ID
}

func (e *entry) matches(env *models.Envelope) bool {
	if len(e.channels) == 0 {
		return true
	}
	for _, name := range []string{env.Channel, env.SubscriptionMatch} {
		if name == "" {
			continue
		}
		if _, found := slices.BinarySearch(e.channels, name); found {
			return true
		}
	}
	return false
}

// Option настраивает Dispatcher
type Option func(*Dispatcher)

// WithDedupe включает подавление повторно доставленных сообщений.
// size - сколько последних отпечатков хранится в кэше.
func WithDedupe(size int) Option {
	return func(d *Dispatcher) {
		d.dedupe = NewDedupeCache(size)
	}
}

// Dispatcher fans decoded events out to registered listeners in the order
// they were received.
type Dispatcher struct {
	logger    *slog.Logger
	dedupe    *DedupeCache
	listeners []*entry
	mu        sync.RWMutex
	nextID    ID
}

// NewDispatcher создает диспетчер событий
func NewDispatcher(logger *slog.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add регистрирует слушателя и возвращает его идентификатор
func (d *Dispatcher) Add(l Listener) ID {
	channels := make([]string, 0, len(l.Channels))
	for _, ch := range l.Channels {
		channels = append(channels, models.StripPresenceSuffix(ch))
	}
	slices.Sort(channels)
	channels = slices.Compact(channels)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	d.listeners = append(d.listeners, &entry{id: d.nextID, listener: l, channels: channels})
	return d.nextID
}

// Remove удаляет слушателя. Возвращает false, если он не был зарегистрирован.
func (d *Dispatcher) Remove(id ID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, e := range d.listeners {
		if e.id == id {
			d.listeners = slices.Delete(d.listeners, i, i+1)
			return true
		}
	}
	return false
}

// Len возвращает количество зарегистрированных слушателей
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// snapshot копирует список слушателей, чтобы обработчики могли вызывать Add/Remove
func (d *Dispatcher) snapshot() []*entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.listeners)
}

// Dispatch delivers events in order. Duplicates are dropped when dedupe is
// enabled. A panicking listener is logged and skipped.
func (d *Dispatcher) Dispatch(events []models.Event) {
	listeners := d.snapshot()
	for _, event := range events {
		if d.dedupe != nil && d.dedupe.Seen(event) {
			d.logger.Debug("Dropping duplicate event",
				"channel", event.Common().Channel,
				"timetoken", event.Common().PublishCursor.Timetoken,
			)
			continue
		}
		for _, e := range listeners {
			if !e.matches(event.Common()) {
				continue
			}
			d.deliver(e, event)
		}
	}
}

// DispatchStatus доставляет статус всем слушателям с OnStatus
func (d *Dispatcher) DispatchStatus(status *models.StatusEvent) {
	for _, e := range d.snapshot() {
		if e.listener.OnStatus == nil {
			continue
		}
		d.safeCall(e.id, "status", "", func() { e.listener.OnStatus(status) })
	}
}

func (d *Dispatcher) deliver(e *entry, event models.Event) {
	l := e.listener
	channel := event.Common().Channel

	switch ev := event.(type) {
	case *models.MessageEvent:
		if l.OnMessage != nil {
			d.safeCall(e.id, "message", channel, func() { l.OnMessage(ev) })
		}
	case *models.SignalEvent:
		if l.OnSignal != nil {
			d.safeCall(e.id, "signal", channel, func() { l.OnSignal(ev) })
		}
	case *models.PresenceEvent:
		if l.OnPresence != nil {
			d.safeCall(e.id, "presence", channel, func() { l.OnPresence(ev) })
		}
	case *models.ObjectEvent:
		if l.OnObject != nil {
			d.safeCall(e.id, "object", channel, func() { l.OnObject(ev) })
		}
	case *models.MessageActionEvent:
		if l.OnMessageAction != nil {
			d.safeCall(e.id, "message_action", channel, func() { l.OnMessageAction(ev) })
		}
	default:
		d.logger.Warn("Unknown event type", "type", fmt.Sprintf("%T", event))
	}
}

// safeCall перехватывает panic обработчика, логирует стек и продолжает доставку
func (d *Dispatcher) safeCall(id ID, kind, channel string, fn func()) {
	defer func() {
		if err := recover(); err != nil {
			// Получаем стек вызовов для диагностики
			stackTrace := debug.Stack()

			d.logger.Error("Listener panic recovered",
				"error", err,
				"listener", id,
				"event", kind,
				"channel", channel,
				"stack", string(stackTrace),
			)
		}
	}()

	fn()
}
