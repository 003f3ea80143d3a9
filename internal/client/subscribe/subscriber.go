package subscribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/client/decode"
	"github.com/iudanet/pubsub/internal/client/listener"
	"github.com/iudanet/pubsub/internal/client/storage"
	"github.com/iudanet/pubsub/internal/models"
)

var (
	// ErrAlreadyRunning цикл подписки уже запущен
	ErrAlreadyRunning = errors.New("subscribe loop is already running")
	// ErrNoSubscriptions нет ни одного канала или группы
	ErrNoSubscriptions = errors.New("no channels or channel groups to subscribe to")
	// ErrCursorStalled сломанный ответ вернул тот же курсор, что был в запросе
	ErrCursorStalled = errors.New("malformed response did not move the cursor")
)

// Config зависимости и параметры цикла подписки
type Config struct {
	Transport  Transport
	Decoder    *decode.Decoder
	Dispatcher *listener.Dispatcher
	Logger     *slog.Logger

	// Cursors сохраняет курсор после каждого доставленного пакета; nil отключает сохранение
	Cursors storage.CursorStorage
	// CursorKey ключ, под которым сохраняется курсор
	CursorKey string

	FilterExpression string
	Heartbeat        int
}

// Subscriber runs the long-poll loop for one client session: one request in
// flight at a time, events dispatched in server order, cursor advanced only
// after the batch was dispatched.
type Subscriber struct {
	transport  Transport
	decoder    *decode.Decoder
	dispatcher *listener.Dispatcher
	logger     *slog.Logger
	cursors    storage.CursorStorage

	channels map[string]struct{} // включая presence-каналы
	groups   map[string]struct{}
	cancel   context.CancelFunc // отменяет текущий запрос работающего цикла

	cursorKey        string
	filterExpression string
	cursor           models.Cursor
	heartbeat        int

	mu        sync.Mutex
	running   bool
	connected bool // connected уже отправлен для текущего набора каналов
}

// New создает цикл подписки
func New(cfg Config) *Subscriber {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Decoder == nil {
		cfg.Decoder = decode.NewDecoder(nil, cfg.Logger)
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = listener.NewDispatcher(cfg.Logger)
	}
	return &Subscriber{
		transport:        cfg.Transport,
		decoder:          cfg.Decoder,
		dispatcher:       cfg.Dispatcher,
		logger:           cfg.Logger,
		cursors:          cfg.Cursors,
		cursorKey:        cfg.CursorKey,
		filterExpression: cfg.FilterExpression,
		heartbeat:        cfg.Heartbeat,
		channels:         make(map[string]struct{}),
		groups:           make(map[string]struct{}),
	}
}

// Subscribe добавляет каналы и группы. Изменение вступает в силу со следующего
// запроса; текущий long-poll не прерывается.
func (s *Subscriber) Subscribe(channels, groups []string, withPresence bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range channels {
		ch = models.StripPresenceSuffix(ch)
		s.channels[ch] = struct{}{}
		if withPresence {
			s.channels[models.PresenceChannel(ch)] = struct{}{}
		}
	}
	for _, g := range groups {
		g = models.StripPresenceSuffix(g)
		s.groups[g] = struct{}{}
		if withPresence {
			s.groups[models.PresenceChannel(g)] = struct{}{}
		}
	}
	s.connected = false
}

// Unsubscribe удаляет каналы и группы вместе с их presence-каналами и
// уведомляет сервер. Если подписок не осталось, работающий цикл останавливается.
func (s *Subscriber) Unsubscribe(ctx context.Context, channels, groups []string) error {
	s.mu.Lock()
	var leaveChannels, leaveGroups []string
	for _, ch := range channels {
		ch = models.StripPresenceSuffix(ch)
		if _, ok := s.channels[ch]; ok {
			leaveChannels = append(leaveChannels, ch)
		}
		delete(s.channels, ch)
		delete(s.channels, models.PresenceChannel(ch))
	}
	for _, g := range groups {
		g = models.StripPresenceSuffix(g)
		if _, ok := s.groups[g]; ok {
			leaveGroups = append(leaveGroups, g)
		}
		delete(s.groups, g)
		delete(s.groups, models.PresenceChannel(g))
	}
	s.connected = false
	s.stopIfEmptyLocked()
	s.mu.Unlock()

	if len(leaveChannels) == 0 && len(leaveGroups) == 0 {
		return nil
	}
	if err := s.transport.Leave(ctx, leaveChannels, leaveGroups); err != nil {
		return fmt.Errorf("failed to leave channels: %w", err)
	}
	return nil
}

// UnsubscribeAll удаляет все подписки и останавливает цикл
func (s *Subscriber) UnsubscribeAll(ctx context.Context) error {
	channels, groups := s.Subscriptions()
	return s.Unsubscribe(ctx, channels, groups)
}

// stopIfEmptyLocked прерывает текущий запрос, если подписок не осталось
func (s *Subscriber) stopIfEmptyLocked() {
	if len(s.channels) == 0 && len(s.groups) == 0 && s.cancel != nil {
		s.cancel()
	}
}

// Subscriptions возвращает отсортированные каналы и группы без presence-каналов
func (s *Subscriber) Subscriptions() (channels, groups []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return withoutPresence(s.channels), withoutPresence(s.groups)
}

func withoutPresence(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		if !models.IsPresenceChannel(name) {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// SetCursor задает курсор следующего запроса. Если запрос уже выполняется,
// курсор из его ответа будет проигнорирован.
func (s *Subscriber) SetCursor(cursor models.Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
}

// Cursor возвращает курсор следующего запроса
func (s *Subscriber) Cursor() models.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Restore загружает сохраненный курсор. Отсутствие курсора не является ошибкой.
func (s *Subscriber) Restore(ctx context.Context) (bool, error) {
	if s.cursors == nil || s.cursorKey == "" {
		return false, nil
	}
	saved, err := s.cursors.GetCursor(ctx, s.cursorKey)
	if err != nil {
		if errors.Is(err, storage.ErrCursorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to restore cursor: %w", err)
	}
	s.SetCursor(saved.Cursor)
	s.logger.Info("Resuming from saved cursor", "cursor", saved.Cursor.String(), "saved_at", saved.SavedAt)
	return true, nil
}

// Running сообщает, работает ли цикл
func (s *Subscriber) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stop прерывает текущий запрос; Run завершается без ошибки
func (s *Subscriber) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// nextRequest строит запрос под блокировкой из текущего состояния
func (s *Subscriber) nextRequest() (api.SubscribeRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.channels) == 0 && len(s.groups) == 0 {
		return api.SubscribeRequest{}, false
	}
	return api.SubscribeRequest{
		Channels:         slices.Sorted(maps.Keys(s.channels)),
		Groups:           slices.Sorted(maps.Keys(s.groups)),
		Cursor:           s.cursor,
		FilterExpression: s.filterExpression,
		Heartbeat:        s.heartbeat,
	}, true
}
