package subscribe

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/client/decode"
	"github.com/iudanet/pubsub/internal/client/listener"
	"github.com/iudanet/pubsub/internal/client/storage"
	"github.com/iudanet/pubsub/internal/models"
)

// scriptedTransport отдает заранее заданные ответы, а затем ждет отмены
func scriptedTransport(responses ...string) *TransportMock {
	var mu sync.Mutex
	calls := 0
	return &TransportMock{
		SubscribeFunc: func(ctx context.Context, req api.SubscribeRequest) ([]byte, error) {
			mu.Lock()
			i := calls
			calls++
			mu.Unlock()

			if i < len(responses) {
				return []byte(responses[i]), nil
			}
			<-ctx.Done()
			return nil, ctx.Err()
		},
		LeaveFunc: func(ctx context.Context, channels, groups []string) error {
			return nil
		},
	}
}

// recorder собирает события и статусы в порядке доставки
type recorder struct {
	events   []string
	statuses []models.StatusCategory
	mu       sync.Mutex
}

func (r *recorder) listener() listener.Listener {
	return listener.Listener{
		OnMessage: func(e *models.MessageEvent) {
			r.add("message:" + string(e.Payload))
		},
		OnPresence: func(e *models.PresenceEvent) {
			for _, id := range e.Joined() {
				r.add("join:" + id)
			}
		},
		OnStatus: func(s *models.StatusEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.statuses = append(r.statuses, s.Category)
		},
	}
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) snapshot() ([]string, []models.StatusCategory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...), append([]models.StatusCategory(nil), r.statuses...)
}

func newTestSubscriber(t *testing.T, transport Transport, rec *recorder) *Subscriber {
	t.Helper()
	dispatcher := listener.NewDispatcher(nil)
	if rec != nil {
		dispatcher.Add(rec.listener())
	}
	return New(Config{
		Transport:  transport,
		Decoder:    decode.NewDecoder(nil, nil),
		Dispatcher: dispatcher,
	})
}

// runAsync запускает цикл и возвращает канал с результатом Run
func runAsync(s *Subscriber) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- s.Run(context.Background())
	}()
	return done
}

func waitCalls(t *testing.T, transport *TransportMock, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(transport.SubscribeCalls()) >= n
	}, 2*time.Second, 5*time.Millisecond)
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("subscribe loop did not stop")
		return nil
	}
}

// TestSubscriber_PresenceThenMessage проверяет порядок доставки пакета
func TestSubscriber_PresenceThenMessage(t *testing.T) {
	transport := scriptedTransport(
		`{"t":{"t":"17000000000000010","r":2},"m":[
			{"c":"room-pnpres","d":{"action":"join","uuid":"u1","timestamp":1,"occupancy":1}},
			{"c":"room","d":"hi"}
		]}`,
	)
	rec := &recorder{}
	s := newTestSubscriber(t, transport, rec)
	s.Subscribe([]string{"room"}, nil, true)

	done := runAsync(s)
	waitCalls(t, transport, 2)
	s.Stop()
	require.NoError(t, waitDone(t, done))

	events, statuses := rec.snapshot()
	assert.Equal(t, []string{"join:u1", `message:"hi"`}, events)
	assert.Equal(t, []models.StatusCategory{models.StatusConnected, models.StatusDisconnected}, statuses)

	calls := transport.SubscribeCalls()
	assert.Equal(t, []string{"room", "room-pnpres"}, calls[0].Req.Channels)
	assert.True(t, calls[0].Req.Cursor.IsZero())
	assert.Equal(t, models.Cursor{Timetoken: 17000000000000010, Region: 2}, calls[1].Req.Cursor)
	assert.False(t, s.Running())
}

// TestSubscriber_CursorAdvancesAfterDispatch проверяет, что курсор меняется
// только после доставки всего пакета
func TestSubscriber_CursorAdvancesAfterDispatch(t *testing.T) {
	transport := scriptedTransport(`{"t":{"t":"500","r":1},"m":[{"c":"a","d":1},{"c":"a","d":2}]}`)

	var seen []models.Cursor
	dispatcher := listener.NewDispatcher(nil)
	s := New(Config{Transport: transport, Dispatcher: dispatcher})
	dispatcher.Add(listener.Listener{OnMessage: func(*models.MessageEvent) {
		seen = append(seen, s.Cursor())
	}})
	s.SetCursor(models.Cursor{Timetoken: 100, Region: 1})
	s.Subscribe([]string{"a"}, nil, false)

	done := runAsync(s)
	waitCalls(t, transport, 2)
	s.Stop()
	require.NoError(t, waitDone(t, done))

	old := models.Cursor{Timetoken: 100, Region: 1}
	assert.Equal(t, []models.Cursor{old, old}, seen)
	assert.Equal(t, models.Cursor{Timetoken: 500, Region: 1}, s.Cursor())
}

// TestSubscriber_SalvagedResponse проверяет продолжение после сломанного ответа
func TestSubscriber_SalvagedResponse(t *testing.T) {
	transport := scriptedTransport(
		`{"t":{"t":"200","r":3},"m":[{"c":"a","d":`,
		`{"t":{"t":"300","r":3},"m":[{"c":"a","d":"after"}]}`,
	)
	rec := &recorder{}
	s := newTestSubscriber(t, transport, rec)
	s.Subscribe([]string{"a"}, nil, false)

	done := runAsync(s)
	waitCalls(t, transport, 3)
	s.Stop()
	require.NoError(t, waitDone(t, done))

	calls := transport.SubscribeCalls()
	assert.Equal(t, models.Timetoken(200), calls[1].Req.Cursor.Timetoken)
	assert.Equal(t, models.Timetoken(300), calls[2].Req.Cursor.Timetoken)

	events, statuses := rec.snapshot()
	assert.Equal(t, []string{`message:"after"`}, events)
	assert.Equal(t, []models.StatusCategory{
		models.StatusMalformedResponse,
		models.StatusConnected,
		models.StatusDisconnected,
	}, statuses)
}

// TestSubscriber_SalvagedSameCursor сломанный ответ с прежним курсором останавливает цикл
func TestSubscriber_SalvagedSameCursor(t *testing.T) {
	broken := `{"t":{"t":"200","r":3},"m":[{"c":"a","d":`
	transport := scriptedTransport(broken, broken, broken)
	rec := &recorder{}
	s := newTestSubscriber(t, transport, rec)
	s.Subscribe([]string{"a"}, nil, false)

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCursorStalled)

	respErr, ok := decode.AsResponseError(err)
	require.True(t, ok)
	assert.True(t, respErr.Salvaged())

	// Первый ответ сдвинул курсор с нуля, второй уже нет
	calls := transport.SubscribeCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, models.Cursor{Timetoken: 200, Region: 3}, calls[1].Req.Cursor)
	assert.Equal(t, models.Cursor{Timetoken: 200, Region: 3}, s.Cursor())

	_, statuses := rec.snapshot()
	assert.Equal(t, []models.StatusCategory{
		models.StatusMalformedResponse,
		models.StatusUnexpected,
	}, statuses)
}

// TestSubscriber_UnrecoverableResponse проверяет остановку без курсора
func TestSubscriber_UnrecoverableResponse(t *testing.T) {
	transport := scriptedTransport(`<html>bad gateway</html>`)
	rec := &recorder{}
	s := newTestSubscriber(t, transport, rec)
	s.Subscribe([]string{"a"}, nil, false)

	err := s.Run(context.Background())
	require.Error(t, err)

	respErr, ok := decode.AsResponseError(err)
	require.True(t, ok)
	assert.False(t, respErr.Salvaged())
	assert.Len(t, transport.SubscribeCalls(), 1)

	_, statuses := rec.snapshot()
	assert.Equal(t, []models.StatusCategory{models.StatusUnexpected}, statuses)
}

// TestSubscriber_TransportError проверяет передачу ошибки транспорта вызывающему
func TestSubscriber_TransportError(t *testing.T) {
	transportErr := &api.ServerError{StatusCode: 403, Message: "Forbidden"}
	transport := &TransportMock{
		SubscribeFunc: func(ctx context.Context, req api.SubscribeRequest) ([]byte, error) {
			return nil, transportErr
		},
	}
	s := newTestSubscriber(t, transport, nil)
	s.Subscribe([]string{"a"}, nil, false)

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)
	assert.True(t, api.IsForbidden(err))
}

// TestSubscriber_PartialBatch проверяет статус decode-error для плохого элемента
func TestSubscriber_PartialBatch(t *testing.T) {
	transport := scriptedTransport(`{"t":{"t":"9","r":1},"m":[{"c":"a","e":99,"d":"x"},{"c":"a","d":"ok"}]}`)
	rec := &recorder{}
	s := newTestSubscriber(t, transport, rec)
	s.Subscribe([]string{"a"}, nil, false)

	done := runAsync(s)
	waitCalls(t, transport, 2)
	s.Stop()
	require.NoError(t, waitDone(t, done))

	events, statuses := rec.snapshot()
	assert.Equal(t, []string{`message:"ok"`}, events)
	assert.Equal(t, []models.StatusCategory{
		models.StatusConnected,
		models.StatusDecodeError,
		models.StatusDisconnected,
	}, statuses)
}

// TestSubscriber_ChangesApplyToNextRequest проверяет, что новые каналы
// попадают в следующий запрос, а не прерывают текущий
func TestSubscriber_ChangesApplyToNextRequest(t *testing.T) {
	var s *Subscriber
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	transport := &TransportMock{
		SubscribeFunc: func(ctx context.Context, req api.SubscribeRequest) ([]byte, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()

			if n == 1 {
				<-release
				return []byte(`{"t":{"t":"1","r":1},"m":[]}`), nil
			}
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	s = newTestSubscriber(t, transport, nil)
	s.Subscribe([]string{"a"}, nil, false)

	done := runAsync(s)
	waitCalls(t, transport, 1)

	s.Subscribe([]string{"b"}, []string{"g"}, false)
	close(release)

	waitCalls(t, transport, 2)
	s.Stop()
	require.NoError(t, waitDone(t, done))

	reqs := transport.SubscribeCalls()
	assert.Equal(t, []string{"a"}, reqs[0].Req.Channels)
	assert.Equal(t, []string{"a", "b"}, reqs[1].Req.Channels)
	assert.Equal(t, []string{"g"}, reqs[1].Req.Groups)
}

// TestSubscriber_UnsubscribeAllStopsLoop проверяет остановку при отписке от всего
func TestSubscriber_UnsubscribeAllStopsLoop(t *testing.T) {
	transport := scriptedTransport()
	rec := &recorder{}
	s := newTestSubscriber(t, transport, rec)
	s.Subscribe([]string{"a", "b"}, []string{"g"}, true)

	done := runAsync(s)
	waitCalls(t, transport, 1)

	require.NoError(t, s.Unsubscribe(context.Background(), []string{"a"}, nil))
	assert.True(t, s.Running())

	require.NoError(t, s.UnsubscribeAll(context.Background()))
	require.NoError(t, waitDone(t, done))

	leaves := transport.LeaveCalls()
	require.Len(t, leaves, 2)
	assert.Equal(t, []string{"a"}, leaves[0].Channels)
	assert.Equal(t, []string{"b"}, leaves[1].Channels)
	assert.Equal(t, []string{"g"}, leaves[1].Groups)

	channels, groups := s.Subscriptions()
	assert.Empty(t, channels)
	assert.Empty(t, groups)

	_, statuses := rec.snapshot()
	assert.Equal(t, []models.StatusCategory{models.StatusDisconnected}, statuses)
}

// TestSubscriber_RunPreconditions проверяет запуск без подписок и повторный запуск
func TestSubscriber_RunPreconditions(t *testing.T) {
	transport := scriptedTransport()
	s := newTestSubscriber(t, transport, nil)

	assert.ErrorIs(t, s.Run(context.Background()), ErrNoSubscriptions)

	s.Subscribe([]string{"a"}, nil, false)
	done := runAsync(s)
	waitCalls(t, transport, 1)

	assert.ErrorIs(t, s.Run(context.Background()), ErrAlreadyRunning)

	s.Stop()
	require.NoError(t, waitDone(t, done))
}

// TestSubscriber_ContextCancel проверяет остановку через контекст вызывающего
func TestSubscriber_ContextCancel(t *testing.T) {
	transport := scriptedTransport()
	s := newTestSubscriber(t, transport, nil)
	s.Subscribe([]string{"a"}, nil, false)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	assert.NoError(t, s.Run(ctx))
}

// TestSubscriber_SetCursorDuringRequest проверяет приоритет курсора, заданного вручную
func TestSubscriber_SetCursorDuringRequest(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0

	transport := &TransportMock{
		SubscribeFunc: func(ctx context.Context, req api.SubscribeRequest) ([]byte, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				<-release
				return []byte(`{"t":{"t":"50","r":1},"m":[]}`), nil
			}
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	s := newTestSubscriber(t, transport, nil)
	s.Subscribe([]string{"a"}, nil, false)

	done := runAsync(s)
	waitCalls(t, transport, 1)
	s.SetCursor(models.Cursor{Timetoken: 999, Region: 7})
	close(release)

	waitCalls(t, transport, 2)
	s.Stop()
	require.NoError(t, waitDone(t, done))

	assert.Equal(t, models.Cursor{Timetoken: 999, Region: 7}, transport.SubscribeCalls()[1].Req.Cursor)
}

// TestSubscriber_PersistsCursor проверяет сохранение и восстановление курсора
func TestSubscriber_PersistsCursor(t *testing.T) {
	var saved []models.Cursor
	cursors := &storage.CursorStorageMock{
		GetCursorFunc: func(ctx context.Context, key string) (*storage.SavedCursor, error) {
			if key == "sub|a|" {
				return &storage.SavedCursor{Key: key, Cursor: models.Cursor{Timetoken: 40, Region: 2}}, nil
			}
			return nil, storage.ErrCursorNotFound
		},
		SaveCursorFunc: func(ctx context.Context, key string, cursor models.Cursor) error {
			assert.Equal(t, "sub|a|", key)
			saved = append(saved, cursor)
			return nil
		},
	}

	transport := scriptedTransport(`{"t":{"t":"41","r":2},"m":[{"c":"a","d":{"n":1}}]}`)
	s := New(Config{
		Transport: transport,
		Cursors:   cursors,
		CursorKey: "sub|a|",
	})
	s.Subscribe([]string{"a"}, nil, false)

	restored, err := s.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, models.Cursor{Timetoken: 40, Region: 2}, s.Cursor())

	done := runAsync(s)
	waitCalls(t, transport, 2)
	s.Stop()
	require.NoError(t, waitDone(t, done))

	assert.Equal(t, models.Timetoken(40), transport.SubscribeCalls()[0].Req.Cursor.Timetoken)
	assert.Equal(t, []models.Cursor{{Timetoken: 41, Region: 2}}, saved)
}

// TestSubscriber_RestoreMissing проверяет отсутствие сохраненного курсора
func TestSubscriber_RestoreMissing(t *testing.T) {
	cursors := &storage.CursorStorageMock{
		GetCursorFunc: func(ctx context.Context, key string) (*storage.SavedCursor, error) {
			return nil, storage.ErrCursorNotFound
		},
	}
	s := New(Config{Transport: scriptedTransport(), Cursors: cursors, CursorKey: "k"})

	restored, err := s.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, restored)

	cursors.GetCursorFunc = func(ctx context.Context, key string) (*storage.SavedCursor, error) {
		return nil, errors.New("disk error")
	}
	_, err = s.Restore(context.Background())
	assert.Error(t, err)
}

// TestSubscriber_DecryptErrorStatus проверяет статус при неудачной расшифровке
func TestSubscriber_DecryptErrorStatus(t *testing.T) {
	event := &models.MessageEvent{Payload: json.RawMessage(`"x"`), DecryptError: errors.New("bad key")}
	assert.Error(t, decryptError(event))
	assert.NoError(t, decryptError(&models.PresenceEvent{}))
}
