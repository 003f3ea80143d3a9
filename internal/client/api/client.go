package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	// DefaultOrigin сервер по умолчанию
	DefaultOrigin = "https://ps.pndsn.com"
	// DefaultSubscribeTimeout чуть больше серверного таймаута long-poll (280s)
	DefaultSubscribeTimeout = 310 * time.Second
	// DefaultRequestTimeout таймаут обычных запросов
	DefaultRequestTimeout = 10 * time.Second
	// DefaultMaxRetries повторов на сетевые ошибки и 5xx
	DefaultMaxRetries = 3

	retryBase = 200 * time.Millisecond
	retryCap  = 5 * time.Second
)

// Config параметры HTTP клиента
type Config struct {
	// Transport базовый RoundTripper; nil означает http.DefaultTransport
	Transport        http.RoundTripper
	Logger           *slog.Logger
	Origin           string
	PublishKey       string
	SubscribeKey     string
	UserID           string
	AuthKey          string
	SubscribeTimeout time.Duration
	RequestTimeout   time.Duration
	MaxRetries       uint64
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	pollClient    *http.Client // long-poll subscribe
	requestClient *http.Client // все остальные запросы
	logger        *slog.Logger
	origin        string
	publishKey    string
	subscribeKey  string
	userID        string
	authKey       string
	maxRetries    uint64
}

// NewClient создает новый API клиент
func NewClient(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Origin == "" {
		cfg.Origin = DefaultOrigin
	}
	if cfg.SubscribeTimeout <= 0 {
		cfg.SubscribeTimeout = DefaultSubscribeTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}

	transport := NewLoggingTransport(cfg.Transport, cfg.Logger)

	return &Client{
		pollClient:    &http.Client{Timeout: cfg.SubscribeTimeout, Transport: transport},
		requestClient: &http.Client{Timeout: cfg.RequestTimeout, Transport: transport},
		logger:        cfg.Logger,
		origin:        strings.TrimRight(normalizeOrigin(cfg.Origin), "/"),
		publishKey:    cfg.PublishKey,
		subscribeKey:  cfg.SubscribeKey,
		userID:        cfg.UserID,
		authKey:       cfg.AuthKey,
		maxRetries:    cfg.MaxRetries,
	}
}

// normalizeOrigin добавляет схему, если в конфиге указан только хост
func normalizeOrigin(origin string) string {
	if strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://") {
		return origin
	}
	return "https://" + origin
}

// SetAuthKey заменяет токен доступа для последующих запросов
func (c *Client) SetAuthKey(authKey string) {
	c.authKey = authKey
}

// UserID возвращает идентификатор пользователя клиента
func (c *Client) UserID() string {
	return c.userID
}

// request описывает один HTTP запрос к серверу
type request struct {
	query       url.Values
	header      http.Header
	method      string
	path        string // уже экранированный путь
	body        []byte
	longPoll    bool
	skipRetries bool
}

// buildURL добавляет общие параметры uuid и auth
func (c *Client) buildURL(r *request) string {
	query := url.Values{}
	for k, v := range r.query {
		query[k] = v
	}
	if c.userID != "" {
		query.Set("uuid", c.userID)
	}
	if c.authKey != "" {
		query.Set("auth", c.authKey)
	}
	return c.origin + r.path + "?" + query.Encode()
}

// doRequest выполняет запрос с повторами и декодирует JSON ответ в result
func (c *Client) doRequest(ctx context.Context, r *request, result interface{}) error {
	body, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// do выполняет запрос с повторами и возвращает тело ответа.
// Повторяются только сетевые ошибки и ответы 5xx; отмена контекста и 4xx нет.
func (c *Client) do(ctx context.Context, r *request) ([]byte, error) {
	maxRetries := c.maxRetries
	if r.skipRetries {
		maxRetries = 0
	}
	backoff := retry.WithMaxRetries(maxRetries,
		retry.WithCappedDuration(retryCap, retry.NewExponential(retryBase)))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		body, err = c.send(ctx, r)
		if err == nil {
			return nil
		}
		if isRetryable(ctx, err) {
			c.logger.Debug("Retrying request", "path", sanitizePath(r.path), "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// send выполняет одну попытку запроса
func (c *Client) send(ctx context.Context, r *request) ([]byte, error) {
	var bodyReader io.Reader
	if r.body != nil {
		bodyReader = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.buildURL(r), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range r.header {
		req.Header[k] = v
	}

	httpClient := c.requestClient
	if r.longPoll {
		httpClient = c.pollClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// При отмене частично прочитанное тело отбрасывается
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newServerError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// isRetryable сообщает, имеет ли смысл повторить запрос
func isRetryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.StatusCode >= 500
	}
	return true
}

// escapeList экранирует элементы пути и склеивает их через запятую.
// Пустой список кодируется как ",", как того требует subscribe.
func escapeList(items []string) string {
	if len(items) == 0 {
		return ","
	}
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = url.PathEscape(item)
	}
	return strings.Join(escaped, ",")
}
