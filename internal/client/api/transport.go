package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// loggingTransport логирует каждый HTTP запрос клиента
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport оборачивает RoundTripper логированием.
// Логирует метод, путь, статус и длительность.
// НЕ логирует sensitive данные (токены, ключи публикации, подписи).
func NewLoggingTransport(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	return &loggingTransport{next: next, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)
	path := sanitizePath(req.URL.EscapedPath())
	query := sanitizeQuery(req.URL.Query())

	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, context.Canceled) {
			level = slog.LevelDebug
		}
		t.logger.Log(req.Context(), level, "HTTP request failed",
			"method", req.Method,
			"path", path,
			"query", query,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	// Long-poll запросы идут непрерывно, поэтому успешные логируются на debug
	logLevel := slog.LevelDebug
	if resp.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if resp.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}

	t.logger.Log(req.Context(), logLevel, "HTTP request",
		"method", req.Method,
		"path", path,
		"query", query,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}

// sensitiveParams query-параметры, значения которых не попадают в лог
var sensitiveParams = []string{"auth", "signature"}

// sanitizeQuery заменяет значения секретных параметров на ***
func sanitizeQuery(values url.Values) string {
	for _, key := range sensitiveParams {
		if values.Has(key) {
			values.Set(key, "***")
		}
	}
	return values.Encode()
}

// sanitizePath удаляет sensitive части из пути.
// Например: /publish/pub-key/sub-key/0/ch/0/msg превращается в
// /publish/***/sub-key/0/ch/0/msg
func sanitizePath(path string) string {
	if !strings.Contains(path, "/publish/") && !strings.Contains(path, "/signal/") {
		return path
	}
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if (part == "publish" || part == "signal") && i+1 < len(parts) && parts[i+1] != "" {
			parts[i+1] = "***"
			break
		}
	}
	return strings.Join(parts, "/")
}
