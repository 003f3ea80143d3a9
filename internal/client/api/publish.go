package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/klauspost/compress/gzip"

	"github.com/iudanet/pubsub/internal/models"
	"github.com/iudanet/pubsub/pkg/api"
)

// PublishRequest параметры публикации
type PublishRequest struct {
	Store    *bool // Store сохранять ли сообщение в истории; nil - настройка ключа
	Channel  string
	Message  json.RawMessage
	Meta     json.RawMessage
	TTL      int
	UsePost  bool
	Compress bool // Compress сжимать тело POST запроса gzip
}

// Publish публикует сообщение и возвращает его timetoken
func (c *Client) Publish(ctx context.Context, req PublishRequest) (models.Timetoken, error) {
	if req.Channel == "" {
		return 0, fmt.Errorf("channel cannot be empty")
	}
	if !json.Valid(req.Message) {
		return 0, fmt.Errorf("message is not valid JSON")
	}

	query := url.Values{}
	if len(req.Meta) > 0 {
		query.Set("meta", string(req.Meta))
	}
	if req.Store != nil {
		if *req.Store {
			query.Set("store", "1")
		} else {
			query.Set("store", "0")
		}
	}
	if req.TTL > 0 {
		query.Set("ttl", strconv.Itoa(req.TTL))
	}

	base := fmt.Sprintf("/publish/%s/%s/0/%s/0",
		url.PathEscape(c.publishKey), url.PathEscape(c.subscribeKey), url.PathEscape(req.Channel))

	r := &request{method: http.MethodGet, query: query}
	if req.UsePost {
		r.method = http.MethodPost
		r.path = base
		r.header = http.Header{"Content-Type": []string{"application/json"}}
		r.body = req.Message
		if req.Compress {
			compressed, err := gzipBody(req.Message)
			if err != nil {
				return 0, err
			}
			r.body = compressed
			r.header.Set("Content-Encoding", "gzip")
		}
		// POST не идемпотентен: повтор может опубликовать сообщение дважды
		r.skipRetries = true
	} else {
		r.path = base + "/" + url.PathEscape(string(req.Message))
	}

	var resp api.PublishResponse
	if err := c.doRequest(ctx, r, &resp); err != nil {
		return 0, fmt.Errorf("publish request failed: %w", err)
	}
	return models.ParseTimetoken(resp.Timetoken.String())
}

// Signal отправляет сигнал (короткое сообщение без сохранения в истории)
func (c *Client) Signal(ctx context.Context, channel string, message json.RawMessage) (models.Timetoken, error) {
	if channel == "" {
		return 0, fmt.Errorf("channel cannot be empty")
	}
	if !json.Valid(message) {
		return 0, fmt.Errorf("signal is not valid JSON")
	}

	var resp api.PublishResponse
	err := c.doRequest(ctx, &request{
		method: http.MethodGet,
		path: fmt.Sprintf("/signal/%s/%s/0/%s/0/%s",
			url.PathEscape(c.publishKey), url.PathEscape(c.subscribeKey),
			url.PathEscape(channel), url.PathEscape(string(message))),
	}, &resp)
	if err != nil {
		return 0, fmt.Errorf("signal request failed: %w", err)
	}
	return models.ParseTimetoken(resp.Timetoken.String())
}

func gzipBody(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress body: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress body: %w", err)
	}
	return buf.Bytes(), nil
}
