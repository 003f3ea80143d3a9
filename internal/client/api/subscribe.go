package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/iudanet/pubsub/internal/models"
	"github.com/iudanet/pubsub/pkg/api"
)

// SubscribeRequest параметры одного long-poll запроса
type SubscribeRequest struct {
	Channels         []string
	Groups           []string
	FilterExpression string
	Cursor           models.Cursor
	Heartbeat        int
}

// Subscribe выполняет один long-poll запрос и возвращает сырое тело ответа.
// Разбор тела выполняет decode, чтобы сломанный ответ можно было частично спасти.
func (c *Client) Subscribe(ctx context.Context, req SubscribeRequest) ([]byte, error) {
	if len(req.Channels) == 0 && len(req.Groups) == 0 {
		return nil, fmt.Errorf("subscribe requires at least one channel or channel group")
	}

	query := req.Cursor.QueryValues()
	if len(req.Groups) > 0 {
		query.Set("channel-group", strings.Join(req.Groups, ","))
	}
	if req.FilterExpression != "" {
		query.Set("filter-expr", req.FilterExpression)
	}
	if req.Heartbeat > 0 {
		query.Set("heartbeat", strconv.Itoa(req.Heartbeat))
	}

	body, err := c.do(ctx, &request{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/v2/subscribe/%s/%s/0", url.PathEscape(c.subscribeKey), escapeList(req.Channels)),
		query:    query,
		longPoll: true,
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe request failed: %w", err)
	}
	return body, nil
}

// Leave сообщает серверу, что пользователь покинул каналы
func (c *Client) Leave(ctx context.Context, channels, groups []string) error {
	if len(channels) == 0 && len(groups) == 0 {
		return nil
	}

	query := url.Values{}
	if len(groups) > 0 {
		query.Set("channel-group", strings.Join(groups, ","))
	}

	var resp api.LeaveResponse
	err := c.doRequest(ctx, &request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/v2/presence/sub-key/%s/channel/%s/leave", url.PathEscape(c.subscribeKey), escapeList(channels)),
		query:  query,
	}, &resp)
	if err != nil {
		return fmt.Errorf("leave request failed: %w", err)
	}
	return nil
}

// Time получает текущий timetoken сервера
func (c *Client) Time(ctx context.Context) (models.Timetoken, error) {
	var resp api.TimeResponse
	if err := c.doRequest(ctx, &request{method: http.MethodGet, path: "/time/0"}, &resp); err != nil {
		return 0, fmt.Errorf("time request failed: %w", err)
	}
	if len(resp) == 0 {
		return 0, fmt.Errorf("time response is empty")
	}
	return models.ParseTimetoken(resp[0].String())
}
