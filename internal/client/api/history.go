package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iudanet/pubsub/internal/models"
	"github.com/iudanet/pubsub/pkg/api"
)

// MaxHistoryPage максимальный размер страницы истории для одного канала
const MaxHistoryPage = 100

// HistoryRequest параметры запроса истории
type HistoryRequest struct {
	Page               *models.BoundedPage
	Channels           []string
	IncludeMeta        bool
	IncludeUUID        bool
	IncludeMessageType bool
}

// FetchHistory получает одну страницу истории сообщений.
// Границы страницы передаются серверу как есть: start исключающая, end включающая.
func (c *Client) FetchHistory(ctx context.Context, req HistoryRequest) (*api.HistoryResponse, error) {
	if len(req.Channels) == 0 {
		return nil, fmt.Errorf("history requires at least one channel")
	}

	query := url.Values{}
	if req.Page != nil {
		if req.Page.Start != nil {
			query.Set("start", req.Page.Start.String())
		}
		if req.Page.End != nil {
			query.Set("end", req.Page.End.String())
		}
	}
	query.Set("max", strconv.Itoa(min(req.Page.LimitOr(MaxHistoryPage), MaxHistoryPage)))
	if req.IncludeMeta {
		query.Set("include_meta", "true")
	}
	if req.IncludeUUID {
		query.Set("include_uuid", "true")
	}
	if req.IncludeMessageType {
		query.Set("include_message_type", "true")
	}

	var resp api.HistoryResponse
	err := c.doRequest(ctx, &request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/v3/history/sub-key/%s/channel/%s", url.PathEscape(c.subscribeKey), escapeList(req.Channels)),
		query:  query,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("history request failed: %w", err)
	}
	if resp.Error {
		return nil, fmt.Errorf("history request failed: %s", resp.ErrorMessage)
	}
	return &resp, nil
}
