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

// ListRequest параметры листинга objects API
type ListRequest struct {
	Page          *models.HashedPage
	Filter        string
	Sort          string
	Limit         int
	IncludeCustom bool
	IncludeCount  bool
}

// query собирает параметры листинга. Токены страницы передаются без изменений.
func (r ListRequest) query() url.Values {
	query := url.Values{}
	if r.Page != nil {
		if r.Page.Start != nil {
			query.Set("start", *r.Page.Start)
		}
		if r.Page.End != nil {
			query.Set("end", *r.Page.End)
		}
	}
	if r.Limit > 0 {
		query.Set("limit", strconv.Itoa(r.Limit))
	}
	if r.IncludeCount {
		query.Set("count", "true")
	}
	if r.IncludeCustom {
		query.Set("include", "custom")
	}
	if r.Filter != "" {
		query.Set("filter", r.Filter)
	}
	if r.Sort != "" {
		query.Set("sort", r.Sort)
	}
	return query
}

// ListUUIDMetadata получает страницу метаданных пользователей
func (c *Client) ListUUIDMetadata(ctx context.Context, req ListRequest) (*api.ListResponse[api.UUIDMetadata], error) {
	var resp api.ListResponse[api.UUIDMetadata]
	err := c.doRequest(ctx, &request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/v2/objects/%s/uuids", url.PathEscape(c.subscribeKey)),
		query:  req.query(),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list uuid metadata request failed: %w", err)
	}
	return &resp, nil
}

// ListChannelMetadata получает страницу метаданных каналов
func (c *Client) ListChannelMetadata(ctx context.Context, req ListRequest) (*api.ListResponse[api.ChannelMetadata], error) {
	var resp api.ListResponse[api.ChannelMetadata]
	err := c.doRequest(ctx, &request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/v2/objects/%s/channels", url.PathEscape(c.subscribeKey)),
		query:  req.query(),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list channel metadata request failed: %w", err)
	}
	return &resp, nil
}

// ListMemberships получает страницу членств пользователя; пустой userID означает текущего
func (c *Client) ListMemberships(ctx context.Context, userID string, req ListRequest) (*api.ListResponse[api.Membership], error) {
	if userID == "" {
		userID = c.userID
	}
	query := req.query()
	if req.IncludeCustom {
		query.Set("include", "custom,channel,channel.custom")
	} else {
		query.Set("include", "channel")
	}

	var resp api.ListResponse[api.Membership]
	err := c.doRequest(ctx, &request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/v2/objects/%s/uuids/%s/channels", url.PathEscape(c.subscribeKey), url.PathEscape(userID)),
		query:  query,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("list memberships request failed: %w", err)
	}
	return &resp, nil
}
