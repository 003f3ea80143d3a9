package objects

import (
	"context"
	"log/slog"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/models"
)

// Pager walks a listing forward by the server's next tokens
type Pager[T any] struct {
	list   ListFunc[T]
	logger *slog.Logger
	seen   map[string]struct{} // уже запрошенные токены start
	req    api.ListRequest
	done   bool
}

// NewPager создает обход, начиная со страницы req.Page (nil означает первую)
func NewPager[T any](list ListFunc[T], req api.ListRequest, logger *slog.Logger) *Pager[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pager[T]{
		list:   list,
		logger: logger,
		req:    req,
		seen:   make(map[string]struct{}),
	}
}

// Done сообщает, что страниц больше нет
func (p *Pager[T]) Done() bool {
	return p.done
}

// Next получает следующую страницу
func (p *Pager[T]) Next(ctx context.Context) (*Page[T], error) {
	if p.done {
		return &Page[T]{}, nil
	}
	if p.req.Page != nil && p.req.Page.Start != nil {
		p.seen[*p.req.Page.Start] = struct{}{}
	}

	resp, err := p.list(ctx, p.req)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{
		Items:      resp.Data,
		TotalCount: resp.TotalCount,
		Next:       models.NextHashedPage(resp.Next, resp.TotalCount),
		Prev:       models.PrevHashedPage(resp.Prev, resp.TotalCount),
	}

	switch {
	case len(resp.Data) == 0 || page.Next == nil:
		p.done = true
	case p.isSeen(resp.Next):
		p.logger.Warn("Server returned an already requested page token, stopping", "token", resp.Next)
		p.done = true
	default:
		p.req.Page = page.Next
	}
	return page, nil
}

func (p *Pager[T]) isSeen(token string) bool {
	_, ok := p.seen[token]
	return ok
}

// Collect читает страницы, пока не наберет maxItems элементов или листинг
// не закончится. maxItems <= 0 означает без ограничения.
func (p *Pager[T]) Collect(ctx context.Context, maxItems int) ([]T, error) {
	var all []T
	for !p.Done() {
		page, err := p.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, page.Items...)
		if maxItems > 0 && len(all) >= maxItems {
			return all[:maxItems], nil
		}
	}
	return all, nil
}
