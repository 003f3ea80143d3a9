package history

import (
	"context"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/models"
)

// Pager walks one channel's history backward, page by page
type Pager struct {
	service *Service
	page    *models.BoundedPage
	oldest  *models.Timetoken // самый старый timetoken, уже отданный вызывающему
	channel string
	opts    Options
	done    bool
}

// Pager создает постраничный обход истории канала начиная с page.
// nil page означает последние MaxHistoryPage сообщений и далее назад.
func (s *Service) Pager(channel string, page *models.BoundedPage, opts Options) *Pager {
	return &Pager{
		service: s,
		channel: channel,
		page:    page,
		opts:    opts,
	}
}

// Done сообщает, что страниц больше нет
func (p *Pager) Done() bool {
	return p.done
}

// Page возвращает дескриптор следующей запрашиваемой страницы
func (p *Pager) Page() *models.BoundedPage {
	return p.page
}

// Next получает следующую страницу. После последней страницы возвращает
// пустой срез и Done() становится true.
func (p *Pager) Next(ctx context.Context) ([]Message, error) {
	if p.done {
		return nil, nil
	}

	result, err := p.service.Fetch(ctx, []string{p.channel}, p.page, p.opts)
	if err != nil {
		return nil, err
	}
	messages := result.Channels[models.StripPresenceSuffix(p.channel)]
	returned := len(messages)

	// Отдаем только то, что строго старше уже отданного
	if p.oldest != nil {
		kept := messages[:0]
		for _, msg := range messages {
			if msg.Timetoken < *p.oldest {
				kept = append(kept, msg)
			}
		}
		messages = kept
	}

	// Сервер не отдает больше MaxHistoryPage за запрос
	limit := min(p.page.LimitOr(api.MaxHistoryPage), api.MaxHistoryPage)
	if len(messages) > limit {
		messages = messages[:limit]
	}

	if len(messages) == 0 {
		p.done = true
		return nil, nil
	}

	oldest := messages[len(messages)-1].Timetoken
	p.oldest = &oldest

	next := p.page.Next(oldest)
	if next == nil || (returned < limit && result.More == nil) {
		p.done = true
	}
	p.page = next
	return messages, nil
}

// Collect читает страницы, пока не наберет maxMessages сообщений или история
// не закончится. maxMessages <= 0 означает без ограничения.
func (p *Pager) Collect(ctx context.Context, maxMessages int) ([]Message, error) {
	var all []Message
	for !p.Done() {
		messages, err := p.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, messages...)
		if maxMessages > 0 && len(all) >= maxMessages {
			return all[:maxMessages], nil
		}
	}
	return all, nil
}
