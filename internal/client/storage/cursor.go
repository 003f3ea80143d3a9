package storage

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/iudanet/pubsub/internal/models"
)

//go:generate moq -out cursor_mock.go . CursorStorage

// CursorStorage stores the last dispatched subscribe cursor so a restarted
// client resumes where it stopped. Cursors are keyed by subscription.
type CursorStorage interface {
	// SaveCursor saves the cursor of the last fully dispatched batch
	SaveCursor(ctx context.Context, key string, cursor models.Cursor) error

	// GetCursor retrieves the saved cursor
	// Returns ErrCursorNotFound if nothing was saved for the key
	GetCursor(ctx context.Context, key string) (*SavedCursor, error)

	// DeleteCursor removes the saved cursor
	DeleteCursor(ctx context.Context, key string) error

	// ListCursors returns every saved cursor
	ListCursors(ctx context.Context) ([]SavedCursor, error)
}

// SavedCursor курсор вместе с подпиской и временем сохранения
type SavedCursor struct {
	SavedAt time.Time     `json:"saved_at"`
	Key     string        `json:"key"`
	Cursor  models.Cursor `json:"cursor"`
}

// CursorKey строит ключ подписки из набора каналов и групп.
// Порядок и повторы не влияют на ключ.
func CursorKey(subscribeKey string, channels, groups []string) string {
	normalize := func(names []string) string {
		out := make([]string, 0, len(names))
		for _, name := range names {
			out = append(out, models.StripPresenceSuffix(name))
		}
		slices.Sort(out)
		return strings.Join(slices.Compact(out), ",")
	}
	return subscribeKey + "|" + normalize(channels) + "|" + normalize(groups)
}
