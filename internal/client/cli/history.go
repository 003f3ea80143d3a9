package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/client/history"
	"github.com/iudanet/pubsub/internal/models"
	"github.com/iudanet/pubsub/internal/validation"
)

func (c *Cli) runHistory(ctx context.Context, args []string) error {
	fs := c.newFlagSet("history")
	start := fs.Uint64("start", 0, "exclusive bound: only messages older than this timetoken")
	end := fs.Uint64("end", 0, "inclusive bound: only messages at or after this timetoken")
	pageSize := fs.Int("page-size", 25, fmt.Sprintf("messages per request (max %d)", api.MaxHistoryPage))
	count := fs.Int("count", 25, "total messages to show (0: all)")
	withMeta := fs.Bool("meta", false, "show publish metadata")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pubsub history <channel> [flags]")
	}
	channel := fs.Arg(0)
	if err := validation.ValidateChannel(channel); err != nil {
		return err
	}
	if err := c.cfg.RequireSubscribeKey(); err != nil {
		return err
	}

	decoder, err := c.decoder()
	if err != nil {
		return err
	}
	c.applyStoredToken(ctx)

	var startTT, endTT *models.Timetoken
	if fs.Changed("start") {
		startTT = models.Timetoken(*start).Ptr()
	}
	if fs.Changed("end") {
		endTT = models.Timetoken(*end).Ptr()
	}
	size := min(*pageSize, api.MaxHistoryPage)
	page := models.NewBoundedPage(startTT, endTT, &size)

	service := history.NewService(c.api, decoder, c.logger)
	pager := service.Pager(channel, page, history.Options{
		IncludeMeta:        *withMeta,
		IncludeUUID:        true,
		IncludeMessageType: true,
	})
	messages, err := pager.Collect(ctx, *count)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	if len(messages) == 0 {
		c.io.Println("No messages found.")
		return nil
	}

	c.io.Println(c.styles.header.Render(fmt.Sprintf("=== History of %s (%d) ===", channel, len(messages))))
	for _, msg := range messages {
		line := fmt.Sprintf("%s %s", c.styles.muted.Render(msg.Timetoken.String()), msg.Payload)
		if msg.UserID != "" {
			line += c.styles.muted.Render(" from " + msg.UserID)
		}
		if *withMeta && len(msg.Meta) > 0 {
			line += c.styles.muted.Render(" meta " + string(msg.Meta))
		}
		if msg.DecryptError != nil {
			line += " " + c.styles.warn.Render("(not decrypted: "+msg.DecryptError.Error()+")")
		}
		c.io.Println(line)
	}
	if !pager.Done() {
		if next := pager.Page(); next != nil && next.Start != nil {
			c.io.Println(c.styles.muted.Render(fmt.Sprintf("More messages available: --start %s", *next.Start)))
		}
	}
	return nil
}
