package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/pubsub/internal/client/storage"
	"github.com/iudanet/pubsub/internal/validation"
)

func (c *Cli) runCursor(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: pubsub cursor <show|reset>")
	}
	if c.cursors == nil {
		return fmt.Errorf("cursor storage is not available")
	}

	switch args[0] {
	case "show":
		return c.runCursorShow(ctx)
	case "reset":
		return c.runCursorReset(ctx, args[1:])
	}
	return fmt.Errorf("unknown cursor subcommand: %s. Use: show or reset", args[0])
}

func (c *Cli) runCursorShow(ctx context.Context) error {
	cursors, err := c.cursors.ListCursors(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cursors: %w", err)
	}
	if len(cursors) == 0 {
		c.io.Println("No saved cursors.")
		return nil
	}

	c.io.Println(c.styles.header.Render(fmt.Sprintf("Saved cursors (%d)", len(cursors))))
	for _, saved := range cursors {
		c.io.Printf("  %s  %s  %s\n",
			c.styles.channel.Render(describeCursorKey(saved.Key)),
			saved.Cursor,
			c.styles.muted.Render("saved "+saved.SavedAt.Format(time.RFC3339)),
		)
	}
	return nil
}

// runCursorReset удаляет курсор одной подписки или все курсоры с --all
func (c *Cli) runCursorReset(ctx context.Context, args []string) error {
	fs := c.newFlagSet("cursor reset")
	groups := fs.StringSlice("group", nil, "channel group of the subscription (repeatable)")
	all := fs.Bool("all", false, "forget every saved cursor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *all {
		cursors, err := c.cursors.ListCursors(ctx)
		if err != nil {
			return fmt.Errorf("failed to list cursors: %w", err)
		}
		for _, saved := range cursors {
			if err := c.cursors.DeleteCursor(ctx, saved.Key); err != nil {
				return fmt.Errorf("failed to delete cursor: %w", err)
			}
		}
		c.io.Printf("✓ Removed %d cursors\n", len(cursors))
		return nil
	}

	channels := fs.Args()
	if err := validation.ValidateChannels(channels, *groups); err != nil {
		return err
	}
	if err := c.cfg.RequireSubscribeKey(); err != nil {
		return err
	}
	if err := c.cursors.DeleteCursor(ctx, storage.CursorKey(c.cfg.SubscribeKey, channels, *groups)); err != nil {
		return fmt.Errorf("failed to delete cursor: %w", err)
	}
	c.io.Println("✓ Cursor removed")
	return nil
}

// describeCursorKey показывает каналы и группы из ключа "subkey|channels|groups"
func describeCursorKey(key string) string {
	parts := strings.SplitN(key, "|", 3)
	if len(parts) != 3 {
		return key
	}
	out := parts[1]
	if parts[2] != "" {
		if out != "" {
			out += " "
		}
		out += "groups:" + parts[2]
	}
	return out
}
