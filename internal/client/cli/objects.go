package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/client/objects"
	"github.com/iudanet/pubsub/internal/models"
	pkgapi "github.com/iudanet/pubsub/pkg/api"
)

func (c *Cli) runObjects(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing listing. Usage: pubsub objects <uuids|channels|memberships>")
	}
	listing := args[0]

	fs := c.newFlagSet("objects " + listing)
	limit := fs.Int("limit", 0, "items per page (0: server default)")
	filter := fs.String("filter", "", "server-side filter expression")
	sort := fs.String("sort", "", "sort expression, e.g. name:desc")
	start := fs.String("start", "", "page token returned as 'next' by a previous listing")
	end := fs.String("end", "", "page token returned as 'prev' by a previous listing")
	all := fs.Bool("all", false, "follow next tokens until the end")
	custom := fs.Bool("custom", false, "include custom fields")
	userID := fs.String("user", "", "user whose memberships to list (default: configured user id)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if err := c.cfg.RequireSubscribeKey(); err != nil {
		return err
	}
	c.applyStoredToken(ctx)

	req := api.ListRequest{
		Filter:        *filter,
		Sort:          *sort,
		Limit:         *limit,
		IncludeCustom: *custom,
		IncludeCount:  true,
	}
	var startToken, endToken *string
	if *start != "" {
		startToken = start
	}
	if *end != "" {
		endToken = end
	}
	req.Page = models.NewHashedPage(startToken, endToken, nil)

	service := objects.NewService(c.api, c.logger)
	switch listing {
	case "uuids":
		return printListing(ctx, c, service.UUIDs(req), *all, func(u pkgapi.UUIDMetadata) string {
			return describeObject(u.ID, u.Name, u.Custom)
		})
	case "channels":
		return printListing(ctx, c, service.Channels(req), *all, func(ch pkgapi.ChannelMetadata) string {
			return describeObject(ch.ID, ch.Name, ch.Custom)
		})
	case "memberships":
		return printListing(ctx, c, service.Memberships(*userID, req), *all, func(m pkgapi.Membership) string {
			return describeObject(m.Channel.ID, m.Channel.Name, m.Custom)
		})
	}
	return fmt.Errorf("unknown listing: %s. Use: uuids, channels or memberships", listing)
}

// printListing печатает одну страницу или, с --all, все страницы листинга
func printListing[T any](ctx context.Context, c *Cli, pager *objects.Pager[T], all bool, describe func(T) string) error {
	printed := 0
	for {
		page, err := pager.Next(ctx)
		if err != nil {
			return fmt.Errorf("listing failed: %w", err)
		}
		for _, item := range page.Items {
			printed++
			c.io.Printf("%d. %s\n", printed, describe(item))
		}

		if !all || pager.Done() {
			if printed == 0 {
				c.io.Println("No objects found.")
			}
			if page.TotalCount != nil {
				c.io.Println(c.styles.muted.Render(fmt.Sprintf("Total: %d", *page.TotalCount)))
			}
			if page.Next != nil && !all {
				c.io.Println(c.styles.muted.Render("Next page: --start " + *page.Next.Start))
			}
			if page.Prev != nil && !all {
				c.io.Println(c.styles.muted.Render("Previous page: --end " + *page.Prev.End))
			}
			return nil
		}
	}
}

func describeObject(id, name string, custom []byte) string {
	text := id
	if name != "" {
		text += " (" + name + ")"
	}
	if len(custom) > 0 {
		text += " " + string(custom)
	}
	return text
}
