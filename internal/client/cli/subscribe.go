package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/pubsub/internal/client/listener"
	"github.com/iudanet/pubsub/internal/client/storage"
	"github.com/iudanet/pubsub/internal/client/subscribe"
	"github.com/iudanet/pubsub/internal/models"
	"github.com/iudanet/pubsub/internal/validation"
)

func (c *Cli) runSubscribe(ctx context.Context, args []string) error {
	fs := c.newFlagSet("subscribe")
	groups := fs.StringSlice("group", nil, "channel group to subscribe to (repeatable)")
	presence := fs.Bool("presence", false, "also receive presence events")
	from := fs.Uint64("from", 0, "start from this timetoken instead of now")
	region := fs.Uint32("region", 0, "region of the --from timetoken")
	noResume := fs.Bool("no-resume", false, "ignore the saved cursor")
	noPersist := fs.Bool("no-persist", false, "do not save the cursor")
	maxEvents := fs.Int("max-events", 0, "exit after this many events (0: run until Ctrl-C)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	channels := fs.Args()
	if err := validation.ValidateChannels(channels, *groups); err != nil {
		return err
	}
	if err := c.cfg.RequireSubscribeKey(); err != nil {
		return err
	}

	decoder, err := c.decoder()
	if err != nil {
		return err
	}

	var opts []listener.Option
	if c.cfg.DedupeOnSubscribe {
		opts = append(opts, listener.WithDedupe(c.cfg.DedupeCacheSize))
	}
	dispatcher := listener.NewDispatcher(c.logger, opts...)

	c.warnIfTokenExpired()
	c.applyStoredToken(ctx)

	cfg := subscribe.Config{
		Transport:        c.api,
		Decoder:          decoder,
		Dispatcher:       dispatcher,
		Logger:           c.logger,
		FilterExpression: c.cfg.FilterExpression,
		Heartbeat:        c.cfg.Heartbeat,
	}
	if !*noPersist && c.cursors != nil {
		cfg.Cursors = c.cursors
		cfg.CursorKey = storage.CursorKey(c.cfg.SubscribeKey, channels, *groups)
	}
	sub := subscribe.New(cfg)
	sub.Subscribe(channels, *groups, *presence)

	switch {
	case *from != 0:
		sub.SetCursor(models.Cursor{Timetoken: models.Timetoken(*from), Region: *region})
	case !*noResume && cfg.Cursors != nil:
		restored, err := sub.Restore(ctx)
		if err != nil {
			return err
		}
		if restored {
			c.io.Println(c.styles.muted.Render("Resuming from " + sub.Cursor().String()))
		}
	}

	printer := &eventPrinter{cli: c, max: *maxEvents, stop: sub.Stop}
	dispatcher.Add(printer.listener())

	c.io.Println(c.styles.muted.Render(fmt.Sprintf("Subscribing to %s (Ctrl-C to stop)", describeSubscription(channels, *groups))))
	if err := sub.Run(ctx); err != nil {
		return err
	}
	return nil
}

func describeSubscription(channels, groups []string) string {
	parts := make([]string, 0, 2)
	if len(channels) > 0 {
		parts = append(parts, "channels "+strings.Join(channels, ", "))
	}
	if len(groups) > 0 {
		parts = append(parts, "groups "+strings.Join(groups, ", "))
	}
	return strings.Join(parts, " and ")
}

// eventPrinter печатает события в одну строку; после max событий останавливает цикл
type eventPrinter struct {
	cli   *Cli
	stop  func()
	count int
	max   int
}

func (p *eventPrinter) listener() listener.Listener {
	return listener.Listener{
		OnMessage: func(e *models.MessageEvent) {
			p.print(p.cli.styles.message.Render("message"), &e.Envelope, string(e.Payload), e.DecryptError)
		},
		OnSignal: func(e *models.SignalEvent) {
			p.print(p.cli.styles.signal.Render("signal"), &e.Envelope, string(e.Payload), e.DecryptError)
		},
		OnPresence: func(e *models.PresenceEvent) {
			p.print(p.cli.styles.presence.Render("presence"), &e.Envelope, describePresence(e), nil)
		},
		OnObject: func(e *models.ObjectEvent) {
			text := fmt.Sprintf("%s %s %s", e.ObjectType, e.Action, e.Data)
			p.print(p.cli.styles.object.Render("object"), &e.Envelope, text, nil)
		},
		OnMessageAction: func(e *models.MessageActionEvent) {
			text := fmt.Sprintf("%s %s=%s on %s by %s", e.Kind, e.Action.Type, e.Action.Value, e.Action.MessageTimetoken, e.Action.UserID)
			p.print(p.cli.styles.action.Render("action"), &e.Envelope, text, nil)
		},
		OnStatus: p.printStatus,
	}
}

func (p *eventPrinter) print(kind string, env *models.Envelope, text string, decryptErr error) {
	if p.max > 0 && p.count >= p.max {
		return
	}
	p.count++

	line := fmt.Sprintf("%s %s %s %s",
		p.cli.styles.muted.Render(env.PublishCursor.Timetoken.String()),
		kind,
		p.cli.styles.channel.Render(env.Channel),
		text,
	)
	if env.Issuer != "" {
		line += p.cli.styles.muted.Render(" from " + env.Issuer)
	}
	if decryptErr != nil {
		line += " " + p.cli.styles.warn.Render("(not decrypted: "+decryptErr.Error()+")")
	}
	p.cli.io.Println(line)

	if p.max > 0 && p.count >= p.max {
		p.stop()
	}
}

func (p *eventPrinter) printStatus(s *models.StatusEvent) {
	switch s.Category {
	case models.StatusConnected:
		p.cli.io.Println(p.cli.styles.status.Render("connected"))
	case models.StatusDisconnected:
		p.cli.io.Println(p.cli.styles.status.Render("disconnected"))
	default:
		text := string(s.Category)
		if s.Err != nil {
			text += ": " + s.Err.Error()
		}
		p.cli.io.Println(p.cli.styles.errText.Render(text))
	}
}

func describePresence(e *models.PresenceEvent) string {
	var parts []string
	add := func(label string, ids []string) {
		if len(ids) > 0 {
			parts = append(parts, label+" "+strings.Join(ids, ","))
		}
	}
	add("joined", e.Joined())
	add("left", e.Left())
	add("timed out", e.TimedOut())
	if sc := e.Delta.StateChange; sc != nil {
		parts = append(parts, fmt.Sprintf("state %s=%s", sc.UserID, sc.State))
	}
	parts = append(parts, fmt.Sprintf("occupancy %d", e.Occupancy))
	return string(e.Action) + ": " + strings.Join(parts, "; ")
}
