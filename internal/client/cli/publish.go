package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/models"
	"github.com/iudanet/pubsub/internal/validation"
)

func (c *Cli) runTime(ctx context.Context) error {
	tt, err := c.api.Time(ctx)
	if err != nil {
		return fmt.Errorf("failed to get server time: %w", err)
	}
	c.io.Printf("%s  %s\n", tt, timetokenTime(tt).Format(time.RFC3339Nano))
	return nil
}

func (c *Cli) runPublish(ctx context.Context, args []string) error {
	fs := c.newFlagSet("publish")
	meta := fs.String("meta", "", "JSON object used by subscribe filter expressions")
	noStore := fs.Bool("no-store", false, "do not keep the message in history")
	ttl := fs.Int("ttl", 0, "history retention in hours (0: key default)")
	post := fs.Bool("post", false, "send the message in the request body")
	compress := fs.Bool("gzip", false, "gzip the request body (implies --post)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	channel, message, err := c.messageArgs(fs.Args(), "publish")
	if err != nil {
		return err
	}
	if *meta != "" && !json.Valid([]byte(*meta)) {
		return fmt.Errorf("--meta is not valid JSON")
	}

	req := api.PublishRequest{
		Channel:  channel,
		Message:  message,
		TTL:      *ttl,
		UsePost:  *post || *compress,
		Compress: *compress,
	}
	if *meta != "" {
		req.Meta = json.RawMessage(*meta)
	}
	if *noStore {
		store := false
		req.Store = &store
	}

	c.applyStoredToken(ctx)
	tt, err := c.api.Publish(ctx, req)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	c.io.Printf("Published to %s at %s\n", c.styles.channel.Render(channel), tt)
	return nil
}

func (c *Cli) runSignal(ctx context.Context, args []string) error {
	fs := c.newFlagSet("signal")
	if err := fs.Parse(args); err != nil {
		return err
	}
	channel, message, err := c.messageArgs(fs.Args(), "signal")
	if err != nil {
		return err
	}

	c.applyStoredToken(ctx)
	tt, err := c.api.Signal(ctx, channel, message)
	if err != nil {
		return fmt.Errorf("signal failed: %w", err)
	}
	c.io.Printf("Signal sent to %s at %s\n", c.styles.channel.Render(channel), tt)
	return nil
}

// messageArgs разбирает "<channel> <message>". Текст, не являющийся JSON,
// отправляется как JSON-строка. С шифром сообщение шифруется.
func (c *Cli) messageArgs(args []string, command string) (string, json.RawMessage, error) {
	if len(args) != 2 {
		return "", nil, fmt.Errorf("usage: pubsub %s <channel> <message>", command)
	}
	channel := args[0]
	if err := validation.ValidateChannel(channel); err != nil {
		return "", nil, err
	}
	if err := c.cfg.RequirePublishKey(); err != nil {
		return "", nil, err
	}

	message := json.RawMessage(args[1])
	if !json.Valid(message) {
		quoted, err := json.Marshal(args[1])
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode message: %w", err)
		}
		message = quoted
	}

	cipher, err := c.cipherContext()
	if err != nil {
		return "", nil, err
	}
	if cipher != nil {
		message, err = cipher.EncryptPayload(message)
		if err != nil {
			return "", nil, err
		}
	}
	return channel, message, nil
}

// timetokenTime переводит timetoken (десятки наносекунд) во время
func timetokenTime(tt models.Timetoken) time.Time {
	return time.Unix(0, int64(tt)*100).UTC()
}
