// Package cli implements the pubsub command-line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/client/decode"
	"github.com/iudanet/pubsub/internal/client/iocli"
	"github.com/iudanet/pubsub/internal/client/storage"
	"github.com/iudanet/pubsub/internal/config"
	"github.com/iudanet/pubsub/internal/crypto"
)

// ErrUnknownCommand команда не распознана
var ErrUnknownCommand = errors.New("unknown command")

// Deps зависимости CLI
type Deps struct {
	IO      iocli.IO
	Config  *config.Config
	API     api.ClientAPI
	Cursors storage.CursorStorage
	Tokens  storage.TokenStorage
	Logger  *slog.Logger
	// Now источник времени; nil означает time.Now
	Now func() time.Time
}

type Cli struct {
	io      iocli.IO
	cfg     *config.Config
	api     api.ClientAPI
	cursors storage.CursorStorage
	tokens  storage.TokenStorage
	logger  *slog.Logger
	now     func() time.Time
	cipher  *crypto.CipherContext
	styles  styles
}

func New(deps Deps) *Cli {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Cli{
		io:      deps.IO,
		cfg:     deps.Config,
		api:     deps.API,
		cursors: deps.Cursors,
		tokens:  deps.Tokens,
		logger:  deps.Logger,
		now:     deps.Now,
		styles:  newStyles(),
	}
}

// Run выполняет команду
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "time":
		return c.runTime(ctx)
	case "publish":
		return c.runPublish(ctx, args)
	case "signal":
		return c.runSignal(ctx, args)
	case "subscribe":
		return c.runSubscribe(ctx, args)
	case "history":
		return c.runHistory(ctx, args)
	case "objects":
		return c.runObjects(ctx, args)
	case "token":
		return c.runToken(ctx, args)
	case "cursor":
		return c.runCursor(ctx, args)
	case "config":
		return c.runConfig()
	case "help":
		c.PrintUsage()
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
}

// newFlagSet создает набор флагов команды; справка пишется в IO
func (c *Cli) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.io)
	fs.SortFlags = false
	return fs
}

// decoder создает декодер с шифром из конфигурации
func (c *Cli) decoder() (*decode.Decoder, error) {
	cipher, err := c.cipherContext()
	if err != nil {
		return nil, err
	}
	return decode.NewDecoder(cipher, c.logger), nil
}

// cipherContext строит шифр один раз. Парольная фраза "-" запрашивается с терминала.
func (c *Cli) cipherContext() (*crypto.CipherContext, error) {
	if c.cipher != nil || c.cfg.CipherKey == "" {
		return c.cipher, nil
	}

	passphrase := c.cfg.CipherKey
	if passphrase == "-" {
		var err error
		passphrase, err = c.io.ReadPassword("Cipher passphrase: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read cipher passphrase: %w", err)
		}
	}

	encoding, err := crypto.ParseEncoding(c.cfg.CipherEncoding)
	if err != nil {
		return nil, err
	}
	cipher, err := crypto.NewCipherContextFromPassphrase(passphrase, c.cfg.CipherSalt, c.cfg.SubscribeKey, encoding)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Cipher configured", "encoding", encoding, "key_fingerprint", cipher.Fingerprint())
	c.cipher = cipher
	return cipher, nil
}

// applyStoredToken передает сохраненный токен клиенту, если он не задан в конфигурации.
// Истекший токен не блокирует запрос: решение принимает сервер.
func (c *Cli) applyStoredToken(ctx context.Context) {
	if c.cfg.AuthToken != "" || c.tokens == nil {
		return
	}
	data, err := c.tokens.GetToken(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrTokenNotFound) {
			c.logger.Warn("Failed to load stored token", "error", err)
		}
		return
	}
	if data.Expired(c.now()) {
		c.io.Println(c.styles.warn.Render(fmt.Sprintf("Warning: stored access token expired at %s", data.ExpiresAt.Format(time.RFC3339))))
	}
	c.api.SetAuthKey(data.Token)
}

// PrintUsage выводит справку по командам
func (c *Cli) PrintUsage() {
	c.io.Println(usage)
}

const usage = `pubsub - publish/subscribe client

Usage:
  pubsub [GLOBAL FLAGS] COMMAND [ARGS] [FLAGS]

Commands:
  time                                  Show the server time
  publish <channel> <message>           Publish a message (JSON or plain text)
  signal <channel> <message>            Send a signal
  subscribe <channel>...                Subscribe and print events until Ctrl-C
  history <channel>                     Show stored messages, newest first
  objects uuids|channels|memberships    List metadata objects
  token parse <token>                   Show what a grant token allows
  token set <token>                     Store the access token
  token show                            Show the stored access token
  token clear                           Remove the stored access token
  cursor show                           List saved subscribe cursors
  cursor reset [<channel>...]           Forget saved cursors
  config                                Show the effective configuration
  version                               Show version information

Run 'pubsub COMMAND --help' for command flags and 'pubsub --help' for global flags.`
