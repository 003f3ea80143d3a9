package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"text/template"
	"time"

	"github.com/iudanet/pubsub/internal/client/storage"
	"github.com/iudanet/pubsub/internal/token"
)

var (
	tokenTmpl       = template.Must(template.New("token").Parse(tokenTemplate))
	storedTokenTmpl = template.Must(template.New("stored").Parse(storedTokenTemplate))
)

func (c *Cli) runToken(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: pubsub token <parse|set|show|clear>")
	}

	switch args[0] {
	case "parse":
		if len(args) != 2 {
			return fmt.Errorf("usage: pubsub token parse <token>")
		}
		return c.runTokenParse(args[1])
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("usage: pubsub token set <token>")
		}
		return c.runTokenSet(ctx, args[1])
	case "show":
		return c.runTokenShow(ctx)
	case "clear":
		return c.runTokenClear(ctx)
	}
	return fmt.Errorf("unknown token subcommand: %s. Use: parse, set, show or clear", args[0])
}

func (c *Cli) runTokenParse(raw string) error {
	tok, err := token.Parse(raw)
	if err != nil {
		return err
	}
	return tokenTmpl.Execute(c.io, newTokenView(tok, c.now()))
}

// runTokenSet сохраняет токен. Токен, который не разбирается как grant,
// сохраняется как есть: это может быть старый auth key без срока действия.
func (c *Cli) runTokenSet(ctx context.Context, raw string) error {
	if c.tokens == nil {
		return fmt.Errorf("token storage is not available")
	}

	data := &storage.TokenData{Token: raw, SavedAt: c.now()}
	if tok, err := token.Parse(raw); err == nil {
		data.ExpiresAt = tok.ExpiresAt()
		data.UserID = tok.AuthorizedUserID
		if tok.Expired(c.now()) {
			c.io.Println(c.styles.warn.Render("Warning: token is already expired"))
		}
	} else {
		c.logger.Debug("Token is not a grant token, storing as is", "error", err)
	}

	if err := c.tokens.SaveToken(ctx, data); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	c.io.Println("✓ Token saved")
	return nil
}

func (c *Cli) runTokenShow(ctx context.Context) error {
	if c.tokens == nil {
		return fmt.Errorf("token storage is not available")
	}
	data, err := c.tokens.GetToken(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			c.io.Println("No token stored.")
			c.io.Println("Use 'pubsub token set <token>' to store one.")
			return nil
		}
		return fmt.Errorf("failed to get token: %w", err)
	}

	return storedTokenTmpl.Execute(c.io, struct {
		*storage.TokenData
		Expired bool
	}{data, data.Expired(c.now())})
}

func (c *Cli) runTokenClear(ctx context.Context) error {
	if c.tokens == nil {
		return fmt.Errorf("token storage is not available")
	}
	if err := c.tokens.DeleteToken(ctx); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	c.io.Println("✓ Token removed")
	return nil
}

// warnIfTokenExpired предупреждает об истекшем токене из конфигурации
func (c *Cli) warnIfTokenExpired() {
	if c.cfg.AuthToken == "" {
		return
	}
	tok, err := token.Parse(c.cfg.AuthToken)
	if err != nil {
		return
	}
	if tok.Expired(c.now()) {
		c.io.Println(c.styles.warn.Render(fmt.Sprintf("Warning: access token expired at %s", tok.ExpiresAt().Format(time.RFC3339))))
	}
}

// grantLine одно право для вывода
type grantLine struct {
	Kind        string
	Name        string
	Permissions string
}

type tokenView struct {
	*token.Token
	Sections map[string][]grantLine
	Meta     string
	Expired  bool
}

func newTokenView(tok *token.Token, now time.Time) tokenView {
	view := tokenView{Token: tok, Expired: tok.Expired(now), Sections: map[string][]grantLine{}}

	add := func(section string, grants token.Grants) {
		var lines []grantLine
		for _, kind := range []struct {
			name  string
			perms map[string]token.Permissions
		}{
			{"channel", grants.Channels},
			{"group", grants.Groups},
			{"uuid", grants.UUIDs},
		} {
			names := make([]string, 0, len(kind.perms))
			for name := range kind.perms {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				lines = append(lines, grantLine{Kind: kind.name, Name: name, Permissions: kind.perms[name].String()})
			}
		}
		if len(lines) > 0 {
			view.Sections[section] = lines
		}
	}
	add("Resources", tok.Resources)
	add("Patterns", tok.Patterns)

	if len(tok.Meta) > 0 {
		if meta, err := json.Marshal(tok.Meta); err == nil {
			view.Meta = string(meta)
		}
	}
	return view
}
