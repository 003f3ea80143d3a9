// Package token parses access grant tokens.
//
// A grant token is a base64url string wrapping a CBOR map issued by the
// server's access manager. The client only reads it (to show what it grants
// and when it expires) and passes it as the auth parameter unchanged; the
// signature is never verified locally.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// ErrInvalidToken строка не является grant-токеном
var ErrInvalidToken = errors.New("invalid access token")

var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{
		// meta может содержать вложенные карты; для any нужны строковые ключи
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("token: CBOR decoder initialization failed: " + err.Error())
	}
}

// wirePermissions битовые маски прав по именам ресурсов
type wirePermissions struct {
	Channels map[string]uint64 `cbor:"chan,omitempty"`
	Groups   map[string]uint64 `cbor:"grp,omitempty"`
	UUIDs    map[string]uint64 `cbor:"uuid,omitempty"`
}

type wireToken struct {
	Meta           map[string]any  `cbor:"meta,omitempty"`
	Resources      wirePermissions `cbor:"res"`
	Patterns       wirePermissions `cbor:"pat"`
	AuthorizedUUID string          `cbor:"uuid,omitempty"`
	Signature      []byte          `cbor:"sig"`
	Version        int             `cbor:"v"`
	Timestamp      int64           `cbor:"t"`
	TTL            int64           `cbor:"ttl"`
}

// Grants права по каналам, группам каналов и пользователям
type Grants struct {
	Channels map[string]Permissions
	Groups   map[string]Permissions
	UUIDs    map[string]Permissions
}

// IsEmpty сообщает, что ни одного права не выдано
func (g Grants) IsEmpty() bool {
	return len(g.Channels) == 0 && len(g.Groups) == 0 && len(g.UUIDs) == 0
}

// Token разобранный grant-токен
type Token struct {
	IssuedAt time.Time
	Meta     map[string]any
	// Resources права на конкретные имена
	Resources Grants
	// Patterns права на имена, совпадающие с регулярным выражением
	Patterns         Grants
	AuthorizedUserID string
	Signature        []byte
	TTL              time.Duration
	Version          int
}

// ExpiresAt момент окончания действия токена
func (t *Token) ExpiresAt() time.Time {
	return t.IssuedAt.Add(t.TTL)
}

// Expired сообщает, истек ли токен к моменту now
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt())
}

// Parse decodes a grant token. Tokens copied from URLs may be percent-encoded
// and may have lost their base64 padding; both are accepted.
func Parse(raw string) (*Token, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidToken)
	}
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		raw = unescaped
	}

	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(raw, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: not base64url: %w", ErrInvalidToken, err)
	}

	var wire wireToken
	if err := decMode.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: not a CBOR grant: %w", ErrInvalidToken, err)
	}
	if wire.Version == 0 || wire.Timestamp <= 0 || wire.TTL <= 0 {
		return nil, fmt.Errorf("%w: missing version, timestamp or ttl", ErrInvalidToken)
	}

	return &Token{
		Version:          wire.Version,
		IssuedAt:         time.Unix(wire.Timestamp, 0).UTC(),
		TTL:              time.Duration(wire.TTL) * time.Minute,
		AuthorizedUserID: wire.AuthorizedUUID,
		Resources:        wire.Resources.grants(),
		Patterns:         wire.Patterns.grants(),
		Meta:             wire.Meta,
		Signature:        wire.Signature,
	}, nil
}

func (w wirePermissions) grants() Grants {
	return Grants{
		Channels: decodeAll(w.Channels),
		Groups:   decodeAll(w.Groups),
		UUIDs:    decodeAll(w.UUIDs),
	}
}

func decodeAll(masks map[string]uint64) map[string]Permissions {
	if len(masks) == 0 {
		return nil
	}
	out := make(map[string]Permissions, len(masks))
	for name, mask := range masks {
		out[name] = ParsePermissions(mask)
	}
	return out
}
