package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/client/listener"
	"github.com/iudanet/pubsub/internal/crypto"
	"github.com/iudanet/pubsub/internal/validation"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "PUBSUB_"

// Config holds runtime settings for the pubsub CLI.
type Config struct {
	Origin           string
	PublishKey       string
	SubscribeKey     string
	UserID           string
	AuthToken        string
	CipherKey        string // CipherKey парольная фраза; "-" означает запрос с терминала
	CipherSalt       string // CipherSalt соль в base64; пустая строка означает соль из ключа подписки
	CipherEncoding   string
	FilterExpression string
	DBPath           string
	LogLevel         string

	SubscribeTimeout time.Duration
	RequestTimeout   time.Duration
	MaxRetries       uint64
	Heartbeat        int
	DedupeCacheSize  int

	DedupeOnSubscribe bool
}

// Default возвращает конфигурацию по умолчанию. UserID генерируется случайно.
func Default() *Config {
	return &Config{
		Origin:           api.DefaultOrigin,
		UserID:           uuid.NewString(),
		CipherEncoding:   string(crypto.EncodingBase64),
		DBPath:           "pubsub-client.db",
		LogLevel:         "info",
		SubscribeTimeout: api.DefaultSubscribeTimeout,
		RequestTimeout:   api.DefaultRequestTimeout,
		MaxRetries:       api.DefaultMaxRetries,
		DedupeCacheSize:  listener.DefaultDedupeSize,
	}
}

// Validate проверяет значения, не зависящие от выполняемой команды
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Origin) == "" {
		errs = append(errs, errors.New("origin cannot be empty"))
	}
	if err := validation.ValidateUserID(c.UserID); err != nil {
		errs = append(errs, err)
	}
	if _, err := crypto.ParseEncoding(c.CipherEncoding); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.SubscribeTimeout <= 0 || c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("timeouts must be positive"))
	}
	if c.Heartbeat < 0 {
		errs = append(errs, errors.New("heartbeat cannot be negative"))
	}
	if c.DedupeCacheSize <= 0 {
		errs = append(errs, errors.New("dedupe cache size must be positive"))
	}
	return errors.Join(errs...)
}

// RequireSubscribeKey проверяет наличие ключа подписки
func (c *Config) RequireSubscribeKey() error {
	if c.SubscribeKey == "" {
		return fmt.Errorf("subscribe key is required (--subscribe-key or %sSUBSCRIBE_KEY)", EnvPrefix)
	}
	return nil
}

// RequirePublishKey проверяет наличие ключей публикации и подписки
func (c *Config) RequirePublishKey() error {
	if c.PublishKey == "" {
		return fmt.Errorf("publish key is required (--publish-key or %sPUBLISH_KEY)", EnvPrefix)
	}
	return c.RequireSubscribeKey()
}

// SlogLevel разбирает уровень логирования
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", c.LogLevel)
	}
	return level, nil
}

// APIConfig параметры HTTP клиента
func (c *Config) APIConfig(logger *slog.Logger) api.Config {
	return api.Config{
		Logger:           logger,
		Origin:           c.Origin,
		PublishKey:       c.PublishKey,
		SubscribeKey:     c.SubscribeKey,
		UserID:           c.UserID,
		AuthKey:          c.AuthToken,
		SubscribeTimeout: c.SubscribeTimeout,
		RequestTimeout:   c.RequestTimeout,
		MaxRetries:       c.MaxRetries,
	}
}

// Redacted копия конфигурации без секретов для вывода
func (c *Config) Redacted() Config {
	out := *c
	for _, secret := range []*string{&out.AuthToken, &out.CipherKey} {
		if *secret != "" {
			*secret = "***"
		}
	}
	return out
}
