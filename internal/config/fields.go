package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// field описывает один параметр: ключ файла, флаг и переменную окружения
type field struct {
	set    func(c *Config, value string) error
	get    func(c *Config) string
	key    string
	usage  string
	isBool bool
}

// flagName имя флага в kebab-case
func (f field) flagName() string {
	return strings.ReplaceAll(f.key, "_", "-")
}

// envName имя переменной окружения
func (f field) envName() string {
	return EnvPrefix + strings.ToUpper(f.key)
}

func stringField(key, usage string, ptr func(c *Config) *string) field {
	return field{
		key:   key,
		usage: usage,
		set: func(c *Config, value string) error {
			*ptr(c) = value
			return nil
		},
		get: func(c *Config) string { return *ptr(c) },
	}
}

func intField(key, usage string, ptr func(c *Config) *int) field {
	return field{
		key:   key,
		usage: usage,
		set: func(c *Config, value string) error {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%s: invalid integer %q", key, value)
			}
			*ptr(c) = n
			return nil
		},
		get: func(c *Config) string { return strconv.Itoa(*ptr(c)) },
	}
}

func uintField(key, usage string, ptr func(c *Config) *uint64) field {
	return field{
		key:   key,
		usage: usage,
		set: func(c *Config, value string) error {
			n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
			if err != nil {
				return fmt.Errorf("%s: invalid unsigned integer %q", key, value)
			}
			*ptr(c) = n
			return nil
		},
		get: func(c *Config) string { return strconv.FormatUint(*ptr(c), 10) },
	}
}

func boolField(key, usage string, ptr func(c *Config) *bool) field {
	return field{
		key:    key,
		usage:  usage,
		isBool: true,
		set: func(c *Config, value string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%s: invalid boolean %q", key, value)
			}
			*ptr(c) = b
			return nil
		},
		get: func(c *Config) string { return strconv.FormatBool(*ptr(c)) },
	}
}

func durationField(key, usage string, ptr func(c *Config) *time.Duration) field {
	return field{
		key:   key,
		usage: usage,
		set: func(c *Config, value string) error {
			d, err := parseDuration(value)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*ptr(c) = d
			return nil
		},
		get: func(c *Config) string { return ptr(c).String() },
	}
}

// parseDuration принимает строку длительности Go или целое число секунд
func parseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return d, nil
}

// fields все параметры в порядке вывода справки
var fields = []field{
	stringField("origin", "server origin (scheme optional)", func(c *Config) *string { return &c.Origin }),
	stringField("publish_key", "publish key", func(c *Config) *string { return &c.PublishKey }),
	stringField("subscribe_key", "subscribe key", func(c *Config) *string { return &c.SubscribeKey }),
	stringField("user_id", "user id sent with every request (default: random UUID)", func(c *Config) *string { return &c.UserID }),
	stringField("auth_token", "access token sent as the auth parameter", func(c *Config) *string { return &c.AuthToken }),
	stringField("cipher_key", "passphrase for payload encryption, \"-\" to prompt", func(c *Config) *string { return &c.CipherKey }),
	stringField("cipher_salt", "base64 salt for key derivation (default: derived from subscribe key)", func(c *Config) *string { return &c.CipherSalt }),
	stringField("cipher_encoding", "ciphertext encoding: base64, base64url or hex", func(c *Config) *string { return &c.CipherEncoding }),
	stringField("filter_expression", "server-side subscribe filter expression", func(c *Config) *string { return &c.FilterExpression }),
	intField("heartbeat", "presence heartbeat in seconds (0 disables)", func(c *Config) *int { return &c.Heartbeat }),
	durationField("subscribe_timeout", "long-poll request timeout", func(c *Config) *time.Duration { return &c.SubscribeTimeout }),
	durationField("request_timeout", "non-subscribe request timeout", func(c *Config) *time.Duration { return &c.RequestTimeout }),
	uintField("max_retries", "retries for failed non-subscribe requests", func(c *Config) *uint64 { return &c.MaxRetries }),
	boolField("dedupe_on_subscribe", "drop duplicate messages on subscribe", func(c *Config) *bool { return &c.DedupeOnSubscribe }),
	intField("dedupe_cache_size", "number of recent messages remembered for dedupe", func(c *Config) *int { return &c.DedupeCacheSize }),
	stringField("db_path", "path to the local state database", func(c *Config) *string { return &c.DBPath }),
	stringField("log_level", "log level: debug, info, warn or error", func(c *Config) *string { return &c.LogLevel }),
}

func lookupField(key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}
