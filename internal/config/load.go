package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// LookupEnv источник переменных окружения; в main это os.LookupEnv
type LookupEnv func(key string) (string, bool)

// NewFlagSet создает набор глобальных флагов. Разбор останавливается на
// первом позиционном аргументе (имени команды).
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SortFlags = false

	fs.StringP("config", "c", "", "path to a config file (.yaml, .yml, .json, .jsonc)")
	defaults := Default()
	for _, f := range fields {
		if f.isBool {
			fs.Bool(f.flagName(), false, f.usage)
			continue
		}
		def := f.get(defaults)
		if f.key == "user_id" {
			def = ""
		}
		fs.String(f.flagName(), def, f.usage)
	}
	return fs
}

// Load builds the configuration from defaults, the optional config file,
// the environment and the flags in args, in that order. It returns the
// arguments left after the global flags (the command and its arguments).
// pflag.ErrHelp is returned as is when -h/--help was given.
func Load(fs *pflag.FlagSet, args []string, env LookupEnv) (*Config, []string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := Default()

	path, err := fs.GetString("config")
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		path, _ = env(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, nil, err
		}
	}

	if err := cfg.loadEnv(env); err != nil {
		return nil, nil, err
	}
	if err := cfg.loadFlags(fs); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, fs.Args(), nil
}

// loadFile накладывает значения из файла. Неизвестные ключи считаются ошибкой.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	values := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &values)
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.UseNumber()
		err = decoder.Decode(&values)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		f, ok := lookupField(key)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown config key %q", key))
			continue
		}
		value, err := stringify(values[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		if err := f.set(c, value); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// loadEnv накладывает значения PUBSUB_* переменных
func (c *Config) loadEnv(env LookupEnv) error {
	if env == nil {
		return nil
	}
	var errs []error
	for _, f := range fields {
		value, ok := env(f.envName())
		if !ok {
			continue
		}
		if err := f.set(c, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.envName(), err))
		}
	}
	return errors.Join(errs...)
}

// loadFlags применяет только явно заданные флаги
func (c *Config) loadFlags(fs *pflag.FlagSet) error {
	var errs []error
	fs.Visit(func(flag *pflag.Flag) {
		f, ok := lookupField(strings.ReplaceAll(flag.Name, "-", "_"))
		if !ok {
			return
		}
		if err := f.set(c, flag.Value.String()); err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", flag.Name, err))
		}
	})
	return errors.Join(errs...)
}

// stringify приводит скалярное значение из файла к строке для сеттера поля
func stringify(v any) (string, error) {
	switch value := v.(type) {
	case string:
		return value, nil
	case bool:
		return strconv.FormatBool(value), nil
	case int:
		return strconv.Itoa(value), nil
	case int64:
		return strconv.FormatInt(value, 10), nil
	case uint64:
		return strconv.FormatUint(value, 10), nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	case json.Number:
		return value.String(), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("expected a scalar value, got %T", v)
}
