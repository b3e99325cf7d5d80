package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	// ErrNotSet occurs when a required config value is empty
	ErrNotSet = errors.New("config value is not set")
)

// Koanf Config implementation layering defaults, an optional YAML file and
// environment variables, later layers winning
type Koanf struct {
	k *koanf.Koanf
}

// Defaults for every key
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"storage.driver":           "badger",
		"storage.path":             defaultStoragePath(),
		"pushover.api_token":       "",
		"pushover.user_key":        "",
		"pushover.device":          "",
		"pushover.rate_per_second": 1.0,
		"scheduler.interval":       "30s",
		"timezone":                 "Local",
		"log.level":                "info",
	}
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".followup", "reminders")
	}

	return filepath.Join(home, ".followup", "reminders")
}

// Load config. An empty path falls back to the FOLLOWUP_CONFIG variable; a
// path that does not exist is skipped.
func Load(path string) (*Koanf, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(Defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			err = k.Load(file.Provider(path), yaml.Parser())
			if err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	err = k.Load(env.Provider("", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	return &Koanf{k: k}, nil
}

// StorageDriver name
func (c *Koanf) StorageDriver() string {
	return strings.ToLower(strings.TrimSpace(c.k.String("storage.driver")))
}

// StoragePath for the database
func (c *Koanf) StoragePath() (string, error) {
	return c.required("storage.path", StoragePathEnv)
}

// PushoverAPIToken getter
func (c *Koanf) PushoverAPIToken() (string, error) {
	return c.required("pushover.api_token", PushoverAPITokenEnv)
}

// PushoverUserKey getter
func (c *Koanf) PushoverUserKey() (string, error) {
	return c.required("pushover.user_key", PushoverUserKeyEnv)
}

// PushoverDevice getter, empty for every device
func (c *Koanf) PushoverDevice() string {
	return strings.TrimSpace(c.k.String("pushover.device"))
}

// PushoverRatePerSecond getter
func (c *Koanf) PushoverRatePerSecond() float64 {
	return c.k.Float64("pushover.rate_per_second")
}

// PollInterval between due checks, zero when unset or invalid
func (c *Koanf) PollInterval() time.Duration {
	return c.k.Duration("scheduler.interval")
}

// Location reminders are entered and shown in
func (c *Koanf) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.k.String("timezone"))
	if name == "" || name == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", name, err)
	}

	return loc, nil
}

// LogLevel name
func (c *Koanf) LogLevel() string {
	return c.k.String("log.level")
}

func (c *Koanf) required(key, envName string) (string, error) {
	val := strings.TrimSpace(c.k.String(key))
	if val == "" {
		return "", fmt.Errorf(
			"unable to get %s from config or env variable %s: %w",
			key,
			envName,
			ErrNotSet,
		)
	}

	return val, nil
}
