// Package client_config loads the CLI environment and the TOML settings file.
package client_config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	client_api "github.com/rconjoe/flickpicker/internal/client/api"
	infra_redis_init "github.com/rconjoe/flickpicker/internal/infra/redis/init"
	"github.com/rconjoe/flickpicker/internal/model"
)

const (
	SettingsFile = "settings.toml"
	profilesDir  = "profiles"
)

type Redis struct {
	Enabled bool
	Options infra_redis_init.Options
}

type Config struct {
	Server string
	Home   string
	Redis  Redis
}

// Load reads envPath (or .env when empty) into the environment and builds
// the config from it. A missing .env is not an error.
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	return FromEnv()
}

func FromEnv() (*Config, error) {
	home := os.Getenv("FLICKPICKER_HOME")
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home dir: %w", err)
		}
		home = filepath.Join(dir, ".flickpicker")
	}

	db, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}

	return &Config{
		Server: getenv("FLICKPICKER_SERVER", client_api.DefaultBaseURL),
		Home:   home,
		Redis: Redis{
			Enabled: getenv("REDIS_ENABLED", "false") == "true",
			Options: infra_redis_init.Options{
				Host:     getenv("REDIS_HOST", "localhost"),
				Port:     getenv("REDIS_PORT", "6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       db,
			},
		},
	}, nil
}

// Path joins name onto the client home directory.
func (c *Config) Path(name string) string {
	return filepath.Join(c.Home, name)
}

// LoadSettings reads the settings file, falling back to the defaults when it
// does not exist. Keys missing from the file keep their default values.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()
	if err := loadTOML(path, &settings); err != nil {
		return model.DefaultSettings(), fmt.Errorf("failed to %w", err)
	}
	return settings, nil
}

func SaveSettings(path string, settings model.Settings) error {
	if err := saveTOML(path, settings); err != nil {
		return fmt.Errorf("failed to %w", err)
	}
	return nil
}

// ProfilePath is the per-user profile file under home.
func (c *Config) ProfilePath(username string) string {
	return filepath.Join(c.Home, profilesDir, url.PathEscape(username)+".toml")
}

// LoadProfile reads a user profile, starting from the defaults like LoadSettings.
func LoadProfile(path, username string) (model.Profile, error) {
	profile := model.DefaultProfile(username)
	if err := loadTOML(path, &profile); err != nil {
		return model.DefaultProfile(username), fmt.Errorf("failed to %w", err)
	}
	profile.Username = username
	return profile, nil
}

func SaveProfile(path string, profile model.Profile) error {
	if err := saveTOML(path, profile); err != nil {
		return fmt.Errorf("failed to %w", err)
	}
	return nil
}

func loadTOML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func saveTOML(path string, v any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func getenv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
