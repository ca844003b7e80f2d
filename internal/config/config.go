package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds terminal configuration.
type Config struct {
	Backend  BackendConfig
	Election ElectionConfig
	Vote     VoteConfig
	Audit    AuditConfig
	Log      LogConfig
	UI       UIConfig
}

// BackendConfig locates the voting backend.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// ElectionConfig fixes the election this terminal serves.
type ElectionConfig struct {
	ID          int
	DatasetMode string `mapstructure:"dataset_mode"`
}

// VoteConfig holds the pass-through provenance values attached to each vote.
type VoteConfig struct {
	LocationHash string `mapstructure:"location_hash"`
	ChainHash    string `mapstructure:"chain_hash"`
	QRCode       string `mapstructure:"qr_code"`
}

// AuditConfig holds sqlite journal settings.
type AuditConfig struct {
	Enabled bool
	Path    string
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Language string
}

var datasetModes = []string{"none", "bundled", "separate"}

// Load reads configuration from .env, file and env. path overrides
// $URNA_CONFIG when set. Env var overrides use prefix URNA_; backend.url also
// reads BACKEND_URL.
func Load(path string) (Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "urna")
	v.SetDefault("backend.url", "http://localhost:8000")
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("election.id", 1)
	v.SetDefault("election.dataset_mode", "none")
	v.SetDefault("vote.location_hash", "hash_localizacao")
	v.SetDefault("vote.chain_hash", "hash_blockchain")
	v.SetDefault("vote.qr_code", "qr_code")
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.path", filepath.Join(dataDir, "audit.db"))
	v.SetDefault("log.path", filepath.Join(dataDir, "urna.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.language", "pt")

	v.SetConfigType("toml")

	cfgPath := path
	if cfgPath == "" {
		cfgPath = os.Getenv("URNA_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "urna"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("URNA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("backend.url", "URNA_BACKEND_URL", "BACKEND_URL"); err != nil {
		return Config{}, fmt.Errorf("bind backend url: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Election.DatasetMode = strings.ToLower(strings.TrimSpace(c.Election.DatasetMode))
	c.UI.Language = strings.ToLower(strings.TrimSpace(c.UI.Language))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the terminal cannot start with.
func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Backend.URL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("config: invalid backend.url %q", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("config: backend.timeout must be positive, got %s", c.Backend.Timeout)
	}
	if c.Election.ID <= 0 {
		return fmt.Errorf("config: election.id must be positive, got %d", c.Election.ID)
	}
	mode := c.Election.DatasetMode
	valid := false
	for _, m := range datasetModes {
		if m == mode {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("config: election.dataset_mode %q not one of %s", mode, strings.Join(datasetModes, ", "))
	}
	if c.Audit.Enabled && strings.TrimSpace(c.Audit.Path) == "" {
		return fmt.Errorf("config: audit.path required when audit is enabled")
	}
	return nil
}
