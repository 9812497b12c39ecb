package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
	"github.com/PolarWolf314/rsakit/internal/rsakey"
	"github.com/spf13/viper"
)

// DefaultBits is the modulus size used when neither the config nor a flag sets one.
const DefaultBits = 2048

// EnvPrefix prefixes environment overrides, e.g. RSAKIT_KEYGEN_BITS.
const EnvPrefix = "RSAKIT"

type Config struct {
	Keygen KeygenConfig `toml:"keygen" mapstructure:"keygen"`
	Store  StoreConfig  `toml:"store" mapstructure:"store"`
}

type KeygenConfig struct {
	Bits             int `toml:"bits" mapstructure:"bits"`
	MaxPrimeAttempts int `toml:"max_prime_attempts" mapstructure:"max_prime_attempts"`
	MaxRetries       int `toml:"max_retries" mapstructure:"max_retries"`
}

type StoreConfig struct {
	// Path overrides the key store directory. Empty means UserKeysPath.
	Path string `toml:"path" mapstructure:"path"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Keygen: KeygenConfig{
			Bits:             DefaultBits,
			MaxPrimeAttempts: 0,
			MaxRetries:       rsakey.DefaultMaxRetries,
		},
	}
}

// KeysPath returns the key store directory this config points at.
func (c *Config) KeysPath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return UserRsakitSettings.UserKeysPath
}

// Validate checks the config values are usable for key generation.
func (c *Config) Validate() error {
	if c.Keygen.Bits < rsakey.MinBits {
		return fmt.Errorf("keygen.bits must be at least %d, got %d: %w", rsakey.MinBits, c.Keygen.Bits, kerrors.ErrInvalidConfig)
	}
	if c.Keygen.MaxPrimeAttempts < 0 {
		return fmt.Errorf("keygen.max_prime_attempts must not be negative: %w", kerrors.ErrInvalidConfig)
	}
	if c.Keygen.MaxRetries < 0 {
		return fmt.Errorf("keygen.max_retries must not be negative: %w", kerrors.ErrInvalidConfig)
	}
	return nil
}

// LoadConfig loads the user's config.toml, applying RSAKIT_* environment overrides.
// A missing file yields the defaults.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigFilePath())
}

// LoadConfigFrom loads the config at path, applying RSAKIT_* environment overrides.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("keygen.bits", defaults.Keygen.Bits)
	v.SetDefault("keygen.max_prime_attempts", defaults.Keygen.MaxPrimeAttempts)
	v.SetDefault("keygen.max_retries", defaults.Keygen.MaxRetries)
	v.SetDefault("store.path", defaults.Store.Path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w: %w", path, kerrors.ErrInvalidConfig, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w: %w", path, kerrors.ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the config to the user's config.toml.
func SaveConfig(config *Config) error {
	return SaveConfigTo(ConfigFilePath(), config)
}

// SaveConfigTo writes the config to path.
func SaveConfigTo(path string, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
