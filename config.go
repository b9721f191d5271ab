package typekit

import (
	"fmt"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Bytes of file header read by the magic classifier
	MagicHeaderBytes int `env:"TYPEKIT_MAGIC_HEADER_BYTES,default:1024"`

	// Bytes of content sampled by the language classifier
	LanguageSampleBytes int `env:"TYPEKIT_LANGUAGE_SAMPLE_BYTES,default:4096"`

	// Wrap the tester in a result cache keyed by path, size and mtime
	CacheEnabled bool `env:"TYPEKIT_CACHE_ENABLED,default:false"`

	// Cache entry lifetime in seconds; 0 means no expiration
	CacheTTLSeconds int `env:"TYPEKIT_CACHE_TTL_SECONDS,default:0"`
}

// GetConfig loads configuration from environment variables
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the built-in defaults without consulting the
// environment.
func DefaultConfig() *Config {
	return &Config{
		MagicHeaderBytes:    DefaultMagicHeaderBytes,
		LanguageSampleBytes: DefaultLanguageSampleBytes,
	}
}

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.MagicHeaderBytes < 0 {
		return fmt.Errorf("magic header bytes must not be negative: %d", cfg.MagicHeaderBytes)
	}
	if cfg.LanguageSampleBytes < 0 {
		return fmt.Errorf("language sample bytes must not be negative: %d", cfg.LanguageSampleBytes)
	}
	if cfg.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache TTL must not be negative: %d", cfg.CacheTTLSeconds)
	}
	return nil
}
