
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pageseo/internal/page"
	"pageseo/internal/seo"
)

// ErrInvalidConfig wraps every validation failure from Load.
var ErrInvalidConfig = errors.New("invalid config")

const ConfigFileName = "pageseo.yaml"

// Config is the server configuration. When Origin is empty the canonical
// origin comes from each request, and TrustedHosts limits which Host values
// are accepted for it.
type Config struct {
	Addr         string        `yaml:"addr"`
	Origin       string        `yaml:"origin"`
	TrustedHosts []string      `yaml:"trusted_hosts"`
	Title        string        `yaml:"title"`
	Description  string        `yaml:"description"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

func Default() Config {
	return Config{
		Addr:         ":8080",
		Title:        page.DefaultTitle,
		Description:  page.DefaultDescription,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Load builds the config from defaults, then path (a YAML file, skipped when
// empty or missing), then PAGESEO_* environment variables. A .env file in the
// working directory is loaded first if present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"PAGESEO_ADDR":        &cfg.Addr,
		"PAGESEO_ORIGIN":      &cfg.Origin,
		"PAGESEO_TITLE":       &cfg.Title,
		"PAGESEO_DESCRIPTION": &cfg.Description,
	}
	for k, dst := range str {
		if v, ok := os.LookupEnv(k); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("PAGESEO_TRUSTED_HOSTS"); ok {
		cfg.TrustedHosts = nil
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				cfg.TrustedHosts = append(cfg.TrustedHosts, strings.ToLower(h))
			}
		}
	}

	dur := map[string]*time.Duration{
		"PAGESEO_READ_TIMEOUT":  &cfg.ReadTimeout,
		"PAGESEO_WRITE_TIMEOUT": &cfg.WriteTimeout,
	}
	for k, dst := range dur {
		v, ok := os.LookupEnv(k)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, k, err)
		}
		*dst = d
	}
	return nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	}
	if c.Title == "" || c.Description == "" {
		return fmt.Errorf("%w: title and description are required", ErrInvalidConfig)
	}
	if c.Origin != "" {
		if _, err := seo.CanonicalURL(c.Origin, "/"); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	return nil
}
