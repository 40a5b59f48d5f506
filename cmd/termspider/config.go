package main

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/termspider"
	"github.com/fwojciec/termspider/crawl"
	tshttp "github.com/fwojciec/termspider/http"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config holds crawl settings. It is read from a YAML file and then
// overridden by command-line flags.
type Config struct {
	Terms        []string      `yaml:"terms"`
	Sites        []string      `yaml:"sites"`
	MaxPages     int           `yaml:"max_pages"`
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	WrapperID    string        `yaml:"wrapper_id"`
	WrapperTag   string        `yaml:"wrapper_tag"`
	OutputDir    string        `yaml:"output_dir"`
	IncludeDebug bool          `yaml:"include_debug"`
	Concurrency  int           `yaml:"concurrency"`
	Order        string        `yaml:"order"`
	Sitemap      bool          `yaml:"sitemap"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		MaxPages:    crawl.DefaultMaxPages,
		Timeout:     tshttp.DefaultFetchTimeout,
		UserAgent:   tshttp.DefaultUserAgent,
		OutputDir:   ".",
		Concurrency: 1,
		Order:       crawl.BreadthFirst.String(),
	}
}

// LoadConfig reads a YAML config file over the defaults. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	defer f.Close()

	cfg := NewConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, termspider.Errorf(termspider.EINVALID, "invalid config %s: %v", path, err)
	}
	return cfg, nil
}

// Validate returns an error if the config cannot drive a crawl.
func (c *Config) Validate() error {
	if len(c.Terms) == 0 {
		return termspider.Errorf(termspider.EINVALID, "at least one term required")
	}
	for _, t := range c.Terms {
		if strings.TrimSpace(t) == "" {
			return termspider.Errorf(termspider.EINVALID, "terms must not be empty")
		}
	}
	if len(c.Sites) == 0 {
		return termspider.Errorf(termspider.EINVALID, "at least one site required")
	}
	if c.MaxPages < 1 {
		return termspider.Errorf(termspider.EINVALID, "max pages must be positive")
	}
	if c.Timeout <= 0 {
		return termspider.Errorf(termspider.EINVALID, "timeout must be positive")
	}
	if c.Concurrency < 1 {
		return termspider.Errorf(termspider.EINVALID, "concurrency must be positive")
	}
	if _, err := crawl.ParseOrder(c.Order); err != nil {
		return err
	}
	return nil
}
