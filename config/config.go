package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrianliechti/waves-mcp/pkg/audio"
	"github.com/adrianliechti/waves-mcp/pkg/auth"
	"github.com/adrianliechti/waves-mcp/pkg/mcp"
	"github.com/adrianliechti/waves-mcp/pkg/tool"
	"github.com/adrianliechti/waves-mcp/pkg/waves"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingToken = errors.New("WAVES_API_KEY env variable required")
)

// Config is built once at startup and not modified afterwards.
type Config struct {
	Address string

	Authorizers []auth.Provider

	Cleanup CleanupConfig

	waves *waves.Client
	store *audio.Store

	tools map[string]tool.Provider

	mcp *mcp.Server
}

type CleanupConfig struct {
	Interval time.Duration
	MaxAge   time.Duration
}

// Parse reads the optional configuration file at path and completes it from
// the environment (WAVES_API_KEY, MCP_BASE_PATH, ADDRESS).
func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8000",
	}

	if file.Address != "" {
		c.Address = file.Address
	} else if val := os.Getenv("ADDRESS"); val != "" {
		c.Address = val
	}

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerWaves(file); err != nil {
		return nil, err
	}

	if err := c.registerStorage(file); err != nil {
		return nil, err
	}

	if err := c.registerTools(file); err != nil {
		return nil, err
	}

	if err := c.registerMCP(file); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) Waves() *waves.Client {
	return c.waves
}

func (c *Config) Store() *audio.Store {
	return c.store
}

func (c *Config) Close() {
	if c.waves != nil {
		c.waves.Close()
	}
}

type configFile struct {
	Address string `yaml:"address"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Waves   wavesConfig   `yaml:"waves"`
	Storage storageConfig `yaml:"storage"`
	Cleanup cleanupConfig `yaml:"cleanup"`

	MCP mcpConfig `yaml:"mcp"`
}

type wavesConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Limit *int `yaml:"limit"`
}

type storageConfig struct {
	Path string `yaml:"path"`
}

type cleanupConfig struct {
	Interval time.Duration `yaml:"interval"`
	MaxAge   time.Duration `yaml:"max_age"`
}

func parseFile(path string) (*configFile, error) {
	var config configFile

	if path == "" {
		return &config, nil
	}

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) registerWaves(f *configFile) error {
	token := f.Waves.Token

	if token == "" {
		token = os.Getenv("WAVES_API_KEY")
	}

	if token == "" {
		return ErrMissingToken
	}

	client, err := waves.New(f.Waves.URL, waves.WithToken(token))

	if err != nil {
		return err
	}

	c.waves = client

	return nil
}

func (c *Config) registerStorage(f *configFile) error {
	path := f.Storage.Path

	if path == "" {
		path = os.Getenv("MCP_BASE_PATH")
	}

	if path == "" {
		path = filepath.Join(os.TempDir(), "waves-mcp")
	}

	store, err := audio.NewStore(path)

	if err != nil {
		return err
	}

	c.store = store

	c.Cleanup = CleanupConfig{
		Interval: f.Cleanup.Interval,
		MaxAge:   f.Cleanup.MaxAge,
	}

	if c.Cleanup.MaxAge <= 0 {
		c.Cleanup.MaxAge = audio.DefaultMaxAge
	}

	return nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil || *limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
