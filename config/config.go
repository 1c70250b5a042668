package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath    = "config/config.yaml"
	OpenWeatherMapName   = "openweathermap"
	OpenWeatherMapAPIURL = "https://api.openweathermap.org/data/2.5"
)

type Config struct {
	App     AppConfig
	Server  ServerConfig
	Log     LogConfig
	Weather WeatherConfig
	Breaker BreakerConfig
	Probe   ProbeConfig
	Sentry  SentryConfig
}

type AppConfig struct {
	Name    string `envconfig:"NAME" default:"weather-dashboard"`
	Version string `envconfig:"VERSION" default:"1.0.0"`
	Env     string `envconfig:"ENV" default:"development"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `envconfig:"PORT" default:"8080"`
	ReadTimeout  int    `envconfig:"READ_TIMEOUT" default:"10"`
	WriteTimeout int    `envconfig:"WRITE_TIMEOUT" default:"10"`
	IdleTimeout  int    `envconfig:"IDLE_TIMEOUT" default:"120"`
}

type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

type WeatherConfig struct {
	// APIs comes from the YAML file only.
	APIs []WeatherAPIConfig `yaml:"weather_apis" ignored:"true"`

	APIKey          string `envconfig:"API_KEY"`
	Units           string `envconfig:"UNITS" default:"metric"`
	Lang            string `envconfig:"LANG" default:"pl"`
	Locale          string `envconfig:"LOCALE" default:"pl"`
	Timezone        string `envconfig:"TIMEZONE" default:"Local"`
	IconURLTemplate string `envconfig:"ICON_URL_TEMPLATE" default:"https://openweathermap.org/img/wn/%s@2x.png"`
}

// WeatherAPIConfig describes one upstream provider. Timeout is in seconds.
type WeatherAPIConfig struct {
	Name      string  `yaml:"name"`
	BaseURL   string  `yaml:"base_url,omitempty"`
	APIKey    string  `yaml:"api_key,omitempty"`
	Timeout   int     `yaml:"timeout,omitempty"`
	RateLimit float64 `yaml:"rate_limit,omitempty"`
	Burst     int     `yaml:"burst,omitempty"`
}

type BreakerConfig struct {
	Threshold uint32        `envconfig:"THRESHOLD" default:"3"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"30s"`
}

type ProbeConfig struct {
	Schedule string `envconfig:"SCHEDULE" default:"@every 5m"`
	City     string `envconfig:"CITY"`
}

type SentryConfig struct {
	DSN   string `envconfig:"DSN"`
	Debug bool   `envconfig:"DEBUG" default:"false"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads .env, then the YAML provider list, then the
// environment. The YAML file is optional.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	var cnf Config

	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := p.loadFromFile(&cnf); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	cnf.applyProviderDefaults()

	return &cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	var file struct {
		WeatherAPIs []WeatherAPIConfig `yaml:"weather_apis"`
	}
	if err := yaml.Unmarshal(yamlData, &file); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	cnf.Weather.APIs = file.WeatherAPIs

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	var problems []string

	if strings.TrimSpace(config.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(config.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if config.Server.ReadTimeout <= 0 || config.Server.WriteTimeout <= 0 || config.Server.IdleTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}

	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is invalid", config.Log.Level))
	}
	switch config.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is invalid", config.Log.Format))
	}
	// The Sentry hook decodes JSON log lines only.
	if config.Sentry.DSN != "" && config.Log.Format != "json" {
		problems = append(problems, "log.format must be json when sentry.dsn is set")
	}

	if len(config.Weather.APIs) == 0 {
		problems = append(problems, "at least one weather api is required")
	}
	for i, api := range config.Weather.APIs {
		if strings.TrimSpace(api.Name) == "" {
			problems = append(problems, fmt.Sprintf("weather.apis[%d].name is required", i))
		}
		if strings.TrimSpace(api.APIKey) == "" {
			problems = append(problems, fmt.Sprintf("weather.apis[%d].api_key is required (or set WEATHER_API_KEY)", i))
		}
		if api.Timeout < 0 {
			problems = append(problems, fmt.Sprintf("weather.apis[%d].timeout must not be negative", i))
		}
	}

	if config.Weather.Units != "" {
		switch config.Weather.Units {
		case "metric", "imperial", "standard":
		default:
			problems = append(problems, fmt.Sprintf("weather.units %q is invalid", config.Weather.Units))
		}
	}
	if config.Weather.Timezone != "" {
		if _, err := time.LoadLocation(config.Weather.Timezone); err != nil {
			problems = append(problems, fmt.Sprintf("weather.timezone %q is invalid", config.Weather.Timezone))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}
	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}
	return cnf, nil
}

// applyProviderDefaults adds an OpenWeatherMap entry when the file lists
// none but WEATHER_API_KEY is set, and fills per-provider gaps. Entries
// without a key inherit WEATHER_API_KEY.
func (c *Config) applyProviderDefaults() {
	if len(c.Weather.APIs) == 0 && c.Weather.APIKey != "" {
		c.Weather.APIs = append(c.Weather.APIs, WeatherAPIConfig{
			Name:   OpenWeatherMapName,
			APIKey: c.Weather.APIKey,
		})
	}

	for i := range c.Weather.APIs {
		api := &c.Weather.APIs[i]
		if api.APIKey == "" {
			api.APIKey = c.Weather.APIKey
		}
		if api.Name == OpenWeatherMapName && api.BaseURL == "" {
			api.BaseURL = OpenWeatherMapAPIURL
		}
		if api.Timeout == 0 {
			api.Timeout = 10
		}
		if api.RateLimit == 0 {
			api.RateLimit = 1
		}
		if api.Burst == 0 {
			api.Burst = 5
		}
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) GetWeatherAPIByName(name string) (*WeatherAPIConfig, bool) {
	for i := range c.Weather.APIs {
		if c.Weather.APIs[i].Name == name {
			return &c.Weather.APIs[i], true
		}
	}
	return nil, false
}

func (c *Config) GetWeatherAPIs() []WeatherAPIConfig {
	return c.Weather.APIs
}

// Location resolves the configured timezone; "Local" and "" mean time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Weather.Timezone == "" || c.Weather.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Weather.Timezone)
}

func (s ServerConfig) Timeouts() (read, write, idle time.Duration) {
	return time.Duration(s.ReadTimeout) * time.Second,
		time.Duration(s.WriteTimeout) * time.Second,
		time.Duration(s.IdleTimeout) * time.Second
}
