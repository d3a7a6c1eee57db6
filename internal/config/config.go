// Package config is used to configure the application settings.
//
// Values are applied in increasing priority: defaults, JSON config file,
// .env file, process environment, command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

// Config - application configuration structure.
type Config struct {
	// Addr: address the HTTP server listens on (e.g., "localhost:5000").
	Addr string `json:"server_address"`
	// BaseURL: prefix of returned short links.
	BaseURL string `json:"base_url"`
	// ConfigPath: path to configuration file.
	ConfigPath string `json:"-"`
	// EnvFile: path to an optional .env file.
	EnvFile string `json:"env_file"`
	// LogLevel: zap level name.
	LogLevel string `json:"log_level"`
	// Timeout: request processing timeout in seconds.
	Timeout int `json:"request_timeout"`
	// GenerationAttempts: generated shortcodes tried per creation before giving up.
	GenerationAttempts int `json:"shortcode_attempts"`
	// RateLimit: requests per minute per client address, 0 disables limiting.
	RateLimit int `json:"rate_limit"`
	// AuditEndpoint: URL of the audit log service, empty disables auditing.
	AuditEndpoint string `json:"audit_log_endpoint"`
	// AuditToken: bearer token for the audit log service.
	AuditToken string `json:"audit_log_token"`
	// AuditTimeout: audit request timeout in seconds.
	AuditTimeout int `json:"audit_log_timeout"`
}

var cfgDefault = Config{
	Addr:               "localhost:5000",
	BaseURL:            "http://localhost:5000",
	ConfigPath:         "",
	EnvFile:            ".env",
	LogLevel:           "info",
	Timeout:            15,
	GenerationAttempts: 16,
	RateLimit:          0,
	AuditEndpoint:      "",
	AuditToken:         "",
	AuditTimeout:       5,
}

// NewConfig returns a copy of the default configuration.
func NewConfig() *Config {
	c := cfgDefault
	return &c
}

var (
	// ErrReadConfig - error reading json config.
	ErrReadConfig = errors.New("reading json config")
	// ErrParseConfig - error parsing json config.
	ErrParseConfig = errors.New("parse json config")
	// ErrReadEnvFile - error reading .env file.
	ErrReadEnvFile = errors.New("reading env file")
	// ErrInvalidConfig - resulting configuration failed validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// Init configures c from the process arguments and environment.
func Init(c *Config) error {
	return Parse(c, os.Args[1:])
}

// Parse configures c from args and the environment.
func Parse(c *Config, args []string) error {
	var flagCfg Config
	fset := flag.NewFlagSet("shortener", flag.ContinueOnError)
	fset.StringVar(&flagCfg.Addr, "a", "", "HTTP-server startup address")
	fset.StringVar(&flagCfg.BaseURL, "b", "", "base address of the resulting short links")
	fset.StringVar(&flagCfg.ConfigPath, "c", "", "path to config file (json)")
	fset.StringVar(&flagCfg.EnvFile, "e", "", "path to .env file")
	fset.StringVar(&flagCfg.LogLevel, "v", "", "log level")
	fset.IntVar(&flagCfg.Timeout, "t", 0, "request timeout in seconds")
	fset.IntVar(&flagCfg.GenerationAttempts, "g", 0, "shortcode generation attempts")
	fset.IntVar(&flagCfg.RateLimit, "r", 0, "requests per minute per client, 0 disables")
	fset.StringVar(&flagCfg.AuditEndpoint, "l", "", "audit log endpoint")

	if err := fset.Parse(args); err != nil {
		return err
	}

	configPath := flagCfg.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("CONFIG")
	}
	if configPath != "" {
		c.ConfigPath = configPath
		file, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadConfig, err)
		}
		if err := json.Unmarshal(file, c); err != nil {
			return fmt.Errorf("%w: %w", ErrParseConfig, err)
		}
	}

	envFile := c.EnvFile
	if flagCfg.EnvFile != "" {
		envFile = flagCfg.EnvFile
		c.EnvFile = envFile
	}
	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return err
	}
	applyEnv(c, func(key string) (string, bool) {
		if val, exist := os.LookupEnv(key); exist {
			return val, true
		}
		val, exist := dotenv[key]
		return val, exist
	})

	// override
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			c.Addr = flagCfg.Addr
		case "b":
			c.BaseURL = flagCfg.BaseURL
		case "v":
			c.LogLevel = flagCfg.LogLevel
		case "t":
			c.Timeout = flagCfg.Timeout
		case "g":
			c.GenerationAttempts = flagCfg.GenerationAttempts
		case "r":
			c.RateLimit = flagCfg.RateLimit
		case "l":
			c.AuditEndpoint = flagCfg.AuditEndpoint
		}
	})

	return c.Validate()
}

// Validate checks the resulting configuration.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Timeout, validation.Required, validation.Min(1)),
		validation.Field(&c.GenerationAttempts, validation.Required, validation.Min(1)),
		validation.Field(&c.RateLimit, validation.Min(0)),
		validation.Field(&c.AuditEndpoint, is.URL),
		validation.Field(&c.AuditTimeout, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	vals, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadEnvFile, err)
	}
	return vals, nil
}

func applyEnv(c *Config, lookup func(string) (string, bool)) {
	if val, exist := lookup("SERVER_ADDRESS"); exist {
		c.Addr = val
	}
	if val, exist := lookup("BASE_URL"); exist {
		c.BaseURL = val
	}
	if val, exist := lookup("LOG_LEVEL"); exist {
		c.LogLevel = val
	}
	if val, exist := lookup("AUDIT_LOG_ENDPOINT"); exist {
		c.AuditEndpoint = val
	}
	if val, exist := lookup("AUDIT_LOG_TOKEN"); exist {
		c.AuditToken = val
	}
	setInt(lookup, "REQUEST_TIMEOUT", &c.Timeout)
	setInt(lookup, "SHORTCODE_ATTEMPTS", &c.GenerationAttempts)
	setInt(lookup, "RATE_LIMIT", &c.RateLimit)
	setInt(lookup, "AUDIT_LOG_TIMEOUT", &c.AuditTimeout)
}

func setInt(lookup func(string) (string, bool), key string, dst *int) {
	val, exist := lookup(key)
	if !exist {
		return
	}
	if n, err := strconv.Atoi(val); err == nil {
		*dst = n
	}
}
