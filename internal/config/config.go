package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/authcode-grabber/internal/constants"
	"github.com/oshokin/authcode-grabber/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// ClientID is the OAuth client identifier registered with the authorization server.
	ClientID string `mapstructure:"client_id" yaml:"client_id" json:"client_id"`
	// AuthorizationURL is the authorization endpoint the browser is sent to.
	AuthorizationURL string `mapstructure:"authorization_url" yaml:"authorization_url" json:"authorization_url"`
	// IssuerURL enables OpenID Connect discovery of the authorization endpoint when set.
	IssuerURL string `mapstructure:"issuer_url" yaml:"issuer_url" json:"issuer_url"`
	// Scopes are the OAuth scopes requested. Empty means no scope parameter.
	Scopes []string `mapstructure:"scopes" yaml:"scopes" json:"scopes"`
	// CallbackHost is the host name used in the redirect URI.
	CallbackHost string `mapstructure:"callback_host" yaml:"callback_host" json:"callback_host"`
	// CallbackPort is the local port of the callback listener. Zero picks a free port.
	CallbackPort int `mapstructure:"callback_port" yaml:"callback_port" json:"callback_port"`
	// CallbackPath is the HTTP path of the callback route.
	CallbackPath string `mapstructure:"callback_path" yaml:"callback_path" json:"callback_path"`
	// Timeout is how long to wait for the callback (e.g., "120s", "5m").
	Timeout string `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	// PollInterval is how often the waiting loop checks for a result (e.g., "500ms").
	PollInterval string `mapstructure:"poll_interval" yaml:"poll_interval" json:"poll_interval"`
	// Browser selects how the authorization URL is opened: system, isolated or none.
	Browser string `mapstructure:"browser" yaml:"browser" json:"browser"`
	// ShowProgress enables the waiting spinner.
	ShowProgress bool `mapstructure:"show_progress" yaml:"show_progress" json:"show_progress"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	// ParsedTimeout is the parsed callback timeout.
	ParsedTimeout time.Duration `mapstructure:"-" yaml:"-" json:"-"`
	// ParsedPollInterval is the parsed polling interval.
	ParsedPollInterval time.Duration `mapstructure:"-" yaml:"-" json:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-" yaml:"-" json:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".authcode-grabber.yaml"

	// DefaultClientID is the client identifier used when none is configured.
	DefaultClientID = "9"

	// DefaultAuthorizationURL is the authorization endpoint used when none is configured.
	DefaultAuthorizationURL = "http://127.0.0.1:1240/oauth2/authorize"

	// DefaultCallbackHost is the host of the redirect URI.
	DefaultCallbackHost = "localhost"

	// DefaultCallbackPort is the port the callback listener binds to.
	DefaultCallbackPort = 8000

	// DefaultCallbackPath is the path of the callback route.
	DefaultCallbackPath = "/callback"

	// DefaultTimeout is how long the callback is awaited.
	DefaultTimeout = 120 * time.Second

	// DefaultPollInterval is the interval between result checks.
	DefaultPollInterval = 500 * time.Millisecond

	// DefaultLogLevel is the default logging verbosity.
	DefaultLogLevel = "info"

	// DefaultMaxLogLength is the default maximum size (in bytes) of logged HTTP dumps.
	DefaultMaxLogLength = 64 * 1024 // 64 KB

	// maxPort is the largest valid TCP port.
	maxPort = 65535
)

// Browser modes.
const (
	// BrowserSystem opens the URL in the platform default browser.
	BrowserSystem = "system"
	// BrowserIsolated launches a Chromium instance with a throwaway profile.
	BrowserIsolated = "isolated"
	// BrowserNone only prints the URL.
	BrowserNone = "none"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyClientID indicates that the client identifier is missing.
	ErrEmptyClientID = errors.New("client_id cannot be empty")
	// ErrInvalidAuthorizationURL indicates that the authorization endpoint is not an absolute URL.
	ErrInvalidAuthorizationURL = errors.New("authorization_url must be an absolute http(s) URL")
	// ErrInvalidIssuerURL indicates that the issuer is not an absolute URL.
	ErrInvalidIssuerURL = errors.New("issuer_url must be an absolute http(s) URL")
	// ErrEmptyCallbackHost indicates that the callback host is missing.
	ErrEmptyCallbackHost = errors.New("callback_host cannot be empty")
	// ErrInvalidCallbackPort indicates that the callback port is out of range.
	ErrInvalidCallbackPort = errors.New("invalid callback_port")
	// ErrInvalidCallbackPath indicates that the callback path is not absolute.
	ErrInvalidCallbackPath = errors.New("callback_path must start with '/'")
	// ErrInvalidTimeout indicates that the timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrInvalidPollInterval indicates that the poll interval is not positive.
	ErrInvalidPollInterval = errors.New("poll_interval must be positive")
	// ErrUnknownBrowser indicates that the browser mode is not recognized.
	ErrUnknownBrowser = errors.New("unknown browser mode")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrConfigExists indicates that a configuration file would be overwritten.
	ErrConfigExists = errors.New("configuration file already exists")
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ClientID:         DefaultClientID,
		AuthorizationURL: DefaultAuthorizationURL,
		CallbackHost:     DefaultCallbackHost,
		CallbackPort:     DefaultCallbackPort,
		CallbackPath:     DefaultCallbackPath,
		Timeout:          DefaultTimeout.String(),
		PollInterval:     DefaultPollInterval.String(),
		Browser:          BrowserSystem,
		LogLevel:         DefaultLogLevel,
	}
}

// LoadConfig loads configuration settings from a YAML file on top of the defaults.
// When no filename is given and the default file does not exist, the defaults are returned.
func LoadConfig(configFilename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	v.SetConfigFile(configFilename)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if isExplicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("client_id", d.ClientID)
	v.SetDefault("authorization_url", d.AuthorizationURL)
	v.SetDefault("issuer_url", d.IssuerURL)
	v.SetDefault("scopes", []string{})
	v.SetDefault("callback_host", d.CallbackHost)
	v.SetDefault("callback_port", d.CallbackPort)
	v.SetDefault("callback_path", d.CallbackPath)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("poll_interval", d.PollInterval)
	v.SetDefault("browser", d.Browser)
	v.SetDefault("show_progress", d.ShowProgress)
	v.SetDefault("log_level", d.LogLevel)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	cfg.ClientID = strings.TrimSpace(cfg.ClientID)
	if cfg.ClientID == "" {
		return ErrEmptyClientID
	}

	cfg.IssuerURL = strings.TrimSpace(cfg.IssuerURL)
	if cfg.IssuerURL != "" && !isAbsoluteHTTPURL(cfg.IssuerURL) {
		return fmt.Errorf("%w: '%s'", ErrInvalidIssuerURL, cfg.IssuerURL)
	}

	// The endpoint comes from discovery when an issuer is set.
	cfg.AuthorizationURL = strings.TrimSpace(cfg.AuthorizationURL)
	if cfg.IssuerURL == "" && !isAbsoluteHTTPURL(cfg.AuthorizationURL) {
		return fmt.Errorf("%w: '%s'", ErrInvalidAuthorizationURL, cfg.AuthorizationURL)
	}

	cfg.CallbackHost = strings.TrimSpace(cfg.CallbackHost)
	if cfg.CallbackHost == "" {
		return ErrEmptyCallbackHost
	}

	if cfg.CallbackPort < 0 || cfg.CallbackPort > maxPort {
		return fmt.Errorf("%w: must be between 0 and %d", ErrInvalidCallbackPort, maxPort)
	}

	if !strings.HasPrefix(cfg.CallbackPath, "/") {
		return fmt.Errorf("%w: '%s'", ErrInvalidCallbackPath, cfg.CallbackPath)
	}

	cfg.ParsedTimeout, err = time.ParseDuration(cfg.Timeout)
	if err != nil {
		return fmt.Errorf("failed to parse timeout: %w", err)
	}

	if cfg.ParsedTimeout <= 0 {
		return ErrInvalidTimeout
	}

	cfg.ParsedPollInterval, err = time.ParseDuration(cfg.PollInterval)
	if err != nil {
		return fmt.Errorf("failed to parse poll interval: %w", err)
	}

	if cfg.ParsedPollInterval <= 0 {
		return ErrInvalidPollInterval
	}

	cfg.Browser = strings.ToLower(strings.TrimSpace(cfg.Browser))
	switch cfg.Browser {
	case BrowserSystem, BrowserIsolated, BrowserNone:
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownBrowser, cfg.Browser)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	return nil
}

// RedirectURL builds the redirect URI for the given port.
// The port is passed separately because a configured port of zero is resolved at bind time.
func (c *Config) RedirectURL(port int) string {
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(c.CallbackHost, strconv.Itoa(port)),
		Path:   c.CallbackPath,
	}

	return u.String()
}

// WriteDefaultConfig writes the built-in configuration to path.
// An existing file is only replaced when overwrite is set.
func WriteDefaultConfig(path string, overwrite bool) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	content, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err = os.WriteFile(path, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
