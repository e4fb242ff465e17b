package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Service holds the runtime settings of the SSH and web binaries.
type Service struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	HostKeyPath string `toml:"host_key_path"`
	MaxSessions int    `toml:"max_sessions"` // 0 means unlimited
	LogLevel    string `toml:"log_level"`

	WebHost     string `toml:"web_host"`
	WebPort     string `toml:"web_port"`
	DisplayHost string `toml:"display_host"` // Host name shown on the landing page
}

// Defaults returns the settings used when neither a file nor the environment
// provides a value.
func Defaults() Service {
	return Service{
		Host:        "::",
		Port:        "2222",
		HostKeyPath: "/app/keys/host_key",
		MaxSessions: 64,
		LogLevel:    "info",
		WebHost:     "0.0.0.0",
		WebPort:     "8080",
		DisplayHost: "your-server.com",
	}
}

// Load builds the service settings: defaults, then the TOML file at path
// (skipped if path is empty), then environment overrides.
func Load(path string) (Service, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Service{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.Host = GetEnv("SSH_HOST", cfg.Host)
	cfg.Port = GetEnv("SSH_PORT", cfg.Port)
	cfg.HostKeyPath = GetEnv("SSH_HOST_KEY", cfg.HostKeyPath)
	cfg.LogLevel = GetEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.WebHost = GetEnv("WEB_HOST", cfg.WebHost)
	cfg.WebPort = GetEnv("WEB_PORT", cfg.WebPort)
	cfg.DisplayHost = GetEnv("SSH_DISPLAY_HOST", cfg.DisplayHost)

	if v := GetEnv("SSH_MAX_SESSIONS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Service{}, fmt.Errorf("SSH_MAX_SESSIONS: %w", err)
		}
		cfg.MaxSessions = n
	}

	if err := cfg.Validate(); err != nil {
		return Service{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks ports, the session limit and the log level.
func (s Service) Validate() error {
	var errs []error
	if err := checkPort("port", s.Port); err != nil {
		errs = append(errs, err)
	}
	if err := checkPort("web_port", s.WebPort); err != nil {
		errs = append(errs, err)
	}
	if s.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("max_sessions must not be negative, got %d", s.MaxSessions))
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, falling back to info.
func (s Service) Level() log.Level {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func checkPort(name, port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%s must be a port number, got %q", name, port)
	}
	return nil
}
