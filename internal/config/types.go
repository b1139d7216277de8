package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/internal/util"
)

// Config holds all configuration for the application. It is built once at
// startup and never mutated afterwards.
type Config struct {
	Filename string         `mapstructure:"-" yaml:"-"`
	Trigger  domain.Trigger `mapstructure:"trigger" yaml:"trigger"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Modes    ModesConfig    `mapstructure:"modes" yaml:"modes"`
	Backend  BackendConfig  `mapstructure:"backend" yaml:"backend"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Verbose  bool           `mapstructure:"verbose" yaml:"verbose"`
}

// ServerConfig holds the inbound HTTP server configuration
type ServerConfig struct {
	Host              string        `mapstructure:"host" yaml:"host"`
	Port              int           `mapstructure:"port" yaml:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	RequestLogging    bool          `mapstructure:"request_logging" yaml:"request_logging"`
}

// GetAddress returns the server address in host:port format
func (s *ServerConfig) GetAddress() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// BackendConfig points at the single local inference server. Only the dial
// is bounded; long generations are normal.
type BackendConfig struct {
	Host              string        `mapstructure:"host" yaml:"host"`
	Port              int           `mapstructure:"port" yaml:"port"`
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout"`
	KeepAlive         time.Duration `mapstructure:"keep_alive" yaml:"keep_alive"`
	StreamBufferSize  int           `mapstructure:"stream_buffer_size" yaml:"stream_buffer_size"`
}

func (b *BackendConfig) URL() *url.URL {
	return util.BackendURL(b.Host, b.Port)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Theme      string `mapstructure:"theme" yaml:"theme"`
	LogDir     string `mapstructure:"log_dir" yaml:"log_dir"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	FileOutput bool   `mapstructure:"file_output" yaml:"file_output"`
	Pretty     bool   `mapstructure:"pretty" yaml:"pretty"`
}

// ModesConfig allows the explicit thinking profile to diverge from the
// general one. The other modes are fixed.
type ModesConfig struct {
	ExplicitThinking ProfileOverride `mapstructure:"explicit_thinking" yaml:"explicit_thinking"`
}

// ProfileOverride replaces individual sampling values; nil fields keep the
// base profile's value.
type ProfileOverride struct {
	Temperature     *float64 `mapstructure:"temperature" yaml:"temperature,omitempty"`
	TopP            *float64 `mapstructure:"top_p" yaml:"top_p,omitempty"`
	TopK            *int     `mapstructure:"top_k" yaml:"top_k,omitempty"`
	MinP            *float64 `mapstructure:"min_p" yaml:"min_p,omitempty"`
	PresencePenalty *float64 `mapstructure:"presence_penalty" yaml:"presence_penalty,omitempty"`
	RepeatPenalty   *float64 `mapstructure:"repeat_penalty" yaml:"repeat_penalty,omitempty"`
}

func (o ProfileOverride) IsEmpty() bool {
	return o.Temperature == nil && o.TopP == nil && o.TopK == nil &&
		o.MinP == nil && o.PresencePenalty == nil && o.RepeatPenalty == nil
}

// Apply returns base with the overridden values swapped in.
func (o ProfileOverride) Apply(base domain.SamplingProfile) domain.SamplingProfile {
	if o.Temperature != nil {
		base.Temperature = *o.Temperature
	}
	if o.TopP != nil {
		base.TopP = *o.TopP
	}
	if o.TopK != nil {
		base.TopK = *o.TopK
	}
	if o.MinP != nil {
		base.MinP = *o.MinP
	}
	if o.PresencePenalty != nil {
		base.PresencePenalty = *o.PresencePenalty
	}
	if o.RepeatPenalty != nil {
		base.RepeatPenalty = *o.RepeatPenalty
	}
	return base
}

// Validate normalises the trigger and rejects values the server cannot run with.
func (c *Config) Validate() error {
	trigger, err := domain.ParseTrigger(string(c.Trigger))
	if err != nil {
		return err
	}
	c.Trigger = trigger

	if err := validatePort("server.port", c.Server.Port); err != nil {
		return err
	}
	if err := validatePort("backend.port", c.Backend.Port); err != nil {
		return err
	}
	if c.Backend.Host == "" {
		return fmt.Errorf("backend.host must not be empty")
	}
	if c.Backend.StreamBufferSize < 0 {
		return fmt.Errorf("backend.stream_buffer_size must not be negative, got %d", c.Backend.StreamBufferSize)
	}
	return nil
}

func validatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return nil
}
