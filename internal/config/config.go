package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thushan/shifter/internal/core/domain"
)

const (
	DefaultPort        = 8189
	DefaultHost        = "0.0.0.0"
	DefaultBackendHost = "localhost"
	DefaultBackendPort = 8188

	DefaultStreamBufferSize = 8 * 1024

	EnvPrefix = "SHIFTER"

	FlagPort        = "port"
	FlagLLMHost     = "llm-host"
	FlagLLMPort     = "llm-port"
	FlagTrigger     = "trigger"
	FlagVerbose     = "verbose"
	FlagConfig      = "config"
	FlagPrintConfig = "print-config"
	FlagVersion     = "version"
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Trigger: domain.TriggerPrompt,
		Server: ServerConfig{
			Host:              DefaultHost,
			Port:              DefaultPort,
			ReadHeaderTimeout: 30 * time.Second,
			IdleTimeout:       120 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Backend: BackendConfig{
			Host:              DefaultBackendHost,
			Port:              DefaultBackendPort,
			ConnectionTimeout: 30 * time.Second,
			KeepAlive:         60 * time.Second,
			StreamBufferSize:  DefaultStreamBufferSize,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Theme:      "default",
			LogDir:     "./logs",
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Pretty:     true,
		},
	}
}

// RegisterFlags declares the command line surface on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()
	fs.Int(FlagPort, def.Server.Port, "Proxy listen port")
	fs.String(FlagLLMHost, def.Backend.Host, "llama-server host")
	fs.Int(FlagLLMPort, def.Backend.Port, "llama-server port")
	fs.String(FlagTrigger, string(def.Trigger),
		"Trigger mode for detecting reasoning mode: "+
			"'alias' detects from model name (e.g. 'NonThinking' -> /no_thinking), "+
			"'prompt' detects from system prompt tags, "+
			"'any' checks both with prompt tags taking priority")
	fs.Bool(FlagVerbose, false, "Print detailed request and mode info")
	fs.String(FlagConfig, "", "Path to a YAML config file")
	fs.Bool(FlagPrintConfig, false, "Print the effective configuration as YAML and exit")
	fs.Bool(FlagVersion, false, "Print version information and exit")
}

// Load resolves the configuration with precedence flag > env > file > default.
// fs may be nil when no command line is involved (tests, embedding).
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// SHIFTER_LLM_* mirrors the --llm-host/--llm-port flag names
	_ = v.BindEnv("backend.host", EnvPrefix+"_BACKEND_HOST", EnvPrefix+"_LLM_HOST")
	_ = v.BindEnv("backend.port", EnvPrefix+"_BACKEND_PORT", EnvPrefix+"_LLM_PORT")

	filename, err := readConfigFile(v, fs)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Filename = filename

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) (string, error) {
	explicit := ""
	if fs != nil {
		explicit, _ = fs.GetString(FlagConfig)
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("error reading config file %s: %w", explicit, err)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigName("shifter")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("error reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"server.port":  FlagPort,
		"backend.host": FlagLLMHost,
		"backend.port": FlagLLMPort,
		"trigger":      FlagTrigger,
		"verbose":      FlagVerbose,
	}
	for key, flagName := range bindings {
		flag := fs.Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag --%s: %w", flagName, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("trigger", string(def.Trigger))
	v.SetDefault("verbose", def.Verbose)

	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.read_header_timeout", def.Server.ReadHeaderTimeout)
	v.SetDefault("server.idle_timeout", def.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)
	v.SetDefault("server.request_logging", def.Server.RequestLogging)

	v.SetDefault("backend.host", def.Backend.Host)
	v.SetDefault("backend.port", def.Backend.Port)
	v.SetDefault("backend.connection_timeout", def.Backend.ConnectionTimeout)
	v.SetDefault("backend.keep_alive", def.Backend.KeepAlive)
	v.SetDefault("backend.stream_buffer_size", def.Backend.StreamBufferSize)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.theme", def.Logging.Theme)
	v.SetDefault("logging.log_dir", def.Logging.LogDir)
	v.SetDefault("logging.max_size", def.Logging.MaxSize)
	v.SetDefault("logging.max_backups", def.Logging.MaxBackups)
	v.SetDefault("logging.max_age", def.Logging.MaxAge)
	v.SetDefault("logging.file_output", def.Logging.FileOutput)
	v.SetDefault("logging.pretty", def.Logging.Pretty)
}

// WriteYAML dumps the effective configuration, used by --print-config.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
