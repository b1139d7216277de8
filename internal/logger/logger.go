package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/thushan/shifter/internal/util"
	"github.com/thushan/shifter/theme"
)

type Config struct {
	Level      string
	LogDir     string
	Theme      string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	FileOutput bool
	PrettyLogs bool
}

const (
	DefaultLogOutputName  = "shifter.log"
	DefaultDetailedCookie = detailedKey("detailed")

	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

type detailedKey string

// New builds the root slog.Logger: a terminal handler plus, optionally, a
// rotating JSON file handler. The returned cleanup closes the file.
func New(cfg *Config) (*slog.Logger, func(), error) {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg *Config, out io.Writer) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.Level)
	appTheme := theme.GetTheme(cfg.Theme)

	terminalHandler := createTerminalHandler(out, level, appTheme, cfg.PrettyLogs && util.ShouldUseColors())

	if !cfg.FileOutput {
		return slog.New(terminalHandler), func() {}, nil
	}

	fileHandler, cleanup, err := createFileHandler(cfg, level)
	if err != nil {
		return nil, nil, err
	}

	return slog.New(&teeHandler{terminal: terminalHandler, file: fileHandler}), cleanup, nil
}

func createTerminalHandler(out io.Writer, level slog.Level, appTheme *theme.Theme, colourful bool) slog.Handler {
	if colourful {
		plogger := pterm.DefaultLogger.
			WithLevel(ptermLevel(level)).
			WithWriter(out).
			WithFormatter(pterm.LogFormatterColorful)

		keyStyles := map[string]pterm.Style{
			"level": *appTheme.Info,
			"msg":   *appTheme.Info,
			"time":  *appTheme.Muted,
		}
		plogger = plogger.WithKeyStyles(keyStyles)
		return pterm.NewSlogHandler(plogger)
	}

	// systemd and docker get JSON
	return slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: fileSafeAttr,
	})
}

func createFileHandler(cfg *Config, level slog.Level) (slog.Handler, func(), error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory %s: %w", cfg.LogDir, err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, DefaultLogOutputName),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   true,
	}

	handler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: fileSafeAttr,
	})

	return handler, func() { _ = rotator.Close() }, nil
}

// fileSafeAttr renames the timestamp and flattens values so the JSON sinks
// carry no terminal escapes.
func fileSafeAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String("timestamp", a.Value.Time().Format(time.DateTime))
	}
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, stripAnsiCodes(a.Value.String()))
	case slog.KindAny:
		return slog.String(a.Key, fmt.Sprint(a.Value.Any()))
	}
	return a
}

// teeHandler fans records out to the terminal and the log file. Records
// logged with DefaultDetailedCookie in the context skip the terminal.
type teeHandler struct {
	terminal slog.Handler
	file     slog.Handler
}

func fileOnly(ctx context.Context) bool {
	detailed, _ := ctx.Value(DefaultDetailedCookie).(bool)
	return detailed
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.file.Enabled(ctx, level) || (!fileOnly(ctx) && h.terminal.Enabled(ctx, level))
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	if !fileOnly(ctx) && h.terminal.Enabled(ctx, record.Level) {
		if err := h.terminal.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	if !h.file.Enabled(ctx, record.Level) {
		return nil
	}
	return h.file.Handle(ctx, record)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{terminal: h.terminal.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{terminal: h.terminal.WithGroup(name), file: h.file.WithGroup(name)}
}

var levelNames = map[string]slog.Level{
	LogLevelDebug:   slog.LevelDebug,
	LogLevelInfo:    slog.LevelInfo,
	LogLevelWarn:    slog.LevelWarn,
	LogLevelWarning: slog.LevelWarn,
	LogLevelError:   slog.LevelError,
}

// parseLevel falls back to info for anything it does not recognise.
func parseLevel(level string) slog.Level {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return slog.LevelInfo
}

// ptermLevel maps slog levels onto pterm's. Debug goes to trace so pterm
// prints everything the slog level lets through.
func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level < slog.LevelInfo:
		return pterm.LogLevelTrace
	case level < slog.LevelWarn:
		return pterm.LogLevelInfo
	case level < slog.LevelError:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelError
	}
}
