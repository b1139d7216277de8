package logger

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"

	"github.com/thushan/shifter/internal/core/domain"
	"github.com/thushan/shifter/theme"
)

// StyledLogger is the logger handed to every component. The pretty variant
// colours endpoints, counts and modes; the plain variant writes them as-is.
type StyledLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	InfoWithCount(msg string, count int, args ...any)
	InfoWithEndpoint(msg string, endpoint string, args ...any)
	WarnWithEndpoint(msg string, endpoint string, args ...any)
	ErrorWithEndpoint(msg string, endpoint string, args ...any)
	InfoWithMode(msg string, mode domain.Mode, args ...any)

	GetUnderlying() *slog.Logger
	WithRequestID(requestID string) StyledLogger
	With(args ...any) StyledLogger
}

// NewWithTheme builds the root logger and the styled wrapper that matches
// the terminal: pretty when colours are available, plain otherwise.
func NewWithTheme(cfg *Config) (*slog.Logger, StyledLogger, func(), error) {
	log, cleanup, err := New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.PrettyLogs {
		return log, NewPrettyStyledLogger(log, theme.GetTheme(cfg.Theme)), cleanup, nil
	}
	return log, NewPlainStyledLogger(log), cleanup, nil
}

// styledLogger decorates message suffixes with theme styles. A nil theme
// writes them unstyled.
type styledLogger struct {
	logger *slog.Logger
	theme  *theme.Theme
}

func NewPlainStyledLogger(log *slog.Logger) StyledLogger {
	return &styledLogger{logger: log}
}

func NewPrettyStyledLogger(log *slog.Logger, t *theme.Theme) StyledLogger {
	if t == nil {
		t = theme.Default()
	}
	return &styledLogger{logger: log, theme: t}
}

func (sl *styledLogger) Debug(msg string, args ...any) { sl.logger.Debug(msg, args...) }
func (sl *styledLogger) Info(msg string, args ...any)  { sl.logger.Info(msg, args...) }
func (sl *styledLogger) Warn(msg string, args ...any)  { sl.logger.Warn(msg, args...) }
func (sl *styledLogger) Error(msg string, args ...any) { sl.logger.Error(msg, args...) }

func (sl *styledLogger) InfoWithCount(msg string, count int, args ...any) {
	sl.logger.Info(msg+" "+sl.paint(sl.style(func(t *theme.Theme) *pterm.Style { return t.Counts }), fmt.Sprintf("(%d)", count)), args...)
}

func (sl *styledLogger) InfoWithEndpoint(msg string, endpoint string, args ...any) {
	sl.logger.Info(sl.withEndpoint(msg, endpoint), args...)
}

func (sl *styledLogger) WarnWithEndpoint(msg string, endpoint string, args ...any) {
	sl.logger.Warn(sl.withEndpoint(msg, endpoint), args...)
}

func (sl *styledLogger) ErrorWithEndpoint(msg string, endpoint string, args ...any) {
	sl.logger.Error(sl.withEndpoint(msg, endpoint), args...)
}

func (sl *styledLogger) InfoWithMode(msg string, mode domain.Mode, args ...any) {
	sl.logger.Info(msg+" "+sl.paint(sl.modeStyle(mode), mode.DisplayName()), args...)
}

func (sl *styledLogger) GetUnderlying() *slog.Logger {
	return sl.logger
}

func (sl *styledLogger) WithRequestID(requestID string) StyledLogger {
	return sl.With("request_id", requestID)
}

func (sl *styledLogger) With(args ...any) StyledLogger {
	return &styledLogger{logger: sl.logger.With(args...), theme: sl.theme}
}

func (sl *styledLogger) withEndpoint(msg, endpoint string) string {
	return msg + " " + sl.paint(sl.style(func(t *theme.Theme) *pterm.Style { return t.Endpoint }), endpoint)
}

func (sl *styledLogger) style(pick func(*theme.Theme) *pterm.Style) *pterm.Style {
	if sl.theme == nil {
		return nil
	}
	return pick(sl.theme)
}

func (sl *styledLogger) modeStyle(mode domain.Mode) *pterm.Style {
	if sl.theme == nil {
		return nil
	}
	switch mode {
	case domain.ModeNonThinking:
		return sl.theme.ModeNonThinking
	case domain.ModePrecise:
		return sl.theme.ModePrecise
	case domain.ModeExplicitThinking:
		return sl.theme.ModeThinking
	default:
		return sl.theme.ModeGeneral
	}
}

func (sl *styledLogger) paint(style *pterm.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Sprint(text)
}

// FatalWithCleanup logs at error, runs cleanup so the log file is flushed,
// then exits with status 1.
func FatalWithCleanup(log *slog.Logger, cleanup func(), msg string, args ...any) {
	log.Error(msg, args...)
	if cleanup != nil {
		cleanup()
	}
	os.Exit(1)
}
