package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	wailsLogger "github.com/wailsapp/wails/v2/pkg/logger"
)

// New builds the application logger writing to stdout at the given level name.
// Unknown or empty level names fall back to info.
func New(level string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).
		With().
		Timestamp().
		Str("app", "omnihub").
		Logger().
		Level(ParseLevel(level))
}

// ParseLevel maps a config level name onto a zerolog level.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// WailsLevel maps a zerolog level onto the closest Wails runtime level.
func WailsLevel(level zerolog.Level) wailsLogger.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return wailsLogger.TRACE
	case zerolog.DebugLevel:
		return wailsLogger.DEBUG
	case zerolog.WarnLevel:
		return wailsLogger.WARNING
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return wailsLogger.ERROR
	default:
		return wailsLogger.INFO
	}
}

// WailsAdapter routes the Wails runtime log calls (LogInfof and friends) into zerolog.
type WailsAdapter struct {
	log zerolog.Logger
}

// NewWailsAdapter wraps log so it satisfies the Wails logger interface.
func NewWailsAdapter(log zerolog.Logger) *WailsAdapter {
	return &WailsAdapter{log: log.With().Str("source", "wails").Logger()}
}

func (w *WailsAdapter) Print(message string)   { w.log.Log().Msg(message) }
func (w *WailsAdapter) Trace(message string)   { w.log.Trace().Msg(message) }
func (w *WailsAdapter) Debug(message string)   { w.log.Debug().Msg(message) }
func (w *WailsAdapter) Info(message string)    { w.log.Info().Msg(message) }
func (w *WailsAdapter) Warning(message string) { w.log.Warn().Msg(message) }
func (w *WailsAdapter) Error(message string)   { w.log.Error().Msg(message) }

// Fatal logs at error level. The Wails runtime decides whether to exit; the
// adapter never terminates the process on its own.
func (w *WailsAdapter) Fatal(message string) { w.log.Error().Bool("fatal", true).Msg(message) }

var _ wailsLogger.Logger = (*WailsAdapter)(nil)
