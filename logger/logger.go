package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger is a zerolog logger carrying the service name and any fields
// bound with the With* methods.
type Logger struct {
	logger  zerolog.Logger
	service string
}

// Init builds the process-wide logger from cfg after applying defaults.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	globalLogger = New(cfg, cfg.ServiceName)
}

// New creates a logger writing to cfg.Output.
func New(cfg *Config, serviceName string) *Logger {
	return NewWithWriter(cfg, serviceName, outputWriter(cfg.Output))
}

// NewWithWriter creates a logger writing to w. An unknown level falls back
// to info; any format other than console is JSON.
func NewWithWriter(cfg *Config, serviceName string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w)
	if strings.EqualFold(cfg.Format, "console") {
		zl = zerolog.New(consoleWriter(w, cfg.NoColor, serviceName))
	}

	zc := zl.Level(level).With()
	if cfg.Timestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}
	if serviceName != "" {
		zc = zc.Str("service", serviceName)
	}
	return &Logger{logger: zc.Logger(), service: serviceName}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

func (l *Logger) derive(zc zerolog.Context) *Logger {
	return &Logger{logger: zc.Logger(), service: l.service}
}

// WithContext adds the trace and span IDs of the active span in ctx.
// Without a recording span the logger is returned unchanged.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return l.derive(l.logger.With().
		Str(FieldTraceID, sc.TraceID().String()).
		Str(FieldSpanID, sc.SpanID().String()))
}

// WithComponent tags every line with the component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.logger.With().Str(FieldComponent, name))
}

// WithFields binds fields to every line.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return l.derive(l.logger.With().Fields(fields))
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	write(l.logger.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	write(l.logger.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	write(l.logger.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	write(l.logger.Error(), msg, fields)
}

func write(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, fm := range fields {
		event.Fields(fm)
	}
	event.Msg(msg)
}

var globalLogger *Logger

// GetGlobalLogger returns the logger set by Init, or an info-level console
// logger on stderr when Init was never called.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		globalLogger = New(&Config{Level: "info", Format: "console", Output: "stderr", Timestamp: true}, "")
	}
	return globalLogger
}

// Debug logs through the global logger.
func Debug(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Debug(msg, fields...)
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

// consoleWriter prints "[SVC][LVL] message key:value" lines, where SVC is
// the first three letters of the service name.
func consoleWriter(w io.Writer, noColor bool, serviceName string) zerolog.ConsoleWriter {
	prefix := ""
	if len(serviceName) >= 3 {
		prefix = colorize("["+strings.ToUpper(serviceName[:3])+"]", "\033[34m", noColor)
	}
	return zerolog.ConsoleWriter{
		Out:           w,
		TimeFormat:    "15:04:05",
		NoColor:       noColor,
		FieldsExclude: []string{"service"},
		FormatLevel: func(i interface{}) string {
			return prefix + levelTag(fmt.Sprint(i), noColor)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
		FormatFieldValue: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
	}
}

var levelTags = map[string][2]string{
	"debug": {"[DBG]", "\033[36m"},
	"info":  {"[INF]", "\033[32m"},
	"warn":  {"[WRN]", "\033[33m"},
	"error": {"[ERR]", "\033[31m"},
	"fatal": {"[FTL]", "\033[35m"},
}

func levelTag(level string, noColor bool) string {
	t, ok := levelTags[strings.ToLower(level)]
	if !ok {
		return "[" + strings.ToUpper(level) + "]"
	}
	return colorize(t[0], t[1], noColor)
}

func colorize(s, color string, noColor bool) string {
	if noColor {
		return s
	}
	return color + s + "\033[0m"
}
