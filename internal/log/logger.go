package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"

	"mover/internal/errors"
)

const timestampFormat = "2006-01-02 15:04:05"

// Level is the severity threshold of a Logger
type Level = logrus.Level

// Levels understood by WithLevel
const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
)

var logger = NewLogger(WithLevel(WarnLevel))

// Field is a key/value pair attached to a log entry
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured log lines
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

type options struct {
	out      io.Writer
	json     bool
	level    Level
	filePath string
}

// Option configures a Logger created by NewLogger
type Option func(*options)

// WithOutput sets where log lines are written (default stderr)
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithLevel sets the minimum level that is written
func WithLevel(level Level) Option {
	return func(o *options) { o.level = level }
}

// WithFile tees log lines into the file at path, appending to it
func WithFile(path string) Option {
	return func(o *options) { o.filePath = path }
}

// NewLogger creates a Logger. Without options it writes text lines at info
// level to stderr.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr, level: InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(o.level)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(lineFormatter{})
	}

	l := &Logger{}
	out := o.out
	if o.filePath != "" {
		f, err := os.OpenFile(o.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(o.out, "[log] cannot open log file %s: %v\n", o.filePath, err)
		} else {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}
	base.SetOutput(out)
	l.entry = logrus.NewEntry(base)
	return l
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a logger that adds fields to every entry
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError returns a logger carrying err and, for application errors,
// its kind and path or parameter.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}
	fields := []Field{F("error", err.Error())}
	if kind := errors.KindOf(err); kind != errors.Unknown {
		fields = append(fields, F("error_kind", kind.String()))
	}
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	return l.With(fields...)
}

func (l *Logger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// SetLevel changes the minimum level of l and every logger derived from it
func (l *Logger) SetLevel(level Level) {
	l.entry.Logger.SetLevel(level)
}

// Configure replaces the package logger
func Configure(opts ...Option) {
	_ = logger.Close()
	logger = NewLogger(opts...)
}

// Setup configures the package logger for the CLI. Verbosity 0 logs warnings,
// 1 adds info and 2 or more adds debug. With toFile, lines are also appended
// to mover/mover.log under the XDG state directory.
func Setup(verbosity int, toFile bool) error {
	level := WarnLevel
	switch {
	case verbosity == 1:
		level = InfoLevel
	case verbosity >= 2:
		level = DebugLevel
	}

	opts := []Option{WithLevel(level)}
	var pathErr error
	if toFile {
		path, err := xdg.StateFile("mover/mover.log")
		if err != nil {
			pathErr = errors.Wrapf(err, "cannot resolve log file path %s", "mover/mover.log")
		} else {
			opts = append(opts, WithFile(path))
		}
	}
	Configure(opts...)
	logger.Debugf("logger initialized (verbosity=%d)", verbosity)
	return pathErr
}

// Default returns the package logger
func Default() *Logger {
	return logger
}

// LogWithFields returns the package logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger with err attached
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

func Debug(args ...interface{})                 { logger.Debug(args...) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func Info(args ...interface{})                  { logger.Info(args...) }
func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warn(args ...interface{})                  { logger.Warn(args...) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Error(args ...interface{})                 { logger.Error(args...) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// lineFormatter renders "[2006-01-02 15:04:05] LEVEL: message key=value ..."
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s", e.Time.Format(timestampFormat), levelName(e.Level), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(level Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}
