// internal/logger/logger.go
//
// Severity logger (Zap + Lumberjack).
//
// Context
// -------
// Every report, fatal or not, ends up here as an error value.  The logger
// renders one line per report:
//
//	[2026-01-02T15:04:05.000Z] [WARNING]: [ConfigurationError] message
//
// followed by ` | For more details, visit the documentation: <url>` when
// the error carries a support URL.  The configured `logs.level` decides
// which lines reach the console:
//
//   • NONE         – nothing, not even the file sink.
//   • CRITICAL     – CRITICAL only.
//   • IMPORTANT    – CRITICAL, WARNING, and INFO.
//   • DEVELOPMENT  – everything.
//
// DEVELOPMENT and INFO go to stdout, WARNING and CRITICAL to stderr, via
// two Zap cores with a message-only console encoder.  When
// `logs.saveToFile` is set, every line that passes the NONE check is also
// appended to `logs.file` through Lumberjack.
//
// Usage
// -----
//
//	log, err := logger.FromProvider(provider)
//	if err := log.Handle(validator.Validate()); err != nil { … }
//
// Notes
// -----
// • A sink write failure is reported once, to the console only, and never
//   returned.  A later successful write re-arms the report.
// • Handle replaces try/catch-style interception: callers route errors
//   through it explicitly.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/discord-dashboard/core/internal/config"
	"github.com/discord-dashboard/core/internal/fault"
	"github.com/discord-dashboard/core/internal/metrics"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Logger routes reports by severity.  Safe for concurrent use.
type Logger struct {
	level   config.LogLevel
	console *zap.Logger
	now     func() time.Time

	mu         sync.Mutex
	sink       io.Writer
	closer     io.Closer
	sinkFailed bool
}

/*────────────────────────────── options ───────────────────────────────────*/

type options struct {
	stdout, stderr io.Writer
	sink           io.Writer
	now            func() time.Time
}

// Option configures a Logger.
type Option func(*options)

// WithConsole replaces os.Stdout and os.Stderr.
func WithConsole(stdout, stderr io.Writer) Option {
	return func(o *options) { o.stdout, o.stderr = stdout, stderr }
}

// WithSink replaces the Lumberjack file writer.  It only takes effect when
// saveToFile is on.
func WithSink(w io.Writer) Option {
	return func(o *options) { o.sink = w }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

/*──────────────────────────── constructors ────────────────────────────────*/

// New builds a Logger for the given logs section.
func New(cfg config.Logs, opts ...Option) *Logger {
	o := options{stdout: os.Stdout, stderr: os.Stderr, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	encCfg := zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	}
	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l < zapcore.WarnLevel })
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.WarnLevel })

	l := &Logger{
		level: cfg.Level,
		now:   o.now,
		console: zap.New(zapcore.NewTee(
			zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(o.stdout), low),
			zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(o.stderr), high),
		)),
	}

	if cfg.SaveToFile && cfg.File != "" {
		if o.sink != nil {
			l.sink = o.sink
		} else {
			fileSink := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    50, // MB
				MaxBackups: 7,
				MaxAge:     14, // days
			}
			l.sink, l.closer = fileSink, fileSink
		}
	}
	return l
}

// FromProvider builds a Logger from the resolved configuration.  When the
// configuration cannot be resolved it falls back to config.DefaultLogs and
// returns the resolution error alongside the usable Logger.
func FromProvider(p *config.Provider, opts ...Option) (*Logger, error) {
	res, err := p.Get()
	if err != nil {
		return New(config.DefaultLogs(), opts...), err
	}
	return New(res.Config().Logs, opts...), nil
}

/*────────────────────────────── logging ───────────────────────────────────*/

// Log reports err and appends it to the sink.
func (l *Logger) Log(err error) { l.log(err, true) }

// LogTransient reports err to the console only.
func (l *Logger) LogTransient(err error) { l.log(err, false) }

// Handle logs err and returns it only when it is CRITICAL.
func (l *Logger) Handle(err error) error {
	if err == nil {
		return nil
	}
	l.Log(err)
	if fault.IsCritical(err) {
		return err
	}
	return nil
}

// Format renders err as one log line without a trailing newline.
func (l *Logger) Format(err error) string {
	line := fmt.Sprintf("[%s] [%s]: [%s] %s",
		l.now().UTC().Format(timeLayout),
		fault.SeverityOf(err),
		fault.KindOf(err),
		err.Error(),
	)
	var fe *fault.Error
	if errors.As(err, &fe) && fe.Details.SupportURL != "" {
		line += " | For more details, visit the documentation: " + fe.Details.SupportURL
	}
	return line
}

// Close releases the file sink, if any.
func (l *Logger) Close() error {
	_ = l.console.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *Logger) log(err error, persist bool) {
	if err == nil {
		return
	}
	sev := fault.SeverityOf(err)
	metrics.ReportsTotal.WithLabelValues(sev.String(), string(fault.KindOf(err))).Inc()

	if l.level == config.LevelNone {
		return
	}

	line := l.Format(err)
	if l.enabled(sev) {
		l.emit(sev, line)
	}
	if persist {
		l.persist(line)
	}
}

// enabled applies the level table from the package comment.  Unknown
// levels behave like IMPORTANT.
func (l *Logger) enabled(sev fault.Severity) bool {
	switch sev {
	case fault.Critical:
		return true
	case fault.Warning:
		return l.level != config.LevelCritical
	case fault.Info:
		return l.level != config.LevelCritical
	case fault.Development:
		return l.level == config.LevelDevelopment
	default:
		return false
	}
}

func (l *Logger) emit(sev fault.Severity, line string) {
	switch sev {
	case fault.Critical:
		l.console.Error(line)
	case fault.Warning:
		l.console.Warn(line)
	case fault.Info:
		l.console.Info(line)
	default:
		l.console.Debug(line)
	}
}

func (l *Logger) persist(line string) {
	l.mu.Lock()
	if l.sink == nil {
		l.mu.Unlock()
		return
	}
	_, err := io.WriteString(l.sink, line+"\n")
	first := err != nil && !l.sinkFailed
	l.sinkFailed = err != nil
	l.mu.Unlock()

	if first {
		l.LogTransient(fault.Logic(
			fmt.Sprintf("Could not save log to file: %v", err),
			fault.Details{Priority: fault.Warning},
		).Wrap(err))
	}
}
