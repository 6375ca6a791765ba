package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/discord-dashboard/core/internal/config"
)

// InstallGlobal builds a structured JSON diagnostics logger writing to w
// and installs it as zap's process-wide default, so zap.S() calls in the
// config loader become visible.  DEVELOPMENT enables debug output; NONE
// installs a no-op logger.
func InstallGlobal(level config.LogLevel, w io.Writer) *zap.SugaredLogger {
	if level == config.LevelNone {
		z := zap.NewNop()
		zap.ReplaceGlobals(z)
		return z.Sugar()
	}

	lvl := zap.InfoLevel
	switch level {
	case config.LevelDevelopment:
		lvl = zap.DebugLevel
	case config.LevelCritical:
		lvl = zap.ErrorLevel
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	z := zap.New(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), lvl),
		zap.AddCaller(),
	)
	zap.ReplaceGlobals(z)
	return z.Sugar()
}
