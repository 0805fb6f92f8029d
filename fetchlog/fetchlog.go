// Package fetchlog builds the debug logger. Logging is off unless debug is
// requested; probe failures are never shown to the user otherwise.
package fetchlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where debug output goes.
type Options struct {
	// Debug enables logging at debug level.
	Debug bool

	// File, when set, sends the log to a size-rotated file instead of stderr.
	File string
}

// New returns a logger for opts. The returned close function flushes and
// releases the log file and is safe to call when logging is disabled.
func New(opts Options) (*zap.Logger, func()) {
	if !opts.Debug {
		return zap.NewNop(), func() {}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	var sink zapcore.WriteSyncer
	closeSink := func() {}
	if opts.File != "" {
		ll := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     30, // days
		}
		sink = zapcore.AddSync(ll)
		closeSink = func() { _ = ll.Close() }
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, zap.DebugLevel)
	logger := zap.New(core).Named("fumofetch")
	return logger, func() {
		_ = logger.Sync()
		closeSink()
	}
}
