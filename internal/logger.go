package internal

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// String returns the level name understood by ParseLogLevel
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelDebug:
		return "debug"
	default:
		return "info"
	}
}

var (
	logLevel = LogLevelInfo
	atom     = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger   = newLogger(nil)
)

func newLogger(file zapcore.WriteSyncer) *zap.SugaredLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		atom,
	)

	core := console
	if file != nil {
		fileConfig := zap.NewProductionEncoderConfig()
		fileConfig.TimeKey = "timestamp"
		fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		core = zapcore.NewTee(console, zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), file, atom))
	}

	return zap.New(core).Sugar()
}

// SetLogFile adds a rotating JSON log file next to the console output.
// An empty path removes the file sink.
func SetLogFile(path string) {
	if path == "" {
		logger = newLogger(nil)
		return
	}
	logger = newLogger(zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}))
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	logLevel = level
	switch level {
	case LogLevelError:
		atom.SetLevel(zapcore.ErrorLevel)
	case LogLevelWarn:
		atom.SetLevel(zapcore.WarnLevel)
	case LogLevelDebug:
		atom.SetLevel(zapcore.DebugLevel)
	default:
		atom.SetLevel(zapcore.InfoLevel)
	}
}

// GetLogLevel returns the current global log level
func GetLogLevel() LogLevel {
	return logLevel
}

// ParseLogLevel maps a level name to a LogLevel, defaulting to info
func ParseLogLevel(name string) LogLevel {
	switch name {
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// SyncLogs flushes buffered log entries
func SyncLogs() {
	_ = logger.Sync()
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
