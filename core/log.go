package core

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// globalLogger stores the process logger. Defaults to a nop logger so the
// dog never writes to the terminal tcell owns; InitLogging swaps in a
// file-backed logger when debug mode is requested.
var globalLogger atomic.Pointer[zap.Logger]

func init() {
	globalLogger.Store(zap.NewNop())
}

// InitLogging enables structured debug logging to a rotating file.
// path is the log file location; the terminal is never written to.
func InitLogging(path string) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	// lumberjack handles rotation and thread-safe writes
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxBackups: 2,
		MaxAge:     7, // days
		Compress:   false,
	})

	logger := zap.New(zapcore.NewCore(encoder, writer, zap.DebugLevel)).Named("code-dog")
	globalLogger.Store(logger)
	zap.ReplaceGlobals(logger)
}

// Log returns the process logger
func Log() *zap.Logger {
	return globalLogger.Load()
}

// SyncLogging flushes buffered log entries. Called on shutdown
func SyncLogging() {
	_ = globalLogger.Load().Sync()
}
