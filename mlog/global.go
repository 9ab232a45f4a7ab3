package mlog

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *Logger

func InitGlobalLogger(logger *Logger) {
	glob := *logger
	glob.zap = glob.zap.WithOptions(zap.AddCallerSkip(1))
	globalLogger = &glob
	Debug = globalLogger.Debug
	Info = globalLogger.Info
	Warn = globalLogger.Warn
	Error = globalLogger.Error
	Critical = globalLogger.Critical
}

// RedirectStdLog routes the standard library logger (used by net/http among others) through logger.
func RedirectStdLog(logger *Logger) {
	l := logger.zap.With(zap.String("source", "stdlog")).WithOptions(getStdLogOption())
	_, _ = zap.RedirectStdLogAt(l, zapcore.ErrorLevel)
	log.SetFlags(0)
}

type LogFunc func(string, ...Field)

var Debug LogFunc = defaultDebugLog
var Info LogFunc = defaultInfoLog
var Warn LogFunc = defaultWarnLog
var Error LogFunc = defaultErrorLog
var Critical LogFunc = defaultCriticalLog
