package clog

import "os"
import "path/filepath"
import "sync"

import "go.uber.org/zap"
import "go.uber.org/zap/zapcore"
import "gopkg.in/natefinch/lumberjack.v2"


//=========================================== Logger


/*
	each module creates a named logger on init:
		var Log = clog.NewCustomLog(NAME)

	all named loggers share a single zap core writing to stdout, and additionally
	to a rotated file when LogDirEnv is set --> rotation handled by lumberjack so
	long running clusters do not fill the disk
*/

var coreOnce sync.Once
var sharedCore zapcore.Core

func NewCustomLog(name string) *CustomLog {
	coreOnce.Do(initSharedCore)

	zapLog := zap.New(sharedCore, zap.AddStacktrace(zapcore.FatalLevel))

	return &CustomLog{
		Name: name,
		sugar: zapLog.Named(name).Sugar(),
	}
}

func (cLog *CustomLog) Debug(msg ...interface{}) {
	cLog.sugar.Debug(msg...)
}

func (cLog *CustomLog) Info(msg ...interface{}) {
	cLog.sugar.Info(msg...)
}

func (cLog *CustomLog) Warn(msg ...interface{}) {
	cLog.sugar.Warn(msg...)
}

func (cLog *CustomLog) Error(msg ...interface{}) {
	cLog.sugar.Error(msg...)
}

func (cLog *CustomLog) Fatal(msg ...interface{}) {
	cLog.sugar.Fatal(msg...)
}

func initSharedCore() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), logLevelFromEnv())

	logDir := os.Getenv(LogDirEnv)
	if logDir == "" {
		sharedCore = consoleCore
		return
	}

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	fileSink := &lumberjack.Logger{
		Filename: filepath.Join(logDir, LogFileName),
		MaxSize: MaxLogSizeInMB,
		MaxBackups: MaxLogBackups,
		MaxAge: MaxLogAgeInDays,
		Compress: true,
	}

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(fileSink), logLevelFromEnv())

	sharedCore = zapcore.NewTee(consoleCore, fileCore)
}

func logLevelFromEnv() zapcore.Level {
	switch os.Getenv(LogLevelEnv) {
		case "debug":
			return zapcore.DebugLevel
		case "warn":
			return zapcore.WarnLevel
		case "error":
			return zapcore.ErrorLevel
		default:
			return zapcore.InfoLevel
	}
}
