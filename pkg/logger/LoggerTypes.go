package clog

import "go.uber.org/zap"


type CustomLog struct {
	Name string
	sugar *zap.SugaredLogger
}

const (
	LogDirEnv = "SYNCPAY_LOG_DIR"
	LogLevelEnv = "SYNCPAY_LOG_LEVEL"
	LogFileName = "syncpay.log"

	MaxLogSizeInMB = 100
	MaxLogBackups = 10
	MaxLogAgeInDays = 30
)
