package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init 初始化全局 zap Logger。
// development 环境用彩色控制台输出，其余环境 JSON。
func Init(env string) *zap.Logger {
	var logger *zap.Logger
	var err error

	if env == "development" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = cfg.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("初始化日志失败: " + err.Error())
	}

	zap.ReplaceGlobals(logger)
	return logger
}
