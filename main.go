package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sunr3d/smb-archiver/internal/config"
	"github.com/sunr3d/smb-archiver/internal/entrypoint"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("не удалось загрузить конфигурацию: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("не удалось создать логгер: %v", err)
	}
	defer logger.Sync()

	if err := entrypoint.Run(cfg, logger); err != nil {
		logger.Fatal("сервис завершился с ошибкой", zap.Error(err))
	}
}

// newLogger пишет лог одновременно в stderr и в файл-транскрипт прогона.
// Файл пересоздается при каждом запуске.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	logFile, err := os.Create(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать файл лога: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(logFile), level),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	)

	return zap.New(core), nil
}
