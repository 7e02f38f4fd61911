package app

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/battleship-server/internal/config"
)

// NewLogger writes colored text in development and JSON otherwise. When
// cfg.File is set, entries are also appended to a rotated log file.
func NewLogger(cfg *config.Logging) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cfg.Level)

	var formatter logrus.Formatter = &logrus.JSONFormatter{}
	if config.Development() {
		formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true}
	}
	logger.SetFormatter(formatter)

	if cfg.File == "" {
		return logger, nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Level:      cfg.Level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open log file %s: %w", cfg.File, err)
	}
	logger.AddHook(hook)

	return logger, nil
}
