package config

import (
	"strings"

	"gonotes/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment переводит режим в окружение logger. Все, кроме production, - development.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if strings.EqualFold(strings.TrimSpace(l.Mode), string(logger.Production)) {
		return logger.Production
	}
	return logger.Development
}
