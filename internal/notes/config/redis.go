package config

import (
	"time"

	"gonotes/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша заметок.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" env:"NOTES_REDIS_ENABLED" env-default:"false"`
	Host         string        `yaml:"host" env:"NOTES_REDIS_HOST" env-default:"localhost"`
	Port         int           `yaml:"port" env:"NOTES_REDIS_PORT" env-default:"6379"`
	Password     string        `yaml:"password" env:"NOTES_REDIS_PASSWORD" env-default:""`
	DB           int           `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	PoolSize     int           `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle      int           `yaml:"min_idle" env:"NOTES_REDIS_MIN_IDLE" env-default:"2"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"NOTES_REDIS_DIAL_TIMEOUT" env-default:"3s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"NOTES_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"NOTES_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	NoteTTL      time.Duration `yaml:"note_ttl" env:"NOTES_REDIS_NOTE_TTL" env-default:"5m"`

	// Повторные попытки подключения при старте.
	ConnectAttempts int           `yaml:"connect_attempts" env:"NOTES_REDIS_CONNECT_ATTEMPTS" env-default:"3"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff" env:"NOTES_REDIS_CONNECT_BACKOFF" env-default:"500ms"`

	// Выключатель кэша: после BreakerFailures ошибок подряд Redis не опрашивается BreakerTimeout.
	BreakerFailures int           `yaml:"breaker_failures" env:"NOTES_REDIS_BREAKER_FAILURES" env-default:"5"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout" env:"NOTES_REDIS_BREAKER_TIMEOUT" env-default:"10s"`
}

// ClientConfig переводит настройки в конфигурацию общего клиента Redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:         c.Host,
		Port:         c.Port,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MinIdle:      c.MinIdle,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}
