package config

import "time"

// JWTConfig содержит настройки выпуска токенов и хэширования паролей.
// Секрет читается один раз при старте и дальше не меняется.
type JWTConfig struct {
	Secret      string        `yaml:"secret" env:"NOTES_JWT_SECRET"`
	TokenTTL    time.Duration `yaml:"token_ttl" env:"NOTES_JWT_TOKEN_TTL" env-default:"1h"`
	BCryptCost  int           `yaml:"bcrypt_cost" env:"NOTES_JWT_BCRYPT_COST" env-default:"10"`
	HashWorkers int           `yaml:"hash_workers" env:"NOTES_JWT_HASH_WORKERS" env-default:"0"`
}
