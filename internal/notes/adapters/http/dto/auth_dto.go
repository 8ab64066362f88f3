// Package dto содержит объекты запросов и ответов HTTP API.
package dto

import "errors"

// ErrMalformedBody возвращается, если тело запроса не удалось разобрать.
var ErrMalformedBody = errors.New("malformed request body")

// LoginRequest представляет запрос на вход.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse представляет ответ на успешный вход.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// CreateUserRequest представляет запрос на регистрацию пользователя.
type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}
