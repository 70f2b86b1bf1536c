package models

import "time"

// User представляет зарегистрированного пользователя
type User struct {
	CreatedAt    time.Time `json:"created_at"` // время регистрации
	Username     string    `json:"username"`   // уникальный, неизменяемый username
	Salt         string    `json:"-"`          // base64 encoded salt (32 bytes), генерируется один раз
	PasswordHash string    `json:"-"`          // hex argon2id(password || salt)
	ID           int64     `json:"user_id"`    // назначается хранилищем при создании
}

// Identity is the authenticated principal extracted from a session token.
type Identity struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
}
