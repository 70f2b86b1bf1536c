package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SaltSize - размер соли в байтах
const SaltSize = 32

// GenerateSalt генерирует криптографически случайную соль
// и возвращает ее в Base64 (всегда 44 символа)
func GenerateSalt() (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}
