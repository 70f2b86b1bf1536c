package handlers

import (
	"context"

	"github.com/iudanet/postboard/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

// identityKey ключ для хранения аутентифицированного пользователя в контексте
const identityKey contextKey = "identity"

// WithIdentity возвращает контекст с данными аутентифицированного пользователя
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity извлекает аутентифицированного пользователя из контекста запроса
func GetIdentity(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*models.Identity)
	return identity, ok && identity != nil
}
