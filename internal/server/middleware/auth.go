package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/postboard/internal/models"
	"github.com/iudanet/postboard/internal/server/auth"
	"github.com/iudanet/postboard/internal/server/handlers"
)

// Authenticator validates a transport credential ("Bearer <token>")
type Authenticator interface {
	AuthenticateRequest(credential string) (*models.Identity, error)
}

// Credential извлекает учетные данные из запроса.
// Cookie access_token имеет приоритет над заголовком Authorization
func Credential(r *http.Request) string {
	if cookie, err := r.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get("Authorization")
}

// RequireAuth создает middleware, которое пропускает только аутентифицированные запросы
// и кладет Identity в контекст
func RequireAuth(logger *slog.Logger, authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authenticator.AuthenticateRequest(Credential(r))
			if err != nil {
				logger.WarnContext(r.Context(), "request rejected",
					"request_id", GetRequestID(r.Context()),
					"path", r.URL.Path,
					"error", err)

				w.Header().Set("WWW-Authenticate", auth.Scheme)
				handlers.WriteError(w, logger, rejectionMessage(err), http.StatusUnauthorized)
				return
			}

			logger.DebugContext(r.Context(), "User authenticated",
				"user_id", identity.UserID,
				"username", identity.Username)

			next.ServeHTTP(w, r.WithContext(handlers.WithIdentity(r.Context(), identity)))
		})
	}
}

// OptionalAuth кладет Identity в контекст, если запрос несет валидный токен.
// Запросы без токена или с невалидным токеном проходят как анонимные
func OptionalAuth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, err := authenticator.AuthenticateRequest(Credential(r)); err == nil {
				r = r.WithContext(handlers.WithIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		return "authentication required"
	case errors.Is(err, auth.ErrTokenExpired):
		return "token expired"
	default:
		return "invalid token"
	}
}
