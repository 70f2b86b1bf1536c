package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/postboard/internal/models"
	"github.com/iudanet/postboard/internal/server/auth"
	"github.com/iudanet/postboard/pkg/api"
)

// maxFormSize ограничивает размер тела формы signup/login
const maxFormSize = 4 << 10

// AuthService is the part of auth.Service used by AuthHandler
type AuthService interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*auth.Session, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	responder
	service      AuthService
	secureCookie bool
}

// NewAuthHandler создает новый handler для авторизации.
// secureCookie выключается только для локальной разработки по HTTP
func NewAuthHandler(logger *slog.Logger, service AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		responder:    responder{logger: logger},
		service:      service,
		secureCookie: secureCookie,
	}
}

// Signup обрабатывает POST /signup
// Регистрация нового пользователя. Токен не выдается
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, password, ok := h.parseCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.service.Signup(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			h.sendError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, auth.ErrUsernameTaken):
			h.sendError(w, "username already taken", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to register user", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	resp := api.SignupResponse{
		UserID:  user.ID,
		Message: "User registered successfully",
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// Login обрабатывает POST /login
// Аутентификация пользователя, токен выдается в cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, password, ok := h.parseCredentials(w, r)
	if !ok {
		return
	}

	session, err := h.service.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// одинаковый ответ для неизвестного пользователя и неверного пароля
			h.sendError(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to log in user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.sessionCookie(session.Credential(), session.ExpiresAt, int(session.TTL.Seconds())))

	resp := api.LoginResponse{
		UserID:    session.UserID,
		Username:  session.Username,
		ExpiresIn: int64(session.TTL.Seconds()),
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Logout обрабатывает POST /logout
// Удаляет cookie на клиенте. Токен остается валидным до истечения срока
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", time.Unix(0, 0), -1))
	h.sendJSON(w, api.MessageResponse{Message: "Logged out"}, http.StatusOK)
}

// Me обрабатывает GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r.Context())
	if !ok {
		h.sendError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	h.sendJSON(w, api.MeResponse{UserID: identity.UserID, Username: identity.Username}, http.StatusOK)
}

// parseCredentials читает username и password из формы.
// При ошибке ответ уже отправлен
func (h *AuthHandler) parseCredentials(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		h.logger.WarnContext(r.Context(), "failed to parse form", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return "", "", false
	}

	username := r.PostForm.Get(api.FormUsername)
	password := r.PostForm.Get(api.FormPassword)
	if username == "" || password == "" {
		h.sendError(w, "username and password are required", http.StatusBadRequest)
		return "", "", false
	}

	return username, password, true
}

// sessionCookie собирает cookie с учетными данными сессии
func (h *AuthHandler) sessionCookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
