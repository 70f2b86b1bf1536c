package api

// Session credential transport
const (
	// CookieName is the cookie that carries the session credential
	CookieName = "access_token"
	// AuthScheme prefixes the token in the credential: "Bearer <token>"
	AuthScheme = "Bearer"
)

// Signup and login requests are sent as application/x-www-form-urlencoded
// with the fields below.
const (
	FormUsername = "username"
	FormPassword = "password"
)

// SignupResponse представляет ответ на успешную регистрацию
type SignupResponse struct {
	Message string `json:"message"` // сообщение об успешной регистрации
	UserID  int64  `json:"user_id"` // идентификатор пользователя
}

// LoginResponse представляет ответ на успешный вход.
// Сам токен передается в cookie access_token
type LoginResponse struct {
	Username  string `json:"username"`
	UserID    int64  `json:"user_id"`
	ExpiresIn int64  `json:"expires_in"` // время жизни токена в секундах
}

// MeResponse представляет текущего аутентифицированного пользователя
type MeResponse struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
}

// MessageResponse представляет ответ с простым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
