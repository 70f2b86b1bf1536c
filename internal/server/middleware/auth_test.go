package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/postboard/internal/crypto"
	"github.com/iudanet/postboard/internal/server/auth"
	"github.com/iudanet/postboard/internal/server/handlers"
	"github.com/iudanet/postboard/internal/server/jwt"
	"github.com/iudanet/postboard/internal/server/storage"
	"github.com/iudanet/postboard/pkg/api"
)

var testSecret = []byte("test-secret-key-at-least-32-bytes-long")

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// setupAuthenticator возвращает auth сервис и выпускающий токены jwt сервис.
// Проверка токена не обращается к хранилищу
func setupAuthenticator(opts ...jwt.Option) (*auth.Service, *jwt.Service) {
	tokens := jwt.NewService(testSecret, time.Hour, opts...)
	svc := auth.NewService(setupTestLogger(), &storage.UserStorageMock{}, crypto.NewPasswordHasher(crypto.DefaultArgon2Params()), tokens)
	return svc, tokens
}

// testHandler is a simple handler that checks context values
func testHandler(t *testing.T, expectedUserID int64, expectedUsername string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := handlers.GetIdentity(r.Context())
		require.True(t, ok, "identity should be in context")
		assert.Equal(t, expectedUserID, identity.UserID)
		assert.Equal(t, expectedUsername, identity.Username)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

func TestRequireAuth_Cookie(t *testing.T) {
	svc, tokens := setupAuthenticator()
	token, _, err := tokens.Issue(42, "alice")
	require.NoError(t, err)

	handler := RequireAuth(setupTestLogger(), svc)(testHandler(t, 42, "alice"))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "Bearer " + token})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRequireAuth_AuthorizationHeader(t *testing.T) {
	svc, tokens := setupAuthenticator()
	token, _, err := tokens.Issue(42, "alice")
	require.NoError(t, err)

	handler := RequireAuth(setupTestLogger(), svc)(testHandler(t, 42, "alice"))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_CookieTakesPrecedence(t *testing.T) {
	svc, tokens := setupAuthenticator()
	cookieToken, _, err := tokens.Issue(1, "alice")
	require.NoError(t, err)
	headerToken, _, err := tokens.Issue(2, "bob")
	require.NoError(t, err)

	handler := RequireAuth(setupTestLogger(), svc)(testHandler(t, 1, "alice"))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "Bearer " + cookieToken})
	req.Header.Set("Authorization", "Bearer "+headerToken)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_Rejected(t *testing.T) {
	now := time.Now()
	svc, _ := setupAuthenticator(jwt.WithClock(func() time.Time { return now }))

	expiredIssuer := jwt.NewService(testSecret, time.Hour, jwt.WithClock(func() time.Time { return now.Add(-2 * time.Hour) }))
	expired, _, err := expiredIssuer.Issue(42, "alice")
	require.NoError(t, err)

	foreignIssuer := jwt.NewService([]byte("some-other-secret-key-32-bytes-long!"), time.Hour)
	foreign, _, err := foreignIssuer.Issue(42, "alice")
	require.NoError(t, err)

	tests := []struct {
		name            string
		authHeader      string
		expectedMessage string
	}{
		{name: "missing credential", authHeader: "", expectedMessage: "authentication required"},
		{name: "wrong scheme", authHeader: "Basic dXNlcjpwYXNz", expectedMessage: "invalid token"},
		{name: "no scheme", authHeader: expired, expectedMessage: "invalid token"},
		{name: "garbage", authHeader: "Bearer invalid.token.here", expectedMessage: "invalid token"},
		{name: "expired", authHeader: "Bearer " + expired, expectedMessage: "token expired"},
		{name: "wrong secret", authHeader: "Bearer " + foreign, expectedMessage: "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireAuth(setupTestLogger(), svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.False(t, called, "handler must not be called")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	svc, tokens := setupAuthenticator()
	token, _, err := tokens.Issue(42, "alice")
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectIdentity bool
	}{
		{name: "valid token", authHeader: "Bearer " + token, expectIdentity: true},
		{name: "anonymous", authHeader: ""},
		{name: "invalid token", authHeader: "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIdentity bool
			handler := OptionalAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, gotIdentity = handlers.GetIdentity(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectIdentity, gotIdentity)
		})
	}
}

func TestCredential(t *testing.T) {
	t.Run("quoted cookie value", func(t *testing.T) {
		// Go кавычит значения cookie с пробелом, при чтении кавычки снимаются
		rec := httptest.NewRecorder()
		http.SetCookie(rec, &http.Cookie{Name: auth.CookieName, Value: "Bearer abc.def.ghi"})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", auth.CookieName+"="+`"Bearer abc.def.ghi"`)

		assert.Contains(t, rec.Header().Get("Set-Cookie"), `"Bearer abc.def.ghi"`)
		assert.Equal(t, "Bearer abc.def.ghi", Credential(req))
	})

	t.Run("header fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer xyz")
		assert.Equal(t, "Bearer xyz", Credential(req))
	})

	t.Run("nothing", func(t *testing.T) {
		assert.Empty(t, Credential(httptest.NewRequest(http.MethodGet, "/", nil)))
	})
}

// failingWriter не может записать тело ответа
type failingWriter struct {
	header http.Header
	status int
}

func (w *failingWriter) Header() http.Header        { return w.header }
func (w *failingWriter) WriteHeader(statusCode int) { w.status = statusCode }
func (w *failingWriter) Write([]byte) (int, error)  { return 0, errors.New("broken pipe") }

func TestRequireAuth_LogsEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	svc, _ := setupAuthenticator()

	handler := RequireAuth(logger, svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	}))

	w := &failingWriter{header: http.Header{}}
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.status)
	assert.Equal(t, "application/json", w.header.Get("Content-Type"))
	assert.Contains(t, logs.String(), "failed to encode JSON response")
	assert.Contains(t, logs.String(), "broken pipe")
}
