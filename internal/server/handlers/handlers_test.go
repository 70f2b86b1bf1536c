package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/postboard/internal/crypto"
	"github.com/iudanet/postboard/internal/models"
	"github.com/iudanet/postboard/internal/server/auth"
	"github.com/iudanet/postboard/internal/server/jwt"
	"github.com/iudanet/postboard/internal/server/storage/sqlite"
)

var testSecret = []byte("test-secret-key-at-least-32-bytes-long")

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestAuth возвращает auth сервис поверх in-memory SQLite
func setupTestAuth(t *testing.T) (*auth.Service, *sqlite.Storage) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	hasher := crypto.NewPasswordHasher(crypto.Argon2Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 32})
	tokens := jwt.NewService(testSecret, time.Hour)

	return auth.NewService(setupTestLogger(), store, hasher, tokens), store
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func credentials(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

func withIdentity(req *http.Request, userID int64, username string) *http.Request {
	return req.WithContext(WithIdentity(req.Context(), &models.Identity{UserID: userID, Username: username}))
}
