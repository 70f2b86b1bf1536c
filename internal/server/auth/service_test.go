package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/postboard/internal/crypto"
	"github.com/iudanet/postboard/internal/models"
	"github.com/iudanet/postboard/internal/server/jwt"
	"github.com/iudanet/postboard/internal/server/storage"
	"github.com/iudanet/postboard/internal/server/storage/sqlite"
)

var testSecret = []byte("test-secret-key-at-least-32-bytes-long")

// memoryUsers returns a UserStorageMock backed by a map
func memoryUsers() *storage.UserStorageMock {
	var (
		mu     sync.Mutex
		nextID int64
		users  = make(map[string]*models.User)
	)

	return &storage.UserStorageMock{
		CreateUserFunc: func(ctx context.Context, user *models.User) error {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := users[user.Username]; ok {
				return storage.ErrUserAlreadyExists
			}
			nextID++
			user.ID = nextID
			stored := *user
			users[user.Username] = &stored
			return nil
		},
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			mu.Lock()
			defer mu.Unlock()
			user, ok := users[username]
			if !ok {
				return nil, storage.ErrUserNotFound
			}
			stored := *user
			return &stored, nil
		},
	}
}

func testHasher() *crypto.PasswordHasher {
	return crypto.NewPasswordHasher(crypto.Argon2Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 32})
}

func newTestService(t *testing.T, users storage.UserStorage, opts ...jwt.Option) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, users, testHasher(), jwt.NewService(testSecret, time.Hour, opts...))
}

func TestService_Signup(t *testing.T) {
	users := memoryUsers()
	svc := newTestService(t, users)

	user, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Len(t, user.Salt, 44)
	assert.Len(t, user.PasswordHash, 64)
	assert.NotContains(t, user.PasswordHash, "secret1")
	assert.False(t, user.CreatedAt.IsZero())

	require.Len(t, users.CreateUserCalls(), 1)
	stored := users.CreateUserCalls()[0].User
	assert.True(t, testHasher().Verify("secret1", stored.Salt, stored.PasswordHash))
}

func TestService_Signup_SamePasswordDifferentSalts(t *testing.T) {
	svc := newTestService(t, memoryUsers())

	alice, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	bob, err := svc.Signup(context.Background(), "bob", "secret1")
	require.NoError(t, err)

	assert.NotEqual(t, alice.Salt, bob.Salt)
	assert.NotEqual(t, alice.PasswordHash, bob.PasswordHash)
}

func TestService_Signup_Duplicate(t *testing.T) {
	users := memoryUsers()
	svc := newTestService(t, users)

	first, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "alice", "another-password")
	require.ErrorIs(t, err, ErrUsernameTaken)

	// второй вызов не должен ничего записывать
	assert.Len(t, users.CreateUserCalls(), 1)

	stored, err := users.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, first.Salt, stored.Salt)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
}

func TestService_Signup_LostRace(t *testing.T) {
	users := &storage.UserStorageMock{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, storage.ErrUserNotFound
		},
		CreateUserFunc: func(ctx context.Context, user *models.User) error {
			return storage.ErrUserAlreadyExists
		},
	}
	svc := newTestService(t, users)

	_, err := svc.Signup(context.Background(), "alice", "secret1")
	require.ErrorIs(t, err, ErrUsernameTaken)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestService_Signup_InvalidUsernameSkipsLookup(t *testing.T) {
	users := memoryUsers()
	svc := newTestService(t, users)

	_, err := svc.Signup(context.Background(), "a b", "secret1")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, users.GetUserByUsernameCalls())
}

func TestService_Signup_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret1"},
		{name: "short username", username: "al", password: "secret1"},
		{name: "username with spaces", username: "al ice", password: "secret1"},
		{name: "empty password", username: "alice", password: ""},
		{name: "short password", username: "alice", password: "12345"},
		{name: "long password", username: "alice", password: strings.Repeat("a", 129)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := memoryUsers()
			svc := newTestService(t, users)

			_, err := svc.Signup(context.Background(), tt.username, tt.password)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, users.CreateUserCalls())
		})
	}
}

func TestService_Signup_StoreUnavailable(t *testing.T) {
	dbErr := errors.New("database is locked")

	t.Run("lookup fails", func(t *testing.T) {
		users := &storage.UserStorageMock{
			GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
				return nil, dbErr
			},
		}
		svc := newTestService(t, users)

		_, err := svc.Signup(context.Background(), "alice", "secret1")
		require.ErrorIs(t, err, ErrStoreUnavailable)
		assert.ErrorIs(t, err, dbErr)
		assert.Empty(t, users.CreateUserCalls())
	})

	t.Run("create fails", func(t *testing.T) {
		users := &storage.UserStorageMock{
			GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
				return nil, storage.ErrUserNotFound
			},
			CreateUserFunc: func(ctx context.Context, user *models.User) error {
				return dbErr
			},
		}
		svc := newTestService(t, users)

		_, err := svc.Signup(context.Background(), "alice", "secret1")
		require.ErrorIs(t, err, ErrStoreUnavailable)
		assert.NotErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestService_Signup_SaltFailure(t *testing.T) {
	users := memoryUsers()
	svc := newTestService(t, users)
	saltErr := errors.New("entropy exhausted")
	svc.newSalt = func() (string, error) { return "", saltErr }

	_, err := svc.Signup(context.Background(), "alice", "secret1")
	require.ErrorIs(t, err, saltErr)
	assert.Empty(t, users.CreateUserCalls())
}

func TestService_Login(t *testing.T) {
	svc := newTestService(t, memoryUsers())

	user, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, time.Hour, session.TTL)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
	assert.Equal(t, "Bearer "+session.Token, session.Credential())

	identity, err := svc.AuthenticateRequest(session.Credential())
	require.NoError(t, err)
	assert.Equal(t, &models.Identity{UserID: user.ID, Username: "alice"}, identity)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestService(t, memoryUsers())

	_, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	_, errWrongPassword := svc.Login(context.Background(), "alice", "wrong")
	_, errUnknownUser := svc.Login(context.Background(), "bob", "secret1")

	require.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownUser, ErrInvalidCredentials)

	// причина различима только внутри сервиса
	assert.ErrorIs(t, errWrongPassword, ErrPasswordMismatch)
	assert.ErrorIs(t, errUnknownUser, ErrUnknownUser)
	assert.NotErrorIs(t, errWrongPassword, ErrUnknownUser)
	assert.NotErrorIs(t, errUnknownUser, ErrPasswordMismatch)
}

func TestService_Login_StoreUnavailable(t *testing.T) {
	dbErr := errors.New("connection refused")
	users := &storage.UserStorageMock{
		GetUserByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, dbErr
		},
	}
	svc := newTestService(t, users)

	_, err := svc.Login(context.Background(), "alice", "secret1")
	require.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_AuthenticateRequest(t *testing.T) {
	svc := newTestService(t, memoryUsers())
	_, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	session, err := svc.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	foreign := jwt.NewService([]byte("another-secret-key-at-least-32-bytes!"), time.Hour)
	foreignToken, _, err := foreign.Issue(session.UserID, "alice")
	require.NoError(t, err)

	tests := []struct {
		wantErr    error
		name       string
		credential string
	}{
		{name: "valid", credential: "Bearer " + session.Token},
		{name: "lowercase scheme", credential: "bearer " + session.Token},
		{name: "empty", credential: "", wantErr: ErrMissingCredential},
		{name: "blank", credential: "   ", wantErr: ErrMissingCredential},
		{name: "no scheme", credential: session.Token, wantErr: ErrMalformedToken},
		{name: "wrong scheme", credential: "Basic " + session.Token, wantErr: ErrMalformedToken},
		{name: "scheme only", credential: "Bearer ", wantErr: ErrMalformedToken},
		{name: "garbage token", credential: "Bearer not-a-jwt", wantErr: ErrMalformedToken},
		{name: "foreign key", credential: "Bearer " + foreignToken, wantErr: ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := svc.AuthenticateRequest(tt.credential)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", identity.Username)
			assert.Equal(t, session.UserID, identity.UserID)
		})
	}
}

func TestService_AuthenticateRequest_Expired(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	svc := newTestService(t, memoryUsers(), jwt.WithClock(func() time.Time { return clock() }))

	_, err := svc.Signup(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	session, err := svc.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	clock = func() time.Time { return now.Add(time.Hour + time.Second) }

	_, err = svc.AuthenticateRequest(session.Credential())
	require.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
	assert.NotErrorIs(t, err, ErrMalformedToken)
}

func TestService_Signup_ConcurrentSameUsername(t *testing.T) {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	defer store.Close()

	svc := newTestService(t, store)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		taken     int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Signup(context.Background(), "alice", "secret1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrUsernameTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, taken)
}

// Сценарий: регистрация, повторная регистрация, вход, ошибки входа, проверка токена
func TestService_Scenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, memoryUsers())

	user, err := svc.Signup(ctx, "alice", "secret1")
	require.NoError(t, err)

	// занятое имя важнее слишком короткого пароля
	_, err = svc.Signup(ctx, "alice", "other")
	require.ErrorIs(t, err, ErrUsernameTaken)

	session, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "bob", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	identity, err := svc.AuthenticateRequest(session.Credential())
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}
