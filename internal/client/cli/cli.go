package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iudanet/postboard/internal/client/api"
	"github.com/iudanet/postboard/internal/client/iocli"
	"github.com/iudanet/postboard/internal/client/storage"
	"github.com/iudanet/postboard/internal/models"
	pkgapi "github.com/iudanet/postboard/pkg/api"
)

// PasswordEnv задает пароль для signup/login без интерактивного ввода
const PasswordEnv = "POSTBOARD_PASSWORD"

var (
	// ErrNotLoggedIn is returned by commands that need a saved session
	ErrNotLoggedIn = errors.New("not logged in, run 'postboard login' first")
	// ErrSessionExpired is returned when the saved token is past its expiry
	ErrSessionExpired = errors.New("session expired, run 'postboard login' again")
	// ErrUnknownCommand is returned by Run for unsupported commands
	ErrUnknownCommand = errors.New("unknown command")
)

// Backend is the subset of the server API used by the CLI
type Backend interface {
	Signup(ctx context.Context, username, password string) (*pkgapi.SignupResponse, error)
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	Logout(ctx context.Context, credential string) error
	Me(ctx context.Context, credential string) (*pkgapi.MeResponse, error)
	CreatePost(ctx context.Context, credential, title, text string) (*models.Post, error)
	ListPosts(ctx context.Context, credential string) ([]*models.Post, error)
	LikePost(ctx context.Context, credential string, postID int64) error
	UnlikePost(ctx context.Context, credential string, postID int64) error
}

// Passwords задает источники пароля помимо переменной окружения и промпта
type Passwords struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io        iocli.IO
	api       Backend
	sessions  storage.SessionStorage
	now       func() time.Time
	passwords Passwords
}

func New(terminal iocli.IO, apiClient Backend, sessions storage.SessionStorage, passwords Passwords) *Cli {
	return &Cli{
		io:        terminal,
		api:       apiClient,
		sessions:  sessions,
		passwords: passwords,
		now:       time.Now,
	}
}

// getPassword retrieves password from various sources with priority:
// 1. Environment variable POSTBOARD_PASSWORD
// 2. File specified in Passwords.FromFile
// 3. Command-line parameter Passwords.FromArgs
// 4. Interactive prompt (fallback)
func (c *Cli) getPassword(prompt string) (string, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

// username берет имя из первого аргумента или спрашивает его
func (c *Cli) username(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	if username == "" {
		return "", fmt.Errorf("username cannot be empty")
	}
	return username, nil
}

// credential возвращает сохраненный "Bearer <token>" текущей сессии
func (c *Cli) credential(ctx context.Context) (*storage.Session, error) {
	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(c.now()) {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// rejected переводит 401 от сервера в понятную пользователю ошибку
func rejected(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return fmt.Errorf("server rejected the session, run 'postboard login' again: %w", err)
	}
	return err
}

func PrintUsage(w io.Writer) {
	lines := []string{
		"Postboard Client",
		"",
		"Usage:",
		"  postboard [OPTIONS] COMMAND [ARGS]",
		"",
		"Options:",
		"  --version              Show version information",
		"  --server URL           Server URL (default: http://localhost:8080)",
		"  --db PATH              Path to local session database (default: postboard-client.db)",
		"  --password PASSWORD    Password (not recommended, use env var or file)",
		"  --password-file PATH   Path to file containing password",
		"",
		"Password Priority (highest to lowest):",
		"  1. " + PasswordEnv + " environment variable",
		"  2. --password-file (file path)",
		"  3. --password (command line)",
		"  4. Interactive prompt (fallback)",
		"",
		"Commands:",
		"  signup [username]       Register new user",
		"  login [username]        Login and save the session locally",
		"  logout                  Delete the local session",
		"  status                  Show local session status",
		"  whoami                  Ask the server who the session belongs to",
		"  post [title] [text]     Publish a post",
		"  posts                   List all posts",
		"  like <id>               Like a post",
		"  unlike <id>             Remove a like",
		"",
		"Examples:",
		"  postboard signup alice",
		"  postboard login alice",
		"  postboard post 'hello' 'my first post'",
		"  postboard --server https://example.com posts",
	}
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, line)
	}
}
