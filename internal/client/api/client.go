package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/postboard/internal/models"
	"github.com/iudanet/postboard/pkg/api"
)

// ErrUnauthorized is matched by *Error values with status 401
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response from the server
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Is позволяет проверять errors.Is(err, ErrUnauthorized)
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// LoginResult содержит данные сессии после успешного входа
type LoginResult struct {
	ExpiresAt  time.Time
	Credential string // значение cookie access_token: "Bearer <token>"
	Username   string
	UserID     int64
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	now        func() time.Time
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Signup регистрирует нового пользователя
func (c *Client) Signup(ctx context.Context, username, password string) (*api.SignupResponse, error) {
	var resp api.SignupResponse
	if _, err := c.doForm(ctx, "/signup", username, password, &resp); err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию и возвращает credential из cookie access_token
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var resp api.LoginResponse
	httpResp, err := c.doForm(ctx, "/login", username, password, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	var cookie *http.Cookie
	for _, ck := range httpResp.Cookies() {
		if ck.Name == api.CookieName {
			cookie = ck
			break
		}
	}
	if cookie == nil || cookie.Value == "" {
		return nil, fmt.Errorf("login response has no %s cookie", api.CookieName)
	}

	expiresAt := cookie.Expires
	if expiresAt.IsZero() {
		expiresAt = c.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	return &LoginResult{
		Credential: cookie.Value,
		Username:   resp.Username,
		UserID:     resp.UserID,
		ExpiresAt:  expiresAt,
	}, nil
}

// Logout просит сервер удалить cookie. Токен при этом не отзывается
func (c *Client) Logout(ctx context.Context, credential string) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/logout", credential, nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Me возвращает текущего пользователя
func (c *Client) Me(ctx context.Context, credential string) (*api.MeResponse, error) {
	var resp api.MeResponse
	if _, err := c.doRequest(ctx, http.MethodGet, "/me", credential, nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp, nil
}

// CreatePost публикует пост от имени текущего пользователя
func (c *Client) CreatePost(ctx context.Context, credential, title, text string) (*models.Post, error) {
	var post models.Post
	req := api.CreatePostRequest{Title: title, Text: text}
	if _, err := c.doRequest(ctx, http.MethodPost, "/post", credential, req, &post); err != nil {
		return nil, fmt.Errorf("create post request failed: %w", err)
	}
	return &post, nil
}

// ListPosts возвращает все посты. credential может быть пустым
func (c *Client) ListPosts(ctx context.Context, credential string) ([]*models.Post, error) {
	var resp api.PostsResponse
	if _, err := c.doRequest(ctx, http.MethodGet, "/posts", credential, nil, &resp); err != nil {
		return nil, fmt.Errorf("list posts request failed: %w", err)
	}
	return resp.Posts, nil
}

// LikePost ставит лайк посту
func (c *Client) LikePost(ctx context.Context, credential string, postID int64) error {
	if _, err := c.doRequest(ctx, http.MethodPost, likePath(postID), credential, nil, nil); err != nil {
		return fmt.Errorf("like request failed: %w", err)
	}
	return nil
}

// UnlikePost убирает лайк
func (c *Client) UnlikePost(ctx context.Context, credential string, postID int64) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, likePath(postID), credential, nil, nil); err != nil {
		return fmt.Errorf("unlike request failed: %w", err)
	}
	return nil
}

func likePath(postID int64) string {
	return "/posts/" + strconv.FormatInt(postID, 10) + "/like"
}

// doForm отправляет username/password как form-urlencoded
func (c *Client) doForm(ctx context.Context, path, username, password string, result any) (*http.Response, error) {
	form := url.Values{}
	form.Set(api.FormUsername, username)
	form.Set(api.FormPassword, password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, result)
}

// doRequest выполняет HTTP запрос с JSON телом
func (c *Client) doRequest(ctx context.Context, method, path, credential string, body, result any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Message = errResp.Message
		}
		return nil, apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp, nil
}
