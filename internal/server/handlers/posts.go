package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/postboard/internal/models"
	"github.com/iudanet/postboard/internal/server/storage"
	"github.com/iudanet/postboard/internal/validation"
	"github.com/iudanet/postboard/pkg/api"
)

// maxPostBodySize ограничивает размер JSON тела при создании поста
const maxPostBodySize = 16 << 10

// PostHandler обрабатывает запросы к постам и лайкам
type PostHandler struct {
	responder
	storage storage.PostStorage
}

// NewPostHandler создает новый handler для постов
func NewPostHandler(logger *slog.Logger, storage storage.PostStorage) *PostHandler {
	return &PostHandler{
		responder: responder{logger: logger},
		storage:   storage,
	}
}

// List обрабатывает GET /posts
// Публичный endpoint; user_liked заполняется, если запрос аутентифицирован
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var viewerID int64
	if identity, ok := GetIdentity(ctx); ok {
		viewerID = identity.UserID
	}

	posts, err := h.storage.ListPosts(ctx, viewerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list posts", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	h.sendJSON(w, api.PostsResponse{Posts: posts}, http.StatusOK)
}

// Create обрабатывает POST /post
// Автор поста берется только из токена
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := GetIdentity(ctx)
	if !ok {
		h.sendError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req api.CreatePostRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPostBodySize)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode post request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidatePost(req.Title, req.Text); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post := &models.Post{
		UserID:    identity.UserID,
		Title:     req.Title,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.storage.CreatePost(ctx, post); err != nil {
		h.logger.ErrorContext(ctx, "failed to create post", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", identity.UserID))

	h.sendJSON(w, post, http.StatusCreated)
}

// Like обрабатывает POST /posts/{id}/like
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.storage.LikePost)
}

// Unlike обрабатывает DELETE /posts/{id}/like
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.storage.UnlikePost)
}

func (h *PostHandler) changeLike(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, like models.Like) error) {
	ctx := r.Context()

	identity, ok := GetIdentity(ctx)
	if !ok {
		h.sendError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || postID <= 0 {
		h.sendError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	if err := apply(ctx, models.Like{UserID: identity.UserID, PostID: postID}); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			h.sendError(w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update like", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
