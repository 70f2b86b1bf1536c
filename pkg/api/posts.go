package api

import "github.com/iudanet/postboard/internal/models"

// CreatePostRequest представляет запрос на создание поста
type CreatePostRequest struct {
	Title string `json:"post_title"`
	Text  string `json:"post_text"`
}

// PostsResponse представляет список постов
type PostsResponse struct {
	Posts []*models.Post `json:"posts"`
}
