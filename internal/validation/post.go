package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPostTitleLen максимальная длина заголовка поста (в символах)
	MaxPostTitleLen = 100
	// MaxPostTextLen максимальная длина текста поста (в символах)
	MaxPostTextLen = 1000
)

// ValidatePost проверяет заголовок и текст поста
func ValidatePost(title, text string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("post_title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxPostTitleLen {
		return fmt.Errorf("post_title must not exceed %d characters", MaxPostTitleLen)
	}

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("post_text cannot be empty")
	}
	if utf8.RuneCountInString(text) > MaxPostTextLen {
		return fmt.Errorf("post_text must not exceed %d characters", MaxPostTextLen)
	}

	return nil
}
