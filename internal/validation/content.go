package validation

import (
	"fmt"
	"unicode/utf8"
)

const (
	minTitleLen       = 3
	maxTitleLen       = 200
	minPostContentLen = 10
	minCommentLen     = 1
	maxCommentLen     = 1000
)

// ValidatePostTitle checks post title length bounds.
func ValidatePostTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < minTitleLen {
		return fmt.Errorf("title must be at least %d characters long", minTitleLen)
	}
	if n > maxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", maxTitleLen)
	}
	return nil
}

// ValidatePostContent checks post content length bounds.
func ValidatePostContent(content string) error {
	if utf8.RuneCountInString(content) < minPostContentLen {
		return fmt.Errorf("content must be at least %d characters long", minPostContentLen)
	}
	return nil
}

// ValidateCommentContent checks comment content length bounds.
func ValidateCommentContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < minCommentLen {
		return fmt.Errorf("content is required")
	}
	if n > maxCommentLen {
		return fmt.Errorf("content must not exceed %d characters", maxCommentLen)
	}
	return nil
}
