package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrForbidden        = errors.New("you don't have permission to perform this action")
)

// ValidationError carries field-keyed messages; handlers render it verbatim
// as the 400 response body. Storage-level uniqueness violations are converted
// to this same shape as application-level pre-checks.
type ValidationError map[string][]string

func (v ValidationError) Error() string {
	parts := make([]string, 0, len(v))
	for field, messages := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, "; ")))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// Add appends a message under the given field key.
func (v ValidationError) Add(field, message string) {
	v[field] = append(v[field], message)
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{field: {message}}
}
