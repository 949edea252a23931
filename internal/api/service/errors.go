package service

import "reviewhub/internal/api/validation"

// NotFoundError marks a missing resource, including a missing parent in a
// nested path. Handlers translate it to 404.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string {
	return e.msg
}

var (
	ErrUserNotFound     = &NotFoundError{"user not found"}
	ErrCategoryNotFound = &NotFoundError{"category not found"}
	ErrGenreNotFound    = &NotFoundError{"genre not found"}
	ErrTitleNotFound    = &NotFoundError{"title not found"}
	ErrReviewNotFound   = &NotFoundError{"review not found"}
	ErrCommentNotFound  = &NotFoundError{"comment not found"}
)

// Conflicts surface as field-keyed 400s, not 409s, so clients can map them
// back to form fields.
var (
	ErrReviewExists        = validation.NewFieldError("review", "only one review per title is allowed")
	ErrUsernameTaken       = validation.NewFieldError("username", "username already taken")
	ErrEmailTaken          = validation.NewFieldError("email", "email already taken")
	ErrSlugTaken           = validation.NewFieldError("slug", "slug already in use")
	ErrUsernameOtherEmail  = validation.NewFieldError("username", "username already registered with a different email")
	ErrEmailOtherUsername  = validation.NewFieldError("email", "email already registered with a different username")
	ErrBadConfirmationCode = validation.NewFieldError("confirmation_code", "invalid confirmation code")
)
