package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrCorruptCredential  = errors.New("stored credential is corrupt")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrInvalidID          = errors.New("invalid id")
)

// Conflict fields reported by ConflictError.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
)

// ConflictError reports a uniqueness violation on a single user field.
// It matches ErrConflict with errors.Is.
type ConflictError struct {
	Field string
}

func NewConflictError(field string) *ConflictError {
	return &ConflictError{Field: field}
}

func (e *ConflictError) Error() string {
	switch e.Field {
	case FieldUsername:
		return "username already exists"
	case FieldEmail:
		return "email already registered"
	case "":
		return ErrConflict.Error()
	default:
		return e.Field + " already exists"
	}
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ConflictField returns the field of a ConflictError wrapped anywhere in err's chain.
func ConflictField(err error) (string, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Field, true
	}
	return "", false
}

// InputError carries a client-safe description of rejected input.
// It matches ErrInvalidInput with errors.Is.
type InputError struct {
	Msg string
}

func NewInputError(msg string) *InputError {
	return &InputError{Msg: msg}
}

func (e *InputError) Error() string { return e.Msg }

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
