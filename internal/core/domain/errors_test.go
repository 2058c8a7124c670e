package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestConflictError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("register: %w", NewConflictError(FieldUsername))

	if !errors.Is(err, ErrConflict) {
		t.Fatal("expected errors.Is(err, ErrConflict)")
	}
	field, ok := ConflictField(err)
	if !ok || field != FieldUsername {
		t.Fatalf("expected username field, got %q %v", field, ok)
	}
}

func TestConflictError_FieldsAreDistinct(t *testing.T) {
	u := NewConflictError(FieldUsername)
	e := NewConflictError(FieldEmail)

	if u.Error() == e.Error() {
		t.Fatalf("expected distinct messages, got %q", u.Error())
	}
	if _, ok := ConflictField(ErrConflict); ok {
		t.Fatal("bare sentinel carries no field")
	}
}

func TestInputError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("update recipe: %w", NewInputError("nothing to update"))

	if !errors.Is(err, ErrInvalidInput) {
		t.Fatal("expected errors.Is(err, ErrInvalidInput)")
	}
	var ie *InputError
	if !errors.As(err, &ie) || ie.Msg != "nothing to update" {
		t.Fatalf("expected the bare message, got %v", err)
	}
}
