package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
	}{
		{Validation, http.StatusBadRequest},
		{Unauthorized, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusConflict},
		{Internal, http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := c.kind.Status(); got != c.status {
			t.Errorf("Kind %d: expected status %d, got %d", c.kind, c.status, got)
		}
	}
}

func TestKindOfAndMessageOf(t *testing.T) {
	err := New(Conflict, "already enrolled in this class")

	if KindOf(err) != Conflict {
		t.Errorf("Expected Conflict, got %d", KindOf(err))
	}
	if MessageOf(err) != "already enrolled in this class" {
		t.Errorf("Unexpected message: %s", MessageOf(err))
	}

	// Wrapping elsewhere in the call chain keeps the kind visible
	wrapped := fmt.Errorf("enrolling student: %w", err)
	if KindOf(wrapped) != Conflict {
		t.Errorf("Expected Conflict through wrapping, got %d", KindOf(wrapped))
	}

	// Plain errors default to Internal with a generic message
	plain := errors.New("connection refused")
	if KindOf(plain) != Internal {
		t.Errorf("Expected Internal for plain errors, got %d", KindOf(plain))
	}
	if MessageOf(plain) != "server error" {
		t.Errorf("Plain error message should not leak, got %s", MessageOf(plain))
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := Wrap(NotFound, "report not found", cause)

	if !errors.Is(err, cause) {
		t.Error("Wrapped cause should be reachable with errors.Is")
	}
	if KindOf(err) != NotFound {
		t.Errorf("Expected NotFound, got %d", KindOf(err))
	}
}
