package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", fmt.Errorf("user: %w", ErrNotFound), http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"validation", fmt.Errorf("form: %w", ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("slug: %w", ErrConflict), http.StatusConflict},
		{"raw unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError},
		{"wrapped unknown", fmt.Errorf("count: %w", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromError(tt.err); got != tt.want {
				t.Errorf("HTTPStatusFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	wrapped := fmt.Errorf("insert: %w", unique)

	if !IsUniqueViolation(unique, "users_username_key") {
		t.Error("exact constraint match rejected")
	}
	if !IsUniqueViolation(wrapped, "users_username_key") {
		t.Error("wrapped violation rejected")
	}
	if !IsUniqueViolation(unique, "") {
		t.Error("empty constraint should match any unique violation")
	}
	if IsUniqueViolation(unique, "users_email_key") {
		t.Error("matched the wrong constraint")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Error("foreign key violation treated as unique violation")
	}
	if IsUniqueViolation(errors.New("not a pg error"), "") {
		t.Error("plain error treated as unique violation")
	}
}
