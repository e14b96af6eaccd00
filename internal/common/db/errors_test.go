package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
)

var (
	errNotFound = errors.New("not found")
	errConflict = errors.New("conflict")
)

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	constraint, ok := UniqueViolation(err)
	if !ok {
		t.Fatal("expected unique violation")
	}
	if constraint != "users_email_key" {
		t.Errorf("expected users_email_key, got %q", constraint)
	}

	if _, ok := UniqueViolation(&pgconn.PgError{Code: "23503"}); ok {
		t.Error("foreign key violation must not be reported as unique violation")
	}
	if _, ok := UniqueViolation(errors.New("boom")); ok {
		t.Error("plain error must not be reported as unique violation")
	}
}

func TestHandleQueryError(t *testing.T) {
	start := time.Now()

	if err := HandleQueryError(nil, errNotFound, "find user by email", start); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := HandleQueryError(pgx.ErrNoRows, errNotFound, "find user by email", start); !errors.Is(err, errNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	cause := errors.New("connection refused")
	err := HandleQueryError(cause, errNotFound, "find user by email", start)
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if err.Error() != "failed to find user by email: connection refused" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestHandleInsertError(t *testing.T) {
	start := time.Now()

	err := HandleInsertError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, errConflict, "create user", start)
	if !errors.Is(err, errConflict) {
		t.Errorf("expected conflict, got %v", err)
	}

	cause := &pgconn.PgError{Code: "53300", Message: "too many connections"}
	err = HandleInsertError(cause, errConflict, "create user", start)
	if errors.Is(err, errConflict) {
		t.Error("non-unique failures must not be mapped to conflict")
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "53300" {
		t.Errorf("expected original pg error to propagate, got %v", err)
	}
}
