package validation

import (
	"errors"
	"testing"

	"ixfguard/internal/config"
	"ixfguard/internal/domain"
)

var (
	superuser = &domain.User{ID: 1, Email: "su@localhost", Superuser: true}
	admin     = &domain.User{ID: 2, Email: "admin@localhost", Role: domain.RoleAdmin}
	user      = &domain.User{ID: 3, Email: "user@localhost", Role: domain.RoleUser}
)

func defaultContext(principal domain.Principal) Context {
	return Context{Principal: principal, Rules: config.DefaultConfig().DataQuality}
}

func expectKind(t *testing.T, err error, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if fe.Message == "" {
		t.Fatal("field error carries no message")
	}
}

func asFieldError(t *testing.T, err error) *FieldError {
	t.Helper()
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FieldError, got %T (%v)", err, err)
	}
	return fe
}
