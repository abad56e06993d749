package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/artisanscorner/storefront/internal/domain/errors"
	"github.com/artisanscorner/storefront/internal/test"
)

func newAuthFixture() (*AuthUseCase, *test.UserRepositoryStub) {
	users := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{
		IssueFn: func(id int64) (string, error) { return "token-1", nil },
	})
	return uc, users
}

func TestRegisterCreatesUserAndIssuesToken(t *testing.T) {
	uc, users := newAuthFixture()

	user, token, err := uc.Register(context.Background(), "Asha", "Asha@Example.COM", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token-1" {
		t.Errorf("expected issued token, got %q", token)
	}
	if user.Email != "asha@example.com" {
		t.Errorf("email must be normalized, got %q", user.Email)
	}
	if _, ok := users.Users["asha@example.com"]; !ok {
		t.Errorf("user must be stored under normalized email")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, _ := newAuthFixture()

	if _, _, err := uc.Register(context.Background(), "Asha", "asha@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "Another", "asha@example.com", "other"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	uc, _ := newAuthFixture()

	cases := []struct{ name, email, password string }{
		{"", "asha@example.com", "secret"},
		{"Asha", "", "secret"},
		{"Asha", "asha@example.com", ""},
	}
	for _, tc := range cases {
		if _, _, err := uc.Register(context.Background(), tc.name, tc.email, tc.password); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %+v, got %v", tc, err)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	uc, _ := newAuthFixture()
	password := test.RandomASCIIString(12, 24)
	if _, _, err := uc.Register(context.Background(), "Asha", "asha@example.com", password); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, token, err := uc.Authenticate(context.Background(), "ASHA@example.com", password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "asha@example.com" || token == "" {
		t.Errorf("expected authenticated user with token")
	}

	if _, _, err := uc.Authenticate(context.Background(), "asha@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "nobody@example.com", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
