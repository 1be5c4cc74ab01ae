package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/memory"
)

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := New(st, "test-secret", time.Hour, nil)

	if err := svc.EnsureDefaultAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}

	t.Run("bootstrap is idempotent", func(t *testing.T) {
		if err := svc.EnsureDefaultAdmin(ctx, "admin", "different"); err != nil {
			t.Fatalf("second EnsureDefaultAdmin failed: %v", err)
		}
		// Original password must still work.
		if _, err := svc.Login(ctx, "admin", "admin123"); err != nil {
			t.Errorf("Login with original password failed: %v", err)
		}
	})

	t.Run("login issues a valid token", func(t *testing.T) {
		token, err := svc.Login(ctx, "admin", "admin123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		claims, err := svc.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.Username != "admin" {
			t.Errorf("claims.Username = %q", claims.Username)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		if _, err := svc.Login(ctx, "admin", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong username rejected", func(t *testing.T) {
		if _, err := svc.Login(ctx, "root", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		if _, err := svc.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("token from another secret rejected", func(t *testing.T) {
		other := New(st, "other-secret", time.Hour, nil)
		token, err := other.Login(ctx, "admin", "admin123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := New(st, "test-secret", time.Hour, nil)

	if err := svc.EnsureDefaultAdmin(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}

	t.Run("wrong current password", func(t *testing.T) {
		if err := svc.ChangePassword(ctx, "wrong", "newpassword"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("too short new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "admin123", "abc")
		var validation models.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("successful change", func(t *testing.T) {
		if err := svc.ChangePassword(ctx, "admin123", "s3cret-pass"); err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}
		if _, err := svc.Login(ctx, "admin", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Error("old password still accepted")
		}
		if _, err := svc.Login(ctx, "admin", "s3cret-pass"); err != nil {
			t.Errorf("new password rejected: %v", err)
		}
	})
}
