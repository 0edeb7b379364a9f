package services

import (
	"context"
	"testing"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/repos"
	"github.com/lifeos-app/lifeos-backend/internal/repos/testutil"
	"github.com/lifeos-app/lifeos-backend/internal/requestdata"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	gormDB := testutil.DB(t)
	log := testutil.Logger(t)
	return NewAuthService(
		gormDB, log,
		repos.NewUserRepo(gormDB, log),
		repos.NewUserTokenRepo(gormDB, log),
		nil,
		"test-secret",
		time.Hour,
		24*time.Hour,
	)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	user, err := auth.RegisterUser(ctx, RegisterInput{
		Email:    "Alex@Example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "alex@example.com" {
		t.Fatalf("email = %q, want lowercased", user.Email)
	}
	if user.Password == "correct horse" {
		t.Fatal("password stored in plaintext")
	}

	pair, err := auth.LoginUser(ctx, "alex@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token pair")
	}

	authedCtx, err := auth.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data = %+v, want user %s", rd, user.ID)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	if _, err := auth.RegisterUser(ctx, RegisterInput{
		Email:    "sam@example.com",
		Password: "hunter2hunter2",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.LoginUser(ctx, "sam@example.com", "wrong"); err == nil {
		t.Fatal("expected error for wrong password")
	}
	if _, err := auth.LoginUser(ctx, "nobody@example.com", "hunter2hunter2"); err == nil {
		t.Fatal("expected error for unknown email")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	if _, err := auth.RegisterUser(ctx, RegisterInput{
		Email:    "dup@example.com",
		Password: "password1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := auth.RegisterUser(ctx, RegisterInput{
		Email:    "DUP@example.com",
		Password: "password2",
	}); err == nil {
		t.Fatal("expected duplicate email rejection")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	if _, err := auth.RegisterUser(ctx, RegisterInput{
		Email:    "rot@example.com",
		Password: "rotation-test",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := auth.LoginUser(ctx, "rot@example.com", "rotation-test")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	next, err := auth.RefreshUser(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token not rotated")
	}

	// The presented token is single-use.
	if _, err := auth.RefreshUser(ctx, pair.RefreshToken); err == nil {
		t.Fatal("expected error reusing rotated refresh token")
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	if _, err := auth.SetContextFromToken(ctx, "not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
	if _, err := auth.SetContextFromToken(ctx, ""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestLogoutRemovesRefreshTokens(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	user, err := auth.RegisterUser(ctx, RegisterInput{
		Email:    "out@example.com",
		Password: "logout-test",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := auth.LoginUser(ctx, "out@example.com", "logout-test")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authedCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: pair.AccessToken,
		UserID:      user.ID,
	})
	if err := auth.LogoutUser(authedCtx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.RefreshUser(ctx, pair.RefreshToken); err == nil {
		t.Fatal("expected refresh to fail after logout")
	}
}
