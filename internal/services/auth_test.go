package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/educa-backend/internal/apierr"
	"github.com/yungbote/educa-backend/internal/requestdata"
	"github.com/yungbote/educa-backend/internal/testutil"
	"github.com/yungbote/educa-backend/internal/types"
)

func newAuthForTest(t *testing.T) (AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	log := testutil.Logger(t)
	auth := NewAuthService(env.db, log, env.userRepo, env.userTokenRepo, "test-secret", time.Minute, time.Hour)
	return auth, env
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	auth, _ := newAuthForTest(t)
	ctx := context.Background()

	user := &types.User{
		Email:     "Ada@Example.com",
		Password:  "hunter22",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if err := auth.RegisterUser(ctx, user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Password == "hunter22" {
		t.Fatalf("password stored in clear")
	}

	access, refresh, err := auth.LoginUser(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("empty tokens from login")
	}

	authed, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil || rd.UserID != user.ID || rd.Username != "Ada Lovelace" {
		t.Fatalf("request data = %+v", rd)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	auth, _ := newAuthForTest(t)
	ctx := context.Background()

	user := &types.User{Email: "bob@example.com", Password: "correct", FirstName: "Bob"}
	if err := auth.RegisterUser(ctx, user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if _, _, err := auth.LoginUser(ctx, "bob@example.com", "wrong"); !errors.Is(err, apierr.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newAuthForTest(t)
	ctx := context.Background()

	first := &types.User{Email: "dup@example.com", Password: "pw", FirstName: "One"}
	if err := auth.RegisterUser(ctx, first); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	second := &types.User{Email: "dup@example.com", Password: "pw", FirstName: "Two"}
	if err := auth.RegisterUser(ctx, second); !errors.Is(err, apierr.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	auth, _ := newAuthForTest(t)
	ctx := context.Background()

	user := &types.User{Email: "carol@example.com", Password: "pw123456", FirstName: "Carol"}
	if err := auth.RegisterUser(ctx, user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	_, refresh, err := auth.LoginUser(ctx, "carol@example.com", "pw123456")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	access2, refresh2, err := auth.RefreshUser(ctx, refresh)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if access2 == "" || refresh2 == "" || refresh2 == refresh {
		t.Fatalf("refresh did not rotate: %q -> %q", refresh, refresh2)
	}

	// The old token is gone once rotated.
	if _, _, err := auth.RefreshUser(ctx, refresh); !errors.Is(err, apierr.ErrUnauthorized) {
		t.Fatalf("stale refresh err = %v, want ErrUnauthorized", err)
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	auth, _ := newAuthForTest(t)
	if _, err := auth.SetContextFromToken(context.Background(), "not.a.jwt"); !errors.Is(err, apierr.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}
