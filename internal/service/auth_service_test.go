package service

import (
	"errors"
	"testing"
	"time"

	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/util"
)

func TestLoginIssuesRevocableSession(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "admin", model.SuperAdmin)

	result, err := env.auth.Login("admin", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.ID != user.ID {
		t.Fatalf("wrong user in login result: %+v", result.User)
	}

	// The token is backed by a live session row.
	if _, err := env.users.FindLiveSession(result.Token); err != nil {
		t.Fatalf("expected a live session: %v", err)
	}

	// Logout revokes it even though the JWT itself is still valid.
	if err := env.auth.Logout(result.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := env.users.FindLiveSession(result.Token); err == nil {
		t.Fatal("expected the session gone after logout")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin", model.SuperAdmin)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "password123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.auth.Login(tc.username, tc.password)
			if !errors.Is(err, util.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLoginRejectsDeactivatedUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "former", model.Editor)
	env.db.Model(user).Update("is_active", false)

	_, err := env.auth.Login("former", "password123")
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for a deactivated user, got %v", err)
	}
}

func TestExpiredSessionIsNotLive(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "admin", model.SuperAdmin)

	session := &model.UserSession{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := env.users.CreateSession(session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := env.users.FindLiveSession("expired-token"); err == nil {
		t.Fatal("expected an expired session to be rejected")
	}

	if err := env.users.DeleteExpiredSessions(); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	var count int64
	env.db.Model(&model.UserSession{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected the expired row swept, got %d rows", count)
	}
}
