package store

import (
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func insertTestUser(t *testing.T, db *sql.DB, username string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	_, err = db.Exec(`
		INSERT INTO users (username, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4)
	`, username, string(hash), "Test User", "admin")
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
}

func TestUserStoreFindByUsername(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	username := "test-findbyusername"
	t.Cleanup(func() { cleanUsers(t, db, username) })

	// Not found case.
	user, err := s.FindByUsername(username)
	if err != nil {
		t.Fatalf("FindByUsername (not found): %v", err)
	}
	if user != nil {
		t.Fatal("expected nil for unknown username")
	}

	insertTestUser(t, db, username)

	user, err = s.FindByUsername(username)
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Username != username {
		t.Errorf("username: got %q, want %q", user.Username, username)
	}
	if user.TOTPEnabled {
		t.Error("expected totp_enabled=false for new user")
	}
	if user.TOTPSecret != nil {
		t.Error("expected nil totp secret for new user")
	}
}

func TestUserStoreTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	username := "test-totp-lifecycle"
	t.Cleanup(func() { cleanUsers(t, db, username) })
	insertTestUser(t, db, username)

	user, err := s.FindByUsername(username)
	if err != nil || user == nil {
		t.Fatalf("FindByUsername: %v", err)
	}

	if err := s.SetTOTPSecret(user.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	user, err = s.FindByID(user.ID)
	if err != nil || user == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user.TOTPSecret == nil || *user.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Error("expected stored totp secret")
	}
	if user.TOTPEnabled {
		t.Error("totp must stay disabled until confirmed")
	}

	if err := s.EnableTOTP(user.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}
	user, err = s.FindByID(user.ID)
	if err != nil || user == nil {
		t.Fatalf("FindByID after enable: %v", err)
	}
	if !user.TOTPEnabled {
		t.Error("expected totp_enabled=true after EnableTOTP")
	}
}
