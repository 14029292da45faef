package authcore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRegisterSuccess(t *testing.T) {
	store := newMockUserStore()
	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	user, err := engine.Register(context.Background(), "alice@example.com", "new-password-123", "Alice")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.UserID == "" {
		t.Fatal("expected created user id")
	}
	if user.Role != "user" {
		t.Fatalf("expected role user, got %s", user.Role)
	}

	created := store.users[user.UserID]
	if created.PasswordHash == "" || created.PasswordHash == "new-password-123" {
		t.Fatal("expected stored password to be hashed")
	}
	ok, err := engine.codec.Verify("new-password-123", created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify, ok=%v err=%v", ok, err)
	}
}

func TestRegisterDuplicateRejected(t *testing.T) {
	store := newMockUserStore()
	store.put(UserRecord{
		UserID:       "u1",
		Identifier:   "alice@example.com",
		PasswordHash: "x",
		Role:         "user",
		Active:       true,
	})

	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	_, err := engine.Register(context.Background(), "alice@example.com", "new-password-123", "")
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricRegisterDuplicate] != 1 {
		t.Fatalf("expected 1 duplicate, got %d", snap.Counters[MetricRegisterDuplicate])
	}
}

func TestRegisterShortPasswordRejected(t *testing.T) {
	store := newMockUserStore()
	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	_, err := engine.Register(context.Background(), "bob@example.com", "short", "")
	if !errors.Is(err, ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy, got %v", err)
	}
	if len(store.users) != 0 {
		t.Fatal("expected no user created")
	}
}

// MinLength counts characters, not bytes: eight multibyte runes pass even
// though they exceed eight bytes.
func TestRegisterMinLengthCountsRunes(t *testing.T) {
	store := newMockUserStore()
	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	if _, err := engine.Register(context.Background(), "chie@example.com", strings.Repeat("世", 8), ""); err != nil {
		t.Fatalf("expected multibyte password to pass policy, got %v", err)
	}
}

func TestRegisterEmptyIdentifierRejected(t *testing.T) {
	store := newMockUserStore()
	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	_, err := engine.Register(context.Background(), "", "new-password-123", "")
	if !errors.Is(err, ErrRegistrationInvalid) {
		t.Fatalf("expected ErrRegistrationInvalid, got %v", err)
	}
}

func TestRegisterInvalidEncodingRejected(t *testing.T) {
	store := newMockUserStore()
	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	_, err := engine.Register(context.Background(), "eve@example.com", "password\xff\xfe\xfd", "")
	if !errors.Is(err, ErrRegistrationInvalid) {
		t.Fatalf("expected ErrRegistrationInvalid, got %v", err)
	}
	if len(store.users) != 0 {
		t.Fatal("expected no user created")
	}
}

// Over-long passwords register and log in because both paths derive the same
// bounded input before hashing.
func TestRegisterAndLoginLongPassword(t *testing.T) {
	store := newMockUserStore()
	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	ctx := context.Background()
	long := strings.Repeat("A", 200)

	if _, err := engine.Register(ctx, "dora@example.com", long, ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := engine.Login(ctx, "dora@example.com", long); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
}
