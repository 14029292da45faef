package authcore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(tb testing.TB) (*miniredis.Miniredis, *redis.Client) {
	tb.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		tb.Fatalf("miniredis start failed: %v", err)
	}

	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// testConfig lowers the bcrypt cost so flow tests stay fast.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Token.Secret = []byte("test-secret")
	cfg.Password.Cost = 4
	return cfg
}

type mockUserStore struct {
	mu      sync.RWMutex
	nextID  int
	users   map[string]UserRecord
	byIdent map[string]string
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		nextID:  1,
		users:   make(map[string]UserRecord),
		byIdent: make(map[string]string),
	}
}

func (s *mockUserStore) put(u UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = u
	s.byIdent[u.Identifier] = u.UserID
}

func (s *mockUserStore) GetUserByIdentifier(_ context.Context, identifier string) (UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byIdent[identifier]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *mockUserStore) GetUserByID(_ context.Context, userID string) (UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return u, nil
}

func (s *mockUserStore) CreateUser(_ context.Context, input CreateUserInput) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byIdent[input.Identifier]; exists {
		return UserRecord{}, ErrAccountExists
	}

	u := UserRecord{
		UserID:       fmt.Sprintf("u%d", s.nextID),
		Identifier:   input.Identifier,
		FullName:     input.FullName,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		Active:       true,
	}
	s.nextID++
	s.users[u.UserID] = u
	s.byIdent[u.Identifier] = u.UserID
	return u, nil
}

func newTestEngine(t *testing.T, cfg Config, store UserStore) (*Engine, func()) {
	t.Helper()

	mr, rdb := newTestRedis(t)

	engine, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserStore(store).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return engine, func() {
		engine.Close()
		mr.Close()
	}
}

func TestBuildRequiresUserStore(t *testing.T) {
	_, err := New().WithConfig(testConfig()).Build()
	if err == nil {
		t.Fatal("expected error without user store")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithConfig(testConfig()).WithUserStore(newMockUserStore())

	if _, err := b.Build(); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestBuildWithoutRedisDisablesRevocation(t *testing.T) {
	store := newMockUserStore()
	engine, err := New().
		WithConfig(testConfig()).
		WithUserStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if err := engine.Logout(context.Background(), "whatever"); err != ErrRevocationDisabled {
		t.Fatalf("expected ErrRevocationDisabled, got %v", err)
	}
}

func TestFullCredentialLifecycle(t *testing.T) {
	store := newMockUserStore()
	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	ctx := context.Background()

	user, err := engine.Register(ctx, "alice@example.com", "correct-horse", "Alice")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	res, err := engine.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if res.UserID != user.UserID {
		t.Fatalf("expected user %s, got %s", user.UserID, res.UserID)
	}
	if res.Role != "user" {
		t.Fatalf("expected role user, got %s", res.Role)
	}
	if res.TokenID == "" {
		t.Fatal("expected token id")
	}
	if time.Until(res.ExpiresAt) <= 0 {
		t.Fatal("expected token to expire in the future")
	}

	if err := engine.Logout(ctx, token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := engine.Validate(ctx, token); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricTokenRevoked] != 1 {
		t.Fatalf("expected 1 revoked validation, got %d", snap.Counters[MetricTokenRevoked])
	}
	if snap.Counters[MetricLogout] != 1 {
		t.Fatalf("expected 1 logout, got %d", snap.Counters[MetricLogout])
	}
}
