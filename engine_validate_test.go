package authcore

import (
	"context"
	"errors"
	"testing"
)

func TestValidateGarbageToken(t *testing.T) {
	store := newMockUserStore()
	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := engine.Validate(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricTokenInvalid] != 4 {
		t.Fatalf("expected 4 invalid tokens, got %d", snap.Counters[MetricTokenInvalid])
	}
}

// Expired and forged tokens surface identically at the API boundary; only the
// metric distinguishes them.
func TestValidateExpiredTokenCollapsesToUnauthorized(t *testing.T) {
	cfg := testConfig()
	cfg.Token.AccessTTL = 1

	store := newMockUserStore()
	engine, done := newTestEngine(t, cfg, store)
	defer done()

	ctx := context.Background()
	seedAccount(t, engine, "alice@example.com", "correct-horse")

	token, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := engine.Validate(ctx, token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricTokenExpired] != 1 {
		t.Fatalf("expected 1 expired token, got %d", snap.Counters[MetricTokenExpired])
	}
	if snap.Counters[MetricTokenInvalid] != 0 {
		t.Fatalf("expected 0 invalid tokens, got %d", snap.Counters[MetricTokenInvalid])
	}
}

func TestValidateTokenSignedWithOtherSecret(t *testing.T) {
	store := newMockUserStore()
	engine, done := newTestEngine(t, testConfig(), store)
	defer done()

	otherCfg := testConfig()
	otherCfg.Token.Secret = []byte("a-different-secret")
	other, otherDone := newTestEngine(t, otherCfg, newMockUserStore())
	defer otherDone()

	ctx := context.Background()
	seedAccount(t, other, "mallory@example.com", "correct-horse")

	token, err := other.Login(ctx, "mallory@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := engine.Validate(ctx, token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign token, got %v", err)
	}
}

func TestValidateAfterDenyListBackendLost(t *testing.T) {
	store := newMockUserStore()

	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine, err := New().
		WithConfig(testConfig()).
		WithRedis(rdb).
		WithUserStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	ctx := context.Background()
	seedAccount(t, engine, "alice@example.com", "correct-horse")

	token, err := engine.Login(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	mr.Close()

	if _, err := engine.Validate(ctx, token); !errors.Is(err, ErrDenyListUnavailable) {
		t.Fatalf("expected ErrDenyListUnavailable, got %v", err)
	}
}
