package authcore

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAuditDispatcherDeliversToSink(t *testing.T) {
	sink := NewChannelSink(8)
	d := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 8,
		DropIfFull: false,
	}, sink)
	defer d.Close()

	d.Emit(context.Background(), AuditEvent{
		EventType: "login",
		UserID:    "u1",
		Success:   true,
	})

	select {
	case event := <-sink.Events():
		if event.EventType != "login" || event.UserID != "u1" || !event.Success {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}

func TestAuditDispatcherDisabledIsNil(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatal("expected nil dispatcher when audit disabled")
	}

	// Emitting through a nil dispatcher must be safe.
	d.Emit(context.Background(), AuditEvent{EventType: "login"})
	d.Close()
	if got := d.Dropped(); got != 0 {
		t.Fatalf("expected 0 dropped, got %d", got)
	}
}

func TestAuditDispatcherDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	sink := blockingSink{release: block}

	d := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: true,
	}, sink)

	// First event occupies the sink, the rest fill and then overflow the
	// buffer. Exact drop count depends on scheduling, so only assert > 0.
	for i := 0; i < 16; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: "login"})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events under backpressure")
	}

	close(block)
	d.Close()
}

type blockingSink struct {
	release <-chan struct{}
}

func (s blockingSink) Emit(_ context.Context, _ AuditEvent) {
	<-s.release
}

func TestAuditDispatcherCloseFlushesBuffered(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	d := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 16,
		DropIfFull: false,
	}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: "register", Success: true})
	}
	d.Close()

	lines := strings.Count(buf.String(), "\n")
	if lines != 5 {
		t.Fatalf("expected 5 flushed events, got %d", lines)
	}
}

func TestJSONWriterSinkEncodesEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		EventType: "validate",
		UserID:    "u1",
		TokenID:   "tok-1",
		Success:   false,
		Error:     "token revoked",
	})

	var decoded AuditEvent
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.EventType != "validate" || decoded.TokenID != "tok-1" || decoded.Error != "token revoked" {
		t.Fatalf("unexpected event: %+v", decoded)
	}
}

func TestEngineAuditStampsTimestampAndIP(t *testing.T) {
	cfg := testConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 8
	cfg.Audit.DropIfFull = false

	sink := NewChannelSink(8)
	store := newMockUserStore()

	engine, err := New().
		WithConfig(cfg).
		WithUserStore(store).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	ctx := WithClientIP(context.Background(), "203.0.113.9")
	if _, err := engine.Register(ctx, "alice@example.com", "correct-horse", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	select {
	case event := <-sink.Events():
		if event.Timestamp.IsZero() {
			t.Fatal("expected stamped timestamp")
		}
		if event.IP != "203.0.113.9" {
			t.Fatalf("expected client IP, got %q", event.IP)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit event")
	}
}
