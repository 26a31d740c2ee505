package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// These tests need a disposable Redis; set TEST_REDIS_ADDR to run them.
func newTestStore(t *testing.T) *ResetStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client, err := Connect(context.Background(), Config{Addr: addr, DB: 15})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})
	return NewResetStore(client)
}

func TestResetStore_ConsumeOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "abc", "user-1", time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	id, err := store.Consume(ctx, "abc")
	if err != nil || id != "user-1" {
		t.Fatalf("expected user-1, got %q (%v)", id, err)
	}

	if _, err := store.Consume(ctx, "abc"); !errors.Is(err, domain.ErrInvalidResetToken) {
		t.Fatalf("second consume: expected ErrInvalidResetToken, got %v", err)
	}
}

func TestResetStore_Expires(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "short", "user-1", 50*time.Millisecond); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(150 * time.Millisecond)

	if _, err := store.Consume(ctx, "short"); !errors.Is(err, domain.ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken after expiry, got %v", err)
	}
}

func TestResetStore_Key(t *testing.T) {
	if got := (&ResetStore{}).key("deadbeef"); got != "reset:deadbeef" {
		t.Fatalf("unexpected key %q", got)
	}
}
