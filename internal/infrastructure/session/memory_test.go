package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flowcrm/customer-system/internal/core/domain"
)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", "u1", time.Hour); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	userID, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("expected u1, got %q", userID)
	}

	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	// deleting again must not error
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	if err := store.Save(ctx, "tok-1", "u1", time.Minute); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}

	// the expired entry is dropped, not resurrected
	store.now = func() time.Time { return now }
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected entry to stay deleted, got %v", err)
	}
}
