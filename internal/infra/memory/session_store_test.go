package memory

import (
	"context"
	"testing"

	"arcadia-quote-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := app.NewSession("s1", sampleContent())
	store.Put(session)
	if _, ok := store.Get("s1"); !ok {
		t.Fatalf("expected session present")
	}

	if err := store.SaveSnapshot(context.Background(), session.Snapshot()); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	snap, ok, err := store.LoadSnapshot(context.Background(), "s1")
	if err != nil || !ok {
		t.Fatalf("expected snapshot, ok=%v err=%v", ok, err)
	}
	if snap.SessionID != "s1" {
		t.Fatalf("unexpected snapshot id %q", snap.SessionID)
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
	if _, ok, _ := store.LoadSnapshot(context.Background(), "s1"); ok {
		t.Fatalf("expected snapshot removed")
	}
}
