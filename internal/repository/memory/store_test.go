package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anuragkar/scambait/internal/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewSessionStore(time.Minute)
	ctx := context.Background()

	session := domain.NewSession("abc-123")
	session.Append(domain.Message{Sender: domain.SenderScammer, Text: "pay up", Timestamp: 1700000000000})
	session.ScamConfirmed = true
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "abc-123")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.MessageCount != 1 || !got.ScamConfirmed || len(got.History) != 1 {
		t.Errorf("loaded session = %+v", got)
	}
}

func TestLoadReturnsIsolatedCopy(t *testing.T) {
	store := NewSessionStore(time.Minute)
	ctx := context.Background()

	session := domain.NewSession("abc-123")
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first, err := store.Load(ctx, "abc-123")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	first.Append(domain.Message{Sender: domain.SenderScammer, Text: "mutated", Timestamp: 1})

	second, err := store.Load(ctx, "abc-123")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(second.History) != 0 || second.MessageCount != 0 {
		t.Errorf("unsaved mutation leaked into store: %+v", second)
	}
}

func TestLoadMissingSession(t *testing.T) {
	store := NewSessionStore(time.Minute)
	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestExpiredSessionIsGone(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)
	ctx := context.Background()

	if err := store.Save(ctx, domain.NewSession("short-lived")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	if _, err := store.Load(ctx, "short-lived"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List = %v, want empty", ids)
	}
}

func TestSaveResetsTTL(t *testing.T) {
	store := NewSessionStore(40 * time.Millisecond)
	ctx := context.Background()

	session := domain.NewSession("renewed")
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	if _, err := store.Load(ctx, "renewed"); err != nil {
		t.Errorf("Load after renewed Save: %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := NewSessionStore(time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, domain.NewSession("gone")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if _, err := store.Load(ctx, "gone"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestListReturnsLiveSessions(t *testing.T) {
	store := NewSessionStore(time.Minute)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := store.Save(ctx, domain.NewSession(id)); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("List = %v, want 2 ids", ids)
	}
}

func TestPingAlwaysHealthy(t *testing.T) {
	if err := NewSessionStore(0).Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
