package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestAppendAndRecent(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		{CheckedAt: base, Endpoint: "examplebucket.s3.amazonaws.com/a.txt", Status: "valid", ExpiresAt: base.Add(time.Hour)},
		{CheckedAt: base.Add(time.Minute), Endpoint: "examplebucket.s3.amazonaws.com/b.txt", Status: "expired", ExpiresAt: base.Add(-time.Hour)},
		{CheckedAt: base.Add(2 * time.Minute), Endpoint: "sts.us-east-1.amazonaws.com/", Status: "valid", ExpiresAt: base.Add(3 * time.Minute)},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	// Newest first.
	if got[0].Endpoint != "sts.us-east-1.amazonaws.com/" {
		t.Errorf("got[0].Endpoint = %s, want the newest entry", got[0].Endpoint)
	}
	if got[2].Endpoint != "examplebucket.s3.amazonaws.com/a.txt" {
		t.Errorf("got[2].Endpoint = %s, want the oldest entry", got[2].Endpoint)
	}

	if !got[0].CheckedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CheckedAt = %v, want %v", got[0].CheckedAt, base.Add(2*time.Minute))
	}
	if got[1].Status != "expired" {
		t.Errorf("got[1].Status = %s, want expired", got[1].Status)
	}
	if !got[1].ExpiresAt.Equal(base.Add(-time.Hour)) {
		t.Errorf("got[1].ExpiresAt = %v, want %v", got[1].ExpiresAt, base.Add(-time.Hour))
	}
}

func TestRecent_Limit(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := Entry{
			CheckedAt: base.Add(time.Duration(i) * time.Second),
			Endpoint:  "host/key",
			Status:    "valid",
			ExpiresAt: base.Add(time.Hour),
		}
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if !got[0].CheckedAt.After(got[1].CheckedAt) {
		t.Errorf("entries not newest first: %v then %v", got[0].CheckedAt, got[1].CheckedAt)
	}
}

func TestRecent_Empty(t *testing.T) {
	store, _ := openTestStore(t)

	got, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}

func TestOpen_Reopens(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	e := Entry{
		CheckedAt: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		Endpoint:  "host/key",
		Status:    "valid",
		ExpiresAt: time.Date(2026, 8, 23, 11, 0, 0, 0, time.UTC),
	}
	if err := store.Append(ctx, e); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(got))
	}
	if got[0].Endpoint != "host/key" {
		t.Errorf("Endpoint = %s, want host/key", got[0].Endpoint)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("presign", "history.db")) {
		t.Errorf("path = %s, want it under a presign cache dir", path)
	}
}
