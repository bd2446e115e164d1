//go:build integration

package library

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/maskforge/maskforge/pkg/errors"
)

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("MASKFORGE_MONGO_URI")
	if uri == "" {
		t.Skip("MASKFORGE_MONGO_URI not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := NewMongoStore(ctx, uri, "maskforge_test")
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer store.Close(ctx)

	rec := NewRecord(testKey(t), testDesign("straight_x"))
	defer func() { _ = store.Delete(ctx, rec.ID) }()

	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != rec.ID || got.Factory != rec.Factory || got.Digest != rec.Digest {
		t.Errorf("Get = %+v, want %+v", got, rec)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, r := range records {
		if r.ID == rec.ID {
			found = true
		}
	}
	if !found {
		t.Error("stored record missing from List")
	}

	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, rec.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after Delete = %v, want NOT_FOUND", err)
	}
}
