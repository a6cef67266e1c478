package repository_test

import (
	"context"
	"testing"

	"github.com/rafaelleal24/aceitera/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/aceitera/internal/adapters/outbox"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

func TestOutboxRepository_FetchPending(t *testing.T) {
	repo := repository.NewOutboxRepository(testClient.Database("test_outbox_fetch"))
	ctx := context.Background()

	t.Run("returns empty when no entries", func(t *testing.T) {
		entries, err := repo.FetchPending(ctx, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("expected 0 entries, got %d", len(entries))
		}
	})

	t.Run("returns entries in insertion order", func(t *testing.T) {
		names := []string{"product.created", "sale.registered", "product.deleted"}
		for _, name := range names {
			if err := repo.Insert(ctx, outbox.Entry{EventName: name, EntityName: "product", EventData: []byte(`{"product_id":"p1"}`)}); err != nil {
				t.Fatalf("insert %s: %v", name, err)
			}
		}

		entries, err := repo.FetchPending(ctx, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != len(names) {
			t.Fatalf("expected %d entries, got %d", len(names), len(entries))
		}
		for i, entry := range entries {
			if entry.ID == "" {
				t.Fatalf("entry[%d] has empty ID", i)
			}
			if entry.EventName != names[i] {
				t.Fatalf("entry[%d]: expected %s, got %s", i, names[i], entry.EventName)
			}
			if string(entry.EventData) != `{"product_id":"p1"}` {
				t.Fatalf("entry[%d]: payload not preserved: %s", i, entry.EventData)
			}
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		entries, err := repo.FetchPending(ctx, 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 1 || entries[0].EventName != "product.created" {
			t.Fatalf("expected the oldest entry only, got %+v", entries)
		}
	})
}

func TestOutboxRepository_Delete(t *testing.T) {
	repo := repository.NewOutboxRepository(testClient.Database("test_outbox_delete"))
	ctx := context.Background()

	if err := repo.Insert(ctx, outbox.Entry{EventName: "sale.registered", EntityName: "sale", EventData: []byte(`{}`)}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	entries, _ := repo.FetchPending(ctx, 10)
	if len(entries) != 1 {
		t.Fatalf("setup: expected 1 entry, got %d", len(entries))
	}

	t.Run("deletes entry by ID", func(t *testing.T) {
		if err := repo.Delete(ctx, entries[0].ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		remaining, _ := repo.FetchPending(ctx, 10)
		if len(remaining) != 0 {
			t.Fatalf("expected 0 entries after delete, got %d", len(remaining))
		}
	})

	t.Run("deleting twice is a no-op", func(t *testing.T) {
		if err := repo.Delete(ctx, entries[0].ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rejects invalid ID", func(t *testing.T) {
		err := repo.Delete(ctx, "bad-id")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			t.Fatalf("expected KindInvalidRequest, got %v", err)
		}
	})
}
