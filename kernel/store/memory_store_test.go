package store

import (
	"context"
	"testing"

	"github.com/frontside/embersite/kernel/model"
)

func TestMemoryStore_AppendsInOrder(t *testing.T) {
	store := NewMemoryStore()

	first := []model.Resource{{App: "bar", Role: model.VendorStyle}}
	second := []model.Resource{{App: "foo", Role: model.VendorStyle}, {App: "foo", Role: model.AppStyle}}

	if err := store.Publish(context.Background(), first); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := store.Publish(context.Background(), second); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	resources, _ := store.List()
	if len(resources) != 3 {
		t.Fatalf("expected 3 resources, got %d", len(resources))
	}
	if resources[0].App != "bar" || resources[2].Role != model.AppStyle {
		t.Errorf("unexpected order: %+v", resources)
	}

	// Mutating the copy must not affect the store
	resources[0].App = "changed"
	again, _ := store.List()
	if again[0].App != "bar" {
		t.Error("List should return a copy")
	}
}
