package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

func sampleSpec(id string) diagram.Spec {
	return diagram.Spec{
		ID:   id,
		Type: diagram.TypeFlowchart,
		Nodes: []diagram.Node{
			{ID: "a", Label: "A"},
			{ID: "b", Label: "B"},
		},
		Edges: []diagram.Edge{{From: "a", To: "b"}},
	}
}

func TestNewRecordGeneratesID(t *testing.T) {
	rec := NewRecord(sampleSpec(""))
	if rec.ID == "" {
		t.Fatal("NewRecord should generate an id")
	}
	if rec.Spec.ID != rec.ID {
		t.Errorf("spec id %q should match record id %q", rec.Spec.ID, rec.ID)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	// Distinct records get distinct ids.
	if other := NewRecord(sampleSpec("")); other.ID == rec.ID {
		t.Error("generated ids should be unique")
	}
}

func TestNewRecordKeepsID(t *testing.T) {
	rec := NewRecord(sampleSpec("checkout-flow"))
	if rec.ID != "checkout-flow" {
		t.Errorf("ID = %q, want checkout-flow", rec.ID)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec := NewRecord(sampleSpec("d1"))
	rec.Layout = &layout.Result{
		Positions: map[string]layout.Position{
			"a": {X: 0, Y: 0},
			"b": {X: 0, Y: 100},
		},
	}

	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "d1" {
		t.Errorf("ID = %q, want d1", got.ID)
	}
	if got.Layout == nil || len(got.Layout.Positions) != 2 {
		t.Errorf("Layout not persisted: %+v", got.Layout)
	}
	if len(got.Spec.Nodes) != 2 {
		t.Errorf("Spec not persisted: %+v", got.Spec)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorePutPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := NewRecord(sampleSpec("d1"))
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	created := rec.CreatedAt

	// Replace with a fresh record for the same diagram.
	update := NewRecord(sampleSpec("d1"))
	if err := s.Put(ctx, update); err != nil {
		t.Fatalf("Put update: %v", err)
	}

	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on update: %v != %v", got.CreatedAt, created)
	}
	if got.UpdatedAt.Before(created) {
		t.Errorf("UpdatedAt should be refreshed: %v", got.UpdatedAt)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, NewRecord(sampleSpec("d1"))); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete absent = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, id := range []string{"c", "a", "b"} {
		if err := s.Put(ctx, NewRecord(sampleSpec(id))); err != nil {
			t.Fatalf("Put %s: %v", id, err)
		}
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(ids) != len(want) {
		t.Fatalf("List = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, NewRecord(sampleSpec("d1"))); err != nil {
		t.Fatalf("Put: %v", err)
	}

	first, _ := s.Get(ctx, "d1")
	first.Spec.Title = "mutated"

	second, _ := s.Get(ctx, "d1")
	if second.Spec.Title == "mutated" {
		t.Error("mutating a returned record should not affect stored state")
	}
}
