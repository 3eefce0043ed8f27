package visits

import (
	"testing"
	"time"
)

func storeRecord(id, reg string) VisitRecord {
	return VisitRecord{
		ID:            id,
		RegNumber:     reg,
		VisitDate:     time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		NextVisitDate: time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
		TabletDays:    31,
	}
}

func TestStoreAddPrependsMostRecentFirst(t *testing.T) {
	s := NewStore()
	s.Add(storeRecord("a", "2026/PHY/0001"))
	s.Add(storeRecord("b", "2026/PHY/0002"))

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap))
	}
	if snap[0].ID != "b" || snap[1].ID != "a" {
		t.Fatalf("expected most-recent-first order, got %s then %s", snap[0].ID, snap[1].ID)
	}
}

func TestStoreToggleRoundTrip(t *testing.T) {
	s := NewStore()
	s.Add(storeRecord("a", "2026/PHY/0001"))
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	rec, err := s.Toggle("a", now)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !rec.Completed {
		t.Fatal("expected record to be completed")
	}
	if rec.CompletedAt == nil || !rec.CompletedAt.Equal(now) {
		t.Fatalf("expected completedAt %v, got %v", now, rec.CompletedAt)
	}

	rec, err = s.Toggle("a", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if rec.Completed {
		t.Fatal("expected record back to pending")
	}
	if rec.CompletedAt != nil {
		t.Fatal("expected completedAt cleared on the way back")
	}
}

func TestStoreToggleUnknownID(t *testing.T) {
	s := NewStore()
	s.Add(storeRecord("a", "2026/PHY/0001"))

	if _, err := s.Toggle("missing", time.Now()); err != ErrVisitNotFound {
		t.Fatalf("expected ErrVisitNotFound, got %v", err)
	}
	if snap := s.Snapshot(); snap[0].Completed {
		t.Fatal("failed toggle must not change state")
	}
}

func TestStoreDelete(t *testing.T) {
	s := NewStore()
	s.Add(storeRecord("a", "2026/PHY/0001"))
	s.Add(storeRecord("b", "2026/PHY/0002"))

	empty, err := s.Delete("a")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if empty {
		t.Fatal("store should not be empty yet")
	}

	empty, err = s.Delete("b")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !empty {
		t.Fatal("store should report empty after last delete")
	}

	if _, err := s.Delete("b"); err != ErrVisitNotFound {
		t.Fatalf("expected ErrVisitNotFound, got %v", err)
	}
}

func TestStoreReplaceAndClear(t *testing.T) {
	s := NewStore()
	s.Add(storeRecord("a", "2026/PHY/0001"))

	s.Replace([]VisitRecord{storeRecord("x", "2026/PHY/0009"), storeRecord("y", "2026/PHY/0010")})
	if s.Len() != 2 {
		t.Fatalf("expected 2 after replace, got %d", s.Len())
	}
	if s.Snapshot()[0].ID != "x" {
		t.Fatal("replace must preserve given order")
	}

	s.ClearAll()
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Add(storeRecord("a", "2026/PHY/0001"))

	snap := s.Snapshot()
	snap[0].Completed = true

	if s.Snapshot()[0].Completed {
		t.Fatal("mutating a snapshot must not affect the store")
	}
}
