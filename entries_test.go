package main

import (
	"database/sql"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := openDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err = initDB(db); err != nil {
		t.Fatalf("initializing test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func mustInsertEntry(t *testing.T, db *sql.DB, title, text string) int64 {
	t.Helper()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("beginning transaction: %v", err)
	}
	id, err := insertEntry(tx, title, text)
	if err != nil {
		tx.Rollback()
		t.Fatalf("insertEntry() error: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("committing: %v", err)
	}
	return id
}

func TestGetEntries_Empty(t *testing.T) {
	db := setupTestDB(t)

	entries, err := getEntries(db)
	if err != nil {
		t.Fatalf("getEntries() error: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}

func TestInsertEntry(t *testing.T) {
	db := setupTestDB(t)

	id := mustInsertEntry(t, db, "Test Title", "Test Text")

	entries, err := getEntries(db)
	if err != nil {
		t.Fatalf("getEntries() error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID != id {
		t.Errorf("expected id %d, got %d", id, entries[0].ID)
	}
	if entries[0].Title != "Test Title" {
		t.Errorf("expected title 'Test Title', got '%s'", entries[0].Title)
	}
	if entries[0].Text != "Test Text" {
		t.Errorf("expected text 'Test Text', got '%s'", entries[0].Text)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("expected created_at to be set by storage")
	}
}

func TestInsertEntry_IDsIncrease(t *testing.T) {
	db := setupTestDB(t)

	first := mustInsertEntry(t, db, "First", "Text 1")
	second := mustInsertEntry(t, db, "Second", "Text 2")

	if second <= first {
		t.Errorf("expected id %d > %d", second, first)
	}
}

func TestInsertEntry_Rollback(t *testing.T) {
	db := setupTestDB(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("beginning transaction: %v", err)
	}
	if _, err := insertEntry(tx, "Doomed", "Never committed"); err != nil {
		t.Fatalf("insertEntry() error: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rolling back: %v", err)
	}

	entries, err := getEntries(db)
	if err != nil {
		t.Fatalf("getEntries() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries after rollback, got %d", len(entries))
	}
}

func TestGetEntries_Order(t *testing.T) {
	db := setupTestDB(t)

	mustInsertEntry(t, db, "First", "Text 1")
	mustInsertEntry(t, db, "Second", "Text 2")
	mustInsertEntry(t, db, "Third", "Text 3")

	entries, err := getEntries(db)
	if err != nil {
		t.Fatalf("getEntries() error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Should be in reverse order (newest first)
	if entries[0].Title != "Third" {
		t.Errorf("expected first entry to be 'Third', got '%s'", entries[0].Title)
	}
	if entries[2].Title != "First" {
		t.Errorf("expected last entry to be 'First', got '%s'", entries[2].Title)
	}
}

func TestSearchEntries(t *testing.T) {
	db := setupTestDB(t)

	mustInsertEntry(t, db, "Hello World", "Text 1")
	mustInsertEntry(t, db, "Goodbye", "Text 2")

	tests := []struct {
		name       string
		q          string
		wantTitles []string
	}{
		{"substring in both, newest first", "o", []string{"Goodbye", "Hello World"}},
		{"substring in one", "Hello", []string{"Hello World"}},
		{"no match", "xyz", nil},
		{"empty query matches all", "", []string{"Goodbye", "Hello World"}},
		{"case sensitive", "hello", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := searchEntries(db, tt.q)
			if err != nil {
				t.Fatalf("searchEntries(%q) error: %v", tt.q, err)
			}
			if len(entries) != len(tt.wantTitles) {
				t.Fatalf("searchEntries(%q): expected %d entries, got %d", tt.q, len(tt.wantTitles), len(entries))
			}
			for i, want := range tt.wantTitles {
				if entries[i].Title != want {
					t.Errorf("searchEntries(%q)[%d]: expected %q, got %q", tt.q, i, want, entries[i].Title)
				}
			}
		})
	}
}

func TestSearchEntries_EmptyMatchesGetEntries(t *testing.T) {
	db := setupTestDB(t)

	mustInsertEntry(t, db, "One", "Text 1")
	mustInsertEntry(t, db, "Two", "Text 2")
	mustInsertEntry(t, db, "Three", "Text 3")

	all, err := getEntries(db)
	if err != nil {
		t.Fatalf("getEntries() error: %v", err)
	}
	found, err := searchEntries(db, "")
	if err != nil {
		t.Fatalf("searchEntries() error: %v", err)
	}

	if len(found) != len(all) {
		t.Fatalf("expected %d entries, got %d", len(all), len(found))
	}
	for i := range all {
		if found[i].ID != all[i].ID {
			t.Errorf("entry %d: expected id %d, got %d", i, all[i].ID, found[i].ID)
		}
	}
}
