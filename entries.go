package main

import "database/sql"

func getEntries(db *sql.DB) ([]Entry, error) {
	query := "SELECT id, title, text, created_at FROM entries ORDER BY id DESC"
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(&entry.ID, &entry.Title, &entry.Text, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// searchEntries matches q as a substring of title. An empty q matches
// every entry.
func searchEntries(db *sql.DB, q string) ([]Entry, error) {
	query := "SELECT id, title, text, created_at FROM entries WHERE title LIKE ? ORDER BY id DESC"
	rows, err := db.Query(query, "%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(&entry.ID, &entry.Title, &entry.Text, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// insertEntry runs inside the caller's transaction and does not
// validate its inputs or commit. Commit and rollback belong to the
// caller.
func insertEntry(tx *sql.Tx, title, text string) (int64, error) {
	result, err := tx.Exec(`
		INSERT INTO entries (title, text)
		VALUES (?, ?)`, title, text)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
