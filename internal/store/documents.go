package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tsawler/pdfoutline/model"
)

// RecordDocument stores d and its outline in one transaction and returns
// the new document ID.
func (db *DB) RecordDocument(d Document) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`
		INSERT INTO documents (path, title, language, script, status, error,
		                       page_count, heading_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.Path, d.Title, d.Language, d.Script, d.Status, d.Error,
		d.Pages, len(d.Outline), d.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}

	documentID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get document ID: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO headings (document_id, position, text, level, page)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare heading insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range d.Outline {
		if _, err := stmt.Exec(documentID, i, e.Text, e.Level.String(), e.Page); err != nil {
			return 0, fmt.Errorf("failed to insert heading %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit document: %w", err)
	}
	return documentID, nil
}

// ListDocuments returns indexed documents, most recent first. A limit of
// zero or less returns all of them.
func (db *DB) ListDocuments(limit int) ([]Document, error) {
	query := `
		SELECT document_id, path, title, COALESCE(language, ''), COALESCE(script, ''), status,
		       COALESCE(error, ''), page_count, heading_count, duration_ms,
		       processed_at
		FROM documents
		ORDER BY processed_at DESC, document_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var ms int64
		if err := rows.Scan(&d.ID, &d.Path, &d.Title, &d.Language, &d.Script, &d.Status,
			&d.Error, &d.Pages, &d.Headings, &ms, &d.ProcessedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		d.Duration = time.Duration(ms) * time.Millisecond
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// GetDocument returns one document with its outline.
func (db *DB) GetDocument(documentID int64) (*Document, error) {
	var d Document
	var ms int64
	err := db.QueryRow(`
		SELECT document_id, path, title, COALESCE(language, ''), COALESCE(script, ''), status,
		       COALESCE(error, ''), page_count, heading_count, duration_ms,
		       processed_at
		FROM documents
		WHERE document_id = ?
	`, documentID).Scan(&d.ID, &d.Path, &d.Title, &d.Language, &d.Script, &d.Status,
		&d.Error, &d.Pages, &d.Headings, &ms, &d.ProcessedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %d not found", documentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	d.Duration = time.Duration(ms) * time.Millisecond

	if d.Outline, err = db.Headings(documentID); err != nil {
		return nil, err
	}
	return &d, nil
}

// Headings returns the outline of a document in its original order.
func (db *DB) Headings(documentID int64) ([]model.Entry, error) {
	rows, err := db.Query(`
		SELECT text, level, page
		FROM headings
		WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query headings: %w", err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		var e model.Entry
		var level string
		if err := rows.Scan(&e.Text, &level, &e.Page); err != nil {
			return nil, fmt.Errorf("failed to scan heading: %w", err)
		}
		if e.Level, err = model.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("failed to parse heading level: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
