package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateDocument inserts a document and its coded values in one transaction
// and returns the new document GUID. Values keep the order given.
func (d *DB) CreateDocument(ctx context.Context, title string, values []string) (string, error) {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	guid := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (guid, title, created_at) VALUES (?, ?, ?)`,
		guid, title, time.Now().UnixMilli(),
	); err != nil {
		return "", fmt.Errorf("insert document %q: %w", title, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO coded_values (id, document_guid, seq, coded_value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare coded value insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), guid, i, v); err != nil {
			return "", fmt.Errorf("insert coded value %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return guid, nil
}

// DeleteDocument deletes a document. Coded values are cascade-deleted by SQLite.
func (d *DB) DeleteDocument(guid string) error {
	res, err := d.conn.Exec(`DELETE FROM documents WHERE guid = ?`, guid)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", guid, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", guid, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, guid)
	}
	return nil
}
