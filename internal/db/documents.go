package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrDocumentNotFound is returned when a document GUID has no row.
var ErrDocumentNotFound = errors.New("document not found")

const documentColumns = `
	SELECT d.guid, d.title, d.created_at,
	       (SELECT COUNT(*) FROM coded_values cv WHERE cv.document_guid = d.guid)
	FROM documents d`

// scanDocument scans a row into a Document. The row must have all 4 columns in standard order.
func scanDocument(scanner interface{ Scan(dest ...any) error }) (Document, error) {
	var doc Document
	err := scanner.Scan(&doc.GUID, &doc.Title, &doc.CreatedAt, &doc.RecordCount)
	return doc, err
}

func (d *DB) queryDocuments(query string, args ...any) ([]Document, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// AllDocuments returns all documents ordered by created_at descending
func (d *DB) AllDocuments() ([]Document, error) {
	return d.queryDocuments(documentColumns + ` ORDER BY d.created_at DESC, d.guid`)
}

// GetDocument returns a single document by GUID
func (d *DB) GetDocument(guid string) (*Document, error) {
	row := d.conn.QueryRow(documentColumns+` WHERE d.guid = ?`, guid)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, guid)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SearchByGUIDPrefix finds documents whose GUID starts with the given prefix.
func (d *DB) SearchByGUIDPrefix(prefix string, limit int) ([]Document, error) {
	return d.queryDocuments(documentColumns+` WHERE d.guid LIKE ? ORDER BY d.guid LIMIT ?`, prefix+"%", limit)
}
