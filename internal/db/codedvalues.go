package db

import (
	"context"
	"fmt"
)

// CodedValues returns the raw coded values of a document in recorded order.
// A document with no values, or no such document, yields an empty slice.
func (d *DB) CodedValues(ctx context.Context, documentGUID string) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT coded_value
		FROM coded_values
		WHERE document_guid = ?
		ORDER BY seq
	`, documentGUID)
	if err != nil {
		return nil, fmt.Errorf("querying coded values: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
