package forest

import "strings"

// fieldSep separates the fields of an encoded record: PathID^Label[^...].
const fieldSep = "^"

// Record is one decoded coded value.
type Record struct {
	PathID string
	Label  string
}

// Decode splits a raw coded value into its path and label.
// Malformed input never fails: a missing caret yields empty fields.
func Decode(raw string) Record {
	idx := strings.Index(raw, fieldSep)
	if idx < 0 {
		return Record{}
	}
	label := raw[idx+1:]
	if end := strings.Index(label, fieldSep); end >= 0 {
		label = label[:end]
	}
	return Record{PathID: raw[:idx], Label: label}
}

// DecodeAll decodes raw values, preserving order.
func DecodeAll(raw []string) []Record {
	records := make([]Record, len(raw))
	for i, r := range raw {
		records[i] = Decode(r)
	}
	return records
}
