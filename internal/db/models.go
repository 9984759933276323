package db

// Document represents a row in the documents table
type Document struct {
	GUID        string `json:"guid"`
	Title       string `json:"title"`
	CreatedAt   int64  `json:"created_at"` // Unix millis
	RecordCount int    `json:"record_count"`
}
