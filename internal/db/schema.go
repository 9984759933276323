package db

// Schema holds one row per questionnaire document and its coded values.
// seq preserves the order the values were recorded in; the forest builder
// depends on that order for first-match tie-breaks.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
    guid        TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    created_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS coded_values (
    id            TEXT PRIMARY KEY,
    document_guid TEXT NOT NULL REFERENCES documents(guid) ON DELETE CASCADE,
    seq           INTEGER NOT NULL,
    coded_value   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_coded_values_document ON coded_values(document_guid, seq);
`

// FTSSchema indexes document titles for reference resolution.
const FTSSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
    title,
    content='documents',
    content_rowid='rowid'
);

CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
    INSERT INTO documents_fts(rowid, title) VALUES (new.rowid, new.title);
END;
CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
    INSERT INTO documents_fts(documents_fts, rowid, title) VALUES('delete', old.rowid, old.title);
END;
`
