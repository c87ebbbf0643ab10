package store

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per processed file; a file processed twice has two rows
CREATE TABLE IF NOT EXISTS documents (
    document_id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL,
    title TEXT NOT NULL,
    language TEXT,
    script TEXT,                  -- dominant script of the headings
    status TEXT NOT NULL,         -- success, error
    error TEXT,
    page_count INTEGER DEFAULT 0,
    heading_count INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    processed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_path ON documents(path);
CREATE INDEX IF NOT EXISTS idx_documents_processed ON documents(processed_at);

-- Outline entries in document order
CREATE TABLE IF NOT EXISTS headings (
    heading_id INTEGER PRIMARY KEY AUTOINCREMENT,
    document_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    text TEXT NOT NULL,
    level TEXT NOT NULL,          -- H1, H2, H3
    page INTEGER NOT NULL,
    FOREIGN KEY (document_id) REFERENCES documents(document_id) ON DELETE CASCADE,
    UNIQUE(document_id, position)
);

CREATE INDEX IF NOT EXISTS idx_headings_document ON headings(document_id);
`
