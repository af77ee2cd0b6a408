package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- One measurement per page identity. lcp and viewport hold the JSON the
-- beacon reported, or the literal 'not found' when it had nothing for
-- that field. Absence of a row means the page was never measured; that
-- distinction drives the beacon fallback.
CREATE TABLE IF NOT EXISTS lcp_rows (
    row_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    is_mobile BOOLEAN NOT NULL DEFAULT 0,
    lcp TEXT NOT NULL DEFAULT 'not found',
    viewport TEXT NOT NULL DEFAULT 'not found',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(url, is_mobile)
);

CREATE INDEX IF NOT EXISTS idx_lcp_rows_url ON lcp_rows(url);
CREATE INDEX IF NOT EXISTS idx_lcp_rows_updated ON lcp_rows(updated_at);
`
