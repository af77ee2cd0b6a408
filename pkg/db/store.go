package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/speedkit/lcpboost/models"
)

// UpsertRow stores the measurement for (row.URL, row.IsMobile), replacing
// any previous measurement for that identity.
func (db *DB) UpsertRow(row *models.PerformanceRow) error {
	if row == nil || row.URL == "" {
		return errors.New("row must carry a URL")
	}
	lcpText, err := encodeLCP(row.LCP)
	if err != nil {
		return fmt.Errorf("failed to encode lcp: %w", err)
	}
	viewportText, err := encodeViewport(row.Viewport)
	if err != nil {
		return fmt.Errorf("failed to encode viewport: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO lcp_rows (url, is_mobile, lcp, viewport)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url, is_mobile) DO UPDATE SET
			lcp = excluded.lcp,
			viewport = excluded.viewport,
			updated_at = CURRENT_TIMESTAMP
	`, row.URL, row.IsMobile, lcpText, viewportText)
	if err != nil {
		return fmt.Errorf("failed to upsert row: %w", err)
	}
	return nil
}

// GetRow returns the measurement for (url, isMobile), or (nil, nil) when
// none exists. Stored 'not found' sentinels and undecodable descriptor
// JSON both come back as nil fields: empty-or-wrong-shape means no data.
func (db *DB) GetRow(url string, isMobile bool) (*models.PerformanceRow, error) {
	var lcpText, viewportText string
	err := db.QueryRow(`
		SELECT lcp, viewport FROM lcp_rows
		WHERE url = ? AND is_mobile = ?
	`, url, isMobile).Scan(&lcpText, &viewportText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get row: %w", err)
	}

	row := &models.PerformanceRow{URL: url, IsMobile: isMobile}
	if hasData(lcpText) {
		var lcp models.LCPElement
		if err := json.Unmarshal([]byte(lcpText), &lcp); err == nil {
			row.LCP = &lcp
		}
	}
	if hasData(viewportText) {
		var viewport []models.ATFElement
		if err := json.Unmarshal([]byte(viewportText), &viewport); err == nil {
			row.Viewport = viewport
		}
	}
	return row, nil
}

// DeleteRow removes the measurement for (url, isMobile) and reports
// whether one existed.
func (db *DB) DeleteRow(url string, isMobile bool) (bool, error) {
	res, err := db.Exec("DELETE FROM lcp_rows WHERE url = ? AND is_mobile = ?", url, isMobile)
	if err != nil {
		return false, fmt.Errorf("failed to delete row: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return n > 0, nil
}

// RowInfo summarizes one stored measurement for listings.
type RowInfo struct {
	RowID     int64
	URL       string
	IsMobile  bool
	HasLCP    bool
	UpdatedAt time.Time
}

// ListRows returns stored measurements, most recently updated first.
// limit <= 0 means no limit.
func (db *DB) ListRows(limit int) ([]RowInfo, error) {
	query := `
		SELECT row_id, url, is_mobile, lcp, updated_at
		FROM lcp_rows
		ORDER BY updated_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}
	defer rows.Close()

	var infos []RowInfo
	for rows.Next() {
		var info RowInfo
		var lcpText string
		if err := rows.Scan(&info.RowID, &info.URL, &info.IsMobile, &lcpText, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		info.HasLCP = hasData(lcpText)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// PurgeOlderThan deletes measurements not updated since cutoff and returns
// how many were removed. Stale rows make pages fall back to the beacon,
// which re-measures them.
func (db *DB) PurgeOlderThan(cutoff time.Time) (int64, error) {
	// Bind as text in CURRENT_TIMESTAMP's own format so the comparison
	// stays lexicographic-safe.
	res, err := db.Exec("DELETE FROM lcp_rows WHERE updated_at < ?",
		cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("failed to purge rows: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}
	return n, nil
}

func hasData(text string) bool {
	return text != "" && text != models.StatusNotFound
}

func encodeLCP(lcp *models.LCPElement) (string, error) {
	if lcp == nil {
		return models.StatusNotFound, nil
	}
	b, err := json.Marshal(lcp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func encodeViewport(viewport []models.ATFElement) (string, error) {
	if len(viewport) == 0 {
		return models.StatusNotFound, nil
	}
	b, err := json.Marshal(viewport)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
