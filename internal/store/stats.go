package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string      `json:"db_path"`
	DBSizeBytes    int64       `json:"db_size_bytes"`
	Lists          int         `json:"lists"`
	Parameters     int         `json:"parameters"`
	Objects        int         `json:"objects"`
	HistoryEntries int         `json:"history_entries"`
	Types          []TypeStats `json:"types"`
}

// TypeStats holds per-type parameter counts.
type TypeStats struct {
	TypeKey string `json:"type"`
	Count   int    `json:"count"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists`).Scan(&st.Lists)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM parameters`).Scan(&st.Parameters)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM objects`).Scan(&st.Objects)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&st.HistoryEntries)

	rows, err := s.db.QueryContext(ctx, `
		SELECT type_key, COUNT(*) AS cnt
		FROM parameters
		GROUP BY type_key ORDER BY cnt DESC, type_key`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ts TypeStats
		rows.Scan(&ts.TypeKey, &ts.Count)
		st.Types = append(st.Types, ts)
	}

	return st, rows.Err()
}
