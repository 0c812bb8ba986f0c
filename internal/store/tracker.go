package store

import (
	"context"
	"time"
)

// FileState is the last imported mtime and size of a source file.
type FileState struct {
	MtimeNs int64
	Size    int64
}

// GetTrackedFiles returns the import state of every tracked source file.
func (s *Store) GetTrackedFiles(ctx context.Context) (map[string]FileState, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT file_path, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	files := make(map[string]FileState)
	for rows.Next() {
		var (
			path  string
			state FileState
		)
		if err := rows.Scan(&path, &state.MtimeNs, &state.Size); err != nil {
			return nil, err
		}
		files[path] = state
	}
	return files, rows.Err()
}

// TrackFile records that path was imported at the given state.
func (s *Store) TrackFile(ctx context.Context, path string, state FileState) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO file_tracker (file_path, mtime_ns, size_bytes, imported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			mtime_ns = excluded.mtime_ns,
			size_bytes = excluded.size_bytes,
			imported_at = excluded.imported_at`,
		path, state.MtimeNs, state.Size, time.Now().UTC().Format(timeLayout))
	return err
}
