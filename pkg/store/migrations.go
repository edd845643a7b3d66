package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Scans table, one row per completed floor scan
		`CREATE TABLE IF NOT EXISTS scans (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL,
			positions INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Detections table, the objects a scan found
		`CREATE TABLE IF NOT EXISTS detections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
			object_id TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			confidence REAL NOT NULL,
			x_min REAL NOT NULL,
			y_min REAL NOT NULL,
			x_max REAL NOT NULL,
			y_max REAL NOT NULL,
			size TEXT NOT NULL DEFAULT '',
			accessibility TEXT NOT NULL DEFAULT '',
			distance_score REAL NOT NULL DEFAULT 0,
			distance_cm REAL NOT NULL DEFAULT 0,
			priority REAL NOT NULL DEFAULT 0,
			grasp_x REAL,
			grasp_y REAL,
			scan_position INTEGER NOT NULL DEFAULT 0,
			scan_angle REAL NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_detections_scan_id ON detections(scan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_started_at ON scans(started_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
