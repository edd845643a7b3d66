package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/scan"
)

// ScanRepository provides persistence for scan results.
type ScanRepository struct {
	db *sql.DB
}

// Scans returns the scan repository for this store.
func (s *Store) Scans() *ScanRepository {
	return &ScanRepository{db: s.db}
}

// ScanSummary is one row of scan history without its detections.
type ScanSummary struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Positions int
	Objects   int
}

// Save stores a scan result and its detections in one transaction.
func (r *ScanRepository) Save(result *scan.Result) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO scans (id, started_at, duration_ms, positions)
		 VALUES (?, ?, ?, ?)`,
		result.ID, result.StartedAt, result.Duration.Milliseconds(), result.Positions,
	)
	if err != nil {
		return err
	}

	for _, obj := range result.Objects {
		var graspX, graspY sql.NullFloat64
		if obj.GraspPoint != nil {
			graspX = sql.NullFloat64{Float64: obj.GraspPoint.X, Valid: true}
			graspY = sql.NullFloat64{Float64: obj.GraspPoint.Y, Valid: true}
		}

		_, err = tx.Exec(
			`INSERT INTO detections (
				scan_id, object_id, category, description, confidence,
				x_min, y_min, x_max, y_max,
				size, accessibility,
				distance_score, distance_cm, priority,
				grasp_x, grasp_y, scan_position, scan_angle
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.ID, obj.ID, string(obj.Category), obj.Description, obj.Confidence,
			obj.Box.XMin, obj.Box.YMin, obj.Box.XMax, obj.Box.YMax,
			string(obj.Size), string(obj.Access),
			obj.DistanceScore, obj.DistanceCM, obj.Priority,
			graspX, graspY, obj.ScanPosition, obj.ScanAngle,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Get retrieves a scan with its detections.
func (r *ScanRepository) Get(id string) (*scan.Result, error) {
	result := &scan.Result{}
	var durationMs int64

	err := r.db.QueryRow(
		`SELECT id, started_at, duration_ms, positions FROM scans WHERE id = ?`,
		id,
	).Scan(&result.ID, &result.StartedAt, &durationMs, &result.Positions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	result.Duration = time.Duration(durationMs) * time.Millisecond

	objects, err := r.Detections(id)
	if err != nil {
		return nil, err
	}
	result.Objects = objects

	return result, nil
}

// List returns scan history newest first, capped at limit.
func (r *ScanRepository) List(limit int) ([]ScanSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT s.id, s.started_at, s.duration_ms, s.positions, COUNT(d.id)
		 FROM scans s
		 LEFT JOIN detections d ON d.scan_id = s.id
		 GROUP BY s.id
		 ORDER BY s.started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []ScanSummary
	for rows.Next() {
		var s ScanSummary
		var durationMs int64
		if err := rows.Scan(&s.ID, &s.StartedAt, &durationMs, &s.Positions, &s.Objects); err != nil {
			return nil, err
		}
		s.Duration = time.Duration(durationMs) * time.Millisecond
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Detections returns the objects a scan found, highest priority first.
func (r *ScanRepository) Detections(scanID string) ([]detect.Object, error) {
	rows, err := r.db.Query(
		`SELECT object_id, category, description, confidence,
			x_min, y_min, x_max, y_max,
			size, accessibility,
			distance_score, distance_cm, priority,
			grasp_x, grasp_y, scan_position, scan_angle
		 FROM detections WHERE scan_id = ?
		 ORDER BY priority DESC`,
		scanID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []detect.Object
	for rows.Next() {
		var obj detect.Object
		var category, size, access string
		var graspX, graspY sql.NullFloat64

		err := rows.Scan(&obj.ID, &category, &obj.Description, &obj.Confidence,
			&obj.Box.XMin, &obj.Box.YMin, &obj.Box.XMax, &obj.Box.YMax,
			&size, &access,
			&obj.DistanceScore, &obj.DistanceCM, &obj.Priority,
			&graspX, &graspY, &obj.ScanPosition, &obj.ScanAngle)
		if err != nil {
			return nil, err
		}

		obj.Category = detect.Category(category)
		obj.Size = detect.SizeClass(size)
		obj.Access = detect.Access(access)
		if graspX.Valid && graspY.Valid {
			obj.GraspPoint = &detect.Point{X: graspX.Float64, Y: graspY.Float64}
		}

		objects = append(objects, obj)
	}

	return objects, rows.Err()
}

// Delete removes a scan and, through the foreign key, its detections.
func (r *ScanRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
