package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/scan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func sampleResult(id string) *scan.Result {
	grasp := detect.Point{X: 447, Y: 259}
	return &scan.Result{
		ID:        id,
		StartedAt: time.Now().UTC().Truncate(time.Second),
		Duration:  42 * time.Second,
		Positions: 8,
		Objects: []detect.Object{
			{
				ID:            "obj-1",
				Category:      detect.CategoryToy,
				Description:   "small red toy car",
				Confidence:    92,
				Box:           detect.NewBox(309, 169, 585, 349),
				Size:          detect.SizeSmall,
				Access:        detect.AccessClear,
				DistanceScore: 0.32,
				DistanceCM:    60.6,
				Priority:      0.55,
				GraspPoint:    &grasp,
				ScanPosition:  2,
				ScanAngle:     45,
			},
			{
				ID:          "obj-2",
				Category:    detect.CategoryTrash,
				Description: "crumpled wrapper",
				Confidence:  78,
				Box:         detect.NewBox(100, 500, 200, 600),
				Priority:    0.31,
			},
		},
	}
}

func TestScanRepository_SaveAndGet(t *testing.T) {
	repo := newTestStore(t).Scans()

	want := sampleResult("scan-1")
	if err := repo.Save(want); err != nil {
		t.Fatalf("failed to save scan: %v", err)
	}

	got, err := repo.Get("scan-1")
	if err != nil {
		t.Fatalf("failed to get scan: %v", err)
	}

	if got.Positions != 8 {
		t.Errorf("Positions mismatch: got %d, want 8", got.Positions)
	}
	if got.Duration != 42*time.Second {
		t.Errorf("Duration mismatch: got %v", got.Duration)
	}
	if len(got.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(got.Objects))
	}

	// Detections come back highest priority first.
	first := got.Objects[0]
	if first.ID != "obj-1" {
		t.Errorf("expected obj-1 first, got %q", first.ID)
	}
	if first.Category != detect.CategoryToy {
		t.Errorf("Category mismatch: got %q", first.Category)
	}
	if first.Box.XMax != 585 {
		t.Errorf("Box mismatch: got %+v", first.Box)
	}
	if first.GraspPoint == nil || first.GraspPoint.X != 447 {
		t.Errorf("GraspPoint mismatch: got %+v", first.GraspPoint)
	}
	if first.ScanPosition != 2 || first.ScanAngle != 45 {
		t.Errorf("scan tagging mismatch: got %d/%f", first.ScanPosition, first.ScanAngle)
	}

	if got.Objects[1].GraspPoint != nil {
		t.Errorf("obj-2 should have no grasp point, got %+v", got.Objects[1].GraspPoint)
	}
}

func TestScanRepository_Get_NotFound(t *testing.T) {
	repo := newTestStore(t).Scans()

	_, err := repo.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestScanRepository_List(t *testing.T) {
	repo := newTestStore(t).Scans()

	older := sampleResult("scan-old")
	older.StartedAt = time.Now().UTC().Add(-time.Hour)
	newer := sampleResult("scan-new")

	if err := repo.Save(older); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := repo.Save(newer); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	list, err := repo.List(10)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(list))
	}
	if list[0].ID != "scan-new" {
		t.Errorf("expected newest first, got %q", list[0].ID)
	}
	if list[0].Objects != 2 {
		t.Errorf("expected 2 detections counted, got %d", list[0].Objects)
	}
}

func TestScanRepository_ListLimit(t *testing.T) {
	repo := newTestStore(t).Scans()

	for i := 0; i < 5; i++ {
		r := sampleResult("scan-" + string(rune('a'+i)))
		r.StartedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		if err := repo.Save(r); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
	}

	list, err := repo.List(3)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("expected 3 scans, got %d", len(list))
	}
}

func TestScanRepository_Delete(t *testing.T) {
	repo := newTestStore(t).Scans()

	if err := repo.Save(sampleResult("scan-1")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := repo.Delete("scan-1"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	if _, err := repo.Get("scan-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}

	// Cascade removed the detections too.
	objects, err := repo.Detections("scan-1")
	if err != nil {
		t.Fatalf("failed to query detections: %v", err)
	}
	if len(objects) != 0 {
		t.Errorf("expected no detections after cascade, got %d", len(objects))
	}
}

func TestScanRepository_Delete_NotFound(t *testing.T) {
	repo := newTestStore(t).Scans()

	if err := repo.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
