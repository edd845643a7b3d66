package detect

import (
	"math"
	"testing"
)

func TestBoxValid(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{"well formed", NewBox(0, 0, 10, 10), true},
		{"zero width", NewBox(5, 0, 5, 10), false},
		{"zero height", NewBox(0, 5, 10, 5), false},
		{"inverted x", NewBox(10, 0, 0, 10), false},
		{"inverted y", NewBox(0, 10, 10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxIoU(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want float64
	}{
		{"identical", NewBox(0, 0, 100, 100), NewBox(0, 0, 100, 100), 1.0},
		{"disjoint", NewBox(0, 0, 10, 10), NewBox(20, 20, 30, 30), 0.0},
		{"touching edges", NewBox(0, 0, 10, 10), NewBox(10, 0, 20, 10), 0.0},
		// 50x100 intersection over 100x100 + 100x100 - 50x100
		{"half overlap", NewBox(0, 0, 100, 100), NewBox(50, 0, 150, 100), 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.IoU(tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("IoU() = %v, want %v", got, tt.want)
			}
			// IoU is symmetric
			if rev := tt.b.IoU(tt.a); math.Abs(rev-got) > 1e-9 {
				t.Errorf("IoU not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestBoxCenter(t *testing.T) {
	c := NewBox(309, 169, 585, 349).Center()
	if c.X != 447 || c.Y != 259 {
		t.Errorf("Center() = (%v, %v), want (447, 259)", c.X, c.Y)
	}
}

func TestBoxCenterDistance(t *testing.T) {
	a := NewBox(0, 0, 10, 10)   // center (5, 5)
	b := NewBox(30, 40, 40, 50) // center (35, 45)
	if got := a.CenterDistance(b); math.Abs(got-50) > 1e-9 {
		t.Errorf("CenterDistance() = %v, want 50", got)
	}
}
