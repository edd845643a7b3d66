// Package detect provides detection records and the post-processing pipeline
// that turns raw vision-model output into a ranked pickup plan: overlap
// deduplication, furniture filtering, size gating, distance estimation from
// image geometry, and priority scoring.
package detect

import "strings"

// Category classifies what kind of object was found on the floor.
type Category string

// Object categories reported by the vision classifier.
const (
	CategoryToy      Category = "toy"
	CategoryTrash    Category = "trash"
	CategoryClothing Category = "clothing"
	CategoryOther    Category = "other"
)

// ParseCategory maps free-form classifier output to a known category.
// Unknown values fall back to CategoryOther.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryToy:
		return CategoryToy
	case CategoryTrash:
		return CategoryTrash
	case CategoryClothing:
		return CategoryClothing
	default:
		return CategoryOther
	}
}

// SpanishName returns the Spanish category name for voice reports.
func (c Category) SpanishName() string {
	switch c {
	case CategoryToy:
		return "juguete"
	case CategoryTrash:
		return "basura"
	case CategoryClothing:
		return "ropa"
	default:
		return "objeto"
	}
}

// SizeClass buckets an object by apparent size.
type SizeClass string

// Size classes.
const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// Access describes whether the robot can reach the object.
type Access string

// Accessibility classes.
const (
	AccessClear   Access = "clear"
	AccessBlocked Access = "blocked"
)

// Point is a pixel coordinate in the source image.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Object is a single detection plus the fields derived by Process.
// Objects are transient: created per analysis call, reported, discarded.
type Object struct {
	ID          string   `json:"id,omitempty"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"` // 0-100 from the classifier
	Box         Box      `json:"bbox"`

	Size   SizeClass `json:"size,omitempty"`
	Access Access    `json:"accessibility,omitempty"`

	// Derived by Process.
	DistanceScore float64 `json:"distance_score,omitempty"` // 1.0 = closest
	DistanceCM    float64 `json:"estimated_distance_cm,omitempty"`
	Priority      float64 `json:"priority,omitempty"`
	GraspPoint    *Point  `json:"grasp_point,omitempty"`

	// Set when aggregating a multi-position scan.
	ScanPosition int     `json:"scan_position,omitempty"`
	ScanAngle    float64 `json:"scan_angle,omitempty"`
}
