package detect

import (
	"sort"
	"strings"
)

// Process runs the full post-processing pipeline on raw detections:
// drop malformed and low-confidence boxes, reject undersized boxes and
// furniture matches, deduplicate overlaps, derive distance and grasp
// point, score, and sort by priority (highest first).
//
// The input slice is not modified. Process is pure and safe for
// concurrent use.
func Process(objects []Object, cfg Config) []Object {
	kept := make([]Object, 0, len(objects))

	for _, obj := range objects {
		if !obj.Box.Valid() {
			continue
		}
		if obj.Confidence < cfg.MinConfidence {
			continue
		}
		if obj.Box.Width() < cfg.MinBoxPx || obj.Box.Height() < cfg.MinBoxPx {
			continue
		}
		if matchesDenylist(obj.Description, cfg.Denylist) {
			continue
		}
		kept = append(kept, obj)
	}

	kept = dedupeOverlaps(kept, cfg)

	for i := range kept {
		annotate(&kept[i], cfg)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Priority > kept[j].Priority
	})

	return kept
}

// matchesDenylist reports whether the description names a fixture.
func matchesDenylist(description string, denylist []string) bool {
	desc := strings.ToLower(description)
	for _, word := range denylist {
		if strings.Contains(desc, word) {
			return true
		}
	}
	return false
}

// dedupeOverlaps removes duplicate detections of the same physical object.
// Two boxes are duplicates when their IoU exceeds the threshold, or when
// they share a category and their centers are within the pixel distance.
// The higher-confidence box survives.
func dedupeOverlaps(objects []Object, cfg Config) []Object {
	if len(objects) <= 1 {
		return objects
	}

	// Process highest confidence first so survivors are decided once.
	ordered := make([]Object, len(objects))
	copy(ordered, objects)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Confidence > ordered[j].Confidence
	})

	var unique []Object
	for _, obj := range ordered {
		duplicate := false
		for _, existing := range unique {
			if obj.Box.IoU(existing.Box) > cfg.IoUThreshold {
				duplicate = true
				break
			}
			if obj.Category == existing.Category &&
				obj.Box.CenterDistance(existing.Box) < cfg.CenterDistancePx {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, obj)
		}
	}

	return unique
}

// annotate fills in the derived fields: distance, grasp point, priority.
func annotate(obj *Object, cfg Config) {
	score, cm := DistanceFromBox(obj.Box, cfg)
	obj.DistanceScore = score
	obj.DistanceCM = cm

	center := obj.Box.Center()
	obj.GraspPoint = &center

	obj.Priority = priorityScore(*obj, cfg)
}

// priorityScore computes the composite pickup priority.
// Closer, larger, reachable, higher-confidence objects rank first.
func priorityScore(obj Object, cfg Config) float64 {
	sizeTerm := 0.5
	switch obj.Size {
	case SizeLarge:
		sizeTerm = 1.0
	case SizeMedium:
		sizeTerm = 0.6
	case SizeSmall:
		sizeTerm = 0.3
	}

	accessTerm := 1.0
	if obj.Access == AccessBlocked {
		accessTerm = 0.2
	}

	return cfg.WeightDistance*obj.DistanceScore +
		cfg.WeightSize*sizeTerm +
		cfg.WeightAccess*accessTerm +
		cfg.WeightConfidence*obj.Confidence/100
}
