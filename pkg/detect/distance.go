package detect

import "sort"

// DistanceFromBox estimates how far an object is from the robot using the
// vertical position of its bounding box. With the camera looking down at
// the floor, boxes lower in the frame are closer.
//
// The score is the bottom edge position normalized to [0, 1], where 1.0
// is the bottom of the frame (closest). The centimeter estimate maps the
// score linearly between cfg.FarCM (top of frame) and cfg.NearCM (bottom).
func DistanceFromBox(box Box, cfg Config) (score, cm float64) {
	if cfg.ImageHeight <= 0 {
		return 0, 0
	}

	score = box.YMax / cfg.ImageHeight
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	cm = cfg.FarCM - score*(cfg.FarCM-cfg.NearCM)
	return score, cm
}

// Nearest returns the object closest to the robot, or false when the
// slice is empty. Assumes distance scores are already annotated.
func Nearest(objects []Object) (Object, bool) {
	if len(objects) == 0 {
		return Object{}, false
	}

	best := objects[0]
	for _, obj := range objects[1:] {
		if obj.DistanceScore > best.DistanceScore {
			best = obj
		}
	}
	return best, true
}

// SortByDistance orders objects closest first, in place.
func SortByDistance(objects []Object) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].DistanceScore > objects[j].DistanceScore
	})
}
