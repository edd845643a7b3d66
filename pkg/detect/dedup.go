package detect

import "strings"

// Minimum shared description words before two detections from different
// scan positions are considered the same physical object.
const scanDedupSharedWords = 3

// DedupeAcrossScans removes duplicates from a multi-position scan, where
// the same object may have been photographed from several angles and
// spatial deduplication is impossible. Two detections match when they
// share a category and at least three description words; the higher
// confidence one survives.
func DedupeAcrossScans(objects []Object) []Object {
	if len(objects) <= 1 {
		return objects
	}

	var unique []Object

	for _, obj := range objects {
		matched := -1
		for i, existing := range unique {
			if obj.Category != existing.Category {
				continue
			}
			if sharedWords(obj.Description, existing.Description) >= scanDedupSharedWords {
				matched = i
				break
			}
		}

		if matched == -1 {
			unique = append(unique, obj)
			continue
		}
		if obj.Confidence > unique[matched].Confidence {
			unique[matched] = obj
		}
	}

	return unique
}

// sharedWords counts distinct lowercase words present in both descriptions.
func sharedWords(a, b string) int {
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(a)) {
		seen[w] = true
	}

	count := 0
	counted := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(b)) {
		if seen[w] && !counted[w] {
			counted[w] = true
			count++
		}
	}
	return count
}
