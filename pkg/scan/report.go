package scan

import (
	"fmt"
	"strings"
)

// reportLimit caps how many objects a spoken report lists.
const reportLimit = 3

// SpanishReport renders a scan result as a short spoken summary in
// Spanish, listing at most the three highest-ranked objects.
func (r *Result) SpanishReport() string {
	if len(r.Objects) == 0 {
		return "El suelo está limpio. No he encontrado nada que recoger."
	}

	var b strings.Builder
	if len(r.Objects) == 1 {
		b.WriteString("He encontrado un objeto en el suelo. ")
	} else {
		fmt.Fprintf(&b, "He encontrado %d objetos en el suelo. ", len(r.Objects))
	}

	for i, obj := range r.Objects {
		if i >= reportLimit {
			break
		}
		fmt.Fprintf(&b, "Un %s, %s, a unos %.0f centímetros. ",
			obj.Category.SpanishName(), obj.Description, obj.DistanceCM)
	}

	if len(r.Objects) > reportLimit {
		fmt.Fprintf(&b, "Y %d más.", len(r.Objects)-reportLimit)
	}

	return strings.TrimSpace(b.String())
}

// EnglishReport renders a scan result as a short summary in English,
// for logs and the dashboard.
func (r *Result) EnglishReport() string {
	if len(r.Objects) == 0 {
		return "The floor is clean, nothing to pick up."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d object(s) on the floor. ", len(r.Objects))

	for i, obj := range r.Objects {
		if i >= reportLimit {
			break
		}
		fmt.Fprintf(&b, "%s (%s, ~%.0fcm, priority %.2f). ",
			obj.Description, obj.Category, obj.DistanceCM, obj.Priority)
	}

	if len(r.Objects) > reportLimit {
		fmt.Fprintf(&b, "And %d more.", len(r.Objects)-reportLimit)
	}

	return strings.TrimSpace(b.String())
}
