package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
)

func TestSpanishReportEmpty(t *testing.T) {
	r := &Result{}
	assert.Contains(t, r.SpanishReport(), "limpio")
}

func TestSpanishReportSingleObject(t *testing.T) {
	r := &Result{Objects: []detect.Object{{
		Category:    detect.CategoryToy,
		Description: "red toy car",
		DistanceCM:  35,
	}}}

	report := r.SpanishReport()
	assert.Contains(t, report, "un objeto")
	assert.Contains(t, report, "juguete")
	assert.Contains(t, report, "35 centímetros")
}

func TestSpanishReportCapsListing(t *testing.T) {
	var objects []detect.Object
	for i := 0; i < 5; i++ {
		objects = append(objects, detect.Object{
			Category:    detect.CategoryTrash,
			Description: "wrapper",
			DistanceCM:  40,
		})
	}
	r := &Result{Objects: objects}

	report := r.SpanishReport()
	assert.Contains(t, report, "5 objetos")
	assert.Contains(t, report, "Y 2 más")
	assert.Equal(t, 3, strings.Count(report, "basura"))
}

func TestEnglishReport(t *testing.T) {
	r := &Result{Objects: []detect.Object{{
		Category:    detect.CategoryClothing,
		Description: "blue sock",
		DistanceCM:  28,
		Priority:    0.71,
	}}}

	report := r.EnglishReport()
	assert.Contains(t, report, "blue sock")
	assert.Contains(t, report, "clothing")
	assert.Contains(t, report, "0.71")
}
