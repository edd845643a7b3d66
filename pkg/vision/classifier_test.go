package vision

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/inference"
)

func testClassifierConfig() ClassifierConfig {
	cfg := DefaultClassifierConfig()
	cfg.RetryDelay = time.Millisecond
	cfg.Quality = QualityConfig{} // no decoding in unit tests
	return cfg
}

const sampleResponse = `{"objects": [
	{"description": "red toy car", "category": "toy", "confidence": 92,
	 "bbox": [309, 169, 585, 349], "size": "small", "accessibility": "clear"},
	{"description": "wooden table leg", "category": "other", "confidence": 88,
	 "bbox": [700, 100, 900, 800], "size": "large", "accessibility": "clear"},
	{"description": "crumpled napkin", "category": "trash", "confidence": 64,
	 "bbox": [100, 500, 180, 580], "size": "small", "accessibility": "clear"}
]}`

func TestClassifyParsesAndPostProcesses(t *testing.T) {
	mock := inference.NewMock()
	mock.VisionFunc = func(ctx context.Context, req *inference.VisionRequest) (*inference.VisionResponse, error) {
		assert.True(t, req.JSONOnly)
		assert.NotEmpty(t, req.ImageJPEG)
		return &inference.VisionResponse{Content: sampleResponse}, nil
	}

	c := NewClassifier(mock, testClassifierConfig())
	objects, err := c.Classify(context.Background(), []byte{0xff, 0xd8}, 1080)
	require.NoError(t, err)

	// Table leg is denylisted, napkin is below the confidence floor.
	require.Len(t, objects, 1)
	obj := objects[0]
	assert.Equal(t, detect.CategoryToy, obj.Category)
	assert.NotEmpty(t, obj.ID)
	assert.Greater(t, obj.Priority, 0.0)
	assert.InDelta(t, 349.0/1080.0, obj.DistanceScore, 1e-9)
}

func TestClassifyHandlesFencedJSON(t *testing.T) {
	mock := inference.NewMock()
	mock.VisionFunc = func(ctx context.Context, req *inference.VisionRequest) (*inference.VisionResponse, error) {
		return &inference.VisionResponse{
			Content: "```json\n" + sampleResponse + "\n```",
		}, nil
	}

	c := NewClassifier(mock, testClassifierConfig())
	objects, err := c.Classify(context.Background(), []byte{0xff, 0xd8}, 1080)
	require.NoError(t, err)
	assert.Len(t, objects, 1)
}

func TestClassifyBareArray(t *testing.T) {
	mock := inference.NewMock()
	mock.VisionFunc = func(ctx context.Context, req *inference.VisionRequest) (*inference.VisionResponse, error) {
		return &inference.VisionResponse{
			Content: `[{"description": "blue sock", "category": "clothing", "confidence": 85,
				"bbox": [200, 200, 320, 330], "size": "small", "accessibility": "clear"}]`,
		}, nil
	}

	c := NewClassifier(mock, testClassifierConfig())
	objects, err := c.Classify(context.Background(), []byte{0xff, 0xd8}, 1080)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, detect.CategoryClothing, objects[0].Category)
}

func TestClassifyRetriesBadJSON(t *testing.T) {
	attempts := 0
	mock := inference.NewMock()
	mock.VisionFunc = func(ctx context.Context, req *inference.VisionRequest) (*inference.VisionResponse, error) {
		attempts++
		if attempts < 3 {
			return &inference.VisionResponse{Content: "sorry, I cannot"}, nil
		}
		return &inference.VisionResponse{Content: `{"objects": []}`}, nil
	}

	c := NewClassifier(mock, testClassifierConfig())
	objects, err := c.Classify(context.Background(), []byte{0xff, 0xd8}, 1080)
	require.NoError(t, err)
	assert.Empty(t, objects)
	assert.Equal(t, 3, attempts)
}

func TestClassifyExhaustsRetries(t *testing.T) {
	provider := inference.WithError(errors.New("model offline"))

	c := NewClassifier(provider, testClassifierConfig())
	_, err := c.Classify(context.Background(), []byte{0xff, 0xd8}, 1080)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, provider.CallCount("Vision"))
}

func TestClassifyEmptyFloor(t *testing.T) {
	mock := inference.NewMock()
	mock.VisionFunc = func(ctx context.Context, req *inference.VisionRequest) (*inference.VisionResponse, error) {
		return &inference.VisionResponse{Content: `{"objects": []}`}, nil
	}

	c := NewClassifier(mock, testClassifierConfig())
	objects, err := c.Classify(context.Background(), []byte{0xff, 0xd8}, 1080)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestQualityCheck(t *testing.T) {
	cfg := DefaultQualityConfig()

	assert.NoError(t, cfg.Check(QualityReport{Brightness: 120, Sharpness: 300}))
	assert.ErrorIs(t, cfg.Check(QualityReport{Brightness: 10, Sharpness: 300}), ErrTooDark)
	assert.ErrorIs(t, cfg.Check(QualityReport{Brightness: 120, Sharpness: 5}), ErrTooBlurry)
}
