// Package vision turns camera frames into structured floor-object
// detections using a multimodal model.
//
// The Classifier sends a frame with a strict JSON prompt, parses the
// response into detect.Objects, and runs the detection post-processor
// over them. Frames that are too dark or too blurry are rejected
// before spending an API call.
package vision

import "image"

// Source provides camera frames. Implemented by camera.Camera and
// camera.Mock.
type Source interface {
	Capture() (image.Image, error)
	CaptureJPEG() ([]byte, error)
}
