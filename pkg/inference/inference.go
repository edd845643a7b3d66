// Package inference provides a unified interface for LLM chat and vision
// inference.
//
// The package abstracts chat completions and image analysis behind a single
// Provider interface, so callers can switch between the Gemini REST API,
// the official Gemini SDK, and test mocks without code changes. Providers
// can be stacked into a Chain that falls back to the next provider when
// one fails.
//
// Example usage:
//
//	provider, _ := inference.NewGemini(
//	    inference.WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	    inference.WithModel("gemini-2.0-flash"),
//	)
//	defer provider.Close()
//
//	// Chat
//	resp, _ := provider.Chat(ctx, &inference.ChatRequest{
//	    Messages: []inference.Message{
//	        {Role: inference.RoleUser, Content: "Hello!"},
//	    },
//	})
//
//	// Vision
//	visionResp, _ := provider.Vision(ctx, &inference.VisionRequest{
//	    Image:  frame,
//	    Prompt: "What objects are on the floor?",
//	})
package inference

import (
	"context"
	"image"
)

// Provider is the unified inference interface for chat and vision.
// All implementations must satisfy this interface.
type Provider interface {
	// Chat generates a response from a sequence of messages.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Vision analyzes one or more images with a text prompt.
	Vision(ctx context.Context, req *VisionRequest) (*VisionResponse, error)

	// Capabilities returns what features this provider supports.
	Capabilities() Capabilities

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Capabilities describes what features a provider supports.
type Capabilities struct {
	Chat     bool // Supports chat completions
	Vision   bool // Supports image input
	JSONMode bool // Supports constrained JSON output
}

// ChatRequest for chat completions.
type ChatRequest struct {
	// Messages is the conversation history.
	Messages []Message

	// System is an optional system instruction.
	System string

	// Model overrides the default model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness (0.0-2.0).
	Temperature float64

	// JSONOnly asks the model to emit nothing but a JSON document.
	// Providers without native JSON mode fall back to prompt wording.
	JSONOnly bool
}

// ChatResponse from chat completion.
type ChatResponse struct {
	// Message is the assistant's response.
	Message Message

	// FinishReason indicates why generation stopped.
	FinishReason string

	// Usage tracks token consumption.
	Usage Usage

	// Model used for generation.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// VisionRequest for image analysis.
type VisionRequest struct {
	// Image to analyze (single image).
	Image image.Image

	// Images for multi-image analysis.
	Images []image.Image

	// ImageJPEG is a pre-encoded JPEG frame, used when the caller
	// already has compressed bytes and re-encoding would waste time.
	ImageJPEG []byte

	// Prompt describing what to analyze or ask about the image.
	Prompt string

	// System is an optional system instruction.
	System string

	// Model overrides the default vision model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness.
	Temperature float64

	// JSONOnly asks the model to emit nothing but a JSON document.
	JSONOnly bool
}

// VisionResponse from image analysis.
type VisionResponse struct {
	// Content is the natural language response.
	Content string

	// Usage tracks token consumption.
	Usage Usage

	// Model used for analysis.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// Usage tracks token consumption for billing and limits.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
