package inference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const providerGenAI = "genai"

// GenAI implements the Provider interface on the official Gemini SDK.
// Prefer it over the REST provider when the SDK is acceptable: it handles
// token counting and native JSON output mode.
type GenAI struct {
	client *genai.Client
	config *Config
	logger *slog.Logger
}

// NewGenAI creates an SDK-backed Gemini provider.
func NewGenAI(ctx context.Context, opts ...Option) (*GenAI, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, WrapError(providerGenAI, ErrNoAPIKey)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, WrapError(providerGenAI, err)
	}

	return &GenAI{
		client: client,
		config: cfg,
		logger: cfg.Logger.With("component", "inference.genai"),
	}, nil
}

// Chat generates a chat completion using the SDK.
func (g *GenAI) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = g.config.Model
	}

	m := g.model(model, req.System, req.Temperature, req.MaxTokens, req.JSONOnly)

	var parts []genai.Part
	for _, msg := range req.Messages {
		parts = append(parts, genai.Text(msg.Content))
	}

	resp, err := g.generate(ctx, m, parts)
	if err != nil {
		return nil, err
	}

	text := firstText(resp)
	if text == "" {
		return nil, WrapError(providerGenAI, ErrEmptyResponse)
	}

	return &ChatResponse{
		Message:   NewAssistantMessage(text),
		Usage:     sdkUsage(resp),
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Vision analyzes one or more images using the SDK.
func (g *GenAI) Vision(ctx context.Context, req *VisionRequest) (*VisionResponse, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = g.config.VisionModel
	}

	m := g.model(model, req.System, req.Temperature, req.MaxTokens, req.JSONOnly)

	parts := []genai.Part{genai.Text(req.Prompt)}

	if len(req.ImageJPEG) > 0 {
		parts = append(parts, &genai.Blob{MIMEType: "image/jpeg", Data: req.ImageJPEG})
	}
	if req.Image != nil {
		data, err := EncodeImageJPEG(req.Image)
		if err != nil {
			return nil, WrapError(providerGenAI, fmt.Errorf("encode image: %w", err))
		}
		parts = append(parts, &genai.Blob{MIMEType: "image/jpeg", Data: data})
	}
	for _, img := range req.Images {
		data, err := EncodeImageJPEG(img)
		if err != nil {
			return nil, WrapError(providerGenAI, fmt.Errorf("encode image: %w", err))
		}
		parts = append(parts, &genai.Blob{MIMEType: "image/jpeg", Data: data})
	}

	if len(parts) == 1 {
		return nil, WrapError(providerGenAI, fmt.Errorf("no image provided"))
	}

	resp, err := g.generate(ctx, m, parts)
	if err != nil {
		return nil, err
	}

	text := firstText(resp)
	if text == "" {
		return nil, WrapError(providerGenAI, ErrEmptyResponse)
	}

	return &VisionResponse{
		Content:   text,
		Usage:     sdkUsage(resp),
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Capabilities returns the SDK provider's capabilities.
func (g *GenAI) Capabilities() Capabilities {
	return Capabilities{
		Chat:     true,
		Vision:   true,
		JSONMode: true,
	}
}

// Health checks API connectivity.
func (g *GenAI) Health(ctx context.Context) error {
	_, err := g.Chat(ctx, &ChatRequest{
		Messages:  []Message{NewUserMessage("test")},
		MaxTokens: 1,
	})
	return err
}

// Close releases the underlying SDK client.
func (g *GenAI) Close() error {
	return g.client.Close()
}

// model builds a configured GenerativeModel for one request.
func (g *GenAI) model(name, system string, temp float64, maxTokens int, jsonOnly bool) *genai.GenerativeModel {
	m := g.client.GenerativeModel(name)

	if temp == 0 {
		temp = g.config.Temperature
	}
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(float32(temp)),
		MaxOutputTokens: ptrInt32(int32(maxTokens)),
	}
	if jsonOnly {
		m.GenerationConfig.ResponseMIMEType = "application/json"
	}

	if system != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	return m
}

// generate calls the SDK and retries transient failures.
func (g *GenAI) generate(ctx context.Context, m *genai.GenerativeModel, parts []genai.Part) (*genai.GenerateContentResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= g.config.MaxRetries; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		g.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * g.config.RetryDelay):
		}
	}
	return nil, WrapError(providerGenAI, lastErr)
}

// firstText returns the first text part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func sdkUsage(resp *genai.GenerateContentResponse) Usage {
	if resp == nil || resp.UsageMetadata == nil {
		return Usage{}
	}
	return Usage{
		PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
		CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
	}
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }

// Verify GenAI implements Provider at compile time.
var _ Provider = (*GenAI)(nil)
