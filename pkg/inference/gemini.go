package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const providerGemini = "gemini"

// Gemini implements the Provider interface against the Gemini REST API.
// It carries no SDK dependency, so it suits constrained targets like the
// robot's onboard computer. See GenAI for the SDK-backed provider.
type Gemini struct {
	apiKey string
	config *Config
	http   *http.Client
	logger *slog.Logger
}

// NewGemini creates a Gemini REST provider.
func NewGemini(opts ...Option) (*Gemini, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, WrapError(providerGemini, ErrNoAPIKey)
	}

	return &Gemini{
		apiKey: cfg.APIKey,
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger.With("component", "inference.gemini"),
	}, nil
}

// Chat generates a chat completion using Gemini.
func (g *Gemini) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = g.config.Model
	}

	genCfg := map[string]interface{}{
		"temperature":     g.config.Temperature,
		"maxOutputTokens": g.config.MaxTokens,
	}
	if req.Temperature != 0 {
		genCfg["temperature"] = req.Temperature
	}
	if req.MaxTokens != 0 {
		genCfg["maxOutputTokens"] = req.MaxTokens
	}
	if req.JSONOnly {
		genCfg["responseMimeType"] = "application/json"
	}

	payload := map[string]interface{}{
		"contents":         g.convertMessages(req.Messages),
		"generationConfig": genCfg,
	}
	if req.System != "" {
		payload["systemInstruction"] = map[string]interface{}{
			"parts": []map[string]interface{}{{"text": req.System}},
		}
	}

	result, err := g.generate(ctx, model, payload)
	if err != nil {
		return nil, err
	}

	return &ChatResponse{
		Message: Message{
			Role:    RoleAssistant,
			Content: result.Candidates[0].Content.Parts[0].Text,
		},
		FinishReason: result.Candidates[0].FinishReason,
		Usage:        result.usage(),
		Model:        model,
		LatencyMs:    time.Since(start).Milliseconds(),
	}, nil
}

// Vision analyzes one or more images using Gemini.
func (g *Gemini) Vision(ctx context.Context, req *VisionRequest) (*VisionResponse, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = g.config.VisionModel
	}

	parts := []map[string]interface{}{
		{"text": req.Prompt},
	}

	imagePart := func(b64 string) map[string]interface{} {
		return map[string]interface{}{
			"inline_data": map[string]string{
				"mime_type": "image/jpeg",
				"data":      b64,
			},
		}
	}

	if len(req.ImageJPEG) > 0 {
		parts = append(parts, imagePart(EncodeImageBytesBase64(req.ImageJPEG)))
	}
	if req.Image != nil {
		b64, err := EncodeImageBase64(req.Image)
		if err != nil {
			return nil, WrapError(providerGemini, fmt.Errorf("encode image: %w", err))
		}
		parts = append(parts, imagePart(b64))
	}
	for _, img := range req.Images {
		b64, err := EncodeImageBase64(img)
		if err != nil {
			return nil, WrapError(providerGemini, fmt.Errorf("encode image: %w", err))
		}
		parts = append(parts, imagePart(b64))
	}

	if len(parts) == 1 {
		return nil, WrapError(providerGemini, fmt.Errorf("no image provided"))
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}
	temp := req.Temperature
	if temp == 0 {
		temp = 0.7
	}

	genCfg := map[string]interface{}{
		"temperature":     temp,
		"maxOutputTokens": maxTokens,
	}
	if req.JSONOnly {
		genCfg["responseMimeType"] = "application/json"
	}

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": genCfg,
	}
	if req.System != "" {
		payload["systemInstruction"] = map[string]interface{}{
			"parts": []map[string]interface{}{{"text": req.System}},
		}
	}

	result, err := g.generate(ctx, model, payload)
	if err != nil {
		return nil, err
	}

	return &VisionResponse{
		Content:   result.Candidates[0].Content.Parts[0].Text,
		Usage:     result.usage(),
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Capabilities returns Gemini's capabilities.
func (g *Gemini) Capabilities() Capabilities {
	return Capabilities{
		Chat:     true,
		Vision:   true,
		JSONMode: true,
	}
}

// Health checks API connectivity.
func (g *Gemini) Health(ctx context.Context) error {
	_, err := g.Chat(ctx, &ChatRequest{
		Messages:  []Message{NewUserMessage("test")},
		MaxTokens: 1,
	})
	return err
}

// Close releases resources.
func (g *Gemini) Close() error {
	g.http.CloseIdleConnections()
	return nil
}

// generate posts a generateContent payload and retries transient failures.
func (g *Gemini) generate(ctx context.Context, model string, payload map[string]interface{}) (*geminiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(providerGemini, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.config.BaseURL, model, g.apiKey)

	var lastErr error
	for attempt := 1; attempt <= g.config.MaxRetries; attempt++ {
		result, err := g.generateOnce(ctx, url, body)
		if err == nil {
			return result, nil
		}
		lastErr = err

		apiErr, ok := err.(*APIError)
		if ok && !apiErr.IsRetryable() {
			return nil, err
		}
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

	return nil, lastErr
}

func (g *Gemini) generateOnce(ctx context.Context, url string, body []byte) (*geminiResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(providerGemini, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return nil, WrapError(providerGemini, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, g.parseError(resp)
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, WrapError(providerGemini, fmt.Errorf("decode response: %w", err))
	}

	if result.Error.Message != "" {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    result.Error.Message,
			Provider:   providerGemini,
		}
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, WrapError(providerGemini, ErrEmptyResponse)
	}

	return &result, nil
}

// convertMessages converts our Message format to Gemini's format.
func (g *Gemini) convertMessages(msgs []Message) []map[string]interface{} {
	var contents []map[string]interface{}

	for _, msg := range msgs {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}

		contents = append(contents, map[string]interface{}{
			"role": role,
			"parts": []map[string]interface{}{
				{"text": msg.Content},
			},
		})
	}

	return contents
}

// parseError reads and parses an error response.
func (g *Gemini) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}

	message := string(body)
	if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Provider:   providerGemini,
	}
}

// geminiResponse is the Gemini API response format.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (r *geminiResponse) usage() Usage {
	return Usage{
		PromptTokens:     r.UsageMetadata.PromptTokenCount,
		CompletionTokens: r.UsageMetadata.CandidatesTokenCount,
		TotalTokens:      r.UsageMetadata.TotalTokenCount,
	}
}

// Verify Gemini implements Provider at compile time.
var _ Provider = (*Gemini)(nil)
