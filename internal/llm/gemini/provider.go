package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/anuragkar/scambait/internal/llm"
)

// Provider implements llm.Provider for Google Gemini
type Provider struct {
	apiKey string
	model  string
}

// NewProvider creates a new Gemini provider
func NewProvider(apiKey, model string) *Provider {
	return &Provider{
		apiKey: apiKey,
		model:  model,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) AvailableModels() []string {
	return []string{
		"gemini-2.5-flash",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	}
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-2.5-flash"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// Complete generates a completion for the request
func (p *Provider) Complete(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	if model == "" {
		model = p.DefaultModel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(model)
	temperature := float32(req.Temperature)
	generativeModel.Temperature = &temperature
	if req.MaxTokens > 0 {
		maxTokens := int32(req.MaxTokens)
		generativeModel.MaxOutputTokens = &maxTokens
	}
	if req.System != "" {
		generativeModel.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.ForceJSON {
		generativeModel.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	resp, err := generativeModel.GenerateContent(ctx, genai.Text(req.Prompt))
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	output, err := collectText(resp)
	if err != nil {
		return nil, err
	}

	tokensUsed := 0
	if resp.UsageMetadata != nil {
		tokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &llm.Response{
		Text:       output,
		Model:      model,
		TokensUsed: tokensUsed,
		LatencyMs:  latency,
	}, nil
}

// DescribeImage returns a plain-text description of the image
func (p *Provider) DescribeImage(ctx context.Context, req llm.VisionRequest, model string) (*llm.Response, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	if model == "" {
		model = p.DefaultModel()
	}

	format, data, err := decodeDataURI(req.DataURI)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(model)
	if req.MaxTokens > 0 {
		maxTokens := int32(req.MaxTokens)
		generativeModel.MaxOutputTokens = &maxTokens
	}

	start := time.Now()
	resp, err := generativeModel.GenerateContent(ctx, genai.ImageData(format, data), genai.Text(req.Prompt))
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return nil, fmt.Errorf("gemini vision error: %w", err)
	}

	output, err := collectText(resp)
	if err != nil {
		return nil, err
	}

	tokensUsed := 0
	if resp.UsageMetadata != nil {
		tokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &llm.Response{
		Text:       output,
		Model:      model,
		TokensUsed: tokensUsed,
		LatencyMs:  latency,
	}, nil
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}
	return output, nil
}

// decodeDataURI splits "data:image/png;base64,..." into the genai image
// format name ("png") and the raw bytes.
func decodeDataURI(uri string) (string, []byte, error) {
	meta, payload, found := strings.Cut(uri, ";base64,")
	if !found {
		return "", nil, fmt.Errorf("unsupported image payload: not a base64 data uri")
	}

	mediaType := strings.TrimPrefix(meta, "data:")
	format := strings.TrimPrefix(mediaType, "image/")
	if format == mediaType {
		return "", nil, fmt.Errorf("unsupported image media type: %s", mediaType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return format, data, nil
}
