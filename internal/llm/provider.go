package llm

import "context"

// Request contains completion parameters
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	// ForceJSON asks the provider for a strict JSON object response using
	// whatever mechanism the vendor exposes.
	ForceJSON bool
}

// Response contains LLM completion result
type Response struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete generates a completion for the request
	Complete(ctx context.Context, req Request, model string) (*Response, error)
}

// VisionRequest contains an image description request
type VisionRequest struct {
	Prompt    string
	DataURI   string
	MaxTokens int
}

// VisionProvider is implemented by providers that can describe images
type VisionProvider interface {
	Provider

	// DescribeImage returns a plain-text description of the image
	DescribeImage(ctx context.Context, req VisionRequest, model string) (*Response, error)
}
