package llm

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig configures a GeminiProvider
type GeminiConfig struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API endpoint (tests, proxies)
	BaseURL    string
	HTTPClient *http.Client

	// DisableSearch turns off the Google Search tool
	DisableSearch bool
}

// GeminiProvider calls Google Gemini with Google Search grounding enabled
type GeminiProvider struct {
	client *genai.Client
	model  string
	search bool
	logger *zap.Logger
}

// NewGeminiProvider creates the Gemini client once. A missing API key fails here
// rather than on the first request.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini provider: %w", ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  cfg.Model,
		search: !cfg.DisableSearch,
		logger: logger.Named("gemini"),
	}, nil
}

// Generate runs a single generateContent call and returns the response text.
// An empty string means the model produced no text.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	// responseSchema is not set: the API rejects it together with the search tool
	config := &genai.GenerateContentConfig{}
	if p.search {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	p.logGrounding(resp)

	return resp.Text(), nil
}

// logGrounding records which web sources the search tool used
func (p *GeminiProvider) logGrounding(resp *genai.GenerateContentResponse) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return
	}

	var sources []string
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk != nil && chunk.Web != nil {
			sources = append(sources, chunk.Web.URI)
		}
	}
	p.logger.Debug("search grounding", zap.Strings("sources", sources))
}

func (p *GeminiProvider) GetName() string {
	return "gemini"
}

func (p *GeminiProvider) GetModel() string {
	return p.model
}
