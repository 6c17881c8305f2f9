package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GenericProvider talks to OpenAI-compatible or Ollama HTTP endpoints.
// These backends have no search tool, so audits run on model knowledge alone.
type GenericProvider struct {
	client  *http.Client
	name    string
	model   string
	baseURL string
	apiKey  string // optional
	format  APIFormat
}

// APIFormat selects the request/response shape of the endpoint
type APIFormat string

const (
	// FormatOpenAI - OpenAI compatible API (LocalAI, LM Studio, vLLM, etc.)
	FormatOpenAI APIFormat = "openai"

	// FormatOllama - Ollama API
	FormatOllama APIFormat = "ollama"
)

// GenericConfig configures a GenericProvider
type GenericConfig struct {
	Name       string
	Model      string
	BaseURL    string // e.g. "http://localhost:11434"
	APIKey     string
	Format     APIFormat
	HTTPClient *http.Client
}

// NewGenericProvider creates an HTTP provider. The default client has no timeout:
// an audit runs until the endpoint answers or the context ends.
func NewGenericProvider(cfg GenericConfig) *GenericProvider {
	if cfg.Name == "" {
		cfg.Name = "generic"
	}
	if cfg.Format == "" {
		cfg.Format = FormatOpenAI
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	return &GenericProvider{
		client:  cfg.HTTPClient,
		name:    cfg.Name,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		format:  cfg.Format,
	}
}

// Generate posts the prompt and extracts the text of the reply
func (p *GenericProvider) Generate(ctx context.Context, prompt string) (string, error) {
	httpReq, err := p.buildHTTPRequest(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", httpResp.StatusCode, TruncateString(string(body), 500))
	}

	content, err := p.parseResponse(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return content, nil
}

func (p *GenericProvider) buildHTTPRequest(ctx context.Context, prompt string) (*http.Request, error) {
	var requestBody interface{}
	var endpoint string

	switch p.format {
	case FormatOpenAI:
		endpoint = p.baseURL + "/chat/completions"
		requestBody = map[string]interface{}{
			"model": p.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"response_format": map[string]string{
				"type": "json_object",
			},
		}

	case FormatOllama:
		endpoint = p.baseURL + "/api/generate"
		requestBody = map[string]interface{}{
			"model":  p.model,
			"prompt": prompt,
			"format": "json",
			"stream": false,
		}

	default:
		return nil, fmt.Errorf("unsupported API format: %s", p.format)
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	return req, nil
}

func (p *GenericProvider) parseResponse(body []byte) (string, error) {
	switch p.format {
	case FormatOpenAI:
		// {"choices": [{"message": {"content": "..."}}]}
		var resp struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse OpenAI response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", nil
		}
		return resp.Choices[0].Message.Content, nil

	case FormatOllama:
		// {"response": "..."}
		var resp struct {
			Response string `json:"response"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse Ollama response: %w", err)
		}
		return resp.Response, nil

	default:
		return "", fmt.Errorf("unsupported format: %s", p.format)
	}
}

func (p *GenericProvider) GetName() string {
	return p.name
}

func (p *GenericProvider) GetModel() string {
	return p.model
}
