package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BetterCallFirewall/ShopAudit/internal/models"
)

var (
	// ErrEmptyResponse means the model returned no text at all
	ErrEmptyResponse = errors.New("no response received from model")

	// ErrMalformedJSON means the text left after fence stripping is not JSON
	ErrMalformedJSON = errors.New("malformed JSON in model response")
)

// ParseError wraps a JSON syntax or decode failure
type ParseError struct {
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedJSON, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrMalformedJSON }

// SchemaError is returned when the response is valid JSON but not a valid AuditReport
type SchemaError struct {
	Issues []string
}

func (e *SchemaError) Error() string {
	return "model response does not match AuditReport schema: " + strings.Join(e.Issues, "; ")
}

// ParseAuditResponse turns raw model text into an AuditReport.
// Fences are stripped once; there is no second attempt with other cleanup rules.
func ParseAuditResponse(text string) (*models.AuditReport, error) {
	content := CleanJSONResponse(text)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	if !json.Valid([]byte(content)) {
		var probe any
		err := json.Unmarshal([]byte(content), &probe)
		return nil, &ParseError{Content: content, Err: err}
	}

	if err := validateReport(content); err != nil {
		return nil, err
	}

	var report models.AuditReport
	if err := json.Unmarshal([]byte(content), &report); err != nil {
		return nil, &ParseError{Content: content, Err: err}
	}

	return &report, nil
}
