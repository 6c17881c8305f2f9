package audit

import (
	"errors"
	"fmt"

	"github.com/BetterCallFirewall/ShopAudit/internal/llm"
)

// UserMessage is the only failure text shown to end users
const UserMessage = "Failed to analyze the store. Please check the URL and try again."

// Kind classifies why an audit failed
type Kind string

const (
	// KindValidation: bad input URL, or a response that is JSON but not an AuditReport
	KindValidation Kind = "validation"
	// KindNetwork: the model call itself failed
	KindNetwork Kind = "network"
	// KindParse: the response text is not JSON after fence stripping
	KindParse Kind = "parse"
	// KindUpstreamEmpty: the model answered with no text
	KindUpstreamEmpty Kind = "upstream_empty"
)

// ErrEmptyURL is returned for an empty or whitespace-only URL
var ErrEmptyURL = errors.New("url is required")

// Error is a failed audit. Error() carries the diagnostic cause; Message gives
// the text for end users.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("audit %s (%s): %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of an audit error, or "" for anything else
func KindOf(err error) Kind {
	var auditErr *Error
	if errors.As(err, &auditErr) {
		return auditErr.Kind
	}
	return ""
}

// Message maps any error to the user-facing text
func Message(err error) string {
	if err == nil {
		return ""
	}
	return UserMessage
}

// classify maps parser and provider failures to a Kind
func classify(err error) Kind {
	var schemaErr *llm.SchemaError
	switch {
	case errors.Is(err, llm.ErrEmptyResponse):
		return KindUpstreamEmpty
	case errors.As(err, &schemaErr):
		return KindValidation
	case errors.Is(err, llm.ErrMalformedJSON):
		return KindParse
	default:
		return KindNetwork
	}
}
