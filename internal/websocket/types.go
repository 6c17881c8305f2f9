package websocket

import (
	"github.com/BetterCallFirewall/ShopAudit/internal/models"
	"github.com/BetterCallFirewall/ShopAudit/internal/ui"
)

// Message types on the wire
const (
	// MessageAudit is sent by the browser to start an audit
	MessageAudit = "audit"
	// MessageState carries every state transition of the session's form
	MessageState = "state"
	// MessageError reports a rejected inbound message
	MessageError = "error"
)

// Message is the envelope of every server to browser frame
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// Inbound is a browser to server frame
type Inbound struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// StateDTO is one form state. HTML holds the rendered content fragment once settled.
type StateDTO struct {
	Phase  ui.Phase            `json:"phase"`
	Input  string              `json:"input"`
	Error  string              `json:"error,omitempty"`
	Result *models.AuditResult `json:"result,omitempty"`
	HTML   string              `json:"html,omitempty"`
}

// ErrorDTO explains why an inbound frame was rejected
type ErrorDTO struct {
	Message string `json:"message"`
}
