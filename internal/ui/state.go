package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/BetterCallFirewall/ShopAudit/internal/audit"
	"github.com/BetterCallFirewall/ShopAudit/internal/models"
)

// Phase is the state of one audit form
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSettled Phase = "settled"
)

// ErrBusy is returned by Submit while an audit is in flight; the submit control is disabled then
var ErrBusy = errors.New("an audit is already running")

// Auditor runs one audit for a normalized URL
type Auditor interface {
	Analyze(ctx context.Context, url string) (*models.AuditResult, error)
}

// State is a snapshot of the form. Settled states carry either Result or Error, never both.
type State struct {
	Phase  Phase               `json:"phase"`
	Input  string              `json:"input"`
	Result *models.AuditResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// Loading reports whether a request is in flight
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// Controller owns the state of a single form instance
type Controller struct {
	auditor Auditor

	mu        sync.Mutex
	state     State
	observers []func(State)
}

// NewController creates a controller in the idle phase
func NewController(auditor Auditor) *Controller {
	return &Controller{
		auditor: auditor,
		state:   State{Phase: PhaseIdle},
	}
}

// OnChange registers fn to receive every state transition, in order
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State returns the current snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one audit for raw input and blocks until it settles.
// Empty input is ignored: no transition, no request. While loading it returns ErrBusy.
func (c *Controller) Submit(ctx context.Context, raw string) (State, error) {
	url, ok := audit.NormalizeURL(raw)

	c.mu.Lock()
	if !ok {
		current := c.state
		c.mu.Unlock()
		return current, nil
	}
	if c.state.Loading() {
		current := c.state
		c.mu.Unlock()
		return current, ErrBusy
	}
	loading := c.transition(State{Phase: PhaseLoading, Input: raw})
	observers := c.observers
	c.mu.Unlock()

	notify(observers, loading)

	result, err := c.auditor.Analyze(ctx, url)

	settled := State{Phase: PhaseSettled, Input: raw, Result: result}
	if err != nil {
		settled.Result = nil
		settled.Error = audit.Message(err)
	}

	c.mu.Lock()
	settled = c.transition(settled)
	observers = c.observers
	c.mu.Unlock()

	notify(observers, settled)

	return settled, nil
}

// transition replaces the state wholesale; callers hold mu
func (c *Controller) transition(next State) State {
	c.state = next
	return next
}

func notify(observers []func(State), s State) {
	for _, fn := range observers {
		fn(s)
	}
}
