package ui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BetterCallFirewall/ShopAudit/internal/audit"
	"github.com/BetterCallFirewall/ShopAudit/internal/models"
)

type fakeAuditor struct {
	mu      sync.Mutex
	urls    []string
	result  *models.AuditResult
	err     error
	release chan struct{}
}

func (f *fakeAuditor) Analyze(ctx context.Context, url string) (*models.AuditResult, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	result, err, release := f.result, f.err, f.release
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return result, err
}

func (f *fakeAuditor) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

func (f *fakeAuditor) set(result *models.AuditResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result, f.err = result, err
}

func sampleResult() *models.AuditResult {
	return models.NewAuditResult("https://mystore.com", models.AuditReport{
		OverallScore: 88,
		Summary:      "Clean storefront with a fast checkout.",
		Sections: []models.AuditSection{
			{Title: "First Impressions & Design", Score: 90, Status: models.StatusGood, Details: []string{"Strong hero"}},
			{Title: "User Experience & Navigation", Score: 85, Status: models.StatusGood, Details: []string{"Clear menu"}},
			{Title: "Product Presentation", Score: 70, Status: models.StatusWarning, Details: []string{"Few reviews"}},
			{Title: "Marketing & Social Proof", Score: 40, Status: models.StatusGood, Details: []string{"No trust badges"}},
			{Title: "Checkout & Trust", Score: 95, Status: models.StatusGood, Details: []string{"Many payment options"}},
		},
		Recommendations: []string{"Add reviews", "Show trust badges", "Tighten copy"},
	})
}

func recordPhases(c *Controller) func() []State {
	var mu sync.Mutex
	var states []State
	c.OnChange(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s)
	})
	return func() []State {
		mu.Lock()
		defer mu.Unlock()
		return append([]State(nil), states...)
	}
}

func TestController_Submit(t *testing.T) {
	auditor := &fakeAuditor{result: sampleResult()}
	c := NewController(auditor)
	seen := recordPhases(c)

	assert.Equal(t, PhaseIdle, c.State().Phase)

	settled, err := c.Submit(context.Background(), "mystore.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://mystore.com"}, auditor.calls())
	assert.Equal(t, PhaseSettled, settled.Phase)
	assert.Equal(t, "mystore.com", settled.Input)
	assert.Empty(t, settled.Error)
	require.NotNil(t, settled.Result)
	assert.Equal(t, 88, settled.Result.OverallScore)

	states := seen()
	require.Len(t, states, 2)
	assert.Equal(t, PhaseLoading, states[0].Phase)
	assert.True(t, states[0].Loading())
	assert.Nil(t, states[0].Result)
	assert.Empty(t, states[0].Error)
	assert.Equal(t, settled, states[1])
	assert.Equal(t, settled, c.State())
}

func TestController_Submit_EmptyInput(t *testing.T) {
	auditor := &fakeAuditor{result: sampleResult()}
	c := NewController(auditor)
	seen := recordPhases(c)

	for _, raw := range []string{"", "   ", "\t\n"} {
		state, err := c.Submit(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, PhaseIdle, state.Phase)
	}

	assert.Empty(t, auditor.calls())
	assert.Empty(t, seen())
}

func TestController_Submit_FailureClearsResult(t *testing.T) {
	auditor := &fakeAuditor{result: sampleResult()}
	c := NewController(auditor)

	_, err := c.Submit(context.Background(), "mystore.com")
	require.NoError(t, err)
	require.NotNil(t, c.State().Result)

	auditor.set(nil, &audit.Error{Kind: audit.KindNetwork, URL: "https://broken.com", Err: errors.New("dial tcp: refused")})

	state, err := c.Submit(context.Background(), "broken.com")
	require.NoError(t, err)

	assert.Equal(t, PhaseSettled, state.Phase)
	assert.False(t, state.Loading())
	assert.Nil(t, state.Result)
	assert.Equal(t, audit.UserMessage, state.Error)
	assert.NotContains(t, state.Error, "refused")
}

func TestController_Submit_ErrorClearedOnNextRun(t *testing.T) {
	auditor := &fakeAuditor{err: errors.New("boom")}
	c := NewController(auditor)

	state, err := c.Submit(context.Background(), "mystore.com")
	require.NoError(t, err)
	require.NotEmpty(t, state.Error)

	auditor.set(sampleResult(), nil)
	seen := recordPhases(c)

	state, err = c.Submit(context.Background(), "mystore.com")
	require.NoError(t, err)

	assert.Empty(t, state.Error)
	assert.NotNil(t, state.Result)
	assert.Empty(t, seen()[0].Error, "loading clears the previous error")
}

func TestController_Submit_Busy(t *testing.T) {
	auditor := &fakeAuditor{result: sampleResult(), release: make(chan struct{})}
	c := NewController(auditor)

	loading := make(chan struct{})
	c.OnChange(func(s State) {
		if s.Loading() {
			close(loading)
		}
	})

	done := make(chan State)
	go func() {
		state, _ := c.Submit(context.Background(), "first.com")
		done <- state
	}()

	<-loading

	state, err := c.Submit(context.Background(), "second.com")
	require.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, PhaseLoading, state.Phase)
	assert.Equal(t, "first.com", state.Input)

	close(auditor.release)
	settled := <-done

	assert.Equal(t, PhaseSettled, settled.Phase)
	assert.Equal(t, []string{"https://first.com"}, auditor.calls())
}
