package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeProvider struct {
	text    string
	err     error
	calls   int
	prompts []string
}

func (f *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeProvider) GetName() string  { return "fake" }
func (f *fakeProvider) GetModel() string { return "fake-1" }

const report = "```json\n" + `{
  "overallScore": 88,
  "summary": "Great store.",
  "sections": [
    {"title": "Design", "score": 90, "status": "good", "details": ["a"]},
    {"title": "UX", "score": 85, "status": "good", "details": ["b"]},
    {"title": "Product", "score": 80, "status": "good", "details": ["c"]},
    {"title": "Marketing", "score": 40, "status": "good", "details": ["d"]},
    {"title": "Checkout", "score": 95, "status": "good", "details": ["e"]}
  ],
  "recommendations": ["one", "two", "three"]
}` + "\n```"

func TestClient_Analyze(t *testing.T) {
	provider := &fakeProvider{text: report}
	core, logs := observer.New(zapcore.WarnLevel)
	client := NewClient(provider, zap.New(core))

	result, err := client.Analyze(context.Background(), "https://mystore.com")
	require.NoError(t, err)

	assert.Equal(t, "https://mystore.com", result.URL)
	assert.Equal(t, 88, result.OverallScore)
	require.Len(t, result.Sections, 5)
	assert.Equal(t, "Marketing", result.Sections[3].Title)
	assert.Equal(t, 1, provider.calls)
	assert.Contains(t, provider.prompts[0], "https://mystore.com")

	mismatches := logs.FilterMessage("section status disagrees with score").All()
	require.Len(t, mismatches, 1)
	assert.Equal(t, "Marketing", mismatches[0].ContextMap()["section"])
}

func TestClient_Analyze_EmptyURL(t *testing.T) {
	provider := &fakeProvider{text: report}
	client := NewClient(provider, nil)

	_, err := client.Analyze(context.Background(), "  ")
	require.Error(t, err)

	assert.Equal(t, KindValidation, KindOf(err))
	assert.ErrorIs(t, err, ErrEmptyURL)
	assert.Zero(t, provider.calls)
}

func TestClient_Analyze_ErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		want     Kind
	}{
		{"network", &fakeProvider{err: errors.New("dial tcp: connection refused")}, KindNetwork},
		{"empty text", &fakeProvider{text: ""}, KindUpstreamEmpty},
		{"malformed", &fakeProvider{text: "```json\n{oops\n```"}, KindParse},
		{"schema drift", &fakeProvider{text: `{"score": 70}`}, KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			client := NewClient(tt.provider, zap.New(core))

			result, err := client.Analyze(context.Background(), "https://mystore.com")
			require.Error(t, err)
			assert.Nil(t, result)

			assert.Equal(t, tt.want, KindOf(err))
			assert.Equal(t, UserMessage, Message(err))

			entries := logs.FilterMessage("audit failed").All()
			require.Len(t, entries, 1, "the cause is logged")
			assert.Equal(t, string(tt.want), entries[0].ContextMap()["kind"])
		})
	}
}

func TestError_KeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: KindNetwork, URL: "https://x.com", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "network")
	assert.Equal(t, UserMessage, Message(err))
	assert.Empty(t, Message(nil))
	assert.Equal(t, Kind(""), KindOf(cause))
}
