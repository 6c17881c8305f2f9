package audit

import (
	"context"
	"strings"
	"time"

	"github.com/BetterCallFirewall/ShopAudit/internal/llm"
	"github.com/BetterCallFirewall/ShopAudit/internal/models"
	"go.uber.org/zap"
)

// Client runs audits against one LLM provider
type Client struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewClient creates an audit client. The provider is built and validated by the caller.
func NewClient(provider llm.Provider, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		provider: provider,
		logger:   logger.Named("audit"),
	}
}

// Analyze audits the store at url with a single provider call.
// url must already be normalized (see NormalizeURL). There is no retry and no
// timeout beyond what ctx carries. Every failure is an *Error.
func (c *Client) Analyze(ctx context.Context, url string) (*models.AuditResult, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &Error{Kind: KindValidation, URL: url, Err: ErrEmptyURL}
	}

	log := c.logger.With(
		zap.String("url", url),
		zap.String("provider", c.provider.GetName()),
		zap.String("model", c.provider.GetModel()),
	)
	start := time.Now()

	text, err := c.provider.Generate(ctx, llm.BuildAuditPrompt(url))
	if err != nil {
		return nil, c.fail(log, url, KindNetwork, err)
	}

	report, err := llm.ParseAuditResponse(text)
	if err != nil {
		log.Debug("unparsable response", zap.String("text", llm.TruncateString(text, 500)))
		return nil, c.fail(log, url, classify(err), err)
	}

	for _, section := range report.Sections {
		if section.StatusMismatch() {
			log.Warn("section status disagrees with score",
				zap.String("section", section.Title),
				zap.String("status", string(section.Status)),
				zap.Int("score", section.Score),
			)
		}
	}

	log.Info("audit completed",
		zap.Int("overall_score", report.OverallScore),
		zap.Int("sections", len(report.Sections)),
		zap.Duration("took", time.Since(start)),
	)

	return models.NewAuditResult(url, *report), nil
}

func (c *Client) fail(log *zap.Logger, url string, kind Kind, err error) error {
	log.Error("audit failed", zap.String("kind", string(kind)), zap.Error(err))
	return &Error{Kind: kind, URL: url, Err: err}
}
