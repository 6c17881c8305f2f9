package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BetterCallFirewall/ShopAudit/internal/audit"
	"github.com/BetterCallFirewall/ShopAudit/internal/models"
)

type auditor interface {
	Analyze(ctx context.Context, url string) (*models.AuditResult, error)
}

// Recorder wraps an auditor and stores every audit that passes through it
type Recorder struct {
	next  auditor
	store *MemoryStorage
	now   func() time.Time
}

func NewRecorder(next auditor, store *MemoryStorage) *Recorder {
	return &Recorder{next: next, store: store, now: time.Now}
}

func (r *Recorder) Analyze(ctx context.Context, url string) (*models.AuditResult, error) {
	start := r.now()
	result, err := r.next.Analyze(ctx, url)

	r.store.StoreAudit(&AuditRecord{
		ID:        uuid.NewString(),
		URL:       url,
		Result:    result,
		ErrorKind: audit.KindOf(err),
		Duration:  r.now().Sub(start),
		Timestamp: start,
	})

	return result, err
}
