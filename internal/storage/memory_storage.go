package storage

import (
	"sync"
	"time"

	"github.com/BetterCallFirewall/ShopAudit/internal/audit"
	"github.com/BetterCallFirewall/ShopAudit/internal/models"
)

// DefaultLimit is the number of audits kept when no limit is configured
const DefaultLimit = 50

// AuditRecord is one finished audit, successful or not
type AuditRecord struct {
	ID        string              `json:"id"`
	URL       string              `json:"url"`
	Result    *models.AuditResult `json:"result,omitempty"`
	ErrorKind audit.Kind          `json:"errorKind,omitempty"`
	Duration  time.Duration       `json:"duration"`
	Timestamp time.Time           `json:"timestamp"`
}

// MemoryStorage keeps the most recent audits in memory. Oldest records are
// evicted once the limit is reached.
type MemoryStorage struct {
	records map[string]*AuditRecord
	order   []string
	limit   int
	mu      sync.RWMutex
}

func NewMemoryStorage(limit int) *MemoryStorage {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryStorage{
		records: make(map[string]*AuditRecord),
		limit:   limit,
	}
}

func (s *MemoryStorage) StoreAudit(rec *AuditRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; !ok {
		s.order = append(s.order, rec.ID)
	}
	s.records[rec.ID] = rec

	for len(s.order) > s.limit {
		delete(s.records, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *MemoryStorage) GetAudit(id string) (*AuditRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// GetAllAudits returns the stored audits, newest first
func (s *MemoryStorage) GetAllAudits() []*AuditRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*AuditRecord, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		records = append(records, s.records[s.order[i]])
	}
	return records
}

func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
