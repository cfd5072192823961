package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nttbank/msaccount/src/internal/domain"
)

type TransactionRepository struct {
	mu      sync.RWMutex
	records []domain.TransactionRecord
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) Save(_ context.Context, record domain.TransactionRecord) (domain.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now().UTC()
	record.TransactionDate = domain.Date(record.TransactionDate)

	r.records = append(r.records, record)
	return record, nil
}

func (r *TransactionRepository) FindByNationalID(_ context.Context, nationalID string) ([]domain.TransactionRecord, error) {
	return r.filter(func(rec domain.TransactionRecord) bool { return rec.NationalID == nationalID }), nil
}

func (r *TransactionRepository) FindByCustomerIDOrigin(_ context.Context, customerID string) ([]domain.TransactionRecord, error) {
	return r.filter(func(rec domain.TransactionRecord) bool { return rec.CustomerIDOrigin == customerID }), nil
}

// All returns every ledger entry in append order.
func (r *TransactionRepository) All() []domain.TransactionRecord {
	return r.filter(func(domain.TransactionRecord) bool { return true })
}

func (r *TransactionRepository) filter(keep func(domain.TransactionRecord) bool) []domain.TransactionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TransactionRecord, 0)
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}
