package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nttbank/msaccount/src/internal/domain"
)

type CommissionRepository struct {
	mu    sync.RWMutex
	rules map[string]domain.CommissionRule
	order []string
}

func NewCommissionRepository() *CommissionRepository {
	return &CommissionRepository{rules: make(map[string]domain.CommissionRule)}
}

func (r *CommissionRepository) GetByID(_ context.Context, id string) (domain.CommissionRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	if !ok {
		return domain.CommissionRule{}, domain.ErrRecordNotFound
	}
	return rule, nil
}

// Save enforces one rule per account type like the unique index in postgres.
func (r *CommissionRepository) Save(_ context.Context, rule domain.CommissionRule) (domain.CommissionRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.rules {
		if id != rule.ID && existing.AccountType == rule.AccountType {
			return domain.CommissionRule{}, domain.ErrDuplicateRecord
		}
	}

	now := time.Now().UTC()
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if existing, ok := r.rules[rule.ID]; ok {
		rule.CreatedAt = existing.CreatedAt
	} else {
		rule.CreatedAt = now
		r.order = append(r.order, rule.ID)
	}
	rule.UpdatedAt = now

	r.rules[rule.ID] = rule
	return rule, nil
}

func (r *CommissionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.rules, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *CommissionRepository) ListAll(_ context.Context) ([]domain.CommissionRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CommissionRule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rules[id])
	}
	return out, nil
}

func (r *CommissionRepository) FindByAccountType(_ context.Context, accountType domain.AccountType) (domain.CommissionRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if rule := r.rules[id]; rule.AccountType == accountType {
			return rule, nil
		}
	}
	return domain.CommissionRule{}, domain.ErrRecordNotFound
}
