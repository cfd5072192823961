package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nttbank/msaccount/src/internal/domain"
)

// AccountRepository keeps accounts in insertion order so that
// FindFirstByCustomerID behaves like the postgres ORDER BY created_at.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	order    []string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return cloneAccount(account), nil
}

func (r *AccountRepository) Save(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if existing, ok := r.accounts[account.ID]; ok {
		account.CreatedAt = existing.CreatedAt
	} else {
		account.CreatedAt = now
		r.order = append(r.order, account.ID)
	}
	account.UpdatedAt = now

	r.accounts[account.ID] = cloneAccount(account)
	return cloneAccount(account), nil
}

func (r *AccountRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.accounts, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *AccountRepository) ListAll(_ context.Context) ([]domain.Account, error) {
	return r.filter(func(domain.Account) bool { return true }), nil
}

func (r *AccountRepository) FindByCustomerID(_ context.Context, customerID string) ([]domain.Account, error) {
	return r.filter(func(a domain.Account) bool { return a.CustomerID == customerID }), nil
}

func (r *AccountRepository) FindByNationalID(_ context.Context, nationalID string) ([]domain.Account, error) {
	return r.filter(func(a domain.Account) bool { return a.NationalID == nationalID }), nil
}

func (r *AccountRepository) FindFirstByCustomerID(ctx context.Context, customerID string) (domain.Account, error) {
	accounts, _ := r.FindByCustomerID(ctx, customerID)
	if len(accounts) == 0 {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return accounts[0], nil
}

func (r *AccountRepository) filter(keep func(domain.Account) bool) []domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0)
	for _, id := range r.order {
		account := r.accounts[id]
		if keep(account) {
			out = append(out, cloneAccount(account))
		}
	}
	return out
}

func cloneAccount(a domain.Account) domain.Account {
	a.Holders = slices.Clone(a.Holders)
	if a.LastDepositDate != nil {
		d := *a.LastDepositDate
		a.LastDepositDate = &d
	}
	return a
}
