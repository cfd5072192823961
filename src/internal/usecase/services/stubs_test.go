package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/nttbank/msaccount/src/internal/adapter/repository/memory"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/shopspring/decimal"
)

type cardCheckerStub struct {
	mu      sync.Mutex
	calls   [][]string
	checkFn func(customerIDs []string) (bool, error)
}

func (s *cardCheckerStub) HasCreditCard(_ context.Context, customerIDs []string) (bool, error) {
	s.mu.Lock()
	s.calls = append(s.calls, customerIDs)
	s.mu.Unlock()
	if s.checkFn == nil {
		return true, nil
	}
	return s.checkFn(customerIDs)
}

type notifierStub struct {
	sources []string
	causes  []error
}

func (s *notifierStub) NotifyFallback(source string, cause error) {
	s.sources = append(s.sources, source)
	s.causes = append(s.causes, cause)
}

type transactionRepoStub struct {
	saveFn func(record domain.TransactionRecord) (domain.TransactionRecord, error)
}

func (s transactionRepoStub) Save(_ context.Context, record domain.TransactionRecord) (domain.TransactionRecord, error) {
	return s.saveFn(record)
}

func (s transactionRepoStub) FindByNationalID(context.Context, string) ([]domain.TransactionRecord, error) {
	return nil, nil
}

func (s transactionRepoStub) FindByCustomerIDOrigin(context.Context, string) ([]domain.TransactionRecord, error) {
	return nil, nil
}

func seedAccount(t *testing.T, repo *memory.AccountRepository, account domain.Account) domain.Account {
	t.Helper()
	saved, err := repo.Save(context.Background(), account)
	if err != nil {
		t.Fatalf("expected account to be seeded, got %v", err)
	}
	return saved
}

func seedCommission(t *testing.T, repo *memory.CommissionRepository, accountType domain.AccountType, monto string) {
	t.Helper()
	_, err := repo.Save(context.Background(), domain.CommissionRule{
		AccountType: accountType,
		Monto:       decimal.RequireFromString(monto),
	})
	if err != nil {
		t.Fatalf("expected commission to be seeded, got %v", err)
	}
}

func mustAccount(t *testing.T, repo *memory.AccountRepository, id string) domain.Account {
	t.Helper()
	account, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("expected account %s, got %v", id, err)
	}
	return account
}

func assertKind(t *testing.T, err error, kind domain.ErrorKind) {
	t.Helper()
	if got := domain.KindOf(err); got != kind {
		t.Fatalf("expected error kind %s, got %s (%v)", kind, got, err)
	}
}

func assertBalance(t *testing.T, account domain.Account, want string) {
	t.Helper()
	if !account.Balance.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected balance %s on account %s, got %s", want, account.ID, account.Balance)
	}
}
