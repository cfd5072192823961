package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/shopspring/decimal"
)

func TestAccountRepositorySaveAssignsIDAndKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	first, err := repo.Save(ctx, domain.Account{CustomerID: "c-1", AccountType: domain.AccountTypeAhorro})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}
	if _, err := repo.Save(ctx, domain.Account{CustomerID: "c-1", AccountType: domain.AccountTypeCorriente}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got, err := repo.FindFirstByCustomerID(ctx, "c-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("expected first saved account %s, got %s", first.ID, got.ID)
	}
}

func TestAccountRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	saved, _ := repo.Save(ctx, domain.Account{CustomerID: "c-1", Holders: []string{"Ana"}, Balance: decimal.NewFromInt(10)})
	loaded, _ := repo.GetByID(ctx, saved.ID)
	loaded.Holders[0] = "Mutated"
	loaded.Balance = decimal.NewFromInt(99)

	again, _ := repo.GetByID(ctx, saved.ID)
	if again.Holders[0] != "Ana" || !again.Balance.Equal(decimal.NewFromInt(10)) {
		t.Fatal("expected stored account to be isolated from caller mutations")
	}
}

func TestAccountRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	saved, _ := repo.Save(ctx, domain.Account{CustomerID: "c-1"})

	if err := repo.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := repo.GetByID(ctx, saved.ID); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, saved.ID); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestCommissionRepositoryOneRulePerAccountType(t *testing.T) {
	ctx := context.Background()
	repo := NewCommissionRepository()

	rule, err := repo.Save(ctx, domain.CommissionRule{AccountType: domain.AccountTypeAhorro, Monto: decimal.NewFromInt(5)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := repo.Save(ctx, domain.CommissionRule{AccountType: domain.AccountTypeAhorro, Monto: decimal.NewFromInt(7)}); !errors.Is(err, domain.ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}

	rule.Monto = decimal.NewFromInt(8)
	if _, err := repo.Save(ctx, rule); err != nil {
		t.Fatalf("expected update of existing rule to succeed, got %v", err)
	}
	found, err := repo.FindByAccountType(ctx, domain.AccountTypeAhorro)
	if err != nil || !found.Monto.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("expected updated monto 8, got %v (err %v)", found.Monto, err)
	}
}

func TestCommissionRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewCommissionRepository()

	saved, err := repo.Save(ctx, domain.CommissionRule{AccountType: domain.AccountTypeAhorro, Monto: decimal.NewFromInt(3)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	got, err := repo.GetByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.AccountType != domain.AccountTypeAhorro || !got.Monto.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected stored rule, got %+v", got)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestTransactionRepositoryQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()

	_, _ = repo.Save(ctx, domain.TransactionRecord{CustomerIDOrigin: "c-1", NationalID: "dni-1", Amount: decimal.NewFromInt(10)})
	_, _ = repo.Save(ctx, domain.TransactionRecord{CustomerIDOrigin: "c-2", NationalID: "dni-1", Amount: decimal.NewFromInt(20)})

	byDNI, _ := repo.FindByNationalID(ctx, "dni-1")
	if len(byDNI) != 2 {
		t.Fatalf("expected 2 records by national id, got %d", len(byDNI))
	}
	byCustomer, _ := repo.FindByCustomerIDOrigin(ctx, "c-2")
	if len(byCustomer) != 1 || !byCustomer[0].Amount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected single record of 20 for c-2, got %v", byCustomer)
	}
}
