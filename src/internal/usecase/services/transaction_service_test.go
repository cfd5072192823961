package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nttbank/msaccount/src/internal/adapter/http/models"
	"github.com/nttbank/msaccount/src/internal/adapter/repository/memory"
	"github.com/nttbank/msaccount/src/internal/adapter/repository/repo_interfaces"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

const freeTransactions = 10

type engineFixture struct {
	svc         *services.TransactionService
	accounts    *memory.AccountRepository
	ledger      *memory.TransactionRepository
	commissions *memory.CommissionRepository
}

func newEngine(t *testing.T) engineFixture {
	t.Helper()
	accounts := memory.NewAccountRepository()
	ledger := memory.NewTransactionRepository()
	commissions := memory.NewCommissionRepository()
	return engineFixture{
		svc:         newEngineWith(accounts, ledger, commissions),
		accounts:    accounts,
		ledger:      ledger,
		commissions: commissions,
	}
}

func newEngineWith(accounts repo_interfaces.AccountRepository, ledger repo_interfaces.TransactionRepository, commissions *memory.CommissionRepository) *services.TransactionService {
	return services.NewTransactionService(accounts, ledger, services.NewCommissionService(commissions), freeTransactions, nil)
}

func (f engineFixture) seedPair(t *testing.T, originBalance int64, originLimit int, destinationBalance int64) (domain.Account, domain.Account) {
	t.Helper()
	origin := seedAccount(t, f.accounts, domain.Account{
		CustomerID:       "customer-b",
		NationalID:       "20304050",
		CustomerType:     domain.CustomerTypePersonal,
		AccountType:      domain.AccountTypeCorriente,
		Balance:          decimal.NewFromInt(originBalance),
		LimitTransaction: originLimit,
	})
	destination := seedAccount(t, f.accounts, domain.Account{
		CustomerID:   "customer-a",
		NationalID:   "10203040",
		CustomerType: domain.CustomerTypePersonal,
		AccountType:  domain.AccountTypeAhorro,
		Balance:      decimal.NewFromInt(destinationBalance),
	})
	return origin, destination
}

func deposit(customerID string, amount int64) models.DepositRequest {
	return models.DepositRequest{CustomerID: customerID, Amount: decimal.NewFromInt(amount)}
}

func TestTransactionServiceDepositTaxedScenario(t *testing.T) {
	f := newEngine(t)
	seedCommission(t, f.commissions, domain.AccountTypeAhorro, "10")
	origin, destination := f.seedPair(t, 1000, 11, 1000)

	resp, err := f.svc.Deposit(context.Background(), destination.ID, deposit("customer-b", 200))
	if err != nil {
		t.Fatalf("expected deposit to succeed, got %v", err)
	}
	if resp.Data == nil || resp.Data.ID != destination.ID {
		t.Fatalf("expected destination account in response, got %+v", resp)
	}

	assertBalance(t, mustAccount(t, f.accounts, origin.ID), "810")
	assertBalance(t, mustAccount(t, f.accounts, destination.ID), "1190")
	if got := mustAccount(t, f.accounts, origin.ID).LimitTransaction; got != 12 {
		t.Fatalf("expected origin counter 12, got %d", got)
	}

	records := f.ledger.All()
	if len(records) != 1 {
		t.Fatalf("expected one ledger record, got %d", len(records))
	}
	record := records[0]
	if !record.CommissionAmount.Equal(decimal.NewFromInt(10)) || !record.Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected amount 200 and commission 10, got %s and %s", record.Amount, record.CommissionAmount)
	}
	if record.TransactionType != domain.TransactionTypeDeposito || record.NationalID != "20304050" {
		t.Fatalf("unexpected ledger record %+v", record)
	}
	if record.CustomerIDDestination == nil || *record.CustomerIDDestination != "customer-a" {
		t.Fatalf("expected destination customer on record, got %v", record.CustomerIDDestination)
	}
}

func TestTransactionServiceDepositWithinAllowance(t *testing.T) {
	f := newEngine(t)
	seedCommission(t, f.commissions, domain.AccountTypeAhorro, "10")
	origin, destination := f.seedPair(t, 1000, freeTransactions, 0)

	if _, err := f.svc.Deposit(context.Background(), destination.ID, deposit("customer-b", 200)); err != nil {
		t.Fatalf("expected deposit to succeed, got %v", err)
	}

	assertBalance(t, mustAccount(t, f.accounts, origin.ID), "800")
	assertBalance(t, mustAccount(t, f.accounts, destination.ID), "200")
	if got := f.ledger.All()[0].CommissionAmount; !got.IsZero() {
		t.Fatalf("expected no commission within allowance, got %s", got)
	}
}

func TestTransactionServiceDepositExactBalance(t *testing.T) {
	f := newEngine(t)
	origin, destination := f.seedPair(t, 300, 0, 0)

	if _, err := f.svc.Deposit(context.Background(), destination.ID, deposit("customer-b", 300)); err != nil {
		t.Fatalf("expected deposit of the whole balance to succeed, got %v", err)
	}
	assertBalance(t, mustAccount(t, f.accounts, origin.ID), "0")
}

func TestTransactionServiceDepositCommissionAboveAmount(t *testing.T) {
	f := newEngine(t)
	seedCommission(t, f.commissions, domain.AccountTypeAhorro, "50")
	origin, destination := f.seedPair(t, 1000, 11, 0)

	_, err := f.svc.Deposit(context.Background(), destination.ID, deposit("customer-b", 20))
	assertKind(t, err, domain.KindBusinessRule)

	assertBalance(t, mustAccount(t, f.accounts, origin.ID), "1000")
	if len(f.ledger.All()) != 0 {
		t.Fatal("expected no ledger record for rejected deposit")
	}
}

func TestTransactionServiceDepositWithoutCommissionRule(t *testing.T) {
	f := newEngine(t)
	origin, destination := f.seedPair(t, 1000, 50, 0)

	if _, err := f.svc.Deposit(context.Background(), destination.ID, deposit("customer-b", 100)); err != nil {
		t.Fatalf("expected deposit to succeed, got %v", err)
	}
	assertBalance(t, mustAccount(t, f.accounts, origin.ID), "900")
	if got := f.ledger.All()[0].CommissionAmount; !got.IsZero() {
		t.Fatalf("expected zero commission without a rule, got %s", got)
	}
}

func TestTransactionServiceDepositRejections(t *testing.T) {
	f := newEngine(t)
	origin, destination := f.seedPair(t, 100, 0, 0)

	tests := []struct {
		name      string
		accountID string
		req       models.DepositRequest
		kind      domain.ErrorKind
	}{
		{name: "insufficient balance", accountID: destination.ID, req: deposit("customer-b", 101), kind: domain.KindBusinessRule},
		{name: "zero amount", accountID: destination.ID, req: deposit("customer-b", 0), kind: domain.KindBusinessRule},
		{name: "unknown destination", accountID: "missing", req: deposit("customer-b", 10), kind: domain.KindNotFound},
		{name: "unknown origin customer", accountID: destination.ID, req: deposit("nobody", 10), kind: domain.KindNotFound},
		{name: "same account", accountID: origin.ID, req: deposit("customer-b", 10), kind: domain.KindBusinessRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Deposit(context.Background(), tt.accountID, tt.req)
			assertKind(t, err, tt.kind)
		})
	}

	assertBalance(t, mustAccount(t, f.accounts, origin.ID), "100")
}

func TestTransactionServiceDepositLedgerFailureRestoresDestination(t *testing.T) {
	accounts := memory.NewAccountRepository()
	ledger := transactionRepoStub{saveFn: func(domain.TransactionRecord) (domain.TransactionRecord, error) {
		return domain.TransactionRecord{}, errors.New("connection reset")
	}}
	svc := newEngineWith(accounts, ledger, memory.NewCommissionRepository())
	f := engineFixture{accounts: accounts}
	origin, destination := f.seedPair(t, 1000, 0, 50)

	resp, err := svc.Deposit(context.Background(), destination.ID, deposit("customer-b", 100))
	assertKind(t, err, domain.KindInternal)
	if resp.Message != "Error processing deposit" {
		t.Fatalf("expected opaque message, got %q", resp.Message)
	}

	assertBalance(t, mustAccount(t, accounts, destination.ID), "50")
	assertBalance(t, mustAccount(t, accounts, origin.ID), "1000")
}

func TestTransactionServiceWithdrawTaxed(t *testing.T) {
	f := newEngine(t)
	seedCommission(t, f.commissions, domain.AccountTypeCorriente, "5")
	origin, _ := f.seedPair(t, 100, 11, 0)

	resp, err := f.svc.Withdraw(context.Background(), "customer-b", models.WithdrawRequest{Amount: decimal.NewFromInt(40)})
	if err != nil {
		t.Fatalf("expected withdraw to succeed, got %v", err)
	}
	if resp.Data == nil || resp.Data.ID != origin.ID {
		t.Fatalf("expected withdrawn account in response, got %+v", resp)
	}

	updated := mustAccount(t, f.accounts, origin.ID)
	assertBalance(t, updated, "55")
	if updated.LimitTransaction != 12 {
		t.Fatalf("expected counter 12, got %d", updated.LimitTransaction)
	}

	record := f.ledger.All()[0]
	if record.TransactionType != domain.TransactionTypeRetiro || record.CustomerIDDestination != nil {
		t.Fatalf("unexpected withdrawal record %+v", record)
	}
	if !record.CommissionAmount.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected commission 5, got %s", record.CommissionAmount)
	}
}

func TestTransactionServiceWithdrawWithinAllowance(t *testing.T) {
	f := newEngine(t)
	seedCommission(t, f.commissions, domain.AccountTypeCorriente, "5")
	origin, _ := f.seedPair(t, 100, 3, 0)

	if _, err := f.svc.Withdraw(context.Background(), "customer-b", models.WithdrawRequest{Amount: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("expected withdraw to succeed, got %v", err)
	}
	assertBalance(t, mustAccount(t, f.accounts, origin.ID), "0")
}

func TestTransactionServiceWithdrawCommissionExceedsBalance(t *testing.T) {
	f := newEngine(t)
	seedCommission(t, f.commissions, domain.AccountTypeCorriente, "5")
	origin, _ := f.seedPair(t, 100, 11, 0)

	_, err := f.svc.Withdraw(context.Background(), "customer-b", models.WithdrawRequest{Amount: decimal.NewFromInt(98)})
	assertKind(t, err, domain.KindBusinessRule)
	assertBalance(t, mustAccount(t, f.accounts, origin.ID), "100")
}

func TestTransactionServiceWithdrawUnknownCustomer(t *testing.T) {
	f := newEngine(t)

	_, err := f.svc.Withdraw(context.Background(), "nobody", models.WithdrawRequest{Amount: decimal.NewFromInt(1)})
	assertKind(t, err, domain.KindNotFound)
}

func TestTransactionServiceRejectsSubCentAmounts(t *testing.T) {
	f := newEngine(t)
	origin, destination := f.seedPair(t, 1000, 0, 0)

	_, err := f.svc.Deposit(context.Background(), destination.ID, models.DepositRequest{
		CustomerID: "customer-b",
		Amount:     decimal.RequireFromString("0.001"),
	})
	assertKind(t, err, domain.KindBusinessRule)

	_, err = f.svc.Withdraw(context.Background(), "customer-b", models.WithdrawRequest{Amount: decimal.RequireFromString("0.004")})
	assertKind(t, err, domain.KindBusinessRule)

	if len(f.ledger.All()) != 0 {
		t.Fatalf("expected no ledger records, got %d", len(f.ledger.All()))
	}
	updated := mustAccount(t, f.accounts, origin.ID)
	assertBalance(t, updated, "1000")
	if updated.LimitTransaction != 0 {
		t.Fatalf("expected counter 0, got %d", updated.LimitTransaction)
	}
	assertBalance(t, mustAccount(t, f.accounts, destination.ID), "0")
}

// barrierAccounts holds every origin lookup until both deposits have read the
// origin account, forcing the read-then-write race deterministically.
type barrierAccounts struct {
	*memory.AccountRepository
	reads sync.WaitGroup
}

func (b *barrierAccounts) FindFirstByCustomerID(ctx context.Context, customerID string) (domain.Account, error) {
	account, err := b.AccountRepository.FindFirstByCustomerID(ctx, customerID)
	b.reads.Done()
	b.reads.Wait()
	return account, err
}

// Concurrent deposits from the same origin are not serialised, so both can
// pass the balance check against the same snapshot and one debit is lost.
func TestTransactionServiceConcurrentDepositsLoseUpdate(t *testing.T) {
	inner := memory.NewAccountRepository()
	accounts := &barrierAccounts{AccountRepository: inner}
	accounts.reads.Add(2)
	ledger := memory.NewTransactionRepository()
	svc := newEngineWith(accounts, ledger, memory.NewCommissionRepository())

	f := engineFixture{accounts: inner}
	origin, first := f.seedPair(t, 1000, 0, 0)
	second := seedAccount(t, inner, domain.Account{
		CustomerID:   "customer-c",
		CustomerType: domain.CustomerTypePersonal,
		AccountType:  domain.AccountTypeAhorro,
	})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, destinationID := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Deposit(context.Background(), destinationID, deposit("customer-b", 600))
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("expected deposit %d to pass its balance check, got %v", i, err)
		}
	}

	credited := mustAccount(t, inner, first.ID).Balance.Add(mustAccount(t, inner, second.ID).Balance)
	if !credited.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected 1200 credited in total, got %s", credited)
	}
	assertBalance(t, mustAccount(t, inner, origin.ID), "400")
	if got := mustAccount(t, inner, origin.ID).LimitTransaction; got != 1 {
		t.Fatalf("expected one counter increment to be lost, got %d", got)
	}
	if len(ledger.All()) != 2 {
		t.Fatalf("expected two ledger records, got %d", len(ledger.All()))
	}
}
