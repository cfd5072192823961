package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
)

const accountColumns = `id, customer_id, national_id, customer_type, client_type, account_type, balance,
	monthly_limit, last_deposit_date, holders, limit_transaction, created_at, updated_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	logger.Info("account repository get by id", logger.Fields{"accountId": id})

	if _, err := uuid.Parse(id); err != nil {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get by id failed", err, logger.Fields{"accountId": id})
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

// Save inserts the account, or overwrites every mutable column when the id exists.
func (r *AccountRepository) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	holders := account.Holders
	if holders == nil {
		holders = []string{}
	}

	logger.Info("account repository save", logger.Fields{
		"accountId":   account.ID,
		"customerId":  account.CustomerID,
		"accountType": account.AccountType,
	})

	const query = `
INSERT INTO accounts (
	id,
	customer_id,
	national_id,
	customer_type,
	client_type,
	account_type,
	balance,
	monthly_limit,
	last_deposit_date,
	holders,
	limit_transaction
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
	customer_id = EXCLUDED.customer_id,
	national_id = EXCLUDED.national_id,
	customer_type = EXCLUDED.customer_type,
	client_type = EXCLUDED.client_type,
	account_type = EXCLUDED.account_type,
	balance = EXCLUDED.balance,
	monthly_limit = EXCLUDED.monthly_limit,
	last_deposit_date = EXCLUDED.last_deposit_date,
	holders = EXCLUDED.holders,
	limit_transaction = EXCLUDED.limit_transaction,
	updated_at = NOW()
RETURNING created_at, updated_at`

	var lastDeposit sql.NullTime
	if account.LastDepositDate != nil {
		lastDeposit = sql.NullTime{Time: *account.LastDepositDate, Valid: true}
	}

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.ID,
		account.CustomerID,
		account.NationalID,
		account.CustomerType,
		account.ClientType,
		account.AccountType,
		account.Balance,
		account.MonthlyLimit,
		lastDeposit,
		pq.Array(holders),
		account.LimitTransaction,
	).Scan(&account.CreatedAt, &account.UpdatedAt); err != nil {
		logger.Error("account repository save failed", err, logger.Fields{
			"accountId":  account.ID,
			"customerId": account.CustomerID,
		})
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	logger.Info("account repository delete", logger.Fields{"accountId": id})

	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrRecordNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		logger.Error("account repository delete failed", err, logger.Fields{"accountId": id})
		return fmt.Errorf("delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) ListAll(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, "list all", `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
}

func (r *AccountRepository) FindByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	return r.list(ctx, "find by customer id",
		`SELECT `+accountColumns+` FROM accounts WHERE customer_id = $1 ORDER BY created_at, id`, customerID)
}

func (r *AccountRepository) FindByNationalID(ctx context.Context, nationalID string) ([]domain.Account, error) {
	return r.list(ctx, "find by national id",
		`SELECT `+accountColumns+` FROM accounts WHERE national_id = $1 ORDER BY created_at, id`, nationalID)
}

func (r *AccountRepository) FindFirstByCustomerID(ctx context.Context, customerID string) (domain.Account, error) {
	logger.Info("account repository find first by customer id", logger.Fields{"customerId": customerID})

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY created_at, id LIMIT 1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository find first by customer id failed", err, logger.Fields{"customerId": customerID})
		return domain.Account{}, fmt.Errorf("find first account by customer id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) list(ctx context.Context, op string, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("account repository "+op+" failed", err, nil)
		return nil, fmt.Errorf("%s accounts: %w", op, err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s accounts scan: %w", op, err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s accounts rows: %w", op, err)
	}

	return accounts, nil
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		account     domain.Account
		lastDeposit sql.NullTime
		holders     pq.StringArray
	)

	if err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.NationalID,
		&account.CustomerType,
		&account.ClientType,
		&account.AccountType,
		&account.Balance,
		&account.MonthlyLimit,
		&lastDeposit,
		&holders,
		&account.LimitTransaction,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	if lastDeposit.Valid {
		d := lastDeposit.Time
		account.LastDepositDate = &d
	}
	account.Holders = []string(holders)

	return account, nil
}
