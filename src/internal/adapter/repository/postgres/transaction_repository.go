package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
)

const transactionColumns = `id, origin_account_id, customer_id_origin, customer_id_destination, national_id,
	amount, commission_amount, transaction_date, transaction_type, created_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(ctx context.Context, record domain.TransactionRecord) (domain.TransactionRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.TransactionDate = domain.Date(record.TransactionDate)

	logger.Info("transaction repository save", logger.Fields{
		"transactionId":    record.ID,
		"customerIdOrigin": record.CustomerIDOrigin,
		"transactionType":  record.TransactionType,
		"amount":           record.Amount,
		"commissionAmount": record.CommissionAmount,
	})

	const query = `
INSERT INTO transactions (
	id,
	origin_account_id,
	customer_id_origin,
	customer_id_destination,
	national_id,
	amount,
	commission_amount,
	transaction_date,
	transaction_type
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING created_at`

	var destination sql.NullString
	if record.CustomerIDDestination != nil {
		destination = sql.NullString{String: *record.CustomerIDDestination, Valid: true}
	}

	if err := r.db.QueryRowContext(
		ctx,
		query,
		record.ID,
		record.OriginAccountID,
		record.CustomerIDOrigin,
		destination,
		record.NationalID,
		record.Amount,
		record.CommissionAmount,
		record.TransactionDate,
		record.TransactionType,
	).Scan(&record.CreatedAt); err != nil {
		logger.Error("transaction repository save failed", err, logger.Fields{"transactionId": record.ID})
		return domain.TransactionRecord{}, fmt.Errorf("save transaction: %w", err)
	}

	return record, nil
}

func (r *TransactionRepository) FindByNationalID(ctx context.Context, nationalID string) ([]domain.TransactionRecord, error) {
	return r.list(ctx, "find by national id",
		`SELECT `+transactionColumns+` FROM transactions WHERE national_id = $1 ORDER BY transaction_date, created_at`, nationalID)
}

func (r *TransactionRepository) FindByCustomerIDOrigin(ctx context.Context, customerID string) ([]domain.TransactionRecord, error) {
	return r.list(ctx, "find by customer id origin",
		`SELECT `+transactionColumns+` FROM transactions WHERE customer_id_origin = $1 ORDER BY transaction_date, created_at`, customerID)
}

func (r *TransactionRepository) list(ctx context.Context, op string, query string, arg string) ([]domain.TransactionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		logger.Error("transaction repository "+op+" failed", err, nil)
		return nil, fmt.Errorf("%s transactions: %w", op, err)
	}
	defer rows.Close()

	records := make([]domain.TransactionRecord, 0)
	for rows.Next() {
		var (
			record      domain.TransactionRecord
			destination sql.NullString
		)
		if err := rows.Scan(
			&record.ID,
			&record.OriginAccountID,
			&record.CustomerIDOrigin,
			&destination,
			&record.NationalID,
			&record.Amount,
			&record.CommissionAmount,
			&record.TransactionDate,
			&record.TransactionType,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s transactions scan: %w", op, err)
		}
		if destination.Valid {
			record.CustomerIDDestination = &destination.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s transactions rows: %w", op, err)
	}

	return records, nil
}
