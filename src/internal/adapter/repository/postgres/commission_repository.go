package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
)

const commissionColumns = `id, account_type, monto, customer_id, created_at, updated_at`

type CommissionRepository struct {
	db *sql.DB
}

func NewCommissionRepository(db *sql.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) GetByID(ctx context.Context, id string) (domain.CommissionRule, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.CommissionRule{}, domain.ErrRecordNotFound
	}
	return r.getOne(ctx, "get by id", `SELECT `+commissionColumns+` FROM commission_rules WHERE id = $1`, id)
}

func (r *CommissionRepository) FindByAccountType(ctx context.Context, accountType domain.AccountType) (domain.CommissionRule, error) {
	return r.getOne(ctx, "find by account type",
		`SELECT `+commissionColumns+` FROM commission_rules WHERE account_type = $1`, string(accountType))
}

// Save returns domain.ErrDuplicateRecord when another rule already covers the account type.
func (r *CommissionRepository) Save(ctx context.Context, rule domain.CommissionRule) (domain.CommissionRule, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	logger.Info("commission repository save", logger.Fields{
		"commissionId": rule.ID,
		"accountType":  rule.AccountType,
		"monto":        rule.Monto,
	})

	const query = `
INSERT INTO commission_rules (id, account_type, monto, customer_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
	account_type = EXCLUDED.account_type,
	monto = EXCLUDED.monto,
	customer_id = EXCLUDED.customer_id,
	updated_at = NOW()
RETURNING created_at, updated_at`

	var customerID sql.NullString
	if rule.CustomerID != nil {
		customerID = sql.NullString{String: *rule.CustomerID, Valid: true}
	}

	if err := r.db.QueryRowContext(ctx, query, rule.ID, rule.AccountType, rule.Monto, customerID).
		Scan(&rule.CreatedAt, &rule.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.CommissionRule{}, domain.ErrDuplicateRecord
		}
		logger.Error("commission repository save failed", err, logger.Fields{"commissionId": rule.ID})
		return domain.CommissionRule{}, fmt.Errorf("save commission rule: %w", err)
	}

	return rule, nil
}

func (r *CommissionRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrRecordNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM commission_rules WHERE id = $1`, id)
	if err != nil {
		logger.Error("commission repository delete failed", err, logger.Fields{"commissionId": id})
		return fmt.Errorf("delete commission rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete commission rule rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *CommissionRepository) ListAll(ctx context.Context) ([]domain.CommissionRule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+commissionColumns+` FROM commission_rules ORDER BY created_at, id`)
	if err != nil {
		logger.Error("commission repository list failed", err, nil)
		return nil, fmt.Errorf("list commission rules: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.CommissionRule, 0)
	for rows.Next() {
		rule, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("list commission rules scan: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list commission rules rows: %w", err)
	}

	return rules, nil
}

func (r *CommissionRepository) getOne(ctx context.Context, op string, query string, arg string) (domain.CommissionRule, error) {
	rule, err := scanCommission(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CommissionRule{}, domain.ErrRecordNotFound
		}
		logger.Error("commission repository "+op+" failed", err, logger.Fields{"key": arg})
		return domain.CommissionRule{}, fmt.Errorf("%s commission rule: %w", op, err)
	}
	return rule, nil
}

func scanCommission(row rowScanner) (domain.CommissionRule, error) {
	var (
		rule       domain.CommissionRule
		customerID sql.NullString
	)

	if err := row.Scan(&rule.ID, &rule.AccountType, &rule.Monto, &customerID, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return domain.CommissionRule{}, err
	}
	if customerID.Valid {
		rule.CustomerID = &customerID.String
	}
	return rule, nil
}
