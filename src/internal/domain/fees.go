package domain

import "github.com/shopspring/decimal"

// FeePolicy lets the first FreeTransactions operations of an account through
// untaxed; every later one pays the commission configured for the account type.
type FeePolicy struct {
	FreeTransactions int
}

// Taxed reports whether an account that has already performed limitTransaction
// operations pays commission on the next one.
func (p FeePolicy) Taxed(limitTransaction int) bool {
	return limitTransaction > p.FreeTransactions
}

// Transfer is the balance movement of a deposit from origin to destination.
type Transfer struct {
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	Commission decimal.Decimal
}

// DepositTransfer applies the policy to a deposit of amount. When taxed the
// commission is withheld from the amount moved, so both sides move amount-commission.
func (p FeePolicy) DepositTransfer(limitTransaction int, amount decimal.Decimal, commission decimal.Decimal) (Transfer, error) {
	if !p.Taxed(limitTransaction) {
		return Transfer{Debit: amount, Credit: amount, Commission: decimal.Zero}, nil
	}

	net := amount.Sub(commission)
	if net.IsNegative() {
		return Transfer{}, BusinessRule("Net deposit amount cannot be negative")
	}

	return Transfer{Debit: net, Credit: net, Commission: commission}, nil
}

// WithdrawDebit applies the policy to a withdrawal of amount. When taxed the
// commission is charged on top of the amount.
func (p FeePolicy) WithdrawDebit(limitTransaction int, amount decimal.Decimal, commission decimal.Decimal) (Transfer, error) {
	if !p.Taxed(limitTransaction) {
		return Transfer{Debit: amount, Commission: decimal.Zero}, nil
	}

	total := amount.Add(commission)
	if total.IsNegative() || commission.IsNegative() {
		return Transfer{}, BusinessRule("Net withdrawal amount cannot be negative")
	}

	return Transfer{Debit: total, Commission: commission}, nil
}
