package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeAhorro    AccountType = "AHORRO"
	AccountTypeCorriente AccountType = "CORRIENTE"
	AccountTypePlazoFijo AccountType = "PLAZO_FIJO"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAhorro, AccountTypeCorriente, AccountTypePlazoFijo:
		return true
	}
	return false
}

type CustomerType string

const (
	CustomerTypePersonal    CustomerType = "PERSONAL"
	CustomerTypeEmpresarial CustomerType = "EMPRESARIAL"
)

func (t CustomerType) Valid() bool {
	return t == CustomerTypePersonal || t == CustomerTypeEmpresarial
}

// ClientType is the premium tier of an account. The empty value is a standard client.
type ClientType string

const (
	ClientTypeStandard ClientType = ""
	ClientTypeVIP      ClientType = "VIP"
	ClientTypePYME     ClientType = "PYME"
)

func (t ClientType) Valid() bool {
	return t == ClientTypeStandard || t == ClientTypeVIP || t == ClientTypePYME
}

// Premium reports whether the tier is gated by a minimum balance and a credit card.
func (t ClientType) Premium() bool {
	return t == ClientTypeVIP || t == ClientTypePYME
}

type Account struct {
	ID               string
	CustomerID       string
	NationalID       string
	CustomerType     CustomerType
	ClientType       ClientType
	AccountType      AccountType
	Balance          decimal.Decimal
	MonthlyLimit     int
	LastDepositDate  *time.Time
	Holders          []string
	LimitTransaction int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (a Account) HasHolders() bool {
	return len(a.Holders) > 0
}
