package postgres

import (
	"github.com/nttbank/msaccount/src/internal/adapter/repository/repo_interfaces"
)

var (
	_ repo_interfaces.AccountRepository     = (*AccountRepository)(nil)
	_ repo_interfaces.CommissionRepository  = (*CommissionRepository)(nil)
	_ repo_interfaces.TransactionRepository = (*TransactionRepository)(nil)
)
