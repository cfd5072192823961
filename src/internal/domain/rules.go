package domain

// ValidateCreation decides whether proposed may be opened given the accounts the
// customer already holds. It performs no I/O.
func ValidateCreation(proposed Account, existing []Account) bool {
	return accountAllowed(proposed, existing, "")
}

// ValidateUpdate decides whether current may be changed into proposed. others are
// the accounts of the same customer; current itself is skipped by id.
func ValidateUpdate(current Account, proposed Account, others []Account) bool {
	return accountAllowed(proposed, others, current.ID)
}

func accountAllowed(proposed Account, existing []Account, skipID string) bool {
	if proposed.CustomerType == CustomerTypeEmpresarial {
		return proposed.HasHolders() &&
			proposed.AccountType != AccountTypeAhorro &&
			proposed.AccountType != AccountTypePlazoFijo
	}

	switch proposed.AccountType {
	case AccountTypeAhorro, AccountTypeCorriente:
		for _, acc := range existing {
			if skipID != "" && acc.ID == skipID {
				continue
			}
			if acc.AccountType == proposed.AccountType {
				return false
			}
		}
		return true
	case AccountTypePlazoFijo:
		return proposed.CustomerType == CustomerTypePersonal
	}

	return false
}
