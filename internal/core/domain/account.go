package domain

// Account is a custody record of the in-process ledger.
type Account struct {
	Id      string
	Balance uint64
}

func (a *Account) Credit(amount uint64) error {
	if a.Balance+amount < a.Balance {
		return ErrAmountOverflow
	}
	a.Balance += amount
	return nil
}

func (a *Account) Debit(amount uint64) error {
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}
