package domain

// Vault holds the pooled stakes of a single round until the winner claims them.
type Vault struct {
	RoundId     uint64
	Owner       string
	Balance     uint64
	StakeAmount uint64
	ClaimedBy   *string
	ClaimedAt   *int64
	changes     []Event
}

// Account is the id of the ledger custody account backing the vault.
func (v *Vault) Account() string {
	return VaultKey(v.RoundId)
}

func (v *Vault) Events() []Event {
	return v.changes
}

func (v *Vault) IsClaimed() bool {
	return v.ClaimedBy != nil
}

func (v *Vault) Deposit(amount uint64) error {
	if amount != v.StakeAmount {
		return ErrIncorrectAmount
	}
	if v.Balance+amount < v.Balance {
		return ErrAmountOverflow
	}
	v.Balance += amount
	return nil
}

// Claim empties the vault in favour of winner and returns the amount paid out.
func (v *Vault) Claim(winner string, now int64) (uint64, error) {
	if v.Balance <= 0 {
		return 0, ErrNoRewardsInVault
	}

	amount := v.Balance
	claimedBy := winner
	claimedAt := now
	v.Balance = 0
	v.ClaimedBy = &claimedBy
	v.ClaimedAt = &claimedAt

	if v.changes == nil {
		v.changes = make([]Event, 0)
	}
	v.changes = append(v.changes, RewardClaimed{
		Id:        v.RoundId,
		Winner:    winner,
		Amount:    amount,
		Timestamp: now,
	})

	return amount, nil
}
