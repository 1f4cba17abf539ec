package domain

// Finalize applies the timeout rule to round at now and, if the round ends,
// releases the registry's active slot. It returns whether anything changed.
// registry may be nil when only the round view is needed.
func Finalize(round *Round, registry *Registry, now int64) bool {
	if len(round.Finalize(now)) <= 0 {
		return false
	}
	if registry != nil {
		registry.release(round.Id)
	}
	return true
}

// CheckStake runs the stake preconditions that do not depend on the ledger,
// in the order callers observe them.
func CheckStake(round *Round, vault *Vault, caller string, amount uint64) error {
	if err := round.checkOpen(); err != nil {
		return err
	}
	if err := checkParticipant(caller); err != nil {
		return err
	}
	if amount != vault.StakeAmount {
		return ErrIncorrectAmount
	}
	if round.IsLeader(caller) {
		return ErrAlreadyLeader
	}
	return nil
}

// CheckClaim runs the claim preconditions in the order callers observe them.
func CheckClaim(round *Round, vault *Vault, caller string) error {
	if !round.HasEnded {
		return ErrGameNotEnded
	}
	if err := checkParticipant(caller); err != nil {
		return err
	}
	if !round.IsLeader(caller) {
		return ErrNotLastClicker
	}
	if vault.Balance <= 0 {
		return ErrNoRewardsInVault
	}
	return nil
}

// checkParticipant rejects identities that cannot own a ledger account,
// vault custody accounts included.
func checkParticipant(identity string) error {
	if len(identity) <= 0 {
		return ErrInvalidIdentity
	}
	if IsVaultKey(identity) {
		return ErrReservedAccount
	}
	return nil
}
