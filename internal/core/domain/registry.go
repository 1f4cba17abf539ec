package domain

import (
	"fmt"
	"strings"
)

const (
	RegistryKey = "global"

	roundKeyPrefix = "round"
	vaultKeyPrefix = "vault"
)

// RoundKey is the stable identifier of the round record with the given id.
func RoundKey(id uint64) string {
	return fmt.Sprintf("%s/%d", roundKeyPrefix, id)
}

// VaultKey is the stable identifier of the vault record paired with the round
// with the given id. It is also the id of the vault's custody account.
func VaultKey(id uint64) string {
	return fmt.Sprintf("%s/%d", vaultKeyPrefix, id)
}

// IsVaultKey reports whether the account id belongs to a round vault.
func IsVaultKey(account string) bool {
	return strings.HasPrefix(account, vaultKeyPrefix+"/")
}

// Registry is the process-wide singleton tracking round numbering and the
// currently active round.
type Registry struct {
	Operator      string
	NextRoundId   uint64
	ActiveRoundId *uint64
}

func NewRegistry(operator string) (*Registry, error) {
	if len(strings.TrimSpace(operator)) <= 0 {
		return nil, ErrInvalidIdentity
	}
	if IsVaultKey(operator) {
		return nil, ErrReservedAccount
	}
	return &Registry{Operator: operator}, nil
}

func (r *Registry) IsOperator(identity string) bool {
	return len(identity) > 0 && identity == r.Operator
}

func (r *Registry) HasActiveRound() bool {
	return r.ActiveRoundId != nil
}

func (r *Registry) IsActiveRound(id uint64) bool {
	return r.ActiveRoundId != nil && *r.ActiveRoundId == id
}

// allocateRound reserves the next round id and marks it as the active one.
func (r *Registry) allocateRound() uint64 {
	id := r.NextRoundId
	r.ActiveRoundId = &id
	r.NextRoundId++
	return id
}

// release clears the active slot if it belongs to the given round.
func (r *Registry) release(id uint64) bool {
	if !r.IsActiveRound(id) {
		return false
	}
	r.ActiveRoundId = nil
	return true
}
