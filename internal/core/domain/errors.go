package domain

import "errors"

// ErrorKind groups domain errors by how callers are expected to react to them.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuthorization
	KindPrecondition
	KindResource
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindAuthorization:
		return "AUTHORIZATION"
	case KindPrecondition:
		return "PRECONDITION"
	case KindResource:
		return "RESOURCE"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

type Error struct {
	Kind ErrorKind
	Code string
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(kind ErrorKind, code, msg string) *Error {
	return &Error{kind, code, msg}
}

var (
	ErrUnauthorized = newError(KindAuthorization, "UNAUTHORIZED", "unauthorized")

	ErrAlreadyInitialized     = newError(KindPrecondition, "ALREADY_INITIALIZED", "registry already initialized")
	ErrRegistryNotInitialized = newError(KindPrecondition, "REGISTRY_NOT_INITIALIZED", "registry not initialized")
	ErrRoundAlreadyActive     = newError(KindPrecondition, "ROUND_ALREADY_ACTIVE", "a round is already active")
	ErrGameNotActive          = newError(KindPrecondition, "GAME_NOT_ACTIVE", "game not active")
	ErrGameEnded              = newError(KindPrecondition, "GAME_ENDED", "game has ended")
	ErrGameNotEnded           = newError(KindPrecondition, "GAME_NOT_ENDED", "game has not ended")
	ErrAlreadyLeader          = newError(KindPrecondition, "ALREADY_LEADER", "already the last clicker")
	ErrNotLastClicker         = newError(KindPrecondition, "NOT_LAST_CLICKER", "user is not the last clicker")
	ErrFaucetDisabled         = newError(KindPrecondition, "FAUCET_DISABLED", "faucet is disabled")

	ErrInvalidDuration    = newError(KindValidation, "INVALID_DURATION", "round duration must be at least 1 second")
	ErrInvalidStakeAmount = newError(KindValidation, "INVALID_STAKE_AMOUNT", "stake amount must be greater than 0")
	ErrIncorrectAmount    = newError(KindValidation, "INCORRECT_AMOUNT", "incorrect deposit amount")
	ErrInvalidIdentity    = newError(KindValidation, "INVALID_IDENTITY", "missing identity")
	ErrInvalidAmount      = newError(KindValidation, "INVALID_AMOUNT", "amount must be greater than 0")
	ErrAmountOverflow     = newError(KindValidation, "AMOUNT_OVERFLOW", "amount overflows balance")
	ErrReservedAccount    = newError(KindValidation, "RESERVED_ACCOUNT", "account is reserved for round vaults")
	ErrSelfTransfer       = newError(KindValidation, "SELF_TRANSFER", "source and destination accounts must differ")

	ErrInsufficientFunds = newError(KindResource, "INSUFFICIENT_FUNDS", "insufficient funds")
	ErrNoRewardsInVault  = newError(KindResource, "NO_REWARDS_IN_VAULT", "no rewards in vault")

	ErrRoundNotFound = newError(KindNotFound, "ROUND_NOT_FOUND", "round not found")
	ErrVaultNotFound = newError(KindNotFound, "VAULT_NOT_FOUND", "vault not found")
)

// KindOf returns the kind of the domain error wrapped by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
