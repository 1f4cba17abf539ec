package lastclickv1

import "encoding/json"

// CallerIdentityKey is the metadata key, or http header, carrying the
// authenticated identity of the caller.
const CallerIdentityKey = "x-caller-identity"

type Registry struct {
	Operator      string  `json:"operator"`
	NextRoundId   uint64  `json:"next_round_id"`
	ActiveRoundId *uint64 `json:"active_round_id,omitempty"`
}

type Vault struct {
	Account     string  `json:"account"`
	Owner       string  `json:"owner"`
	Balance     uint64  `json:"balance"`
	StakeAmount uint64  `json:"stake_amount"`
	ClaimedBy   *string `json:"claimed_by,omitempty"`
	ClaimedAt   *int64  `json:"claimed_at,omitempty"`
}

type Round struct {
	Id               uint64  `json:"id"`
	Leader           *string `json:"leader,omitempty"`
	ClickCount       uint64  `json:"click_count"`
	IsActive         bool    `json:"is_active"`
	HasEnded         bool    `json:"has_ended"`
	LastActionTime   *int64  `json:"last_action_time,omitempty"`
	Duration         int64   `json:"duration"`
	CreatedAt        int64   `json:"created_at"`
	EndedAt          *int64  `json:"ended_at,omitempty"`
	RemainingSeconds *int64  `json:"remaining_seconds,omitempty"`
	Vault            Vault   `json:"vault"`
}

type Event struct {
	Type      string          `json:"type"`
	Stream    string          `json:"stream"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

type InitializeRegistryRequest struct{}

type InitializeRegistryResponse struct {
	Registry Registry `json:"registry"`
}

type CreateRoundRequest struct {
	StakeAmount uint64 `json:"stake_amount"`
	Duration    int64  `json:"duration"`
}

type CreateRoundResponse struct {
	RoundId uint64 `json:"round_id"`
}

type SubmitStakeRequest struct {
	RoundId uint64 `json:"round_id"`
	Amount  uint64 `json:"amount"`
}

type SubmitStakeResponse struct {
	Round Round `json:"round"`
}

type ClaimRewardRequest struct {
	RoundId uint64 `json:"round_id"`
}

type ClaimRewardResponse struct {
	Amount uint64 `json:"amount"`
}

type FinalizeCheckRequest struct {
	RoundId uint64 `json:"round_id"`
}

type FinalizeCheckResponse struct {
	Round Round `json:"round"`
}

type GetRegistryRequest struct{}

type GetRegistryResponse struct {
	Registry Registry `json:"registry"`
}

type GetRoundRequest struct {
	RoundId uint64 `json:"round_id"`
}

type GetRoundResponse struct {
	Round Round `json:"round"`
}

type GetActiveRoundRequest struct{}

type GetActiveRoundResponse struct {
	// Round is nil if no round is accepting stakes.
	Round *Round `json:"round,omitempty"`
}

type ListRoundsRequest struct{}

type ListRoundsResponse struct {
	Rounds []Round `json:"rounds"`
}

type GetRoundEventsRequest struct {
	RoundId uint64 `json:"round_id"`
}

type GetRoundEventsResponse struct {
	Events []Event `json:"events"`
}

type GetBalanceRequest struct {
	Account string `json:"account"`
}

type GetBalanceResponse struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

type FaucetRequest struct {
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

type FaucetResponse struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}
