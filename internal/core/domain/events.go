package domain

type EventType string

const (
	RegistryInitializedEvent EventType = "registry_initialized"
	RoundCreatedEvent        EventType = "round_created"
	StakeAcceptedEvent       EventType = "stake_accepted"
	RoundFinalizedEvent      EventType = "round_finalized"
	RewardClaimedEvent       EventType = "reward_claimed"
)

// Event is a fact recorded after a state change. Events are grouped into
// streams, one for the registry and one per round.
type Event interface {
	Stream() string
	Type() EventType
	Time() int64
}

type RegistryInitialized struct {
	Operator  string
	Timestamp int64
}

type RoundCreated struct {
	Id          uint64
	Operator    string
	StakeAmount uint64
	Duration    int64
	Timestamp   int64
}

type StakeAccepted struct {
	Id           uint64
	Staker       string
	Amount       uint64
	ClickCount   uint64
	VaultBalance uint64
	Timestamp    int64
}

type RoundFinalized struct {
	Id         uint64
	Winner     *string
	ClickCount uint64
	Timestamp  int64
}

type RewardClaimed struct {
	Id        uint64
	Winner    string
	Amount    uint64
	Timestamp int64
}

func (e RegistryInitialized) Stream() string { return RegistryKey }
func (e RoundCreated) Stream() string        { return RoundKey(e.Id) }
func (e StakeAccepted) Stream() string       { return RoundKey(e.Id) }
func (e RoundFinalized) Stream() string      { return RoundKey(e.Id) }
func (e RewardClaimed) Stream() string       { return RoundKey(e.Id) }

func (e RegistryInitialized) Type() EventType { return RegistryInitializedEvent }
func (e RoundCreated) Type() EventType        { return RoundCreatedEvent }
func (e StakeAccepted) Type() EventType       { return StakeAcceptedEvent }
func (e RoundFinalized) Type() EventType      { return RoundFinalizedEvent }
func (e RewardClaimed) Type() EventType       { return RewardClaimedEvent }

func (e RegistryInitialized) Time() int64 { return e.Timestamp }
func (e RoundCreated) Time() int64        { return e.Timestamp }
func (e StakeAccepted) Time() int64       { return e.Timestamp }
func (e RoundFinalized) Time() int64      { return e.Timestamp }
func (e RewardClaimed) Time() int64       { return e.Timestamp }
