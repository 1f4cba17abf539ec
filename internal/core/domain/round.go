package domain

type Round struct {
	Id             uint64
	Leader         *string
	ClickCount     uint64
	IsActive       bool
	HasEnded       bool
	LastActionTime *int64
	Duration       int64
	CreatedAt      int64
	EndedAt        *int64
	Version        uint
	changes        []Event
}

// NewRound opens the next round of the registry on behalf of the operator and
// returns it together with its empty vault.
// The registry is left untouched if any check fails.
func NewRound(
	registry *Registry, caller string, stakeAmount uint64, duration, now int64,
) (*Round, *Vault, error) {
	if IsVaultKey(caller) {
		return nil, nil, ErrReservedAccount
	}
	if !registry.IsOperator(caller) {
		return nil, nil, ErrUnauthorized
	}
	if registry.HasActiveRound() {
		return nil, nil, ErrRoundAlreadyActive
	}
	if duration < 1 {
		return nil, nil, ErrInvalidDuration
	}
	if stakeAmount <= 0 {
		return nil, nil, ErrInvalidStakeAmount
	}

	id := registry.allocateRound()
	round := &Round{
		Id:        id,
		IsActive:  true,
		Duration:  duration,
		CreatedAt: now,
		changes:   make([]Event, 0),
	}
	vault := &Vault{
		RoundId:     id,
		Owner:       caller,
		StakeAmount: stakeAmount,
	}

	round.raise(RoundCreated{
		Id:          id,
		Operator:    caller,
		StakeAmount: stakeAmount,
		Duration:    duration,
		Timestamp:   now,
	})

	return round, vault, nil
}

func (r *Round) Events() []Event {
	return r.changes
}

func (r *Round) On(event Event, replayed bool) {
	switch e := event.(type) {
	case RoundCreated:
		r.Id = e.Id
		r.IsActive = true
		r.Duration = e.Duration
		r.CreatedAt = e.Timestamp
	case StakeAccepted:
		staker := e.Staker
		lastAction := e.Timestamp
		r.Leader = &staker
		r.LastActionTime = &lastAction
		r.ClickCount = e.ClickCount
	case RoundFinalized:
		endedAt := e.Timestamp
		r.IsActive = false
		r.HasEnded = true
		r.EndedAt = &endedAt
	}

	if replayed {
		r.Version++
	}
}

// IsDue reports whether the round's timeout has elapsed at now. A round nobody
// staked on is never due, and neither is one observed with a clock that went
// backwards.
func (r *Round) IsDue(now int64) bool {
	if !r.IsActive || r.HasEnded || r.LastActionTime == nil {
		return false
	}
	elapsed := now - *r.LastActionTime
	if elapsed < 0 {
		return false
	}
	return elapsed >= r.Duration
}

// Finalize ends the round if it is due. Calling it on a round that is not due
// or already ended is a no-op.
func (r *Round) Finalize(now int64) []Event {
	if !r.IsDue(now) {
		return nil
	}

	var winner *string
	if r.Leader != nil {
		leader := *r.Leader
		winner = &leader
	}
	event := RoundFinalized{
		Id:         r.Id,
		Winner:     winner,
		ClickCount: r.ClickCount,
		Timestamp:  now,
	}
	r.raise(event)

	return []Event{event}
}

// AcceptStake makes caller the new leader and restarts the timeout. The vault
// must have already taken the deposit.
func (r *Round) AcceptStake(caller string, vault *Vault, now int64) ([]Event, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}
	if r.IsLeader(caller) {
		return nil, ErrAlreadyLeader
	}

	event := StakeAccepted{
		Id:           r.Id,
		Staker:       caller,
		Amount:       vault.StakeAmount,
		ClickCount:   r.ClickCount + 1,
		VaultBalance: vault.Balance,
		Timestamp:    now,
	}
	r.raise(event)

	return []Event{event}, nil
}

func (r *Round) IsLeader(identity string) bool {
	return r.Leader != nil && *r.Leader == identity
}

func (r *Round) checkOpen() error {
	if r.HasEnded {
		return ErrGameEnded
	}
	if !r.IsActive {
		return ErrGameNotActive
	}
	return nil
}

func (r *Round) raise(event Event) {
	if r.changes == nil {
		r.changes = make([]Event, 0)
	}
	r.changes = append(r.changes, event)
	r.On(event, false)
	r.Version++
}
