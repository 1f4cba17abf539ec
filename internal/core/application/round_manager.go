package application

import (
	"context"
	"fmt"

	"github.com/lastclick-network/lastclick/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

func (s *service) InitializeRegistry(
	ctx context.Context, operator string, now int64,
) (*domain.Registry, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var registry *domain.Registry
	if err := s.repoManager.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.repoManager.Registry().Get(ctx)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyInitialized
		}

		registry, err = domain.NewRegistry(operator)
		if err != nil {
			return err
		}
		if err := s.repoManager.Registry().Upsert(ctx, *registry); err != nil {
			return err
		}
		return s.repoManager.Events().AddEvents(ctx, domain.RegistryInitialized{
			Operator:  operator,
			Timestamp: now,
		})
	}); err != nil {
		return nil, err
	}

	log.WithField("operator", operator).Info("registry initialized")
	return registry, nil
}

func (s *service) CreateRound(
	ctx context.Context, caller string, stakeAmount uint64, duration, now int64,
) (uint64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	registry, err := s.getRegistry(ctx)
	if err != nil {
		return 0, err
	}
	// A timed out round must not prevent a new one from starting.
	if registry.ActiveRoundId != nil {
		if err := s.finalizeRound(ctx, *registry.ActiveRoundId, now); err != nil {
			return 0, fmt.Errorf("failed to finalize round %d: %w", *registry.ActiveRoundId, err)
		}
	}

	var round *domain.Round
	if err := s.repoManager.RunInTx(ctx, func(ctx context.Context) error {
		registry, err := s.getRegistry(ctx)
		if err != nil {
			return err
		}

		var vault *domain.Vault
		round, vault, err = domain.NewRound(registry, caller, stakeAmount, duration, now)
		if err != nil {
			return err
		}

		if err := s.repoManager.Rounds().AddOrUpdateRound(ctx, *round); err != nil {
			return err
		}
		if err := s.repoManager.Vaults().AddOrUpdateVault(ctx, *vault); err != nil {
			return err
		}
		if err := s.repoManager.Registry().Upsert(ctx, *registry); err != nil {
			return err
		}
		return s.repoManager.Events().AddEvents(ctx, round.Events()...)
	}); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"round":    round.Id,
		"stake":    stakeAmount,
		"duration": duration,
	}).Info("round created")
	return round.Id, nil
}

func (s *service) SubmitStake(
	ctx context.Context, caller string, roundId, amount uint64, now int64,
) (*RoundInfo, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.finalizeRound(ctx, roundId, now); err != nil {
		return nil, err
	}

	var info *RoundInfo
	if err := s.repoManager.RunInTx(ctx, func(ctx context.Context) error {
		round, err := s.repoManager.Rounds().GetRoundWithId(ctx, roundId)
		if err != nil {
			return err
		}
		vault, err := s.repoManager.Vaults().GetVaultWithRoundId(ctx, roundId)
		if err != nil {
			return err
		}

		if err := domain.CheckStake(round, vault, caller, amount); err != nil {
			return err
		}
		balance, err := s.ledger.Balance(ctx, caller)
		if err != nil {
			return err
		}
		if balance < amount {
			return fmt.Errorf(
				"%w: %s has %d, stake is %d", domain.ErrInsufficientFunds, caller, balance, amount,
			)
		}

		if err := s.ledger.Transfer(ctx, caller, vault.Account(), amount); err != nil {
			return err
		}
		if err := vault.Deposit(amount); err != nil {
			return err
		}
		if _, err := round.AcceptStake(caller, vault, now); err != nil {
			return err
		}

		if err := s.repoManager.Rounds().AddOrUpdateRound(ctx, *round); err != nil {
			return err
		}
		if err := s.repoManager.Vaults().AddOrUpdateVault(ctx, *vault); err != nil {
			return err
		}
		if err := s.repoManager.Events().AddEvents(ctx, round.Events()...); err != nil {
			return err
		}

		info = &RoundInfo{Round: *round, Vault: *vault}
		return nil
	}); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"round":  roundId,
		"caller": caller,
		"amount": amount,
		"clicks": info.Round.ClickCount,
	}).Info("stake accepted")
	return info, nil
}

func (s *service) FinalizeCheck(
	ctx context.Context, roundId uint64, now int64,
) (*RoundInfo, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.finalizeRound(ctx, roundId, now); err != nil {
		return nil, err
	}
	return s.getRoundInfo(ctx, roundId)
}
