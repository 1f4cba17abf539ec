package application

import (
	"context"
	"fmt"

	"github.com/lastclick-network/lastclick/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// Read paths never persist anything: rounds are returned as they would look
// after finalization at now.

func (s *service) GetRegistry(ctx context.Context, now int64) (*domain.Registry, error) {
	registry, err := s.getRegistry(ctx)
	if err != nil {
		return nil, err
	}
	if registry.ActiveRoundId == nil {
		return registry, nil
	}

	round, err := s.repoManager.Rounds().GetRoundWithId(ctx, *registry.ActiveRoundId)
	if err != nil {
		return nil, err
	}
	domain.Finalize(round, registry, now)
	return registry, nil
}

func (s *service) GetRound(ctx context.Context, roundId uint64, now int64) (*RoundInfo, error) {
	info, err := s.getRoundInfo(ctx, roundId)
	if err != nil {
		return nil, err
	}
	domain.Finalize(&info.Round, nil, now)
	return info, nil
}

func (s *service) GetActiveRound(ctx context.Context, now int64) (*RoundInfo, error) {
	registry, err := s.getRegistry(ctx)
	if err != nil {
		return nil, err
	}
	if registry.ActiveRoundId == nil {
		return nil, nil
	}

	info, err := s.GetRound(ctx, *registry.ActiveRoundId, now)
	if err != nil {
		return nil, err
	}
	if !info.Round.IsActive {
		return nil, nil
	}
	return info, nil
}

func (s *service) ListRounds(ctx context.Context, now int64) ([]RoundInfo, error) {
	rounds, err := s.repoManager.Rounds().GetRounds(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]RoundInfo, 0, len(rounds))
	for _, round := range rounds {
		vault, err := s.repoManager.Vaults().GetVaultWithRoundId(ctx, round.Id)
		if err != nil {
			return nil, err
		}
		domain.Finalize(&round, nil, now)
		infos = append(infos, RoundInfo{Round: round, Vault: *vault})
	}
	return infos, nil
}

func (s *service) GetRoundEvents(ctx context.Context, roundId uint64) ([]domain.Event, error) {
	if _, err := s.repoManager.Rounds().GetRoundWithId(ctx, roundId); err != nil {
		return nil, err
	}
	return s.repoManager.Events().GetEvents(ctx, domain.RoundKey(roundId))
}

func (s *service) GetBalance(ctx context.Context, account string) (uint64, error) {
	if len(account) <= 0 {
		return 0, domain.ErrInvalidIdentity
	}
	return s.ledger.Balance(ctx, account)
}

// Faucet credits a participant account out of thin air. Vault accounts can
// only be funded through stakes.
func (s *service) Faucet(ctx context.Context, account string, amount uint64) (uint64, error) {
	if !s.cfg.EnableFaucet {
		return 0, domain.ErrFaucetDisabled
	}
	if domain.IsVaultKey(account) {
		return 0, domain.ErrReservedAccount
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.ledger.Credit(ctx, account, amount); err != nil {
		return 0, fmt.Errorf("failed to credit %s: %w", account, err)
	}
	balance, err := s.ledger.Balance(ctx, account)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{"account": account, "amount": amount}).Info("faucet credited account")
	return balance, nil
}
