package application

import (
	"context"

	"github.com/lastclick-network/lastclick/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

func (s *service) ClaimReward(
	ctx context.Context, caller string, roundId uint64, now int64,
) (uint64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.finalizeRound(ctx, roundId, now); err != nil {
		return 0, err
	}

	var amount uint64
	if err := s.repoManager.RunInTx(ctx, func(ctx context.Context) error {
		round, err := s.repoManager.Rounds().GetRoundWithId(ctx, roundId)
		if err != nil {
			return err
		}
		vault, err := s.repoManager.Vaults().GetVaultWithRoundId(ctx, roundId)
		if err != nil {
			return err
		}

		if err := domain.CheckClaim(round, vault, caller); err != nil {
			return err
		}

		amount, err = vault.Claim(caller, now)
		if err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, vault.Account(), caller, amount); err != nil {
			return err
		}

		if err := s.repoManager.Vaults().AddOrUpdateVault(ctx, *vault); err != nil {
			return err
		}
		return s.repoManager.Events().AddEvents(ctx, vault.Events()...)
	}); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"round":  roundId,
		"winner": caller,
		"amount": amount,
	}).Info("reward claimed")
	return amount, nil
}
