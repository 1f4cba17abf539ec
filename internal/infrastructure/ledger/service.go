package ledger

import (
	"context"
	"fmt"

	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/lastclick-network/lastclick/internal/core/ports"
)

// service keeps custody accounts in the same store as the game records, so
// a transfer made with a transactional ctx commits or rolls back with them.
type service struct {
	repoManager ports.RepoManager
}

func NewService(repoManager ports.RepoManager) ports.Ledger {
	return &service{repoManager}
}

func (s *service) Balance(ctx context.Context, account string) (uint64, error) {
	acc, err := s.repoManager.Accounts().GetAccount(ctx, account)
	if err != nil {
		return 0, err
	}
	if acc == nil {
		return 0, nil
	}
	return acc.Balance, nil
}

func (s *service) Transfer(ctx context.Context, from, to string, amount uint64) error {
	if len(from) <= 0 || len(to) <= 0 {
		return domain.ErrInvalidIdentity
	}
	if from == to {
		return domain.ErrSelfTransfer
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	return s.repoManager.RunInTx(ctx, func(ctx context.Context) error {
		src, err := s.getAccount(ctx, from)
		if err != nil {
			return err
		}
		if err := src.Debit(amount); err != nil {
			return fmt.Errorf("%w: %s has %d, needs %d", err, from, src.Balance, amount)
		}
		dst, err := s.getAccount(ctx, to)
		if err != nil {
			return err
		}
		if err := dst.Credit(amount); err != nil {
			return err
		}

		if err := s.repoManager.Accounts().Upsert(ctx, *src); err != nil {
			return err
		}
		return s.repoManager.Accounts().Upsert(ctx, *dst)
	})
}

func (s *service) Credit(ctx context.Context, account string, amount uint64) error {
	if len(account) <= 0 {
		return domain.ErrInvalidIdentity
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	return s.repoManager.RunInTx(ctx, func(ctx context.Context) error {
		acc, err := s.getAccount(ctx, account)
		if err != nil {
			return err
		}
		if err := acc.Credit(amount); err != nil {
			return err
		}
		return s.repoManager.Accounts().Upsert(ctx, *acc)
	})
}

func (s *service) getAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repoManager.Accounts().GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &domain.Account{Id: id}, nil
	}
	return account, nil
}
