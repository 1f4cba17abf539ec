package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/lastclick-network/lastclick/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

type service struct {
	cfg Config

	repoManager ports.RepoManager
	ledger      ports.Ledger
	scheduler   ports.SchedulerService

	// lock serializes every operation that writes to the store.
	lock sync.Mutex
}

func NewService(
	cfg Config,
	repoManager ports.RepoManager, ledger ports.Ledger, scheduler ports.SchedulerService,
) (Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if ledger == nil {
		return nil, fmt.Errorf("missing ledger")
	}
	if cfg.GcInterval < 0 {
		return nil, fmt.Errorf("invalid gc interval %d", cfg.GcInterval)
	}

	return &service{
		cfg:         cfg,
		repoManager: repoManager,
		ledger:      ledger,
		scheduler:   scheduler,
	}, nil
}

func (s *service) Start() error {
	if s.scheduler == nil {
		return nil
	}

	if gc, ok := s.repoManager.(ports.GarbageCollector); ok && s.cfg.GcInterval > 0 {
		if err := s.scheduler.ScheduleTask(s.cfg.GcInterval, false, func() {
			if err := gc.CollectGarbage(); err != nil {
				log.WithError(err).Warn("failed to collect store garbage")
				return
			}
			log.Debug("collected store garbage")
		}); err != nil {
			return err
		}
	}

	log.Debug("starting scheduler service...")
	s.scheduler.Start()
	return nil
}

func (s *service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
		log.Debug("stopped scheduler service")
	}
	s.repoManager.Close()
	log.Debug("closed connection to db")
}

// finalizeRound applies the timeout rule to the given round at now and
// commits the result in its own transaction, so that it survives a failure
// of the operation that triggered it.
func (s *service) finalizeRound(ctx context.Context, roundId uint64, now int64) error {
	var round *domain.Round
	finalized := false

	if err := s.repoManager.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		round, err = s.repoManager.Rounds().GetRoundWithId(ctx, roundId)
		if err != nil {
			return err
		}
		registry, err := s.repoManager.Registry().Get(ctx)
		if err != nil {
			return err
		}

		if finalized = domain.Finalize(round, registry, now); !finalized {
			return nil
		}

		if err := s.repoManager.Rounds().AddOrUpdateRound(ctx, *round); err != nil {
			return err
		}
		if registry != nil {
			if err := s.repoManager.Registry().Upsert(ctx, *registry); err != nil {
				return err
			}
		}
		return s.repoManager.Events().AddEvents(ctx, round.Events()...)
	}); err != nil {
		return err
	}

	if finalized {
		fields := log.Fields{"round": roundId, "clicks": round.ClickCount}
		if round.Leader != nil {
			fields["winner"] = *round.Leader
		}
		log.WithFields(fields).Info("round finalized")
	}
	return nil
}

func (s *service) getRegistry(ctx context.Context) (*domain.Registry, error) {
	registry, err := s.repoManager.Registry().Get(ctx)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, domain.ErrRegistryNotInitialized
	}
	return registry, nil
}

func (s *service) getRoundInfo(ctx context.Context, roundId uint64) (*RoundInfo, error) {
	round, err := s.repoManager.Rounds().GetRoundWithId(ctx, roundId)
	if err != nil {
		return nil, err
	}
	vault, err := s.repoManager.Vaults().GetVaultWithRoundId(ctx, roundId)
	if err != nil {
		return nil, err
	}
	return &RoundInfo{Round: *round, Vault: *vault}, nil
}
