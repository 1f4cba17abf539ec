package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/lastclick-network/lastclick/internal/core/application"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	lastclickv1 "github.com/lastclick-network/lastclick/pkg/api/v1"
	"google.golang.org/grpc/metadata"
)

func parseCaller(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errMissingIdentity
	}
	values := md.Get(lastclickv1.CallerIdentityKey)
	if len(values) <= 0 {
		return "", errMissingIdentity
	}
	caller := strings.TrimSpace(values[0])
	if len(caller) <= 0 {
		return "", errMissingIdentity
	}
	return caller, nil
}

func toRegistry(registry *domain.Registry) lastclickv1.Registry {
	return lastclickv1.Registry{
		Operator:      registry.Operator,
		NextRoundId:   registry.NextRoundId,
		ActiveRoundId: registry.ActiveRoundId,
	}
}

func toRound(info application.RoundInfo, now int64) lastclickv1.Round {
	round, vault := info.Round, info.Vault
	return lastclickv1.Round{
		Id:               round.Id,
		Leader:           round.Leader,
		ClickCount:       round.ClickCount,
		IsActive:         round.IsActive,
		HasEnded:         round.HasEnded,
		LastActionTime:   round.LastActionTime,
		Duration:         round.Duration,
		CreatedAt:        round.CreatedAt,
		EndedAt:          round.EndedAt,
		RemainingSeconds: info.Remaining(now),
		Vault: lastclickv1.Vault{
			Account:     vault.Account(),
			Owner:       vault.Owner,
			Balance:     vault.Balance,
			StakeAmount: vault.StakeAmount,
			ClaimedBy:   vault.ClaimedBy,
			ClaimedAt:   vault.ClaimedAt,
		},
	}
}

func toEvents(events []domain.Event) ([]lastclickv1.Event, error) {
	list := make([]lastclickv1.Event, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}
		list = append(list, lastclickv1.Event{
			Type:      string(event.Type()),
			Stream:    event.Stream(),
			Timestamp: event.Time(),
			Data:      data,
		})
	}
	return list, nil
}
