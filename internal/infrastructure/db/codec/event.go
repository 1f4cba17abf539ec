package codec

import (
	"encoding/json"
	"fmt"

	"github.com/lastclick-network/lastclick/internal/core/domain"
)

// Record is the storage form of a domain event, shared by all data stores.
type Record struct {
	Id        string
	Stream    string
	Seq       uint64
	Type      string
	Timestamp int64
	Payload   []byte
}

func EncodeEvent(id string, seq uint64, event domain.Event) (*Record, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s event: %w", event.Type(), err)
	}
	return &Record{
		Id:        id,
		Stream:    event.Stream(),
		Seq:       seq,
		Type:      string(event.Type()),
		Timestamp: event.Time(),
		Payload:   payload,
	}, nil
}

func DecodeEvent(record Record) (domain.Event, error) {
	switch domain.EventType(record.Type) {
	case domain.RegistryInitializedEvent:
		return decode[domain.RegistryInitialized](record.Payload)
	case domain.RoundCreatedEvent:
		return decode[domain.RoundCreated](record.Payload)
	case domain.StakeAcceptedEvent:
		return decode[domain.StakeAccepted](record.Payload)
	case domain.RoundFinalizedEvent:
		return decode[domain.RoundFinalized](record.Payload)
	case domain.RewardClaimedEvent:
		return decode[domain.RewardClaimed](record.Payload)
	default:
		return nil, fmt.Errorf("unknown event type %s", record.Type)
	}
}

func DecodeEvents(records []Record) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(records))
	for _, record := range records {
		event, err := DecodeEvent(record)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func decode[T domain.Event](buf []byte) (domain.Event, error) {
	var event T
	if err := json.Unmarshal(buf, &event); err != nil {
		return nil, fmt.Errorf("failed to deserialize event: %w", err)
	}
	return event, nil
}
