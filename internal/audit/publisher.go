package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/assurly/assurly/internal/config"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/pubsub"
	"github.com/assurly/assurly/internal/types"
)

// Entry is a before/after snapshot of a single entity mutation.
// Snapshots are opaque to the sink; they are stored as-is for later
// inspection.
type Entry struct {
	ID         string      `json:"id"`
	ActorID    string      `json:"actor_id"`
	Action     string      `json:"action"`
	EntityType string      `json:"entity_type"`
	EntityID   string      `json:"entity_id"`
	Before     interface{} `json:"before,omitempty"`
	After      interface{} `json:"after,omitempty"`
	At         time.Time   `json:"at"`
}

// Publisher is the audit sink. Like notifications, audit delivery
// failures are logged by callers and never abort a mutation.
type Publisher interface {
	Record(ctx context.Context, entry *Entry) error
	Close() error
}

type publisher struct {
	pubSub pubsub.PubSub
	topic  string
	logger *logger.Logger
}

func NewPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) Publisher {
	return &publisher{
		pubSub: pubSub,
		topic:  cfg.Audit.Topic,
		logger: logger,
	}
}

// NewEntry builds an audit entry for an entity mutation
func NewEntry(ctx context.Context, action, entityType, entityID string, before, after interface{}) *Entry {
	return &Entry{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AUDIT),
		ActorID:    types.GetActorID(ctx),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Before:     before,
		After:      after,
		At:         time.Now().UTC(),
	}
}

func (p *publisher) Record(ctx context.Context, entry *Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	msg := message.NewMessage(entry.ID, payload)
	msg.Metadata.Set("entity_type", entry.EntityType)
	msg.Metadata.Set("action", entry.Action)

	return p.pubSub.Publish(ctx, p.topic, msg)
}

func (p *publisher) Close() error {
	return p.pubSub.Close()
}
