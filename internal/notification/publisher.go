package notification

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/assurly/assurly/internal/config"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/pubsub"
	"github.com/assurly/assurly/internal/types"
)

// Publisher is the notification sink. Delivery is fire-and-forget:
// callers log failures and never propagate them into lifecycle
// operations.
type Publisher interface {
	Publish(ctx context.Context, n *types.Notification) error
	Close() error
}

type publisher struct {
	pubSub pubsub.PubSub
	topic  string
	logger *logger.Logger
}

// NewPublisher creates a notification publisher on top of the pubsub
func NewPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) Publisher {
	return &publisher{
		pubSub: pubSub,
		topic:  cfg.Notification.Topic,
		logger: logger,
	}
}

func (p *publisher) Publish(ctx context.Context, n *types.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	msg := message.NewMessage(n.ID, payload)
	msg.Metadata.Set("notification_type", string(n.Type))
	msg.Metadata.Set("recipient_id", n.RecipientID)

	p.logger.Debugw("publishing notification",
		"notification_id", n.ID,
		"type", n.Type,
		"recipient_id", n.RecipientID,
		"topic", p.topic)

	return p.pubSub.Publish(ctx, p.topic, msg)
}

func (p *publisher) Close() error {
	return p.pubSub.Close()
}
