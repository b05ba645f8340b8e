package service

import (
	"context"
	"encoding/json"

	"irene-companion-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishSnapshot(ctx context.Context, snapshot *dto.MessagesUpdated) error
}

// publisherService decouples the exchange pipeline from snapshot delivery:
// the orchestrator publishes, the consumer forwards to the hub.
type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishSnapshot(ctx context.Context, snapshot *dto.MessagesUpdated) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
