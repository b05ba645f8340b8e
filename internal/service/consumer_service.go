package service

import (
	"context"
	"encoding/json"
	"log"

	"irene-companion-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// SnapshotDelivery is what the consumer forwards decoded snapshots to. The
// WebSocket hub implements it.
type SnapshotDelivery interface {
	Publish(snapshot dto.MessagesUpdated)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  SnapshotDelivery
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	delivery SnapshotDelivery,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var snapshot dto.MessagesUpdated
	if err := json.Unmarshal(msg.Payload, &snapshot); err != nil {
		log.Printf("[ERROR] Failed to unmarshal snapshot message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.delivery.Publish(snapshot)
	msg.Ack()
}
