package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer reads order events from one topic as part of a consumer group
// and hands each decoded event to a handler. Payloads that do not decode
// to an order event are logged and skipped so one bad message can never
// wedge the group on a redelivery loop.
type Consumer struct {
	reader *kafka.Reader
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			MinBytes:          1,
			MaxBytes:          1 << 20,
			MaxWait:           500 * time.Millisecond,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks reading order events until the context is cancelled or
// the handler returns an error. A handler error stops consumption before
// the offset is committed, so the event is redelivered.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, OrderEvent) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeOrderEvent(msg.Value)
		if err != nil {
			c.log.Warn("skipping undecodable order event",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

func decodeOrderEvent(value []byte) (OrderEvent, error) {
	var event OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return OrderEvent{}, fmt.Errorf("failed to decode order event: %w", err)
	}
	if event.BookingNo == "" {
		return OrderEvent{}, fmt.Errorf("order event is missing bNo")
	}
	return event, nil
}
