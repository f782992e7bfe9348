package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/petfolk/petcare/internal/kafka"
)

// Sender turns order events into member notifications. Delivery is stubbed
// behind this type so the worker wiring stays stable when a real mail
// provider is plugged in.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	s.log.Info("notify member about order",
		zap.String("type", event.Type),
		zap.String("bNo", event.BookingNo),
		zap.String("mId", event.MemberID),
		zap.Float64("totalPrice", event.TotalPrice),
	)
	return nil
}
