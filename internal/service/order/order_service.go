// Package order implements the booking transaction: one validated request
// becomes one booking header plus all its line items, committed atomically
// with server-assigned identifiers and a server-stamped reservation time.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/petfolk/petcare/internal/domain"
	"github.com/petfolk/petcare/internal/kafka"
	"github.com/petfolk/petcare/internal/repository"
)

const (
	dateLayout     = "2006-01-02"
	reservedLayout = "2006-01-02 15:04:05"
)

// EventPublisher decouples the booking commit from the notification path.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type OrderUseCase interface {
	Create(ctx context.Context, authMemberID string, in CreateOrderInput) (*CreateOrderResult, error)
	ListByMember(ctx context.Context, memberID string) ([]Summary, error)
	Items(ctx context.Context, memberID, bookingNo string) ([]Item, error)
	Pending(ctx context.Context, memberID string) (*PendingSummary, error)
}

// CreateOrderItem is one line of an incoming order request.
type CreateOrderItem struct {
	ServiceID *string `json:"sNo"`
	PetID     string  `json:"pId"`
	Amount    float64 `json:"amount"`
	Price     float64 `json:"price"`
}

// CreateOrderInput is the order submission as received on the wire.
type CreateOrderInput struct {
	MemberID   string            `json:"mId"`
	SitterID   *string           `json:"sId"`
	StartDate  *string           `json:"startDate"`
	EndDate    *string           `json:"endDate"`
	TotalPrice float64           `json:"totalPrice"`
	Items      []CreateOrderItem `json:"items"`
}

// CreateOrderResult is returned after the transaction commits.
type CreateOrderResult struct {
	BookingNo  string `json:"bNo"`
	ReservedAt string `json:"rDate"`
}

// Summary is one booking in a member's order list.
type Summary struct {
	BookingNo    string  `json:"bNo"`
	SitterID     *string `json:"sId"`
	MemberID     string  `json:"mId"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	ReservedAt   string  `json:"rDate"`
	TotalPrice   float64 `json:"totalPrice"`
	Status       string  `json:"status"`
	Nights       float64 `json:"nights"`
	SitterName   *string `json:"sitterName"`
	ServiceNames *string `json:"serviceNames"`
	PetNames     *string `json:"petNames"`
}

// Item is one line item of a booking, joined with display names.
type Item struct {
	BookingNo   string  `json:"bNo"`
	ServiceID   *string `json:"sNo"`
	ServiceName *string `json:"serviceName"`
	PetID       string  `json:"pId"`
	PetName     *string `json:"petName"`
	Amount      float64 `json:"amount"`
	Price       float64 `json:"price"`
}

// PendingSummary aggregates a member's not-yet-started bookings.
type PendingSummary struct {
	Count int64   `json:"pendingCount"`
	Total float64 `json:"pendingTotalPrice"`
}

type Service struct {
	repo               repository.BookingRepository
	publisher          EventPublisher
	topic              string
	notificationsTopic string
	log                *zap.Logger
	now                func() time.Time
}

type Option func(*Service)

// WithNotificationsTopic mirrors every order event onto a second topic for
// the notification worker.
func WithNotificationsTopic(topic string) Option {
	return func(s *Service) { s.notificationsTopic = topic }
}

func NewService(repo repository.BookingRepository, publisher EventPublisher, topic string, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
		topic:     topic,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the request, asserts the claimed member matches the
// authenticated one and commits the booking with all its line items in one
// transaction. The reservation timestamp is stamped here, never taken from
// the client. The order event is published after commit on a best-effort
// basis; a broker outage never fails a committed booking.
func (s *Service) Create(ctx context.Context, authMemberID string, in CreateOrderInput) (*CreateOrderResult, error) {
	if in.MemberID == "" {
		return nil, fmt.Errorf("%w: mId is required", ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	for i, item := range in.Items {
		if item.PetID == "" {
			return nil, fmt.Errorf("%w: items[%d].pId is required", ErrValidation, i)
		}
		if item.Amount < 0 || item.Price < 0 {
			return nil, fmt.Errorf("%w: items[%d] has a negative amount or price", ErrValidation, i)
		}
	}
	if in.TotalPrice < 0 {
		return nil, fmt.Errorf("%w: totalPrice cannot be negative", ErrValidation)
	}

	start, err := parseOptionalDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate", ErrValidation)
	}
	end, err := parseOptionalDate(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate", ErrValidation)
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrValidation)
	}
	if start != nil {
		y, m, d := s.now().UTC().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if start.Before(today) {
			return nil, fmt.Errorf("%w: startDate is before today", ErrValidation)
		}
	}

	if in.MemberID != authMemberID {
		return nil, fmt.Errorf("%w: cannot place an order for another member", ErrForbidden)
	}

	reservedAt := s.now()
	booking := &domain.Booking{
		SitterID:   in.SitterID,
		MemberID:   in.MemberID,
		StartDate:  start,
		EndDate:    end,
		ReservedAt: reservedAt,
		TotalPrice: in.TotalPrice,
	}
	lines := make([]domain.BookingLine, len(in.Items))
	for i, item := range in.Items {
		lines[i] = domain.BookingLine{
			ServiceID: item.ServiceID,
			PetID:     item.PetID,
			Amount:    item.Amount,
			Price:     item.Price,
		}
	}

	if err := s.repo.Create(ctx, booking, lines); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publishCreated(ctx, booking)

	return &CreateOrderResult{
		BookingNo:  booking.No,
		ReservedAt: reservedAt.Format(reservedLayout),
	}, nil
}

func (s *Service) publishCreated(ctx context.Context, b *domain.Booking) {
	if s.publisher == nil {
		return
	}
	event := kafka.OrderEvent{
		Type:       "order_created",
		BookingNo:  b.No,
		MemberID:   b.MemberID,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		ReservedAt: b.ReservedAt,
	}
	if b.SitterID != nil {
		event.SitterID = *b.SitterID
	}
	if b.StartDate != nil {
		event.StartDate = b.StartDate.Format(dateLayout)
	}
	if b.EndDate != nil {
		event.EndDate = b.EndDate.Format(dateLayout)
	}

	topics := []string{s.topic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.publisher.Publish(ctx, topic, b.No, event); err != nil {
			s.log.Warn("order event not published",
				zap.String("topic", topic),
				zap.String("bNo", b.No),
				zap.Error(err),
			)
		}
	}
}

// ListByMember returns the member's bookings, newest stay first. Rows
// stored without an explicit status get one derived from the stay dates.
func (s *Service) ListByMember(ctx context.Context, memberID string) ([]Summary, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: mId is required", ErrValidation)
	}

	rows, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	now := s.now()
	out := make([]Summary, len(rows))
	for i, row := range rows {
		status := domain.DeriveStatus(now, row.StartDate, row.EndDate, domain.BookingStatus(row.Status))
		out[i] = Summary{
			BookingNo:    row.BookingNo,
			SitterID:     row.SitterID,
			MemberID:     row.MemberID,
			StartDate:    formatOptionalDate(row.StartDate),
			EndDate:      formatOptionalDate(row.EndDate),
			ReservedAt:   row.ReservedAt.Format(reservedLayout),
			TotalPrice:   row.TotalPrice,
			Status:       string(status),
			Nights:       row.Nights,
			SitterName:   row.SitterName,
			ServiceNames: row.ServiceNames,
			PetNames:     row.PetNames,
		}
	}
	return out, nil
}

// Items returns the line items of one booking the member owns. A booking
// that does not exist and one owned by someone else both come back as
// ErrNotFound.
func (s *Service) Items(ctx context.Context, memberID, bookingNo string) ([]Item, error) {
	if memberID == "" || bookingNo == "" {
		return nil, fmt.Errorf("%w: mId and bNo are required", ErrValidation)
	}

	rows, err := s.repo.ItemsForMember(ctx, bookingNo, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingNo)
		}
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	out := make([]Item, len(rows))
	for i, row := range rows {
		out[i] = Item{
			BookingNo:   row.BookingNo,
			ServiceID:   row.ServiceID,
			ServiceName: row.ServiceName,
			PetID:       row.PetID,
			PetName:     row.PetName,
			Amount:      row.Amount,
			Price:       row.Price,
		}
	}
	return out, nil
}

func (s *Service) Pending(ctx context.Context, memberID string) (*PendingSummary, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: mId is required", ErrValidation)
	}

	count, total, err := s.repo.PendingSummary(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize pending orders: %w", err)
	}
	return &PendingSummary{Count: count, Total: total}, nil
}

var _ OrderUseCase = (*Service)(nil)

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
