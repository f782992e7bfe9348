package domain

import "time"

type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "reserved"
	BookingStatusStaying   BookingStatus = "staying"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is one reservation header. Line items never outlive it.
type Booking struct {
	No         string // b0001, b0002, ...
	SitterID   *string
	MemberID   string
	StartDate  *time.Time
	EndDate    *time.Time
	ReservedAt time.Time // server-stamped at request receipt
	TotalPrice float64
	Status     BookingStatus
}

// BookingLine is one billable component of a booking. A nil ServiceID means
// a generic lodging charge.
type BookingLine struct {
	ID        string // hh0001, hh0002, ...
	BookingNo string
	ServiceID *string
	PetID     string
	Amount    float64 // nights, or 1 for one-time charges
	Price     float64 // unit price
}

// DeriveStatus resolves the lifecycle status of a booking. A stored status
// is taken literally; only rows without one fall back to deriving it from
// the stay dates against the given clock.
func DeriveStatus(now time.Time, start, end *time.Time, stored BookingStatus) BookingStatus {
	if stored != "" {
		return stored
	}
	if start == nil {
		return BookingStatusReserved
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if today.Before(*start) {
		return BookingStatusReserved
	}
	if end != nil && today.After(*end) {
		return BookingStatusCompleted
	}
	return BookingStatusStaying
}
