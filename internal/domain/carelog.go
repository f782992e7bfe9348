package domain

import "time"

// CareLog is one diary entry a sitter records during a stay.
type CareLog struct {
	No          int64
	BookingNo   string
	PetID       *string
	RecordTime  time.Time
	Description string
}
