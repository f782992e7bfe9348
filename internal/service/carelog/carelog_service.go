// Package carelog serves the care diary a member reads during and after a
// stay.
package carelog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/petfolk/petcare/internal/repository"
)

// ErrValidation marks a request rejected before touching storage.
var ErrValidation = errors.New("validation failed")

// Entry is one diary record as shown on the wire, placed on the stay
// timeline: StayDay is 1-based from check-in.
type Entry struct {
	No          int64   `json:"cNo"`
	BookingNo   string  `json:"bNo"`
	RecordTime  string  `json:"recordTime"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	StayDay     *int    `json:"stayDay"`
	Nights      *int    `json:"nights"`
	PetName     *string `json:"petName"`
	SitterName  *string `json:"sitterName"`
}

type CareLogUseCase interface {
	ListByMember(ctx context.Context, memberID string) ([]Entry, error)
}

type Service struct {
	repo repository.CareLogRepository
}

var _ CareLogUseCase = (*Service)(nil)

func NewService(repo repository.CareLogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByMember(ctx context.Context, memberID string) ([]Entry, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: mId is required", ErrValidation)
	}

	rows, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list care logs: %w", err)
	}

	out := make([]Entry, len(rows))
	for i, row := range rows {
		out[i] = Entry{
			No:          row.No,
			BookingNo:   row.BookingNo,
			RecordTime:  row.RecordTime.Format(time.RFC3339),
			Description: row.Description,
			Status:      row.BookingStatus,
			StayDay:     row.StayDay,
			Nights:      row.Nights,
			PetName:     row.PetName,
			SitterName:  row.SitterName,
		}
	}
	return out, nil
}
