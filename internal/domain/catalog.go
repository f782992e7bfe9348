package domain

import (
	"math"
	"strings"
)

// Service is an immutable catalog entry.
type Service struct {
	ID          string // s0001, s0002, ...
	Name        string
	BasePrice   float64
	Description string
}

// SitterOffer is a sitter's price for one specific service. The same sitter
// may carry a different price per service.
type SitterOffer struct {
	SitterID  string // t0001, t0002, ...
	Name      string
	Specialty string // raw comma-separated tag list as stored
	Seniority string
	Rating    float64
	Price     float64
	ServiceID string
}

// SpecialtyTags splits the stored specialty string into individual tags.
// Both ASCII and fullwidth separators appear in legacy rows.
func (o SitterOffer) SpecialtyTags() []string {
	if o.Specialty == "" {
		return nil
	}
	fields := strings.FieldsFunc(o.Specialty, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// RoundRating clamps a review score to [0, 5] in half-star steps.
func RoundRating(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	r = math.Max(0, math.Min(5, r))
	return math.Round(r*2) / 2
}
