package domain

import "time"

// Pet belongs to exactly one member. Line items reference pets but never
// mutate them.
type Pet struct {
	ID          string // p0001, p0002, ...
	MemberID    string
	Name        string
	Breed       string
	Birth       time.Time
	Ligation    string
	Weight      *float64
	Personality *string
	Disease     string
	Notice      *string
}
