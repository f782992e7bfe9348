package pricing

import (
	"math"

	"github.com/petfolk/petcare/internal/domain"
)

// Tariff carries the pricing constants. Category membership is decided by
// fixed catalog IDs, never by display names.
type Tariff struct {
	LodgingFeePerNight float64
	// Category A: per-night care (basic care, medical monitoring). The
	// sitter's rate covers lodging, so no separate lodging fee applies.
	CareServiceIDs map[string]bool
	// Category B: grooming/beautification. The sitter fee is a one-time
	// add-on on top of lodging, not multiplied by nights.
	GroomingServiceIDs map[string]bool
}

// DefaultTariff returns the catalog's standing rates.
func DefaultTariff() Tariff {
	return Tariff{
		LodgingFeePerNight: 700,
		CareServiceIDs:     map[string]bool{"s0001": true, "s0002": true},
		GroomingServiceIDs: map[string]bool{"s0004": true, "s0005": true},
	}
}

// NewTariff builds a tariff from configured rates, falling back to the
// defaults for anything left unset.
func NewTariff(feePerNight float64, careIDs, groomingIDs []string) Tariff {
	t := DefaultTariff()
	if feePerNight > 0 {
		t.LodgingFeePerNight = feePerNight
	}
	if len(careIDs) > 0 {
		t.CareServiceIDs = toSet(careIDs)
	}
	if len(groomingIDs) > 0 {
		t.GroomingServiceIDs = toSet(groomingIDs)
	}
	return t
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Line is one row of an itemized quote.
type Line struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Quote is the outcome of a price computation. When OK is false, Reason
// says why and Total is zero.
type Quote struct {
	OK     bool    `json:"ok"`
	Total  float64 `json:"total"`
	Lines  []Line  `json:"lines,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

func reject(reason string) Quote {
	return Quote{Reason: reason}
}

// Compute prices a booking draft. It is a pure function of its inputs and
// is re-run on every draft mutation.
//
// A nil nights means dates have not been chosen. nights == 0 is a day-use
// visit with no overnight stay; then both service and sitter are mandatory
// and the sitter's price applies exactly once. For overnight stays, either
// both service and sitter are chosen (priced by service category) or
// neither is (flat lodging fee per night).
func (t Tariff) Compute(nights *int, svc *domain.Service, offer *domain.SitterOffer) Quote {
	if nights == nil || *nights < 0 {
		return reject("dates not selected")
	}
	n := *nights

	if n == 0 {
		if svc == nil || offer == nil {
			return reject("day visits require both a service and a sitter")
		}
		return Quote{
			OK:    true,
			Total: offer.Price,
			Lines: []Line{{Label: svc.Name, Amount: offer.Price}},
		}
	}

	if svc == nil && offer == nil {
		total := round2(t.LodgingFeePerNight * float64(n))
		return Quote{
			OK:    true,
			Total: total,
			Lines: []Line{{Label: "lodging", Amount: total}},
		}
	}
	if svc == nil || offer == nil {
		return reject("select both a service and a sitter, or neither")
	}

	if t.GroomingServiceIDs[svc.ID] {
		lodging := round2(t.LodgingFeePerNight * float64(n))
		total := round2(lodging + offer.Price)
		return Quote{
			OK:    true,
			Total: total,
			Lines: []Line{
				{Label: "lodging", Amount: lodging},
				{Label: svc.Name, Amount: offer.Price},
			},
		}
	}

	// Category A and anything unclassified: the sitter's per-night rate
	// covers lodging.
	total := round2(offer.Price * float64(n))
	return Quote{
		OK:    true,
		Total: total,
		Lines: []Line{{Label: svc.Name, Amount: total}},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
