// Package draft holds the in-progress booking selection for one session:
// dates, derived nights, service, sitter and pet. Every mutation re-derives
// dependent fields, persists the draft and recomputes the price quote, so
// the summary a member sees can never drift from the selection state.
package draft

import (
	"errors"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

var (
	// ErrBadDate means a date string is not a valid YYYY-MM-DD calendar date.
	ErrBadDate = errors.New("invalid date")
	// ErrInvalidDateRange means check-in falls after check-out. The
	// check-out and the derived nights are cleared when this is returned.
	ErrInvalidDateRange = errors.New("check-out cannot be before check-in")
)

// Draft is the not-yet-submitted booking selection. Nights is always
// derived from the dates when both are present, never set independently.
type Draft struct {
	Nights    *int    `json:"nights"`
	CheckIn   *string `json:"checkin"`
	CheckOut  *string `json:"checkout"`
	ServiceID *string `json:"serviceId"`
	SitterID  *string `json:"sitterId"`
	PetID     *string `json:"petId"`
	Budget    float64 `json:"budget"`
}

// setDates applies a date change and re-derives nights. Any date change
// invalidates the dependent service and sitter selections. Both dates are
// parsed before anything is touched, so an ErrBadDate leaves the draft
// exactly as it was.
func (d *Draft) setDates(checkin, checkout string) error {
	in, err := parseDate(checkin)
	if err != nil {
		return err
	}
	var out time.Time
	if checkout != "" {
		if out, err = parseDate(checkout); err != nil {
			return err
		}
	}

	d.ServiceID = nil
	d.SitterID = nil
	d.CheckIn = &checkin
	d.CheckOut = nil
	d.Nights = nil

	if checkout == "" {
		return nil
	}
	if in.After(out) {
		return ErrInvalidDateRange
	}

	nights := int(math.Ceil(out.Sub(in).Hours() / 24))
	d.CheckOut = &checkout
	d.Nights = &nights
	return nil
}

// selectService toggles the service selection. A sitter choice is priced
// per service, so it is cleared on any service change.
func (d *Draft) selectService(id string) {
	d.SitterID = nil
	if d.ServiceID != nil && *d.ServiceID == id {
		d.ServiceID = nil
		return
	}
	d.ServiceID = &id
}

func (d *Draft) selectSitter(id string) {
	if d.SitterID != nil && *d.SitterID == id {
		d.SitterID = nil
		return
	}
	d.SitterID = &id
}

// reset returns the draft to the initial no-dates-selected state. The pet
// choice is sticky across bookings.
func (d *Draft) reset() {
	d.Nights = nil
	d.CheckIn = nil
	d.CheckOut = nil
	d.ServiceID = nil
	d.SitterID = nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}
