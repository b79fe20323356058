package agent

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Availability is the advisory flag an agent raises when ready to take parcels.
type Availability string

const (
	Available   Availability = "available"
	Unavailable Availability = "unavailable"
)

// ParseAvailability converts the wire form into an Availability.
func ParseAvailability(s string) (Availability, error) {
	a := Availability(s)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

func (a Availability) Validate() error {
	if a != Available && a != Unavailable {
		return errs.NewValueIsInvalidErrorWithCause("availability", fmt.Errorf("%q is not an availability", string(a)))
	}
	return nil
}

func (a Availability) String() string {
	return string(a)
}
