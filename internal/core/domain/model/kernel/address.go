package kernel

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when using an Address that bypassed NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the shipping destination of an order. The city is what the zone
// resolver uses to derive the order's effective delivery zone.
//
// Example:
//
//	addr, err := kernel.NewAddress("12 rue Didouche", "Alger", "16000")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(addr) // 12 rue Didouche, 16000 Alger
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	postalCode string
	guard      guard.ConstructorGuard
}

// NewAddress creates an Address. Street and city are required and trimmed;
// the postal code is optional.
func NewAddress(street, city, postalCode string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(addr.setStreet(street), addr.setCity(city)); err != nil {
		return Address{}, err
	}
	addr.postalCode = strings.TrimSpace(postalCode)

	return addr, nil
}

// Validate reports whether the address was built by NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Street() string {
	return a.street
}

func (a Address) City() string {
	return a.city
}

func (a Address) PostalCode() string {
	return a.postalCode
}

// String renders the address as a single label line.
func (a Address) String() string {
	if a.postalCode == "" {
		return fmt.Sprintf("%s, %s", a.street, a.city)
	}
	return fmt.Sprintf("%s, %s %s", a.street, a.postalCode, a.city)
}

// SameCity compares cities case-insensitively.
func (a Address) SameCity(city string) bool {
	return strings.EqualFold(a.city, strings.TrimSpace(city))
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}

	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}

	a.city = city
	return nil
}
