package depot

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Zone is a named delivery catchment area. Depots and agents are tagged with a
// zone; an order's zone is derived from its depot or its shipping city.
type Zone struct {
	id   kernel.UUID
	name string
	city string
}

func NewZone(id kernel.UUID, name, city string) (Zone, error) {
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)

	var nameErr, cityErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}
	if city == "" {
		cityErr = errs.NewValueIsRequiredError("city")
	}
	if err := errors.Join(id.Validate(), nameErr, cityErr); err != nil {
		return Zone{}, err
	}
	return Zone{id: id, name: name, city: city}, nil
}

func (z Zone) ID() kernel.UUID { return z.id }
func (z Zone) Name() string    { return z.name }
func (z Zone) City() string    { return z.city }
