package depot

import (
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDepotIsNotConstructed is returned when using an improperly initialized Depot.
	ErrDepotIsNotConstructed = errors.New("Depot must be created via NewDepot constructor")
)

// Depot is a pickup point acting as a transit hub: at-depot orders sit on one of
// its storage locations until they are dispatched.
type Depot struct {
	id        kernel.UUID
	name      string
	zoneID    *kernel.UUID
	managerID *kernel.UUID
	// layout lists the storage locations; empty means any label is accepted
	layout []string
	guard  guard.ConstructorGuard
}

// NewDepot creates a depot. zoneID, managerID and layout are optional.
//
// Example:
//
//	d, err := depot.NewDepot(kernel.NewUUID(), "Dakar Plateau", &zoneID, &managerID, []string{"A-01", "A-02"})
func NewDepot(id kernel.UUID, name string, zoneID, managerID *kernel.UUID, layout []string) (*Depot, error) {
	d := &Depot{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setZone(zoneID),
		d.setManager(managerID),
		d.setLayout(layout),
	); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Depot) Validate() error {
	if d == nil {
		return ErrDepotIsNotConstructed
	}
	return d.guard.Validate(ErrDepotIsNotConstructed)
}

func (d *Depot) ID() kernel.UUID { return d.id }
func (d *Depot) Name() string    { return d.name }
func (d *Depot) Layout() []string {
	return slices.Clone(d.layout)
}

func (d *Depot) ZoneID() *kernel.UUID {
	if d.zoneID == nil {
		return nil
	}
	z := *d.zoneID
	return &z
}

func (d *Depot) ManagerID() *kernel.UUID {
	if d.managerID == nil {
		return nil
	}
	m := *d.managerID
	return &m
}

// HasLocation reports whether storageLocationID is a shelf of this depot.
// Depots without a declared layout accept any non-empty label.
func (d *Depot) HasLocation(storageLocationID string) bool {
	storageLocationID = strings.TrimSpace(storageLocationID)
	if storageLocationID == "" {
		return false
	}
	if len(d.layout) == 0 {
		return true
	}
	return slices.Contains(d.layout, storageLocationID)
}

func (d *Depot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Depot) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Depot) setZone(zoneID *kernel.UUID) error {
	if zoneID == nil {
		return nil
	}
	if err := zoneID.Validate(); err != nil {
		return err
	}
	z := *zoneID
	d.zoneID = &z
	return nil
}

func (d *Depot) setManager(managerID *kernel.UUID) error {
	if managerID == nil {
		return nil
	}
	if err := managerID.Validate(); err != nil {
		return err
	}
	m := *managerID
	d.managerID = &m
	return nil
}

func (d *Depot) setLayout(layout []string) error {
	cleaned := make([]string, 0, len(layout))
	for _, loc := range layout {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			return errs.NewValueIsRequiredError("layout location")
		}
		if slices.Contains(cleaned, loc) {
			return errs.NewValueIsInvalidError("layout location " + loc)
		}
		cleaned = append(cleaned, loc)
	}
	d.layout = cleaned
	return nil
}
