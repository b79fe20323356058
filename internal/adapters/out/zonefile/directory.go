// Package zonefile resolves shipping cities to delivery zones from a YAML zone
// directory:
//
//	zones:
//	  - id: 7b0d0f5c-3c1e-4a4e-9d59-4a8c1f0c2b11
//	    name: Casablanca Centre
//	    city: Casablanca
package zonefile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"fulfillment/internal/core/domain/model/depot"
	"fulfillment/internal/core/domain/model/kernel"

	"go.yaml.in/yaml/v4"
)

type fileZone struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	City string `yaml:"city"`
}

type file struct {
	Zones []fileZone `yaml:"zones"`
}

// Directory implements ports.ZoneResolver. It is immutable after load.
type Directory struct {
	zones  []depot.Zone
	byCity map[string]kernel.UUID
}

func Load(filename string) (*Directory, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Directory, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal zone file: %w", err)
	}

	d := &Directory{
		zones:  make([]depot.Zone, 0, len(f.Zones)),
		byCity: make(map[string]kernel.UUID, len(f.Zones)),
	}
	for i, fz := range f.Zones {
		id, err := kernel.UUIDFromString(fz.ID)
		if err != nil {
			return nil, fmt.Errorf("zone %d: %w", i, err)
		}
		z, err := depot.NewZone(id, fz.Name, fz.City)
		if err != nil {
			return nil, fmt.Errorf("zone %d: %w", i, err)
		}

		key := cityKey(z.City())
		if other, ok := d.byCity[key]; ok && !other.IsEqual(id) {
			return nil, fmt.Errorf("zone %d: city %q already belongs to zone %s", i, z.City(), other)
		}
		d.byCity[key] = id
		d.zones = append(d.zones, z)
	}
	return d, nil
}

// ZoneForCity matches the city case-insensitively, ignoring surrounding spaces.
func (d *Directory) ZoneForCity(_ context.Context, city string) (*kernel.UUID, error) {
	id, ok := d.byCity[cityKey(city)]
	if !ok {
		return nil, nil //nolint:nilnil // unknown city is not an error
	}
	return &id, nil
}

func (d *Directory) Zones() []depot.Zone {
	out := make([]depot.Zone, len(d.zones))
	copy(out, d.zones)
	return out
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
