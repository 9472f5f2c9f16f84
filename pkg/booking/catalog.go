/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package booking

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

var ErrUnknownBooking = errors.New("unknown named booking")

//go:embed catalog.yaml
var catalogData []byte

// Catalog is a set of well known bookings keyed by name.
type Catalog map[string]Booking

// LoadCatalog parses a catalog document.
func LoadCatalog(data []byte) (Catalog, error) {
	var catalog Catalog

	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing booking catalog: %w", err)
	}

	return catalog, nil
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (Catalog, error) {
	return LoadCatalog(catalogData)
}

// Names returns the catalog entries in a stable order.
func (c Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c))
}

// Get returns a copy of the named booking.
func (c Catalog) Get(name string) (Booking, error) {
	b, ok := c[name]
	if !ok {
		return Booking{}, fmt.Errorf("%w: %s", ErrUnknownBooking, name)
	}

	return Booking{
		Firstname:   clone(b.Firstname),
		Lastname:    clone(b.Lastname),
		TotalPrice:  b.TotalPrice,
		DepositPaid: b.DepositPaid,
		BookingDates: BookingDates{
			Checkin:  clone(b.BookingDates.Checkin),
			Checkout: clone(b.BookingDates.Checkout),
		},
		AdditionalNeeds: b.AdditionalNeeds,
	}, nil
}

// Named looks up a booking in the embedded catalog.
func Named(name string) (Booking, error) {
	catalog, err := DefaultCatalog()
	if err != nil {
		return Booking{}, err
	}

	return catalog.Get(name)
}
