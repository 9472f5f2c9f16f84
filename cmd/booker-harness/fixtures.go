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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/nscaledev/booker-conformance/pkg/booking"
)

var ErrFormat = errors.New("unsupported output format")

type fixturesOptions struct {
	count  int
	seed   uint64
	named  []string
	format string
	curl   string
}

func (o *fixturesOptions) AddFlags(f *pflag.FlagSet) {
	f.IntVar(&o.count, "count", 1, "Number of generated bookings.")
	f.Uint64Var(&o.seed, "seed", 0, "Random seed, 0 picks one at random.")
	f.StringSliceVar(&o.named, "named", nil, "Catalog bookings to emit instead of generated ones.")
	f.StringVar(&o.format, "format", "json", "Output format, either json or yaml.")
	f.StringVar(&o.curl, "curl", "", "Print curl commands that create the bookings on the service at this URL instead.")
}

// generate returns count bookings drawn from a single random source so a
// given seed always yields the same sequence.
func generate(count int, seed uint64) []booking.Booking {
	faker := gofakeit.New(seed)

	out := make([]booking.Booking, count)

	for i := range out {
		out[i] = booking.NewBookingBuilderWithFaker(faker).Build()
	}

	return out
}

func (o *fixturesOptions) bookings() ([]booking.Booking, error) {
	if len(o.named) == 0 {
		return generate(o.count, o.seed), nil
	}

	catalog, err := booking.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	out := make([]booking.Booking, len(o.named))

	for i, name := range o.named {
		b, err := catalog.Get(name)
		if err != nil {
			return nil, fmt.Errorf("%w, choose from %v", err, catalog.Names())
		}

		out[i] = b
	}

	return out, nil
}

func writeBookings(w io.Writer, format string, bookings []booking.Booking) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(bookings)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()

		return encoder.Encode(bookings)
	}

	return fmt.Errorf("%w: %s", ErrFormat, format)
}

// writeCurl emits one shell safe curl command per booking.
func writeCurl(w io.Writer, baseURL string, bookings []booking.Booking) error {
	for i := range bookings {
		data, err := json.Marshal(bookings[i])
		if err != nil {
			return err
		}

		command := shellescape.QuoteCommand([]string{
			"curl", "-sS", "-X", "POST", strings.TrimSuffix(baseURL, "/") + "/booking",
			"-H", "Content-Type: application/json",
			"-H", "Accept: application/json",
			"-d", string(data),
		})

		if _, err := fmt.Fprintln(w, command); err != nil {
			return err
		}
	}

	return nil
}

func newFixturesCommand() *cobra.Command {
	options := &fixturesOptions{}

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Print booking payloads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bookings, err := options.bookings()
			if err != nil {
				return err
			}

			if options.curl != "" {
				return writeCurl(cmd.OutOrStdout(), options.curl, bookings)
			}

			return writeBookings(cmd.OutOrStdout(), options.format, bookings)
		},
	}

	options.AddFlags(cmd.Flags())

	return cmd
}
