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

// Package schema validates response bodies against the JSON schemas that
// describe the booking service's payloads.
package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// Name identifies an embedded schema.
type Name string

const (
	Booking        Name = "booking.json"
	CreatedBooking Name = "created_booking.json"
	BookingIDs     Name = "booking_ids.json"
	Token          Name = "token.json"
)

const baseURL = "https://schemas.booker.local/"

var ErrSchemaViolation = errors.New("schema violation")

//go:embed schemas/*.json
var schemas embed.FS

//nolint:gochecknoglobals
var compile = sync.OnceValues(func() (map[Name]*sjsonschema.Schema, error) {
	names := []Name{Booking, CreatedBooking, BookingIDs, Token}

	c := sjsonschema.NewCompiler()

	for _, name := range names {
		data, err := schemas.ReadFile("schemas/" + string(name))
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", name, err)
		}

		doc, err := sjsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing schema %s: %w", name, err)
		}

		if err := c.AddResource(baseURL+string(name), doc); err != nil {
			return nil, fmt.Errorf("adding schema %s: %w", name, err)
		}
	}

	compiled := make(map[Name]*sjsonschema.Schema, len(names))

	for _, name := range names {
		s, err := c.Compile(baseURL + string(name))
		if err != nil {
			return nil, fmt.Errorf("compiling schema %s: %w", name, err)
		}

		compiled[name] = s
	}

	return compiled, nil
})

// Validate checks a JSON document against the named schema.
func Validate(name Name, body []byte) error {
	compiled, err := compile()
	if err != nil {
		return err
	}

	s, ok := compiled[name]
	if !ok {
		return fmt.Errorf("%w: no schema named %s", ErrSchemaViolation, name)
	}

	return validate(s, string(name), body)
}

func validate(s *sjsonschema.Schema, name string, body []byte) error {
	doc, err := sjsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: body is not JSON: %w", ErrSchemaViolation, name, err)
	}

	if err := s.Validate(doc); err != nil {
		var verr *sjsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s: %s", ErrSchemaViolation, name, describe(verr))
		}

		return fmt.Errorf("%w: %s: %w", ErrSchemaViolation, name, err)
	}

	return nil
}

// describe flattens the validation error tree into one line per leaf.
func describe(err *sjsonschema.ValidationError) string {
	var lines []string

	var walk func(e *sjsonschema.ValidationError)

	walk = func(e *sjsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			lines = append(lines, fmt.Sprintf("/%s: %v", strings.Join(e.InstanceLocation, "/"), e.ErrorKind))
			return
		}

		for _, cause := range e.Causes {
			walk(cause)
		}
	}

	walk(err)

	return strings.Join(lines, "; ")
}
