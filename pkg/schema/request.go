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

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/nscaledev/booker-conformance/pkg/booking"
)

const requestSchemaID = baseURL + "booking-request.json"

// RequestSchema reflects a JSON schema for booking request payloads from
// the Go model.
func RequestSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)

	s := r.Reflect(&booking.Booking{})
	s.ID = requestSchemaID
	s.Title = "Booking request"
	s.Description = "Payload accepted when creating or replacing a booking"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal request schema: %w", err)
	}

	return data, nil
}

//nolint:gochecknoglobals
var compileRequest = sync.OnceValues(func() (*sjsonschema.Schema, error) {
	data, err := RequestSchema()
	if err != nil {
		return nil, err
	}

	doc, err := sjsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing request schema: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource(requestSchemaID, doc); err != nil {
		return nil, fmt.Errorf("adding request schema: %w", err)
	}

	return c.Compile(requestSchemaID)
})

// ValidateRequest checks a booking payload is one the service will accept.
// Fixtures carrying deliberate nulls fail it.
func ValidateRequest(b booking.Booking) error {
	s, err := compileRequest()
	if err != nil {
		return err
	}

	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling booking: %w", err)
	}

	return validate(s, "booking-request", body)
}
