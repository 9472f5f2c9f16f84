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

package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oapi-codegen/runtime"
)

var ErrMissingPathParameter = errors.New("missing path parameter")

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Health endpoint.
func (e *Endpoints) Ping() string {
	return "/ping"
}

// Authentication endpoint.
func (e *Endpoints) Auth() string {
	return "/auth"
}

// Booking endpoints.
func (e *Endpoints) Bookings() string {
	return "/booking"
}

func (e *Endpoints) Booking() string {
	return "/booking/{id}"
}

// Expand replaces {name} segments of a path template with styled values.
func (e *Endpoints) Expand(template string, params map[string]any) (string, error) {
	var out strings.Builder

	rest := template

	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			out.WriteString(rest)
			break
		}

		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			out.WriteString(rest)
			break
		}

		end += start

		name := rest[start+1 : end]

		value, ok := params[name]
		if !ok {
			return "", fmt.Errorf("%w: %s in %s", ErrMissingPathParameter, name, template)
		}

		styled, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
		if err != nil {
			return "", fmt.Errorf("styling path parameter %s: %w", name, err)
		}

		out.WriteString(rest[:start])
		out.WriteString(styled)

		rest = rest[end+1:]
	}

	return out.String(), nil
}
