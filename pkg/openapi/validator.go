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

// Package openapi holds the OpenAPI description of the booking service as it
// is observed to behave, and validates exchanges against it.
package openapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	ErrUndocumentedOperation = errors.New("operation not documented")
	ErrUndocumentedStatus    = errors.New("response status not documented")
	ErrUndocumentedMediaType = errors.New("response media type not documented")
	ErrContractViolation     = errors.New("response body violates contract")
)

//go:embed booker.yaml
var specData []byte

// Validator checks responses against the observed service contract.
type Validator struct {
	doc *openapi3.T
}

// NewValidator loads and validates the embedded description.
func NewValidator(ctx context.Context) (*Validator, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(specData)
	if err != nil {
		return nil, fmt.Errorf("loading openapi description: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating openapi description: %w", err)
	}

	return &Validator{
		doc: doc,
	}, nil
}

// Document exposes the loaded description.
func (v *Validator) Document() *openapi3.T {
	return v.doc
}

// ValidateResponse checks the status is documented for the operation, the
// media type is documented for the status, and that JSON bodies match the
// documented schema.  The path is the route template e.g. /booking/{id}.
func (v *Validator) ValidateResponse(method, path string, status int, contentType string, body []byte) error {
	item := v.doc.Paths.Find(path)
	if item == nil {
		return fmt.Errorf("%w: %s %s", ErrUndocumentedOperation, method, path)
	}

	operation := item.GetOperation(strings.ToUpper(method))
	if operation == nil {
		return fmt.Errorf("%w: %s %s", ErrUndocumentedOperation, method, path)
	}

	response := operation.Responses.Status(status)
	if response == nil || response.Value == nil {
		return fmt.Errorf("%w: %s %s returned %d", ErrUndocumentedStatus, method, path, status)
	}

	if len(response.Value.Content) == 0 {
		return nil
	}

	media := response.Value.Content.Get(contentType)
	if media == nil {
		return fmt.Errorf("%w: %s %s returned %d with %q", ErrUndocumentedMediaType, method, path, status, contentType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUndocumentedMediaType, err)
	}

	if mediaType != "application/json" || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrContractViolation, method, path, err)
	}

	if err := media.Schema.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrContractViolation, method, path, err)
	}

	return nil
}

// IsDeviation reports whether the documented status differs from what an
// idiomatic implementation would return, as flagged in the description.
func (v *Validator) IsDeviation(method, path string, status int) bool {
	item := v.doc.Paths.Find(path)
	if item == nil {
		return false
	}

	operation := item.GetOperation(strings.ToUpper(method))
	if operation == nil {
		return false
	}

	response := operation.Responses.Status(status)
	if response == nil || response.Value == nil || response.Value.Description == nil {
		return false
	}

	return strings.Contains(*response.Value.Description, "Idiomatically")
}

// Deviations lists every documented deviation as "METHOD path status".
func (v *Validator) Deviations() []string {
	var out []string

	for _, path := range v.doc.Paths.InMatchingOrder() {
		item := v.doc.Paths.Value(path)

		for method := range item.Operations() {
			for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusTeapot, http.StatusInternalServerError} {
				if v.IsDeviation(method, path, status) {
					out = append(out, fmt.Sprintf("%s %s %d", method, path, status))
				}
			}
		}
	}

	slices.Sort(out)

	return out
}
