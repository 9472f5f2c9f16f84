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
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// WithExtraField serializes the booking with an additional top level field
// the service does not know about.
func WithExtraField(b Booking, name string, value any) ([]byte, error) {
	doc, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshaling booking: %w", err)
	}

	patch, err := json.Marshal(map[string]any{name: value})
	if err != nil {
		return nil, fmt.Errorf("marshaling extra field: %w", err)
	}

	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("merging extra field: %w", err)
	}

	return out, nil
}

// MergePatch applies an RFC 7386 merge patch to the booking, which is what
// the service does on a partial update.
func MergePatch(b Booking, patch any) (Booking, error) {
	doc, err := json.Marshal(b)
	if err != nil {
		return Booking{}, fmt.Errorf("marshaling booking: %w", err)
	}

	patchData, err := json.Marshal(patch)
	if err != nil {
		return Booking{}, fmt.Errorf("marshaling patch: %w", err)
	}

	merged, err := jsonpatch.MergePatch(doc, patchData)
	if err != nil {
		return Booking{}, fmt.Errorf("applying patch: %w", err)
	}

	var out Booking
	if err := json.Unmarshal(merged, &out); err != nil {
		return Booking{}, fmt.Errorf("unmarshaling patched booking: %w", err)
	}

	return out, nil
}
