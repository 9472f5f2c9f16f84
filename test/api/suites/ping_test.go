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

//nolint:testpackage,revive // test package in suites is standard for these tests
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booker-conformance/test/api"
)

var _ = Describe("Health Check", func() {
	Context("When pinging the service", func() {
		It("should answer 201 Created", func() {
			// Given: A running service
			// When: I ping it
			resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
				Method: http.MethodGet,
				Path:   client.Endpoints().Ping(),
			})
			Expect(err).NotTo(HaveOccurred())

			// Then: The service reports itself with a 201, not the idiomatic 200
			api.ExpectStatus(resp, http.StatusCreated)
			api.ExpectVerified(resp, specs.ResponseSpec().WithStatus(http.StatusCreated).WithContentType(api.ContentTypeText))
			api.ExpectDeviation(validator, resp)
		})
	})
})
