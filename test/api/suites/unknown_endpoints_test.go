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

var _ = Describe("Unknown Endpoints", func() {
	DescribeTable("should answer 404",
		func(method, path string) {
			resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
				Method: method,
				Path:   path,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		},
		Entry("unknown resource", http.MethodGet, "/unknown"),
		Entry("nested unknown resource", http.MethodGet, "/booking/1/rooms"),
		Entry("unrouted method", http.MethodPost, "/ping"),
	)
})
