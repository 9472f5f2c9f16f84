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

	"github.com/nscaledev/booker-conformance/pkg/booking"
	"github.com/nscaledev/booker-conformance/pkg/schema"
	"github.com/nscaledev/booker-conformance/test/api"
)

var _ = Describe("Booking Retrieval", func() {
	Context("When retrieving a booking", func() {
		Describe("Given the booking exists", func() {
			var (
				expected booking.Booking
				id       int
			)

			BeforeEach(func() {
				expected = booking.NewBookingBuilder().Build()
				id = api.CreateBookingWithCleanup(ctx, client, expected)
			})

			It("should return it as JSON", func() {
				resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
					Method:     http.MethodGet,
					Path:       client.Endpoints().Booking(),
					PathParams: map[string]any{"id": id},
				})
				Expect(err).NotTo(HaveOccurred())

				api.ExpectVerified(resp, specs.ResponseSpec())
				api.ExpectSchema(resp, schema.Booking)
				api.ExpectContract(validator, resp)

				var got booking.Booking
				Expect(resp.JSON(&got)).To(Succeed())
				api.VerifyBooking(got, expected)
			})

			It("should return XML labelled as HTML", func() {
				resp, err := client.Do(ctx, specs.RequestSpecXML(), api.Call{
					Method:     http.MethodGet,
					Path:       client.Endpoints().Booking(),
					PathParams: map[string]any{"id": id},
				})
				Expect(err).NotTo(HaveOccurred())

				// Then: The body is XML but the content type is text/html
				Expect(resp.Verify(specs.ResponseSpecXML())).To(MatchError(api.ErrUnexpectedContentType))
				api.ExpectVerified(resp, specs.ResponseSpecXML().WithContentType(api.ContentTypeHTML))
				api.ExpectContract(validator, resp)

				var got booking.Booking
				Expect(resp.XML(&got)).To(Succeed())
				Expect(got.Firstname).To(Equal(expected.Firstname))
				Expect(got.Lastname).To(Equal(expected.Lastname))
				Expect(got.TotalPrice).To(Equal(expected.TotalPrice))
			})
		})

		Describe("Given the booking does not exist", func() {
			It("should answer 404 Not Found", func() {
				resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
					Method:     http.MethodGet,
					Path:       client.Endpoints().Booking(),
					PathParams: map[string]any{"id": missingBookingID},
				})
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusNotFound)
				api.ExpectContract(validator, resp)
			})

			It("should answer 404 for a non numeric ID", func() {
				resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
					Method:     http.MethodGet,
					Path:       client.Endpoints().Booking(),
					PathParams: map[string]any{"id": "abc"},
				})
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusNotFound)
			})
		})
	})
})
