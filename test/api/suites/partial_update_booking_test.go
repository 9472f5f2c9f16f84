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

	"k8s.io/utils/ptr"
)

var _ = Describe("Booking Partial Update", func() {
	Context("When patching a booking", func() {
		var (
			id       int
			original booking.Booking
		)

		BeforeEach(func() {
			original = booking.NewBookingBuilder().Build()
			id = api.CreateBookingWithCleanup(ctx, client, original)
		})

		patch := func(body any, call api.Call) *api.Response {
			GinkgoHelper()

			call.Method = http.MethodPatch
			call.Path = client.Endpoints().Booking()
			call.Body = body

			if call.PathParams == nil {
				call.PathParams = map[string]any{"id": id}
			}

			resp, err := client.Do(ctx, specs.RequestSpec(), call)
			Expect(err).NotTo(HaveOccurred())

			return resp
		}

		Describe("Given a valid token", func() {
			DescribeTable("should merge the patch into the booking",
				func(body map[string]any) {
					resp := patch(body, api.Call{Cookies: api.WithToken(api.GetAuthTokenOrFail(ctx, client))})

					api.ExpectVerified(resp, specs.ResponseSpec())
					api.ExpectSchema(resp, schema.Booking)
					api.ExpectContract(validator, resp)

					expected, err := booking.MergePatch(original, body)
					Expect(err).NotTo(HaveOccurred())

					var got booking.Booking
					Expect(resp.JSON(&got)).To(Succeed())
					api.VerifyBooking(got, expected)
				},
				Entry("firstname", map[string]any{"firstname": "Kenyon"}),
				Entry("firstname and lastname", map[string]any{"firstname": "Kenyon", "lastname": "Beltran"}),
				Entry("price and deposit", map[string]any{"totalprice": 555, "depositpaid": true}),
				Entry("dates", map[string]any{"bookingdates": map[string]any{"checkin": "2024-02-29", "checkout": "2024-03-01"}}),
				Entry("additional needs", map[string]any{"additionalneeds": "Late checkout"}),
			)

			It("should only touch the patched field", func() {
				resp := patch(map[string]any{"lastname": "Beltran"}, api.Call{BasicAuth: &api.BasicAuth{Username: config.Username, Password: config.Password}})

				api.ExpectVerified(resp, specs.ResponseSpec())

				stored, err := client.GetBooking(ctx, id)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored.Lastname).To(Equal(ptr.To("Beltran")))
				Expect(stored.Firstname).To(Equal(original.Firstname))
				Expect(stored.TotalPrice).To(Equal(original.TotalPrice))
				Expect(stored.BookingDates).To(Equal(original.BookingDates))
			})
		})

		Describe("Given missing or invalid credentials", func() {
			It("should answer 403 without credentials", func() {
				resp := patch(map[string]any{"firstname": "Kenyon"}, api.Call{})

				api.ExpectStatus(resp, http.StatusForbidden)
				api.ExpectContract(validator, resp)
			})

			It("should answer 403 with an invalid token", func() {
				api.ExpectStatus(patch(map[string]any{"firstname": "Kenyon"}, api.Call{Cookies: api.WithToken("invalidtoken123")}), http.StatusForbidden)
			})
		})

		Describe("Given the booking does not exist", func() {
			It("should answer 404", func() {
				resp := patch(map[string]any{"firstname": "Kenyon"}, api.Call{
					PathParams: map[string]any{"id": missingBookingID},
					Cookies:    api.WithToken(api.GetAuthTokenOrFail(ctx, client)),
				})

				api.ExpectStatus(resp, http.StatusNotFound)
				api.ExpectContract(validator, resp)
			})
		})
	})
})
