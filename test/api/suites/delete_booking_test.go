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
	"github.com/nscaledev/booker-conformance/test/api"
)

var _ = Describe("Booking Deletion", func() {
	Context("When deleting a booking", func() {
		var id int

		BeforeEach(func() {
			id = api.CreateBookingWithCleanup(ctx, client, booking.NewBookingBuilder().Build())
		})

		remove := func(call api.Call) *api.Response {
			GinkgoHelper()

			call.Method = http.MethodDelete
			call.Path = client.Endpoints().Booking()

			if call.PathParams == nil {
				call.PathParams = map[string]any{"id": id}
			}

			resp, err := client.Do(ctx, specs.RequestSpec(), call)
			Expect(err).NotTo(HaveOccurred())

			return resp
		}

		Describe("Given a valid token", func() {
			It("should answer 201 Created and remove the booking", func() {
				resp := remove(api.Call{Cookies: api.WithToken(api.GetAuthTokenOrFail(ctx, client))})

				// Then: Created rather than the idiomatic 200 or 204
				api.ExpectStatus(resp, http.StatusCreated)
				api.ExpectDeviation(validator, resp)

				// And: The booking is gone
				get, err := client.Do(ctx, specs.RequestSpec(), api.Call{
					Method:     http.MethodGet,
					Path:       client.Endpoints().Booking(),
					PathParams: map[string]any{"id": id},
				})
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(get, http.StatusNotFound)
			})
		})

		Describe("Given basic authentication", func() {
			It("should answer 201 Created", func() {
				resp := remove(api.Call{BasicAuth: &api.BasicAuth{Username: config.Username, Password: config.Password}})

				api.ExpectStatus(resp, http.StatusCreated)
			})
		})

		Describe("Given missing or invalid credentials", func() {
			It("should answer 403 without credentials", func() {
				resp := remove(api.Call{})

				api.ExpectStatus(resp, http.StatusForbidden)
				api.ExpectContract(validator, resp)
			})

			It("should answer 403 with a wrong password", func() {
				api.ExpectStatus(remove(api.Call{BasicAuth: &api.BasicAuth{Username: config.Username, Password: "wrong"}}), http.StatusForbidden)
			})

			It("should keep the booking", func() {
				remove(api.Call{Cookies: api.WithToken("invalidtoken123")})

				_, err := client.GetBooking(ctx, id)
				Expect(err).NotTo(HaveOccurred())
			})
		})

		Describe("Given the booking does not exist", func() {
			It("should answer 405", func() {
				resp := remove(api.Call{
					PathParams: map[string]any{"id": missingBookingID},
					Cookies:    api.WithToken(api.GetAuthTokenOrFail(ctx, client)),
				})

				// Then: Method Not Allowed rather than the idiomatic 404
				api.ExpectStatus(resp, http.StatusMethodNotAllowed)
				api.ExpectDeviation(validator, resp)
			})
		})
	})

	Context("When deleting the collection", func() {
		It("should answer 404", func() {
			resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
				Method:  http.MethodDelete,
				Path:    client.Endpoints().Bookings(),
				Cookies: api.WithToken(api.GetAuthTokenOrFail(ctx, client)),
			})
			Expect(err).NotTo(HaveOccurred())

			// Then: Not Found rather than the idiomatic 405
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			api.ExpectDeviation(validator, resp)
		})
	})
})
