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

var _ = Describe("Booking Update", func() {
	Context("When replacing a booking", func() {
		var (
			id          int
			replacement booking.Booking
		)

		BeforeEach(func() {
			id = api.CreateBookingWithCleanup(ctx, client, booking.NewBookingBuilder().Build())
			replacement = booking.NewBookingBuilder().WithFirstname("Xander").WithLastname("Philpotts").Build()
		})

		update := func(call api.Call) *api.Response {
			GinkgoHelper()

			call.Method = http.MethodPut
			call.Path = client.Endpoints().Booking()
			call.Body = replacement

			if call.PathParams == nil {
				call.PathParams = map[string]any{"id": id}
			}

			resp, err := client.Do(ctx, specs.RequestSpec(), call)
			Expect(err).NotTo(HaveOccurred())

			return resp
		}

		Describe("Given a valid token", func() {
			It("should replace the booking", func() {
				resp := update(api.Call{Cookies: api.WithToken(api.GetAuthTokenOrFail(ctx, client))})

				api.ExpectVerified(resp, specs.ResponseSpec())
				api.ExpectSchema(resp, schema.Booking)
				api.ExpectContract(validator, resp)

				var got booking.Booking
				Expect(resp.JSON(&got)).To(Succeed())
				api.VerifyBooking(got, replacement)

				stored, err := client.GetBooking(ctx, id)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyBooking(stored, replacement)
			})
		})

		Describe("Given basic authentication", func() {
			It("should replace the booking", func() {
				resp := update(api.Call{BasicAuth: &api.BasicAuth{Username: config.Username, Password: config.Password}})

				api.ExpectVerified(resp, specs.ResponseSpec())

				var got booking.Booking
				Expect(resp.JSON(&got)).To(Succeed())
				api.VerifyBooking(got, replacement)
			})
		})

		Describe("Given missing or invalid credentials", func() {
			It("should answer 403 without credentials", func() {
				api.ExpectStatus(update(api.Call{}), http.StatusForbidden)
			})

			It("should answer 403 with an invalid token", func() {
				resp := update(api.Call{Cookies: api.WithToken("invalidtoken123")})

				api.ExpectStatus(resp, http.StatusForbidden)
				api.ExpectContract(validator, resp)
			})

			It("should answer 403 with a wrong password", func() {
				api.ExpectStatus(update(api.Call{BasicAuth: &api.BasicAuth{Username: config.Username, Password: "wrong"}}), http.StatusForbidden)
			})

			It("should leave the booking untouched", func() {
				before, err := client.GetBooking(ctx, id)
				Expect(err).NotTo(HaveOccurred())

				update(api.Call{})

				after, err := client.GetBooking(ctx, id)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyBooking(after, before)
			})
		})

		Describe("Given the booking does not exist", func() {
			It("should answer 405", func() {
				resp := update(api.Call{
					PathParams: map[string]any{"id": missingBookingID},
					Cookies:    api.WithToken(api.GetAuthTokenOrFail(ctx, client)),
				})

				// Then: Method Not Allowed rather than the idiomatic 404
				api.ExpectStatus(resp, http.StatusMethodNotAllowed)
				api.ExpectDeviation(validator, resp)
			})
		})
	})
})
