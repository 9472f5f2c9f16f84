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

var _ = Describe("Booking Creation", func() {
	Context("When creating a booking", func() {
		Describe("Given a complete payload", func() {
			It("should return the new ID and echo the booking", func() {
				// Given: A generated booking
				b := booking.NewBookingBuilder().Build()

				// When: I create it
				resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
					Method: http.MethodPost,
					Path:   client.Endpoints().Bookings(),
					Body:   b,
				})
				Expect(err).NotTo(HaveOccurred())

				// Then: The booking is returned with its ID
				api.ExpectVerified(resp, specs.ResponseSpec())
				api.ExpectSchema(resp, schema.CreatedBooking)
				api.ExpectContract(validator, resp)

				var created booking.CreatedBooking
				Expect(resp.JSON(&created)).To(Succeed())
				Expect(created.BookingID).To(BeNumerically(">", 0))
				api.VerifyBooking(created.Booking, b)

				DeferCleanup(func(ctx SpecContext) {
					Expect(client.DeleteBooking(ctx, created.BookingID)).To(Succeed())
				})
			})

			It("should be readable after creation", func() {
				b := booking.NewBookingBuilder().Build()

				id := api.CreateBookingWithCleanup(ctx, client, b)

				got, err := client.GetBooking(ctx, id)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyBooking(got, b)
			})

			It("should accept an XML payload", func() {
				b := booking.NewBookingBuilder().WithFirstname("Xander").Build()

				resp, err := client.Do(ctx, specs.RequestSpecXML(), api.Call{
					Method: http.MethodPost,
					Path:   client.Endpoints().Bookings(),
					Header: http.Header{"Accept": {string(api.ContentTypeJSON)}},
					Body:   b,
				})
				Expect(err).NotTo(HaveOccurred())

				api.ExpectVerified(resp, specs.ResponseSpec())

				var created booking.CreatedBooking
				Expect(resp.JSON(&created)).To(Succeed())
				api.VerifyBooking(created.Booking, b)

				DeferCleanup(func(ctx SpecContext) {
					Expect(client.DeleteBooking(ctx, created.BookingID)).To(Succeed())
				})
			})

			DescribeTable("should create catalog bookings",
				func(name string) {
					b, err := booking.Named(name)
					Expect(err).NotTo(HaveOccurred())

					id := api.CreateBookingWithCleanup(ctx, client, b)

					got, err := client.GetBooking(ctx, id)
					Expect(err).NotTo(HaveOccurred())
					api.VerifyBooking(got, b)
				},
				Entry("sally", "sally"),
				Entry("john", "john"),
				Entry("jane", "jane"),
				Entry("mark", "mark"),
			)

			It("should ignore unknown fields", func() {
				body, err := booking.WithExtraField(booking.NewBookingBuilder().Build(), "loyaltynumber", 12345)
				Expect(err).NotTo(HaveOccurred())

				resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
					Method: http.MethodPost,
					Path:   client.Endpoints().Bookings(),
					Body:   body,
				})
				Expect(err).NotTo(HaveOccurred())

				api.ExpectVerified(resp, specs.ResponseSpec())
				api.ExpectSchema(resp, schema.CreatedBooking)

				var created booking.CreatedBooking
				Expect(resp.JSON(&created)).To(Succeed())

				DeferCleanup(func(ctx SpecContext) {
					Expect(client.DeleteBooking(ctx, created.BookingID)).To(Succeed())
				})
			})
		})

		Describe("Given an invalid payload", func() {
			It("should answer 500 for a null firstname", func() {
				b := booking.NewBookingBuilder().WithNullFirstname().Build()

				resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
					Method: http.MethodPost,
					Path:   client.Endpoints().Bookings(),
					Body:   b,
				})
				Expect(err).NotTo(HaveOccurred())

				// Then: A server error rather than the idiomatic 400
				Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
				api.ExpectDeviation(validator, resp)
			})

			It("should answer 500 for a null lastname", func() {
				resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
					Method: http.MethodPost,
					Path:   client.Endpoints().Bookings(),
					Body:   booking.NewBookingBuilder().WithNullLastname().Build(),
				})
				Expect(err).NotTo(HaveOccurred())

				Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
				api.ExpectDeviation(validator, resp)
			})
		})

		Describe("Given an unsupported Accept header", func() {
			It("should answer 418 I'm a teapot", func() {
				resp, err := client.Do(ctx, specs.RequestSpec(), api.Call{
					Method: http.MethodPost,
					Path:   client.Endpoints().Bookings(),
					Header: http.Header{"Accept": {"application/invalid"}},
					Body:   booking.NewBookingBuilder().Build(),
				})
				Expect(err).NotTo(HaveOccurred())

				// Then: A teapot rather than the idiomatic 406
				api.ExpectStatus(resp, http.StatusTeapot)
				api.ExpectDeviation(validator, resp)
			})
		})
	})
})
