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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/nscaledev/booker-conformance/pkg/booking"
	"github.com/nscaledev/booker-conformance/pkg/openapi"
	"github.com/nscaledev/booker-conformance/pkg/schema"
)

// CreateBookingWithCleanup creates a booking and registers its deletion.
// Bookings the test deleted itself are tolerated at cleanup.
func CreateBookingWithCleanup(ctx context.Context, client *APIClient, b booking.Booking) int {
	GinkgoHelper()

	id, err := client.CreateBooking(ctx, b)
	Expect(err).NotTo(HaveOccurred())
	Expect(id).To(BeNumerically(">", 0))

	DeferCleanup(func(ctx SpecContext) {
		if err := client.DeleteBooking(ctx, id); err != nil {
			GinkgoWriter.Printf("Cleanup of booking %d skipped: %v\n", id, err)
		}
	})

	return id
}

// CreateBookingsWithCleanup creates every booking and returns the IDs in order.
func CreateBookingsWithCleanup(ctx context.Context, client *APIClient, bookings ...booking.Booking) []int {
	GinkgoHelper()

	ids := make([]int, len(bookings))

	for i := range bookings {
		ids[i] = CreateBookingWithCleanup(ctx, client, bookings[i])
	}

	return ids
}

// GetAuthTokenOrFail authenticates with the configured credentials.
func GetAuthTokenOrFail(ctx context.Context, client *APIClient) string {
	GinkgoHelper()

	token, err := client.GetDefaultAuthToken(ctx)
	Expect(err).NotTo(HaveOccurred())
	Expect(token).To(MatchRegexp(`^[a-zA-Z0-9]{15,}$`))

	return token
}

// ExpectStatus checks the status code and that the body is the bare status text.
func ExpectStatus(resp *Response, status int) {
	GinkgoHelper()

	Expect(resp.StatusCode).To(Equal(status), "unexpected status, trace ID %s", resp.TraceID)
	Expect(resp.Text()).To(Equal(http.StatusText(status)))
}

// ExpectVerified checks the response against a response spec.
func ExpectVerified(resp *Response, spec ResponseSpec) {
	GinkgoHelper()

	Expect(resp.Verify(spec)).To(Succeed())
}

// ExpectSchema validates a JSON body against a named schema.
func ExpectSchema(resp *Response, name schema.Name) {
	GinkgoHelper()

	Expect(schema.Validate(name, resp.Body)).To(Succeed(), "trace ID %s", resp.TraceID)
}

// ExpectContract checks the response is one the service is documented to
// return for the operation.
func ExpectContract(validator *openapi.Validator, resp *Response) {
	GinkgoHelper()

	Expect(validator.ValidateResponse(resp.Method, resp.Path, resp.StatusCode, resp.Header.Get("Content-Type"), resp.Body)).To(Succeed(), "trace ID %s", resp.TraceID)
}

// ExpectDeviation checks the response status is a documented deviation from
// idiomatic behaviour.
func ExpectDeviation(validator *openapi.Validator, resp *Response) {
	GinkgoHelper()

	ExpectContract(validator, resp)
	Expect(validator.IsDeviation(resp.Method, resp.Path, resp.StatusCode)).To(BeTrue(), "%s %s %d is not a documented deviation", resp.Method, resp.Path, resp.StatusCode)
}

// VerifyBooking checks every field of a returned booking.
func VerifyBooking(actual, expected booking.Booking) {
	GinkgoHelper()

	Expect(actual.Firstname).To(Equal(expected.Firstname))
	Expect(actual.Lastname).To(Equal(expected.Lastname))
	Expect(actual.TotalPrice).To(Equal(expected.TotalPrice))
	Expect(actual.DepositPaid).To(Equal(expected.DepositPaid))
	Expect(actual.BookingDates.Checkin).To(Equal(expected.BookingDates.Checkin))
	Expect(actual.BookingDates.Checkout).To(Equal(expected.BookingDates.Checkout))
	Expect(actual.AdditionalNeeds).To(Equal(expected.AdditionalNeeds))
}

func members(s set.Set[int]) []int {
	var out []int

	for id := range s.All() {
		out = append(out, id)
	}

	return out
}

// ExpectIDsInclude checks every wanted ID is present.
func ExpectIDsInclude(ids []int, wanted ...int) {
	GinkgoHelper()

	missing := set.New[int](wanted...).Difference(set.New[int](ids...))
	Expect(members(missing)).To(BeEmpty(), "booking IDs missing from listing")
}

// ExpectIDsExactly checks the listing holds the wanted IDs and nothing else.
func ExpectIDsExactly(ids []int, wanted ...int) {
	GinkgoHelper()

	Expect(ids).To(ConsistOf(wanted), "booking IDs in listing")
}

// ExpectIDsExclude checks no unwanted ID is present.
func ExpectIDsExclude(ids []int, unwanted ...int) {
	GinkgoHelper()

	present := set.New[int](unwanted...).Intersection(set.New[int](ids...))
	Expect(members(present)).To(BeEmpty(), "unexpected booking IDs in listing")
}
