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
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"k8s.io/utils/ptr"
)

const (
	// DateFormat is the layout of checkin and checkout dates.
	DateFormat = "2006-01-02"

	// MinTotalPrice is the inclusive lower bound of generated prices.
	MinTotalPrice = 100
	// MaxTotalPrice is the exclusive upper bound of generated prices.
	MaxTotalPrice = 1000

	// CheckinPastDays bounds how far in the past a generated checkin falls,
	// today included.
	CheckinPastDays = 10
	// CheckoutFutureDays bounds how far in the future a generated checkout falls.
	CheckoutFutureDays = 30
)

// AdditionalNeeds returns the set additional needs are drawn from.
func AdditionalNeeds() []string {
	return []string{"Breakfast", "Lunch", "Dinner", "Accessible Room", ""}
}

// BookingBuilder generates booking payloads.  Every field is populated with
// a random value when the builder is created, and any of them may be
// replaced before Build is called.  Builders are values: each With method
// returns a modified copy and leaves the receiver untouched.
type BookingBuilder struct {
	firstname       *string
	lastname        *string
	totalPrice      int
	depositPaid     bool
	checkin         *string
	checkout        *string
	additionalNeeds string
}

// NewBookingBuilder creates a builder from a randomly seeded source.
func NewBookingBuilder() BookingBuilder {
	return NewBookingBuilderWithFaker(gofakeit.New(0))
}

// NewBookingBuilderWithSeed creates a builder from a deterministic source,
// so a failing run can be reproduced.
func NewBookingBuilderWithSeed(seed uint64) BookingBuilder {
	return NewBookingBuilderWithFaker(gofakeit.New(seed))
}

// NewBookingBuilderWithFaker creates a builder drawing from the given source.
// The source is only consulted here, the builder does not retain it.
func NewBookingBuilderWithFaker(faker *gofakeit.Faker) BookingBuilder {
	today := time.Now().UTC()

	return BookingBuilder{
		firstname:       ptr.To(faker.FirstName()),
		lastname:        ptr.To(faker.LastName()),
		totalPrice:      faker.Number(MinTotalPrice, MaxTotalPrice-1),
		depositPaid:     faker.Bool(),
		checkin:         ptr.To(today.AddDate(0, 0, -faker.Number(0, CheckinPastDays)).Format(DateFormat)),
		checkout:        ptr.To(today.AddDate(0, 0, faker.Number(1, CheckoutFutureDays)).Format(DateFormat)),
		additionalNeeds: faker.RandomString(AdditionalNeeds()),
	}
}

// WithFirstname sets the guest's first name.
func (b BookingBuilder) WithFirstname(firstname string) BookingBuilder {
	b.firstname = ptr.To(firstname)
	return b
}

// WithNullFirstname sends the first name as null, which the service
// rejects.
func (b BookingBuilder) WithNullFirstname() BookingBuilder {
	b.firstname = nil
	return b
}

// WithLastname sets the guest's last name.
func (b BookingBuilder) WithLastname(lastname string) BookingBuilder {
	b.lastname = ptr.To(lastname)
	return b
}

// WithNullLastname sends the last name as null.
func (b BookingBuilder) WithNullLastname() BookingBuilder {
	b.lastname = nil
	return b
}

// WithCheckin sets the checkin date.  The value is not validated.
func (b BookingBuilder) WithCheckin(checkin string) BookingBuilder {
	b.checkin = ptr.To(checkin)
	return b
}

// WithCheckout sets the checkout date.  The value is not validated.
func (b BookingBuilder) WithCheckout(checkout string) BookingBuilder {
	b.checkout = ptr.To(checkout)
	return b
}

// WithTotalPrice sets the total price.  Out of range values are kept.
func (b BookingBuilder) WithTotalPrice(totalPrice int) BookingBuilder {
	b.totalPrice = totalPrice
	return b
}

// WithDepositPaid sets whether the deposit has been paid.
func (b BookingBuilder) WithDepositPaid(depositPaid bool) BookingBuilder {
	b.depositPaid = depositPaid
	return b
}

// WithAdditionalNeeds sets the free text additional needs.
func (b BookingBuilder) WithAdditionalNeeds(additionalNeeds string) BookingBuilder {
	b.additionalNeeds = additionalNeeds
	return b
}

// Build returns the booking.  The result shares no memory with the builder.
func (b BookingBuilder) Build() Booking {
	return Booking{
		Firstname:   clone(b.firstname),
		Lastname:    clone(b.lastname),
		TotalPrice:  b.totalPrice,
		DepositPaid: b.depositPaid,
		BookingDates: BookingDates{
			Checkin:  clone(b.checkin),
			Checkout: clone(b.checkout),
		},
		AdditionalNeeds: b.additionalNeeds,
	}
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}

	return ptr.To(*s)
}
