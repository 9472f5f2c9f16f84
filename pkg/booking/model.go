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

// Package booking models the Booking resource exposed by the service under
// test, along with the fixture builder used to generate request payloads.
package booking

import (
	"encoding/xml"
)

// BookingDates holds the stay dates, both formatted as YYYY-MM-DD.
// No ordering is enforced between the two.
type BookingDates struct {
	Checkin  *string `json:"checkin" xml:"checkin,omitempty" yaml:"checkin"`
	Checkout *string `json:"checkout" xml:"checkout,omitempty" yaml:"checkout"`
}

// Booking is the wire representation of a booking.  Names and dates are
// pointers so that a JSON null can be sent on purpose.
//
//nolint:tagliatelle
type Booking struct {
	XMLName         xml.Name     `json:"-" xml:"booking" yaml:"-"`
	Firstname       *string      `json:"firstname" xml:"firstname,omitempty" yaml:"firstname"`
	Lastname        *string      `json:"lastname" xml:"lastname,omitempty" yaml:"lastname"`
	TotalPrice      int          `json:"totalprice" xml:"totalprice" yaml:"totalprice"`
	DepositPaid     bool         `json:"depositpaid" xml:"depositpaid" yaml:"depositpaid"`
	BookingDates    BookingDates `json:"bookingdates" xml:"bookingdates" yaml:"bookingdates"`
	AdditionalNeeds string       `json:"additionalneeds" xml:"additionalneeds" yaml:"additionalneeds"`
}

// CreatedBooking is returned when a booking is created.
//
//nolint:tagliatelle
type CreatedBooking struct {
	BookingID int     `json:"bookingid"`
	Booking   Booking `json:"booking"`
}

// BookingID is a single entry in the booking collection.
//
//nolint:tagliatelle
type BookingID struct {
	BookingID int `json:"bookingid"`
}

// Credentials are exchanged for a session token.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the authentication response.  The service answers bad
// credentials with a reason rather than an error status.
type Token struct {
	Token  *string `json:"token,omitempty"`
	Reason string  `json:"reason,omitempty"`
}
