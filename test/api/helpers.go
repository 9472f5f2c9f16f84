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

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nscaledev/booker-conformance/pkg/booking"
)

// TokenCookie is the name of the cookie that carries a session token.
const TokenCookie = "token"

// WithToken returns the cookies to authenticate a call with a session token.
func WithToken(token string) []*http.Cookie {
	return []*http.Cookie{
		{
			Name:  TokenCookie,
			Value: token,
		},
	}
}

// GetAuthToken exchanges credentials for a fresh session token.  The service
// answers bad credentials with a 200 and a reason, that yields ErrMissingToken.
func (c *APIClient) GetAuthToken(ctx context.Context, username, password string) (string, error) {
	call := Call{
		Method: http.MethodPost,
		Path:   c.endpoints.Auth(),
		Body: &booking.Credentials{
			Username: username,
			Password: password,
		},
	}

	resp, err := c.DoAndVerify(ctx, c.specs.RequestSpec(), c.specs.ResponseSpec(), call)
	if err != nil {
		return "", fmt.Errorf("authenticating: %w", err)
	}

	var token booking.Token
	if err := resp.JSON(&token); err != nil {
		return "", err
	}

	if token.Token == nil || *token.Token == "" {
		return "", fmt.Errorf("%w: reason %q (trace ID: %s)", ErrMissingToken, token.Reason, resp.TraceID)
	}

	return *token.Token, nil
}

// GetDefaultAuthToken authenticates with the configured credentials.
func (c *APIClient) GetDefaultAuthToken(ctx context.Context) (string, error) {
	return c.GetAuthToken(ctx, c.config.Username, c.config.Password)
}

// CreateBooking creates a booking and returns its ID.
func (c *APIClient) CreateBooking(ctx context.Context, b booking.Booking) (int, error) {
	call := Call{
		Method: http.MethodPost,
		Path:   c.endpoints.Bookings(),
		Body:   b,
	}

	resp, err := c.DoAndVerify(ctx, c.specs.RequestSpec(), c.specs.ResponseSpec(), call)
	if err != nil {
		return 0, fmt.Errorf("creating booking: %w", err)
	}

	var created booking.CreatedBooking
	if err := resp.JSON(&created); err != nil {
		return 0, err
	}

	return created.BookingID, nil
}

// GetBooking reads a booking as JSON.
func (c *APIClient) GetBooking(ctx context.Context, id int) (booking.Booking, error) {
	call := Call{
		Method:     http.MethodGet,
		Path:       c.endpoints.Booking(),
		PathParams: map[string]any{"id": id},
	}

	resp, err := c.DoAndVerify(ctx, c.specs.RequestSpec(), c.specs.ResponseSpec(), call)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("getting booking %d: %w", id, err)
	}

	var b booking.Booking
	if err := resp.JSON(&b); err != nil {
		return booking.Booking{}, err
	}

	return b, nil
}

// ListBookingIDs returns the IDs matching the query filters.
func (c *APIClient) ListBookingIDs(ctx context.Context, query url.Values) ([]int, error) {
	call := Call{
		Method: http.MethodGet,
		Path:   c.endpoints.Bookings(),
		Query:  query,
	}

	resp, err := c.DoAndVerify(ctx, c.specs.RequestSpec(), c.specs.ResponseSpec(), call)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	var entries []booking.BookingID
	if err := resp.JSON(&entries); err != nil {
		return nil, err
	}

	ids := make([]int, len(entries))

	for i, entry := range entries {
		ids[i] = entry.BookingID
	}

	return ids, nil
}

// DeleteBooking removes a booking with a fresh token.  The service answers
// a successful deletion with 201 Created.
func (c *APIClient) DeleteBooking(ctx context.Context, id int) error {
	token, err := c.GetDefaultAuthToken(ctx)
	if err != nil {
		return err
	}

	call := Call{
		Method:     http.MethodDelete,
		Path:       c.endpoints.Booking(),
		PathParams: map[string]any{"id": id},
		Cookies:    WithToken(token),
	}

	expect := c.specs.ResponseSpec().WithStatus(http.StatusCreated).WithContentType(ContentTypeText)

	if _, err := c.DoAndVerify(ctx, c.specs.RequestSpec(), expect, call); err != nil {
		return fmt.Errorf("deleting booking %d: %w", id, err)
	}

	return nil
}
