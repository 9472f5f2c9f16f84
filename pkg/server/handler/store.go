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

package handler

import (
	"errors"
	"slices"
	"sync"

	"github.com/nscaledev/booker-conformance/pkg/booking"
)

var ErrNotFound = errors.New("booking not found")

// Filter restricts a listing.  Empty fields match everything.
type Filter struct {
	Firstname string
	Lastname  string
	Checkin   string
	Checkout  string
}

func matches(want string, got *string) bool {
	if want == "" {
		return true
	}

	return got != nil && *got == want
}

func (f Filter) matches(b booking.Booking) bool {
	return matches(f.Firstname, b.Firstname) &&
		matches(f.Lastname, b.Lastname) &&
		matches(f.Checkin, b.BookingDates.Checkin) &&
		matches(f.Checkout, b.BookingDates.Checkout)
}

// Store is an in-memory booking table.
type Store struct {
	lock     sync.Mutex
	bookings map[int]booking.Booking
	nextID   int
}

func NewStore() *Store {
	return &Store{
		bookings: map[int]booking.Booking{},
		nextID:   1,
	}
}

func (s *Store) Create(b booking.Booking) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextID
	s.nextID++

	s.bookings[id] = b

	return id
}

func (s *Store) Get(id int) (booking.Booking, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return booking.Booking{}, ErrNotFound
	}

	return b, nil
}

func (s *Store) Replace(id int, b booking.Booking) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}

	s.bookings[id] = b

	return nil
}

func (s *Store) Delete(id int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}

	delete(s.bookings, id)

	return nil
}

// List returns matching IDs in ascending order.
func (s *Store) List(filter Filter) []int {
	s.lock.Lock()
	defer s.lock.Unlock()

	ids := make([]int, 0, len(s.bookings))

	for id, b := range s.bookings {
		if filter.matches(b) {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	return ids
}
