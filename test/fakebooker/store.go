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

package fakebooker

import (
	"fmt"
	"slices"
	"sync"
)

// booking is the wire representation the fake stores and serves.  It is kept
// separate from the client's types so the two can disagree.
type booking struct {
	FirstName       string       `json:"firstname"`
	LastName        string       `json:"lastname"`
	TotalPrice      int          `json:"totalprice"`
	DepositPaid     bool         `json:"depositpaid"`
	BookingDates    bookingDates `json:"bookingdates"`
	AdditionalNeeds string       `json:"additionalneeds,omitempty"`
}

type bookingDates struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

type partialBooking struct {
	FirstName       *string       `json:"firstname"`
	LastName        *string       `json:"lastname"`
	TotalPrice      *int          `json:"totalprice"`
	DepositPaid     *bool         `json:"depositpaid"`
	BookingDates    *bookingDates `json:"bookingdates"`
	AdditionalNeeds *string       `json:"additionalneeds"`
}

func (b *booking) apply(p *partialBooking) {
	if p.FirstName != nil {
		b.FirstName = *p.FirstName
	}

	if p.LastName != nil {
		b.LastName = *p.LastName
	}

	if p.TotalPrice != nil {
		b.TotalPrice = *p.TotalPrice
	}

	if p.DepositPaid != nil {
		b.DepositPaid = *p.DepositPaid
	}

	if p.BookingDates != nil {
		b.BookingDates = *p.BookingDates
	}

	if p.AdditionalNeeds != nil {
		b.AdditionalNeeds = *p.AdditionalNeeds
	}
}

type filter struct {
	FirstName *string
	LastName  *string
	Checkin   *string
	Checkout  *string
}

func (f *filter) matches(b *booking) bool {
	if f.FirstName != nil && *f.FirstName != b.FirstName {
		return false
	}

	if f.LastName != nil && *f.LastName != b.LastName {
		return false
	}

	// Dates are YYYY-MM-DD so compare lexically.
	if f.Checkin != nil && b.BookingDates.Checkin < *f.Checkin {
		return false
	}

	if f.Checkout != nil && b.BookingDates.Checkout > *f.Checkout {
		return false
	}

	return true
}

// store holds bookings by ID, IDs are never reused.
type store struct {
	lock     sync.Mutex
	bookings map[int]booking
	nextID   int
}

func newStore(seed []booking) *store {
	s := &store{
		bookings: map[int]booking{},
		nextID:   1,
	}

	for _, b := range seed {
		s.create(b)
	}

	return s
}

func (s *store) list(f *filter) []int {
	s.lock.Lock()
	defer s.lock.Unlock()

	ids := make([]int, 0, len(s.bookings))

	for id, b := range s.bookings {
		if f.matches(&b) {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	return ids
}

func (s *store) get(id int) (booking, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	b, ok := s.bookings[id]

	return b, ok
}

func (s *store) create(b booking) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextID
	s.nextID++

	s.bookings[id] = b

	return id
}

func (s *store) replace(id int, b booking) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return false
	}

	s.bookings[id] = b

	return true
}

func (s *store) patch(id int, p *partialBooking) (booking, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return booking{}, false
	}

	b.apply(p)
	s.bookings[id] = b

	return b, true
}

func (s *store) delete(id int) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return false
	}

	delete(s.bookings, id)

	return true
}

var (
	seedFirstNames = []string{"John", "Sally", "Jim", "Mark", "Susan", "Eric", "Mary"}
	seedLastNames  = []string{"Doe", "Brown", "Smith", "Jones", "Wilson", "Ericsson", "Jackson"}
)

// DefaultSeedSize covers the booking IDs the suites use by default.
const DefaultSeedSize = 60

// defaultSeed returns size deterministic bookings, the first is always John Doe.
func defaultSeed(size int) []booking {
	seed := make([]booking, size)

	for i := range seed {
		seed[i] = booking{
			FirstName:   seedFirstNames[i%len(seedFirstNames)],
			LastName:    seedLastNames[i%len(seedLastNames)],
			TotalPrice:  100 + i*7,
			DepositPaid: i%2 == 0,
			BookingDates: bookingDates{
				Checkin:  fmt.Sprintf("2018-%02d-01", i%12+1),
				Checkout: fmt.Sprintf("2019-%02d-01", i%12+1),
			},
			AdditionalNeeds: "Breakfast",
		}
	}

	return seed
}
