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
	"github.com/google/uuid"

	"k8s.io/utils/ptr"
)

// GenerateTestID returns a unique marker for data created by a test run.
func GenerateTestID() string {
	return "test-" + uuid.NewString()[:8]
}

// BookingPayloadBuilder builds booking payloads for testing.
type BookingPayloadBuilder struct {
	payload Booking
}

// NewBookingPayload creates a new booking payload builder with defaults.
func NewBookingPayload() *BookingPayloadBuilder {
	return &BookingPayloadBuilder{
		payload: Booking{
			FirstName:   "Jim",
			LastName:    "Brown",
			TotalPrice:  111,
			DepositPaid: true,
			BookingDates: BookingDates{
				Checkin:  "2018-01-01",
				Checkout: "2019-01-01",
			},
			AdditionalNeeds: "Breakfast",
		},
	}
}

func (b *BookingPayloadBuilder) WithFirstName(name string) *BookingPayloadBuilder {
	b.payload.FirstName = name
	return b
}

func (b *BookingPayloadBuilder) WithLastName(name string) *BookingPayloadBuilder {
	b.payload.LastName = name
	return b
}

func (b *BookingPayloadBuilder) WithTotalPrice(price int) *BookingPayloadBuilder {
	b.payload.TotalPrice = price
	return b
}

func (b *BookingPayloadBuilder) WithDepositPaid(paid bool) *BookingPayloadBuilder {
	b.payload.DepositPaid = paid
	return b
}

// WithDates sets check-in and check-out, both formatted YYYY-MM-DD.
func (b *BookingPayloadBuilder) WithDates(checkin, checkout string) *BookingPayloadBuilder {
	b.payload.BookingDates = BookingDates{
		Checkin:  checkin,
		Checkout: checkout,
	}

	return b
}

func (b *BookingPayloadBuilder) WithAdditionalNeeds(needs string) *BookingPayloadBuilder {
	b.payload.AdditionalNeeds = needs
	return b
}

// WithTestMarker tags the booking so data left behind by a run can be found.
func (b *BookingPayloadBuilder) WithTestMarker() *BookingPayloadBuilder {
	b.payload.AdditionalNeeds = GenerateTestID()
	return b
}

// Build returns the completed booking payload.
func (b *BookingPayloadBuilder) Build() Booking {
	return b.payload
}

// PartialBookingBuilder builds partial update payloads, unset fields are omitted.
type PartialBookingBuilder struct {
	payload PartialBooking
}

func NewPartialBookingPayload() *PartialBookingBuilder {
	return &PartialBookingBuilder{}
}

func (b *PartialBookingBuilder) WithFirstName(name string) *PartialBookingBuilder {
	b.payload.FirstName = ptr.To(name)
	return b
}

func (b *PartialBookingBuilder) WithLastName(name string) *PartialBookingBuilder {
	b.payload.LastName = ptr.To(name)
	return b
}

func (b *PartialBookingBuilder) WithTotalPrice(price int) *PartialBookingBuilder {
	b.payload.TotalPrice = ptr.To(price)
	return b
}

func (b *PartialBookingBuilder) WithDepositPaid(paid bool) *PartialBookingBuilder {
	b.payload.DepositPaid = ptr.To(paid)
	return b
}

func (b *PartialBookingBuilder) WithDates(checkin, checkout string) *PartialBookingBuilder {
	b.payload.BookingDates = &BookingDates{
		Checkin:  checkin,
		Checkout: checkout,
	}

	return b
}

func (b *PartialBookingBuilder) WithAdditionalNeeds(needs string) *PartialBookingBuilder {
	b.payload.AdditionalNeeds = ptr.To(needs)
	return b
}

func (b *PartialBookingBuilder) Build() PartialBooking {
	return b.payload
}
