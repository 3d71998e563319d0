//go:build integration

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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booker-api-tests/test/api"
)

var _ = Describe("Booking Modification", func() {
	Context("When creating a booking", func() {
		Describe("Given a complete payload", func() {
			It("should echo the booking under its new ID", func() {
				payload := api.NewBookingPayload().WithTestMarker().Build()

				created, bookingID := api.CreateBookingWithCleanup(client, ctx, payload)

				Expect(created.BookingID).To(Equal(bookingID))
				Expect(created.Booking.FirstName).To(Equal(payload.FirstName))
				Expect(created.Booking.LastName).To(Equal(payload.LastName))
				Expect(created.Booking.TotalPrice).To(Equal(payload.TotalPrice))
				Expect(created.Booking.DepositPaid).To(Equal(payload.DepositPaid))
				Expect(created.Booking.BookingDates.Checkin).To(Equal(payload.BookingDates.Checkin))
				Expect(created.Booking.BookingDates.Checkout).To(Equal(payload.BookingDates.Checkout))
				Expect(created.Booking.AdditionalNeeds).To(Equal(payload.AdditionalNeeds))
			})
		})
	})

	Context("When updating a booking", func() {
		Describe("Given a full replacement", func() {
			It("should echo every replaced field", func() {
				bookingID := api.ResolveBookingID(client, ctx, config, config.UpdateBookingID)

				payload := api.NewBookingPayload().
					WithFirstName("John").
					WithLastName("Doe").
					WithTotalPrice(123).
					WithDepositPaid(false).
					Build()

				updated, err := client.UpdateBooking(ctx, bookingID, payload)

				Expect(err).NotTo(HaveOccurred())
				Expect(updated.FirstName).To(Equal("John"))
				Expect(updated.LastName).To(Equal("Doe"))
				Expect(updated.TotalPrice).To(Equal(123))
				Expect(updated.DepositPaid).To(BeFalse())
			})
		})

		Describe("Given a partial update", func() {
			It("should echo the patched fields", func() {
				bookingID := api.ResolveBookingID(client, ctx, config, config.UpdateBookingID)

				payload := api.NewPartialBookingPayload().
					WithFirstName("John").
					WithLastName("Doe").
					WithTotalPrice(123).
					WithDepositPaid(false).
					Build()

				updated, err := client.PartialUpdateBooking(ctx, bookingID, payload)

				Expect(err).NotTo(HaveOccurred())
				Expect(updated.FirstName).To(Equal("John"))
				Expect(updated.LastName).To(Equal("Doe"))
				Expect(updated.TotalPrice).To(Equal(123))
				Expect(updated.DepositPaid).To(BeFalse())
			})
		})
	})

	Context("When deleting a booking", func() {
		Describe("Given a valid token", func() {
			It("should be accepted", func() {
				bookingID := api.ResolveBookingID(client, ctx, config, config.DeleteBookingID)

				// 405 means someone else already deleted it, which the service reports the same way.
				status, err := client.DeleteBooking(ctx, bookingID)

				Expect(err).NotTo(HaveOccurred())
				Expect(status).To(BeElementOf(api.DeleteAcceptedStatuses()))
			})
		})
	})
})
