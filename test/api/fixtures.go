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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// AuthenticateOrFail exchanges the configured credentials for a session token,
// failing the current node if none is issued.
func AuthenticateOrFail(client *APIClient, ctx context.Context, config *TestConfig) string {
	resp, err := client.Authenticate(ctx, Credentials{
		Username: config.Username,
		Password: config.Password,
	})
	Expect(err).NotTo(HaveOccurred(), "authentication request should succeed")
	Expect(resp.Reason).To(BeEmpty(), "credentials should be accepted")
	Expect(resp.Token).NotTo(BeEmpty(), "a session token should be issued")

	GinkgoWriter.Printf("Obtained session token for user %s\n", config.Username)

	return resp.Token
}

// CreateBookingWithCleanup creates a booking and schedules its deletion.
func CreateBookingWithCleanup(client *APIClient, ctx context.Context, payload Booking) (*CreatedBooking, int) {
	Expect(client.AuthToken()).NotTo(BeEmpty(), "fixture bookings need a session token")

	created, err := client.CreateBooking(ctx, payload)
	Expect(err).NotTo(HaveOccurred(), "creating a fixture booking should succeed")
	Expect(created.BookingID).To(BeNumerically(">", 0))

	bookingID := created.BookingID

	GinkgoWriter.Printf("Created booking with ID: %d\n", bookingID)

	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func(ctx context.Context) {
		GinkgoWriter.Printf("Cleaning up booking: %d\n", bookingID)

		status, deleteErr := client.DeleteBooking(ctx, bookingID)
		if deleteErr != nil {
			GinkgoWriter.Printf("Warning: Failed to delete booking %d: %v\n", bookingID, deleteErr)
		} else {
			GinkgoWriter.Printf("Deleted booking %d (status %d)\n", bookingID, status)
		}
	})

	return created, bookingID
}

// ResolveBookingID returns the configured booking ID, or the ID of a freshly
// created booking when dynamic fixtures are enabled.
func ResolveBookingID(client *APIClient, ctx context.Context, config *TestConfig, configured int) int {
	if !config.DynamicFixtures {
		return configured
	}

	_, bookingID := CreateBookingWithCleanup(client, ctx, NewBookingPayload().WithTestMarker().Build())

	return bookingID
}

// ExpectBookingNamed asserts a booking has non-empty names.
func ExpectBookingNamed(booking *Booking) {
	Expect(booking).NotTo(BeNil())
	Expect(booking.FirstName).NotTo(BeEmpty(), "booking should have a first name")
	Expect(booking.LastName).NotTo(BeEmpty(), "booking should have a last name")
}

// SampleBookingIDs returns up to limit IDs from the listing, all of them if limit is 0.
func SampleBookingIDs(ids []BookingID, limit int) []int {
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]int, len(ids))

	for i := range ids {
		out[i] = ids[i].BookingID
	}

	return out
}
