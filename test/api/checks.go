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
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrCheckFailed = errors.New("check failed")

// Check is a single request/assert pair run outside of Ginkgo.
type Check struct {
	Name string
	Run  func(ctx context.Context, client *APIClient, state *CheckState) error
}

// CheckState carries values between checks, such as the booking created by one
// and deleted by another.
type CheckState struct {
	Config    *TestConfig
	BookingID int
}

// CheckResult records the outcome of a check.
type CheckResult struct {
	Name     string
	Duration time.Duration
	Err      error
}

func checkFailed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCheckFailed, fmt.Sprintf(format, args...))
}

// Checks returns the booking service checks in the order they must run.
//
//nolint:gocognit,cyclop // a flat list of checks reads better than splitting it
func Checks() []Check {
	return []Check{
		{
			Name: "health check",
			Run: func(ctx context.Context, client *APIClient, _ *CheckState) error {
				return client.HealthCheck(ctx)
			},
		},
		{
			Name: "authenticate",
			Run: func(ctx context.Context, client *APIClient, state *CheckState) error {
				resp, err := client.Authenticate(ctx, Credentials{Username: state.Config.Username, Password: state.Config.Password})
				if err != nil {
					return err
				}

				if resp.Token == "" {
					return checkFailed("no token issued, reason %q", resp.Reason)
				}

				client.SetAuthToken(resp.Token)

				return nil
			},
		},
		{
			Name: "list bookings",
			Run: func(ctx context.Context, client *APIClient, _ *CheckState) error {
				_, err := client.ListBookings(ctx, nil)
				return err
			},
		},
		{
			Name: "get existing booking",
			Run: func(ctx context.Context, client *APIClient, state *CheckState) error {
				booking, err := client.GetBooking(ctx, state.Config.ExistingBookingID)
				if err != nil {
					return err
				}

				if booking.FirstName == "" || booking.LastName == "" {
					return checkFailed("booking %d has no name", state.Config.ExistingBookingID)
				}

				return nil
			},
		},
		{
			Name: "get missing booking",
			Run: func(ctx context.Context, client *APIClient, state *CheckState) error {
				_, err := client.GetBooking(ctx, state.Config.MissingBookingID)
				if err == nil {
					return checkFailed("booking %d unexpectedly exists", state.Config.MissingBookingID)
				}

				if !errors.Is(err, ErrNotFound) {
					return err
				}

				return nil
			},
		},
		{
			Name: "filter bookings",
			Run: func(ctx context.Context, client *APIClient, _ *CheckState) error {
				ids, err := client.ListBookings(ctx, &BookingFilter{FirstName: "John", LastName: "Doe"})
				if err != nil {
					return err
				}

				if len(ids) == 0 {
					return checkFailed("no bookings for John Doe")
				}

				return nil
			},
		},
		{
			Name: "create booking",
			Run: func(ctx context.Context, client *APIClient, state *CheckState) error {
				payload := NewBookingPayload().WithTestMarker().Build()

				created, err := client.CreateBooking(ctx, payload)
				if err != nil {
					return err
				}

				if created.Booking.FirstName != payload.FirstName || created.Booking.TotalPrice != payload.TotalPrice {
					return checkFailed("created booking %d does not echo the payload", created.BookingID)
				}

				state.BookingID = created.BookingID

				return nil
			},
		},
		{
			Name: "partially update booking",
			Run: func(ctx context.Context, client *APIClient, state *CheckState) error {
				if state.BookingID == 0 {
					return checkFailed("no booking was created")
				}

				updated, err := client.PartialUpdateBooking(ctx, state.BookingID, NewPartialBookingPayload().WithTotalPrice(123).WithDepositPaid(false).Build())
				if err != nil {
					return err
				}

				if updated.TotalPrice != 123 || updated.DepositPaid {
					return checkFailed("booking %d does not echo the partial update", state.BookingID)
				}

				return nil
			},
		},
		{
			Name: "delete booking",
			Run: func(ctx context.Context, client *APIClient, state *CheckState) error {
				if state.BookingID == 0 {
					return checkFailed("no booking was created")
				}

				_, err := client.DeleteBooking(ctx, state.BookingID)

				return err
			},
		},
		{
			Name: "reject invalid token",
			Run: func(ctx context.Context, client *APIClient, state *CheckState) error {
				status, err := client.DeleteBookingWithToken(ctx, state.Config.DeleteBookingID, "invalid-"+GenerateTestID())
				if err != nil {
					return err
				}

				if status != http.StatusForbidden {
					return checkFailed("expected status %d, got %d", http.StatusForbidden, status)
				}

				return nil
			},
		},
	}
}

// RunChecks runs every check in order and returns their results.  A check
// failing does not stop the ones after it.
func RunChecks(ctx context.Context, client *APIClient, config *TestConfig) []CheckResult {
	state := &CheckState{
		Config: config,
	}

	checks := Checks()
	results := make([]CheckResult, 0, len(checks))

	for _, check := range checks {
		start := time.Now()
		err := check.Run(ctx, client, state)

		results = append(results, CheckResult{
			Name:     check.Name,
			Duration: time.Since(start),
			Err:      err,
		})
	}

	return results
}
