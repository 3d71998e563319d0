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

//nolint:revive // dot imports standard for Ginkgo
package api_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/nscaledev/booker-api-tests/test/api"
	"github.com/nscaledev/booker-api-tests/test/api/mock"
)

var errConnectionRefused = errors.New("connection refused")

var _ = Describe("API Client", func() {
	Context("When authenticating", func() {
		It("should issue a token for valid credentials", func() {
			token := api.AuthenticateOrFail(client, ctx, config)
			Expect(token).NotTo(BeEmpty())
		})

		It("should cache the session token", func() {
			Expect(client.AuthToken()).To(BeEmpty())

			token := api.AuthenticateOrFail(client, ctx, config)
			client.SetAuthToken(token)

			Expect(client.AuthToken()).To(Equal(token))
		})

		It("should return a reason for bad credentials", func() {
			resp, err := client.Authenticate(ctx, api.Credentials{Username: "admin", Password: "wrong"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Token).To(BeEmpty())
			Expect(resp.Reason).To(Equal("Bad credentials"))
		})
	})

	Context("When reading bookings", func() {
		It("should list every booking", func() {
			ids, err := client.ListBookings(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).NotTo(BeEmpty())

			for _, id := range api.SampleBookingIDs(ids, config.MaxListedBookings) {
				booking, err := client.GetBooking(ctx, id)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectBookingNamed(booking)
			}
		})

		It("should filter by name", func() {
			ids, err := client.ListBookings(ctx, &api.BookingFilter{FirstName: "John", LastName: "Doe"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).NotTo(BeEmpty())

			for _, id := range ids {
				booking, err := client.GetBooking(ctx, id.BookingID)
				Expect(err).NotTo(HaveOccurred())
				Expect(booking.FirstName).To(Equal("John"))
				Expect(booking.LastName).To(Equal("Doe"))
			}
		})

		It("should fetch an existing booking", func() {
			booking, err := client.GetBooking(ctx, config.ExistingBookingID)
			Expect(err).NotTo(HaveOccurred())
			api.ExpectBookingNamed(booking)
		})

		It("should report a missing booking as not found", func() {
			_, err := client.GetBooking(ctx, config.MissingBookingID)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, api.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(err, api.ErrUnexpectedStatus)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("404"))

			var statusErr *api.StatusError
			Expect(errors.As(err, &statusErr)).To(BeTrue())
			Expect(statusErr.TraceID).To(HaveLen(32))
		})
	})

	Context("When modifying bookings", func() {
		BeforeEach(func() {
			client.SetAuthToken(api.AuthenticateOrFail(client, ctx, config))
		})

		It("should create, update, patch and delete a booking", func() {
			payload := api.NewBookingPayload().WithTestMarker().Build()

			created, bookingID := api.CreateBookingWithCleanup(client, ctx, payload)
			Expect(created.Booking).To(Equal(payload))

			updated, err := client.UpdateBooking(ctx, bookingID, api.NewBookingPayload().
				WithFirstName("John").
				WithLastName("Doe").
				WithTotalPrice(123).
				WithDepositPaid(false).
				Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.FirstName).To(Equal("John"))
			Expect(updated.TotalPrice).To(Equal(123))

			patched, err := client.PartialUpdateBooking(ctx, bookingID, api.NewPartialBookingPayload().
				WithAdditionalNeeds("Lunch").
				Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(patched.FirstName).To(Equal("John"))
			Expect(patched.AdditionalNeeds).To(Equal("Lunch"))

			status, err := client.DeleteBooking(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusCreated))

			_, err = client.GetBooking(ctx, bookingID)
			Expect(errors.Is(err, api.ErrNotFound)).To(BeTrue())
		})

		It("should accept deleting an already deleted booking", func() {
			_, bookingID := api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())

			_, err := client.DeleteBooking(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())

			status, err := client.DeleteBooking(ctx, bookingID)
			Expect(err).NotTo(HaveOccurred())
			Expect(api.IsAcceptedDelete(status)).To(BeTrue())
			Expect(status).To(Equal(http.StatusMethodNotAllowed))
		})

		It("should be forbidden with an invalid token", func() {
			status, err := client.DeleteBookingWithToken(ctx, config.DeleteBookingID, "no token :(")
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusForbidden))
		})

		It("should report a forbidden update", func() {
			client.SetAuthToken("bogus")

			_, err := client.UpdateBooking(ctx, config.UpdateBookingID, api.NewBookingPayload().Build())
			Expect(errors.Is(err, api.ErrForbidden)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("403"))
		})

		It("should refuse to send a modification without a token", func() {
			client.SetAuthToken("")

			_, err := client.DeleteBooking(ctx, config.DeleteBookingID)
			Expect(errors.Is(err, api.ErrMissingToken)).To(BeTrue())

			_, err = client.CreateBooking(ctx, api.NewBookingPayload().Build())
			Expect(errors.Is(err, api.ErrMissingToken)).To(BeTrue())
		})
	})

	Context("When sending requests", func() {
		var (
			ctrl *gomock.Controller
			doer *mock.MockDoer
		)

		BeforeEach(func() {
			ctrl = gomock.NewController(GinkgoT())
			doer = mock.NewMockDoer(ctrl)
		})

		It("should propagate trace context and the session cookie", func() {
			doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
				Expect(req.Header.Get("Traceparent")).To(MatchRegexp(`^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`))
				Expect(req.Header.Get("Tracestate")).To(Equal("test-automation=ginkgo"))
				Expect(req.Header.Get("Accept")).To(Equal("application/json"))

				cookie, err := req.Cookie(api.TokenCookie)
				Expect(err).NotTo(HaveOccurred())
				Expect(cookie.Value).To(Equal("abc123"))

				return &http.Response{
					StatusCode: http.StatusCreated,
					Header:     http.Header{"Content-Type": []string{"text/plain"}},
					Body:       io.NopCloser(strings.NewReader("Created")),
				}, nil
			})

			client, err := api.NewAPIClientWithConfig(config, api.WithDoer(doer))
			Expect(err).NotTo(HaveOccurred())

			client.SetAuthToken("abc123")

			status, err := client.DeleteBooking(ctx, config.DeleteBookingID)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusCreated))
		})

		It("should wrap transport failures", func() {
			doer.EXPECT().Do(gomock.Any()).Return(nil, errConnectionRefused)

			logger := mock.NewMockLogger(ctrl)
			logger.EXPECT().Printf(gomock.Any(), gomock.Any()).AnyTimes()

			client, err := api.NewAPIClientWithConfig(config, api.WithDoer(doer), api.WithLogger(logger))
			Expect(err).NotTo(HaveOccurred())

			_, err = client.GetBooking(ctx, config.ExistingBookingID)
			Expect(errors.Is(err, errConnectionRefused)).To(BeTrue())
		})
	})

	Context("When the service breaks its contract", func() {
		It("should report a schema violation", func() {
			broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"firstname":"Jim"}`))
			}))
			DeferCleanup(broken.Close)

			config.BaseURL = broken.URL

			client, err := api.NewAPIClientWithConfig(config)
			Expect(err).NotTo(HaveOccurred())

			_, err = client.GetBooking(ctx, config.ExistingBookingID)
			Expect(errors.Is(err, api.ErrSchemaViolation)).To(BeTrue())
		})

		It("should not validate when disabled", func() {
			broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"firstname":"Jim"}`))
			}))
			DeferCleanup(broken.Close)

			config.BaseURL = broken.URL
			config.ValidateSchema = false

			client, err := api.NewAPIClientWithConfig(config)
			Expect(err).NotTo(HaveOccurred())

			booking, err := client.GetBooking(ctx, config.ExistingBookingID)
			Expect(err).NotTo(HaveOccurred())
			Expect(booking.FirstName).To(Equal("Jim"))
		})
	})

	Context("When running smoke checks", func() {
		It("should pass every check against a conforming service", func() {
			results := api.RunChecks(ctx, client, config)
			Expect(results).To(HaveLen(len(api.Checks())))

			for _, result := range results {
				Expect(result.Err).NotTo(HaveOccurred(), result.Name)
			}
		})

		It("should report failures without stopping", func() {
			config.Password = "wrong"

			results := api.RunChecks(ctx, client, config)
			Expect(results).To(HaveLen(len(api.Checks())))

			outcomes := map[string]error{}
			for _, result := range results {
				outcomes[result.Name] = result.Err
			}

			Expect(errors.Is(outcomes["authenticate"], api.ErrCheckFailed)).To(BeTrue())
			Expect(errors.Is(outcomes["create booking"], api.ErrMissingToken)).To(BeTrue())
			Expect(outcomes["list bookings"]).NotTo(HaveOccurred())
			Expect(outcomes["reject invalid token"]).NotTo(HaveOccurred())
		})
	})
})
