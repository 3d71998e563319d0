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
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/booker-api-tests/test/api"
)

var _ = Describe("Authentication", func() {
	Context("When requesting a session token", func() {
		Describe("Given valid credentials", func() {
			It("should issue a token", func() {
				resp, err := client.Authenticate(ctx, api.Credentials{
					Username: config.Username,
					Password: config.Password,
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Token).NotTo(BeEmpty())
			})
		})

		Describe("Given invalid credentials", func() {
			It("should explain the rejection instead of issuing a token", func() {
				resp, err := client.Authenticate(ctx, api.Credentials{
					Username: config.Username,
					Password: "not-" + config.Password,
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(resp.Token).To(BeEmpty())
				Expect(resp.Reason).To(Equal("Bad credentials"))
			})
		})
	})

	Context("When modifying bookings without a valid token", func() {
		Describe("Given an invalid token", func() {
			It("should forbid deletion", func() {
				status, err := client.DeleteBookingWithToken(ctx, config.DeleteBookingID, "no token :(")

				Expect(err).NotTo(HaveOccurred())
				Expect(status).To(Equal(http.StatusForbidden))
			})
		})

		Describe("Given no token at all", func() {
			It("should forbid a full update", func() {
				_, err := client.Do(ctx, http.MethodPut, api.NewEndpoints().UpdateBooking(config.UpdateBookingID),
					api.NewBookingPayload().Build(),
					api.WithExpectedStatus(http.StatusForbidden))

				Expect(err).NotTo(HaveOccurred())
			})
		})
	})
})
