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
	"fmt"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Authentication endpoints.
func (e *Endpoints) CreateToken() string {
	return "/auth"
}

// Booking endpoints.
func (e *Endpoints) ListBookings(filter *BookingFilter) (string, error) {
	if filter == nil {
		return "/booking", nil
	}

	params := []struct {
		name  string
		value string
	}{
		{"firstname", filter.FirstName},
		{"lastname", filter.LastName},
		{"checkin", filter.Checkin},
		{"checkout", filter.Checkout},
	}

	var query []string

	for _, param := range params {
		if param.value == "" {
			continue
		}

		styled, err := runtime.StyleParamWithLocation("form", true, param.name, runtime.ParamLocationQuery, param.value)
		if err != nil {
			return "", fmt.Errorf("styling query parameter %s: %w", param.name, err)
		}

		query = append(query, styled)
	}

	if len(query) == 0 {
		return "/booking", nil
	}

	return "/booking?" + strings.Join(query, "&"), nil
}

func (e *Endpoints) CreateBooking() string {
	return "/booking"
}

func (e *Endpoints) GetBooking(bookingID int) string {
	return fmt.Sprintf("/booking/%d", bookingID)
}

func (e *Endpoints) UpdateBooking(bookingID int) string {
	return fmt.Sprintf("/booking/%d", bookingID)
}

func (e *Endpoints) PartialUpdateBooking(bookingID int) string {
	return fmt.Sprintf("/booking/%d", bookingID)
}

func (e *Endpoints) DeleteBooking(bookingID int) string {
	return fmt.Sprintf("/booking/%d", bookingID)
}

// Health endpoints.
func (e *Endpoints) HealthCheck() string {
	return "/ping"
}
