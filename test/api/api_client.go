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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"golang.org/x/time/rate"

	"k8s.io/apimachinery/pkg/util/sets"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrNotFound         = errors.New("booking not found")
	ErrForbidden        = errors.New("access denied")
	ErrMissingToken     = errors.New("no session token, authenticate first")
)

// TokenCookie is the cookie the service reads the session token from.
const TokenCookie = "token"

// StatusError is returned when a response status is not one the caller expected.
type StatusError struct {
	Method     string
	Path       string
	Expected   []int
	StatusCode int
	Body       string
	TraceID    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: expected %v, got %d, body: %s (trace ID: %s)", e.Expected, e.StatusCode, e.Body, e.TraceID)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnexpectedStatus:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	}

	return false
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
	Duration   time.Duration
}

type APIClient struct {
	baseURL   string
	client    Doer
	log       Logger
	limiter   *rate.Limiter
	validator *SchemaValidator
	authToken string
	config    *TestConfig
	endpoints *Endpoints
}

// ClientOption overrides client defaults.
type ClientOption func(*APIClient)

// WithDoer replaces the HTTP transport.
func WithDoer(doer Doer) ClientOption {
	return func(c *APIClient) {
		c.client = doer
	}
}

// WithLogger redirects diagnostics, they go to the GinkgoWriter by default.
func WithLogger(log Logger) ClientOption {
	return func(c *APIClient) {
		c.log = log
	}
}

// NewAPIClientWithConfig creates a client for the configured service.
func NewAPIClientWithConfig(config *TestConfig, options ...ClientOption) (*APIClient, error) {
	c := &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		log:       ginkgo.GinkgoWriter,
		config:    config,
		endpoints: NewEndpoints(),
	}

	if config.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	if config.ValidateSchema {
		validator, err := NewSchemaValidator()
		if err != nil {
			return nil, err
		}

		c.validator = validator
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// SetAuthToken caches the session token sent with modifying requests.
func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

func (c *APIClient) AuthToken() string {
	return c.authToken
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.log.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expected []int, actualStatus int, body, traceParent string) {
	c.log.Printf("[%s %s] UNEXPECTED STATUS expected=%v got=%d body=%s traceparent=%s\n", method, path, expected, actualStatus, body, traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	c.log.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

type requestOptions struct {
	token    *string
	expected sets.Set[int]
}

// RequestOption modifies a single request.
type RequestOption func(*requestOptions)

// WithToken sends token as the session cookie, even if it is empty or invalid.
func WithToken(token string) RequestOption {
	return func(o *requestOptions) {
		o.token = &token
	}
}

// WithExpectedStatus fails the request unless the status is one of codes.
func WithExpectedStatus(codes ...int) RequestOption {
	return func(o *requestOptions) {
		o.expected = sets.New(codes...)
	}
}

// withSessionToken sends the client's cached token, which must be set.
func (c *APIClient) withSessionToken() (RequestOption, error) {
	if c.authToken == "" {
		return nil, ErrMissingToken
	}

	return WithToken(c.authToken), nil
}

// Do issues a request and returns the fully read response.  A non nil body is
// marshaled as JSON.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) Do(ctx context.Context, method, path string, body any, options ...RequestOption) (*Response, error) {
	opts := &requestOptions{}

	for _, option := range options {
		option(opts)
	}

	var reqBody []byte

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reqBody = data
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	// The service answers 418 to anything it cannot render.
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if opts.token != nil {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: *opts.token})
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		c.log.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.log.Printf("[%s %s] response body: %s\n", method, path, string(respBody))
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    extractTraceID(traceParent),
		Duration:   duration,
	}

	if c.validator != nil {
		if err := c.validator.Validate(ctx, req, reqBody, resp.StatusCode, resp.Header, respBody); err != nil {
			c.logError(method, path, duration, traceParent, err, "schema validation")
			return response, err
		}
	}

	if opts.expected.Len() > 0 && !opts.expected.Has(resp.StatusCode) {
		expected := sets.List(opts.expected)
		c.logUnexpectedStatus(method, path, expected, resp.StatusCode, string(respBody), traceParent)

		return response, &StatusError{
			Method:     method,
			Path:       path,
			Expected:   expected,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			TraceID:    response.TraceID,
		}
	}

	return response, nil
}

func decode[T any](resp *Response, what string) (*T, error) {
	var out T

	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling %s response: %w", what, err)
	}

	return &out, nil
}

// HealthCheck pings the service.
func (c *APIClient) HealthCheck(ctx context.Context) error {
	if _, err := c.Do(ctx, http.MethodGet, c.endpoints.HealthCheck(), nil, WithExpectedStatus(http.StatusCreated)); err != nil {
		return fmt.Errorf("checking health: %w", err)
	}

	return nil
}

// Authenticate exchanges credentials for a session token.  Rejected credentials
// are not an error, the returned response carries the reason instead.
func (c *APIClient) Authenticate(ctx context.Context, credentials Credentials) (*AuthResponse, error) {
	resp, err := c.Do(ctx, http.MethodPost, c.endpoints.CreateToken(), credentials, WithExpectedStatus(http.StatusOK))
	if err != nil {
		return nil, fmt.Errorf("creating token: %w", err)
	}

	return decode[AuthResponse](resp, "token")
}

// ListBookings lists booking IDs, optionally filtered.
func (c *APIClient) ListBookings(ctx context.Context, filter *BookingFilter) ([]BookingID, error) {
	path, err := c.endpoints.ListBookings(filter)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodGet, path, nil, WithExpectedStatus(http.StatusOK))
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	ids, err := decode[[]BookingID](resp, "bookings")
	if err != nil {
		return nil, err
	}

	return *ids, nil
}

// GetBooking retrieves a specific booking.
func (c *APIClient) GetBooking(ctx context.Context, bookingID int) (*Booking, error) {
	resp, err := c.Do(ctx, http.MethodGet, c.endpoints.GetBooking(bookingID), nil, WithExpectedStatus(http.StatusOK))
	if err != nil {
		return nil, fmt.Errorf("getting booking %d: %w", bookingID, err)
	}

	return decode[Booking](resp, "booking")
}

// CreateBooking creates a new booking with the session token.
func (c *APIClient) CreateBooking(ctx context.Context, booking Booking) (*CreatedBooking, error) {
	token, err := c.withSessionToken()
	if err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	resp, err := c.Do(ctx, http.MethodPost, c.endpoints.CreateBooking(), booking, token, WithExpectedStatus(http.StatusOK))
	if err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	return decode[CreatedBooking](resp, "booking")
}

// UpdateBooking replaces a booking with the session token.
func (c *APIClient) UpdateBooking(ctx context.Context, bookingID int, booking Booking) (*Booking, error) {
	token, err := c.withSessionToken()
	if err != nil {
		return nil, fmt.Errorf("updating booking %d: %w", bookingID, err)
	}

	resp, err := c.Do(ctx, http.MethodPut, c.endpoints.UpdateBooking(bookingID), booking, token, WithExpectedStatus(http.StatusOK))
	if err != nil {
		return nil, fmt.Errorf("updating booking %d: %w", bookingID, err)
	}

	return decode[Booking](resp, "booking")
}

// PartialUpdateBooking updates the set fields of a booking with the session token.
func (c *APIClient) PartialUpdateBooking(ctx context.Context, bookingID int, booking PartialBooking) (*Booking, error) {
	token, err := c.withSessionToken()
	if err != nil {
		return nil, fmt.Errorf("partially updating booking %d: %w", bookingID, err)
	}

	resp, err := c.Do(ctx, http.MethodPatch, c.endpoints.PartialUpdateBooking(bookingID), booking, token, WithExpectedStatus(http.StatusOK))
	if err != nil {
		return nil, fmt.Errorf("partially updating booking %d: %w", bookingID, err)
	}

	return decode[Booking](resp, "booking")
}

// DeleteAcceptedStatuses are the statuses an authorized delete may answer with,
// the service uses 405 for bookings that are already gone.
func DeleteAcceptedStatuses() []int {
	return []int{http.StatusCreated, http.StatusMethodNotAllowed}
}

// DeleteBooking deletes a booking with the session token and returns the status.
func (c *APIClient) DeleteBooking(ctx context.Context, bookingID int) (int, error) {
	token, err := c.withSessionToken()
	if err != nil {
		return 0, fmt.Errorf("deleting booking %d: %w", bookingID, err)
	}

	resp, err := c.Do(ctx, http.MethodDelete, c.endpoints.DeleteBooking(bookingID), nil, token, WithExpectedStatus(DeleteAcceptedStatuses()...))
	if err != nil {
		if resp != nil {
			return resp.StatusCode, fmt.Errorf("deleting booking %d: %w", bookingID, err)
		}

		return 0, fmt.Errorf("deleting booking %d: %w", bookingID, err)
	}

	return resp.StatusCode, nil
}

// DeleteBookingWithToken deletes a booking with an explicit token and returns
// whatever status the service answers with.
func (c *APIClient) DeleteBookingWithToken(ctx context.Context, bookingID int, token string) (int, error) {
	resp, err := c.Do(ctx, http.MethodDelete, c.endpoints.DeleteBooking(bookingID), nil, WithToken(token))
	if err != nil {
		return 0, fmt.Errorf("deleting booking %d: %w", bookingID, err)
	}

	return resp.StatusCode, nil
}

// IsAcceptedDelete reports whether status is an accepted delete outcome.
func IsAcceptedDelete(status int) bool {
	return slices.Contains(DeleteAcceptedStatuses(), status)
}
