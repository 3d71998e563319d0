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

// Package api provides integration test utilities for the booking service API.
//
// # Separate Client Implementation
//
// The booking service is a third party system that publishes no Go client, so
// this package maintains its own HTTP client (APIClient). Keeping it small and
// explicit has some benefits for testing:
//
// 1. **API Contract Validation**: every endpoint the suites depend on is spelled
// out in Endpoints and in the embedded OpenAPI description (booker.yaml). When
// the service changes shape, traffic stops validating and the failure names the
// route rather than surfacing as a confusing assertion further down.
//
// 2. **Test-Specific Features**: The client includes features tailored
// for integration testing:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Cookie based session token management
//   - Optional client side throttling for the shared public service
//   - Direct access to HTTP status codes and response bodies
//
// # Fixtures
//
// The public service is shared and periodically reset, so the booking IDs the
// suites use are configurable. Setting DYNAMIC_FIXTURES=true replaces them with
// bookings created for the test and deleted again via DeferCleanup.
package api
