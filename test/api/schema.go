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
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

var ErrSchemaViolation = errors.New("traffic does not match the API schema")

//go:embed booker.yaml
var bookerSchema []byte

// SchemaValidator checks request and response pairs against the embedded
// OpenAPI description of the booking service.
type SchemaValidator struct {
	router routers.Router
}

// NewSchemaValidator loads and validates the embedded OpenAPI description.
func NewSchemaValidator() (*SchemaValidator, error) {
	return newSchemaValidator(bookerSchema)
}

func newSchemaValidator(data []byte) (*SchemaValidator, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("loading API schema: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating API schema: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building API schema router: %w", err)
	}

	return &SchemaValidator{
		router: router,
	}, nil
}

// Validate checks the request described by method, url, header and body, then
// the response status, header and body it produced.
func (v *SchemaValidator) Validate(ctx context.Context, req *http.Request, reqBody []byte, status int, header http.Header, respBody []byte) error {
	// The original request body has already been consumed by the transport.
	vreq := req.Clone(ctx)
	vreq.Body = io.NopCloser(bytes.NewReader(reqBody))

	route, pathParams, err := v.router.FindRoute(vreq)
	if err != nil {
		return fmt.Errorf("%w: no route for %s %s: %w", ErrSchemaViolation, req.Method, req.URL.Path, err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	requestInput := &openapi3filter.RequestValidationInput{
		Request:    vreq,
		PathParams: pathParams,
		Route:      route,
		Options:    options,
	}

	if err := openapi3filter.ValidateRequest(ctx, requestInput); err != nil {
		return fmt.Errorf("%w: request %s %s: %w", ErrSchemaViolation, req.Method, req.URL.Path, err)
	}

	responseInput := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: requestInput,
		Status:                 status,
		Header:                 header,
		Body:                   io.NopCloser(bytes.NewReader(respBody)),
		Options:                options,
	}

	if err := openapi3filter.ValidateResponse(ctx, responseInput); err != nil {
		return fmt.Errorf("%w: response %d to %s %s: %w", ErrSchemaViolation, status, req.Method, req.URL.Path, err)
	}

	return nil
}
