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

package options

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"github.com/nscaledev/booker-api-tests/test/api"
	coreoptions "github.com/unikorn-cloud/core/pkg/options"
)

// Options are the command line options of the smoke checker.  Flags default to
// the values loaded from the environment so either may be used.
type Options struct {
	Config *api.TestConfig

	// Core carries the logging flags shared with the platform services.
	Core coreoptions.CoreOptions
}

// New returns options seeded from the environment.  Validation is deferred to
// Validate so flags can correct bad environment values.
func New() (*Options, error) {
	config, err := api.ReadTestConfig()
	if err != nil {
		return nil, err
	}

	return &Options{
		Config: config,
	}, nil
}

// AddFlags registers the booking service and logging flags.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	o.AddConfigFlags(f)
	o.Core.AddFlags(f)
}

// AddConfigFlags registers the booking service flags only.
func (o *Options) AddConfigFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Config.BaseURL, "base-url", o.Config.BaseURL, "Base URL of the booking service.")
	f.StringVar(&o.Config.Username, "username", o.Config.Username, "Username to authenticate with.")
	f.StringVar(&o.Config.Password, "password", o.Config.Password, "Password to authenticate with.")
	f.DurationVar(&o.Config.RequestTimeout, "timeout", o.Config.RequestTimeout, "Per request timeout.")
	f.IntVar(&o.Config.RequestsPerSecond, "requests-per-second", o.Config.RequestsPerSecond, "Maximum request rate, 0 is unlimited.")
	f.BoolVar(&o.Config.ValidateSchema, "validate-schema", o.Config.ValidateSchema, "Validate traffic against the API schema.")
	f.IntVar(&o.Config.DeleteBookingID, "delete-booking-id", o.Config.DeleteBookingID, "Booking ID used to check invalid tokens are rejected.")
}

// Validate checks the options after flags are parsed.
func (o *Options) Validate() error {
	return o.Config.Validate()
}

// SetupLogging installs the global logger.
func (o *Options) SetupLogging() {
	o.Core.SetupLogging()
}

// alertMarkers identify client lines reporting a failure, with its trace ID.
var alertMarkers = []string{
	"] ERROR ",
	"] UNEXPECTED STATUS ",
	"TRACE CONTEXT:",
}

// Printer adapts a logr logger to the client's Printf logging.  Traffic is
// logged at V(1), failures and their trace IDs at the default level.
type Printer struct {
	Logger logr.Logger
}

func (p *Printer) Printf(format string, args ...any) {
	message := strings.TrimSpace(fmt.Sprintf(format, args...))

	for _, marker := range alertMarkers {
		if strings.Contains(message, marker) {
			p.Logger.Info(message)
			return
		}
	}

	p.Logger.V(1).Info(message)
}
