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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nscaledev/booker-api-tests/pkg/options"
	"github.com/nscaledev/booker-api-tests/test/api"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

func main() {
	o, err := options.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	o.AddFlags(pflag.CommandLine)

	pflag.Parse()

	o.SetupLogging()

	logger := log.Log.WithName("booker-check")

	if err := o.Validate(); err != nil {
		logger.Error(err, "invalid options")
		os.Exit(1)
	}

	logger.Info("checking booking service", "baseURL", o.Config.BaseURL)

	ctx := cr.SetupSignalHandler()

	client, err := api.NewAPIClientWithConfig(o.Config, api.WithLogger(&options.Printer{Logger: logger.WithName("client")}))
	if err != nil {
		logger.Error(err, "failed to create client")
		os.Exit(1)
	}

	var errs []error

	for _, result := range api.RunChecks(ctx, client, o.Config) {
		if result.Err != nil {
			logger.Error(result.Err, "check failed", "check", result.Name, "duration", result.Duration)

			errs = append(errs, fmt.Errorf("%s: %w", result.Name, result.Err))

			continue
		}

		logger.Info("check passed", "check", result.Name, "duration", result.Duration)
	}

	if err := utilerrors.NewAggregate(errs); err != nil {
		logger.Error(err, "booking service checks failed", "failed", len(errs))
		os.Exit(1)
	}

	logger.Info("all booking service checks passed")
}
