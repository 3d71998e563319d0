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
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type TestConfig struct {
	BaseURL            string        `env:"API_BASE_URL,default=https://restful-booker.herokuapp.com"`
	Username           string        `env:"API_USERNAME,default=admin"`
	Password           string        `env:"API_PASSWORD,default=password123"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT,default=30s"`
	RequestsPerSecond  int           `env:"REQUESTS_PER_SECOND,default=0"`
	ExistingBookingID  int           `env:"EXISTING_BOOKING_ID,default=13"`
	SecondaryBookingID int           `env:"SECONDARY_BOOKING_ID,default=50"`
	UpdateBookingID    int           `env:"UPDATE_BOOKING_ID,default=14"`
	DeleteBookingID    int           `env:"DELETE_BOOKING_ID,default=26"`
	MissingBookingID   int           `env:"MISSING_BOOKING_ID,default=100000"`
	MaxListedBookings  int           `env:"MAX_LISTED_BOOKINGS,default=20"`
	DynamicFixtures    bool          `env:"DYNAMIC_FIXTURES,default=false"`
	ValidateSchema     bool          `env:"VALIDATE_SCHEMA,default=true"`
	UseFakeBooker      bool          `env:"USE_FAKE_BOOKER,default=false"`
	LogRequests        bool          `env:"LOG_REQUESTS,default=false"`
	LogResponses       bool          `env:"LOG_RESPONSES,default=false"`
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if any configuration value is invalid.
func LoadTestConfig() (*TestConfig, error) {
	config, err := ReadTestConfig()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ReadTestConfig loads configuration like LoadTestConfig but leaves validation
// to the caller, so values may be overridden first.
func ReadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	return unmarshalTestConfig(es)
}

// DefaultTestConfig returns the configuration used when no environment is set.
func DefaultTestConfig() (*TestConfig, error) {
	return loadTestConfigFrom(env.EnvSet{})
}

func unmarshalTestConfig(es env.EnvSet) (*TestConfig, error) {
	config := &TestConfig{}

	if err := env.Unmarshal(es, config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return config, nil
}

func loadTestConfigFrom(es env.EnvSet) (*TestConfig, error) {
	config, err := unmarshalTestConfig(es)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that all configuration values are usable.
func (c *TestConfig) Validate() error {
	var problems []string

	if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("API_BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL))
	}

	if c.Username == "" {
		problems = append(problems, "API_USERNAME must not be empty")
	}

	if c.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}

	if c.RequestsPerSecond < 0 {
		problems = append(problems, "REQUESTS_PER_SECOND must be 0 or greater")
	}

	if c.MaxListedBookings < 0 {
		problems = append(problems, "MAX_LISTED_BOOKINGS must be 0 or greater")
	}

	ids := []struct {
		name  string
		value int
	}{
		{"EXISTING_BOOKING_ID", c.ExistingBookingID},
		{"SECONDARY_BOOKING_ID", c.SecondaryBookingID},
		{"UPDATE_BOOKING_ID", c.UpdateBookingID},
		{"DELETE_BOOKING_ID", c.DeleteBookingID},
		{"MISSING_BOOKING_ID", c.MissingBookingID},
	}

	for _, id := range ids {
		if id.value < 1 {
			problems = append(problems, id.name+" must be positive")
		}
	}

	if c.MissingBookingID == c.ExistingBookingID || c.MissingBookingID == c.SecondaryBookingID {
		problems = append(problems, "MISSING_BOOKING_ID must differ from the existing booking IDs")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s. Please fix these environment variables or the .env file", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// envFileCandidates are tried in order, relative to the working directory of
// whichever package is under test.
var envFileCandidates = []string{
	"../../.env",    // From test/api/suites
	"../../../.env", // From test/contracts/consumer/booker
	"../.env",       // From test/api
	"test/.env",     // From the repository root
}

// findEnvFile returns the absolute path of the first .env file found relative
// to dir, or an empty string.
func findEnvFile(dir string) string {
	if path := os.Getenv("ENV_FILE"); path != "" {
		if _, err := os.Stat(path); err == nil {
			if absPath, err := filepath.Abs(path); err == nil {
				return absPath
			}
		}
	}

	for _, candidate := range envFileCandidates {
		path := filepath.Join(dir, candidate)

		if _, err := os.Stat(path); err == nil {
			if absPath, err := filepath.Abs(path); err == nil {
				return absPath
			}
		}
	}

	return ""
}

func loadEnvFile() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	envPath := findEnvFile(dir)
	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Values already in the environment win over the file.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
