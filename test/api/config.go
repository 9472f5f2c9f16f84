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
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultUsername is the administrator account of a fresh service.
	DefaultUsername = "admin"

	// DefaultPassword is the administrator password of a fresh service.
	DefaultPassword = "password123"

	// DefaultPort is where the service listens out of the box.
	DefaultPort = 3001
)

type TestConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	RequestTimeout  time.Duration
	TestTimeout     time.Duration
	SkipIntegration bool
}

// LoadTestConfig loads configuration from environment variables, falling
// back to a test/.env file found above the working directory.
// An empty host is valid and means no service has been provided.
func LoadTestConfig() (*TestConfig, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	port, err := lookupInt("BOOKER_PORT", DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	requestTimeout, err := lookupDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	testTimeout, err := lookupDuration("TEST_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	skip, err := lookupBool("SKIP_INTEGRATION", false)
	if err != nil {
		return nil, err
	}

	config := &TestConfig{
		Host:            os.Getenv("BOOKER_HOST"),
		Port:            port,
		Username:        lookupString("BOOKER_USERNAME", DefaultUsername),
		Password:        lookupString("BOOKER_PASSWORD", DefaultPassword),
		RequestTimeout:  requestTimeout,
		TestTimeout:     testTimeout,
		SkipIntegration: skip,
	}

	return config, nil
}

// Address returns the service address the configuration points at.
func (c *TestConfig) Address() ServiceAddress {
	return ServiceAddress{
		Host: c.Host,
		Port: c.Port,
	}
}

func lookupString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

// lookup parses an environment variable, returning the fallback when unset.
func lookup[T any](key string, fallback T, parse func(string) (T, error)) (T, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	t, err := parse(value)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("malformed %s=%q: %w", key, value, err)
	}

	return t, nil
}

func lookupInt(key string, fallback int) (int, error) {
	return lookup(key, fallback, strconv.Atoi)
}

func lookupDuration(key string, fallback time.Duration) (time.Duration, error) {
	return lookup(key, fallback, time.ParseDuration)
}

func lookupBool(key string, fallback bool) (bool, error) {
	return lookup(key, fallback, strconv.ParseBool)
}

// findEnvFile walks up from the working directory to the module root looking
// for test/.env.
func findEnvFile() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, "test", ".env")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}

		dir = parent
	}
}

// loadEnvFile populates unset variables from test/.env. Variables already in
// the environment win.
func loadEnvFile() error {
	path, ok := findEnvFile()
	if !ok {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}
