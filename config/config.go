// Package config holds the settings shared by every client in a test run: where the API under
// test lives, and the credential to send with each request.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvBaseURL        = "BASE_URL"
	EnvToken          = "TOKEN"
	EnvRequestTimeout = "REQUEST_TIMEOUT"
)

// DefaultEnvFile is loaded if present. A missing default file is not an error.
const DefaultEnvFile = ".env"

// DefaultTimeout is the request timeout used when none is configured.
const DefaultTimeout = 30 * time.Second

// Config is constructed once at startup and passed by value to clients. Nothing below the
// runner reads the process environment directly.
type Config struct {
	// BaseURL is the root of the API under test, without a trailing slash.
	BaseURL string

	// Token is sent as "Authorization: Bearer {token}".
	Token string

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Load reads .env files and then the process environment. Variables that are already set in
// the environment take precedence over values in the files.
//
// If no files are named, DefaultEnvFile is loaded when it exists. Files that are named
// explicitly must exist.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			envFiles = []string{DefaultEnvFile}
		}
	}
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("error loading env file: %w", err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from a variable lookup function such as os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Config{
		BaseURL: getEnv(lookup, EnvBaseURL, ""),
		Token:   getEnv(lookup, EnvToken, ""),
		Timeout: DefaultTimeout,
	}
	if s := getEnv(lookup, EnvRequestTimeout, ""); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvRequestTimeout, s, err)
		}
		c.Timeout = d
	}
	return c.Normalized(), nil
}

// Normalized returns a copy with surrounding whitespace and trailing slashes removed from the
// base URL, and a default timeout if none was set.
func (c Config) Normalized() Config {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Token = strings.TrimSpace(c.Token)
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Validate checks that the configuration is usable for making requests.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http(s) URL: %q", c.BaseURL)
	}
	if c.Token == "" {
		return errors.New("token is required")
	}
	return nil
}

func getEnv(lookup func(string) (string, bool), key, fallback string) string {
	if value, exists := lookup(key); exists {
		return value
	}
	return fallback
}
