package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/crudcheck/rest-contract-tests/config"
	"github.com/crudcheck/rest-contract-tests/framework"
)

type commandParams struct {
	baseURL  string
	token    string
	envFile  string
	timeout  time.Duration
	filters  framework.RegexFilters
	debug    bool
	debugAll bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.baseURL, "url", "", "base URL of the API under test (default $"+config.EnvBaseURL+")")
	fs.StringVar(&c.token, "token", "", "bearer token for the API (default $"+config.EnvToken+")")
	fs.StringVar(&c.envFile, "env-file", "", "file to load environment variables from (default "+config.DefaultEnvFile+" if present)")
	fs.DurationVar(&c.timeout, "timeout", 0, "timeout for each request (default $"+config.EnvRequestTimeout+" or "+config.DefaultTimeout.String()+")")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

// config resolves the configuration. A flag wins over the environment, which wins over the
// env file, which wins over the defaults.
func (c *commandParams) config() (config.Config, error) {
	var files []string
	if c.envFile != "" {
		files = append(files, c.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return config.Config{}, err
	}
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	if c.token != "" {
		cfg.Token = c.token
	}
	if c.timeout > 0 {
		cfg.Timeout = c.timeout
	}
	cfg = cfg.Normalized()
	return cfg, cfg.Validate()
}

// rerunCommand builds a command line that runs only the failed tests. The token is left out
// so that it is never printed.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program)
	if c.baseURL != "" {
		b.add("-url", c.baseURL)
	}
	if c.envFile != "" {
		b.add("-env-file", c.envFile)
	}
	if c.timeout > 0 {
		b.add("-timeout", c.timeout.String())
	}
	for _, f := range failures {
		b.add("-run", framework.RerunPattern(f.TestID))
	}
	if c.debug || c.debugAll {
		b.add("-debug")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
