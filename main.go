package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/crudcheck/rest-contract-tests/apitests"
	"github.com/crudcheck/rest-contract-tests/entities"
	"github.com/crudcheck/rest-contract-tests/framework"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg, err := params.config()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		log.SetLevel(logrus.DebugLevel)
		mainDebugLogger = log
	}
	api := entities.NewAPI(cfg, mainDebugLogger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	err = apitests.Preflight(ctx, api)
	cancel()
	if err != nil {
		log.WithError(err).WithField("url", cfg.BaseURL).Fatal("Preflight request failed")
	}
	log.WithField("url", cfg.BaseURL).Info("API is reachable")

	out := color.Output
	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)

	fmt.Fprintln(out, "Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := apitests.RunTestSuite(api, params.filters.AsFilter, testLogger)

	fmt.Fprintln(out)
	printResults(out, results)
	if !results.OK() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To run only the failed tests:")
		fmt.Fprintln(out, "  "+params.rerunCommand(os.Args[0], results.Failures))
		os.Exit(1)
	}
}
