package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/crudcheck/rest-contract-tests/framework"
)

var (
	failColor = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	skipColor = color.New(color.Faint)
	passColor = color.New(color.FgGreen)
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		failColor.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestWarning(id framework.TestID, message string) {
	warnColor.Fprintf(c.Out, "  WARNING: %s\n", message)
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		failColor.Fprintf(c.Out, "  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		skipColor.Fprintf(c.Out, "  SKIPPED: %s\n", id)
	} else {
		skipColor.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// printResults writes the summary of a run. The root context is not counted as a test.
func printResults(out io.Writer, results framework.Results) {
	var passed, skipped int
	for _, r := range results.Tests {
		switch {
		case len(r.TestID.Path) == 0:
		case r.Skipped:
			skipped++
		case len(r.Errors) == 0:
			passed++
		}
	}

	if len(results.Warnings) > 0 {
		warnColor.Fprintf(out, "Cleanup warnings (%d tests):\n", len(results.Warnings))
		for _, w := range results.Warnings {
			for _, m := range w.Warnings {
				warnColor.Fprintf(out, "  [%s] %s\n", w.TestID, m)
			}
		}
	}
	if results.OK() {
		passColor.Fprintf(out, "All tests passed (%d passed, %d skipped)\n", passed, skipped)
		return
	}
	failColor.Fprintf(out, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		failColor.Fprintf(out, "  %s\n", f.TestID)
	}
	fmt.Fprintf(out, "%d passed, %d failed, %d skipped\n", passed, len(results.Failures), skipped)
}
