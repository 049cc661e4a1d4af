package framework

import (
	"errors"
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Warnings []TestResult
}

type TestResult struct {
	TestID   TestID
	Errors   []error
	Warnings []string
	Skipped  bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// reformatError strips the layout that testify puts around assertion failures, which is meant
// for go test output, and drops the "Error Trace" block since it only points into test code.
func reformatError(err error) error {
	lines := strings.Split(strings.Trim(err.Error(), "\n"), "\n")
	out := make([]string, 0, len(lines))
	skipping := false
	for _, line := range lines {
		body := strings.TrimPrefix(line, "\t")
		if !strings.HasPrefix(body, " ") { // a new labeled section, not a continuation line
			skipping = strings.HasPrefix(body, "Error Trace:")
		}
		if skipping {
			continue
		}
		out = append(out, body)
	}
	return errors.New(strings.Join(out, "\n"))
}
