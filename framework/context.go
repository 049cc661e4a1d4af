package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of one test or subtest. It plays the role of *testing.T for tests that
// run outside of the Go test runner, and it implements the interface that the testify assert
// and require packages expect.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	warnings    []string
	deferred    []func()
}

// Run runs a root-level test action and returns the accumulated results of it and all of its
// subtests.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.recordPanic(r)
		}
		c.runDeferred()
		result := TestResult{TestID: c.id, Errors: c.errors, Warnings: c.warnings, Skipped: c.skipped}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
		if len(c.warnings) > 0 {
			c.env.results.Warnings = append(c.env.results.Warnings, result)
		}
	}()

	action(c)
}

func (c *Context) recordPanic(r interface{}) {
	if c.skipped {
		return
	}
	c.failed = true
	var addError error
	if _, ok := r.(*Context); ok {
		if len(c.errors) == 0 {
			addError = errors.New("test failed with no failure message")
		}
	} else {
		addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
	}
	if addError != nil {
		c.errors = append(c.errors, addError)
		c.env.testLogger.TestError(c.id, addError)
	}
}

// runDeferred calls the deferred functions in reverse order. Each one runs even if an earlier
// one panicked; a panic is recorded as a test error.
func (c *Context) runDeferred() {
	for len(c.deferred) > 0 {
		last := len(c.deferred) - 1
		fn := c.deferred[last]
		c.deferred = c.deferred[:last]
		func() {
			defer func() {
				if r := recover(); r != nil {
					if r == c { // FailNow or Skip inside cleanup
						return
					}
					c.failed = true
					err := fmt.Errorf("unexpected panic in deferred cleanup: %+v", r)
					c.errors = append(c.errors, err)
					c.env.testLogger.TestError(c.id, err)
				}
			}()
			fn()
		}()
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest. The subtest is skipped if it does not pass the filter.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Defer schedules a function to be called when this test finishes, whether it passed, failed,
// or was skipped. Deferred functions are called in reverse order.
func (c *Context) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// Warn records a problem that does not fail the test, such as a cleanup step that could not
// be completed.
func (c *Context) Warn(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, message)
	c.debugLogger.Printf("WARNING: %s", message)
	c.env.testLogger.TestWarning(c.id, message)
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
