package framework

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "start "+id.String())
}
func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String())
}
func (r *recordingTestLogger) TestWarning(id TestID, message string) {
	r.events = append(r.events, "warning "+id.String()+": "+message)
}
func (r *recordingTestLogger) TestFinished(id TestID, failed bool, _ CapturedOutput) {
	if failed {
		r.events = append(r.events, "failed "+id.String())
	} else {
		r.events = append(r.events, "passed "+id.String())
	}
}
func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skipped "+id.String())
}

func TestPassingAndFailingSubtests(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {})
		c.Run("b", func(c *Context) {
			assert.Equal(c, 1, 2)
		})
		c.Run("c", func(c *Context) {
			require.Fail(c, "stop here")
			c.Errorf("not reached")
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Failures, 2)
	assert.Equal(t, "b", results.Failures[0].TestID.String())
	assert.Equal(t, "c", results.Failures[1].TestID.String())
	assert.Len(t, results.Failures[1].Errors, 1)
	assert.Equal(t, []string{
		"start a", "passed a",
		"start b", "error b", "failed b",
		"start c", "error c", "failed c",
	}, logger.events)
}

func TestUnexpectedPanicFailsTest(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("boom", func(c *Context) {
			panic("oops")
		})
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: oops")
}

func TestSkip(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not today")
		})
	})
	assert.True(t, results.OK())
	assert.Equal(t, []string{"start skipped", "skipped skipped"}, logger.events)
}

func TestFilterExcludesTests(t *testing.T) {
	var ran []string
	filter := func(id TestID) bool { return id.String() != "x/no" }
	Run(filter, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Run("yes", func(c *Context) { ran = append(ran, c.ID().String()) })
			c.Run("no", func(c *Context) { ran = append(ran, c.ID().String()) })
		})
	})
	assert.Equal(t, []string{"x/yes"}, ran)
}

func TestSubtestPathsDoNotShareBackingArray(t *testing.T) {
	var ids []string
	Run(nil, nil, func(c *Context) {
		c.Run("parent", func(c *Context) {
			c.Run("one", func(c *Context) { ids = append(ids, c.ID().String()) })
			c.Run("two", func(c *Context) { ids = append(ids, c.ID().String()) })
		})
	})
	assert.Equal(t, []string{"parent/one", "parent/two"}, ids)
}

func TestDeferredFunctionsRunInReverseOrderOnEveryExitPath(t *testing.T) {
	for name, action := range map[string]func(*Context){
		"pass":     func(c *Context) {},
		"fail now": func(c *Context) { c.FailNow() },
		"panic":    func(c *Context) { panic(errors.New("broken")) },
		"skip":     func(c *Context) { c.Skip() },
	} {
		t.Run(name, func(t *testing.T) {
			var order []int
			Run(nil, nil, func(c *Context) {
				c.Run("test", func(c *Context) {
					c.Defer(func() { order = append(order, 1) })
					c.Defer(func() { order = append(order, 2) })
					action(c)
				})
			})
			assert.Equal(t, []int{2, 1}, order)
		})
	}
}

func TestPanicInDeferredFunctionDoesNotStopOthers(t *testing.T) {
	ranFirst := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Defer(func() { ranFirst = true })
			c.Defer(func() { panic("cleanup broke") })
		})
	})
	assert.True(t, ranFirst)
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "cleanup broke")
}

func TestWarningsDoNotFailTest(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Defer(func() { c.Warn("could not delete user %d", 5) })
		})
	})
	assert.True(t, results.OK())
	require.Len(t, results.Warnings, 1)
	assert.Equal(t, []string{"could not delete user 5"}, results.Warnings[0].Warnings)
	assert.Contains(t, logger.events, "warning test: could not delete user 5")
	assert.Contains(t, logger.events, "passed test")
}

func TestReformatErrorDropsErrorTrace(t *testing.T) {
	err := errors.New("\n\tError Trace:\t/src/a.go:10\n\t            \t/src/b.go:20\n" +
		"\tError:      \tNot equal: \n\t            \texpected: 1\n\t            \tactual  : 2\n")
	assert.Equal(t,
		"Error:      \tNot equal: \n            \texpected: 1\n            \tactual  : 2",
		reformatError(err).Error())
}

func TestCapturedOutputDump(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	output := CapturedOutput{
		{Time: start, Message: "GET /users"},
		{Time: start.Add(1500 * time.Millisecond), Message: "GET /users -> 200 []"},
	}
	var buf bytes.Buffer
	output.Dump(&buf, "  DEBUG ")
	assert.Equal(t, "  DEBUG [+0s] GET /users\n  DEBUG [+1.5s] GET /users -> 200 []\n", buf.String())
}

func TestDebugOutputIsPassedToTestLogger(t *testing.T) {
	var captured CapturedOutput
	logger := &capturingTestLogger{finished: func(out CapturedOutput) { captured = out }}
	Run(nil, logger, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Debug("hello %d", 1)
			c.DebugLogger().Printf("world")
		})
	})
	require.Len(t, captured, 2)
	assert.Equal(t, "hello 1", captured[0].Message)
	assert.Equal(t, "world", captured[1].Message)
}

type capturingTestLogger struct {
	nullTestLogger
	finished func(CapturedOutput)
}

func (c *capturingTestLogger) TestFinished(_ TestID, _ bool, out CapturedOutput) { c.finished(out) }
