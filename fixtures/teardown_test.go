package fixtures

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReleasesInReverseOrder(t *testing.T) {
	var td Teardown
	var order []string
	for _, name := range []string{"user", "post", "comment"} {
		name := name
		td.Add(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	assert.Empty(t, td.Run(context.Background()))
	assert.Equal(t, []string{"comment", "post", "user"}, order)
	assert.Equal(t, 0, td.Len())
}

func TestFailedStepsBecomeWarningsAndDoNotStopOthers(t *testing.T) {
	var reported []error
	td := Teardown{OnWarning: func(err error) { reported = append(reported, err) }}
	failure := errors.New("status 500")
	ranUser := false
	td.Add("user 1", func(context.Context) error {
		ranUser = true
		return nil
	})
	td.Add("post 2", func(context.Context) error { return failure })
	td.Add("comment 3", func(context.Context) error { panic("broken") })

	warnings := td.Run(context.Background())
	assert.True(t, ranUser)
	require.Len(t, warnings, 2)
	assert.Equal(t, "cleanup of comment 3 failed: panic: broken", warnings[0].Error())
	assert.ErrorIs(t, warnings[1], failure)
	assert.Equal(t, "cleanup of post 2 failed: status 500", warnings[1].Error())
	assert.Equal(t, warnings, reported)
}

func TestReleasedStepIsNotRunAgain(t *testing.T) {
	var td Teardown
	calls := 0
	h := td.Add("user 1", func(context.Context) error {
		calls++
		return nil
	})

	assert.False(t, h.Released())
	assert.NoError(t, h.Release(context.Background()))
	assert.True(t, h.Released())
	assert.NoError(t, h.Release(context.Background()))
	assert.Empty(t, td.Run(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestFailedEarlyReleaseIsRetriedByRun(t *testing.T) {
	var td Teardown
	childGone := false
	calls := 0
	parent := td.Add("user 1", func(context.Context) error {
		calls++
		if !childGone {
			return errors.New("status 409")
		}
		return nil
	})
	td.Add("post 2", func(context.Context) error {
		childGone = true
		return nil
	})

	assert.Error(t, parent.Release(context.Background()))
	assert.False(t, parent.Released())

	assert.Empty(t, td.Run(context.Background()))
	assert.True(t, parent.Released())
	assert.Equal(t, 2, calls)
}

func TestStepThatKeepsFailingIsReportedByRun(t *testing.T) {
	var td Teardown
	h := td.Add("user 1", func(context.Context) error { return errors.New("status 500") })

	assert.Error(t, h.Release(context.Background()))
	warnings := td.Run(context.Background())
	require.Len(t, warnings, 1)
	assert.Equal(t, "cleanup of user 1 failed: status 500", warnings[0].Error())
}

func TestRunTwiceDoesNothingTheSecondTime(t *testing.T) {
	var td Teardown
	calls := 0
	td.Add("x", func(context.Context) error {
		calls++
		return nil
	})
	td.Run(context.Background())
	td.Run(context.Background())
	assert.Equal(t, 1, calls)
}

func TestConcurrentAdd(t *testing.T) {
	var td Teardown
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			td.Add("step", func(context.Context) error { return nil })
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, td.Len())
	assert.Empty(t, td.Run(context.Background()))
}
