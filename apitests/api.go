package apitests

import (
	"context"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/entities"
	"github.com/crudcheck/rest-contract-tests/fixtures"
	"github.com/crudcheck/rest-contract-tests/framework"
)

// T represents a test or subtest in the API contract test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. To make test assertions, pass the *T to the assert and require
// packages as if it were a *testing.T.
//
// Every T has its own teardown stack. Entities created through NewUser, NewPost, NewComment
// or Track are deleted in reverse order when the test ends, whether it passed or not. If a
// deletion fails, that is reported as a warning and does not fail the test.
type T struct {
	context  *framework.Context
	api      *entities.API
	composer *fixtures.Composer
	teardown *fixtures.Teardown
}

func newTestScope(c *framework.Context, api *entities.API) *T {
	scoped := api.WithLogger(c.DebugLogger())
	t := &T{
		context:  c,
		api:      scoped,
		composer: fixtures.NewComposer(scoped),
		teardown: &fixtures.Teardown{
			OnWarning: func(err error) { c.Warn("%s", err) },
		},
	}
	c.Defer(func() { t.teardown.Run(context.Background()) })
	return t
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
//
// The subtest gets its own teardown stack, which is emptied before Run returns.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.api))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Skip skips the test with a reason.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// Defer schedules a function to run when the test ends, before any entities are deleted.
func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

// Ctx returns the context to use for requests made by the test.
func (t *T) Ctx() context.Context {
	return context.Background()
}

// API returns the entity clients. Requests made through them are logged to the test's debug
// output.
func (t *T) API() *entities.API {
	return t.api
}

// Track registers the deletion of an entity that the test created without going through
// the composer.
func (t *T) Track(description string, release func(context.Context) error) *fixtures.Handle {
	return t.teardown.Add(description, release)
}

// NewUser creates a user that is deleted when the test ends. The test fails immediately if
// the user cannot be created.
func (t *T) NewUser(overrides entities.UserFields) fixtures.UserGraph {
	g, err := t.composer.User(t.Ctx(), t.teardown, overrides)
	require.NoError(t, err)
	return g
}

// NewPost creates a post, and a user for it unless spec.Owner is set.
func (t *T) NewPost(spec fixtures.PostSpec) fixtures.PostGraph {
	g, err := t.composer.Post(t.Ctx(), t.teardown, spec)
	require.NoError(t, err)
	return g
}

// NewComment creates a comment, and a post and user for it unless spec.Parent is set.
func (t *T) NewComment(spec fixtures.CommentSpec) fixtures.CommentGraph {
	g, err := t.composer.Comment(t.Ctx(), t.teardown, spec)
	require.NoError(t, err)
	return g
}

// RequireRead reads an entity that must exist.
func RequireRead[E any, F entities.Fields](t *T, client *entities.Client[E, F], id int) E {
	entity, err := client.Read(t.Ctx(), id)
	require.NoError(t, err)
	require.False(t, entities.NotFound(entity), "%s %d was not found", client.Kind().Name, id)
	return *entity
}

// RequireAbsent checks that reading an entity gives the not-found result.
func RequireAbsent[E any, F entities.Fields](t *T, client *entities.Client[E, F], id int) {
	entity, err := client.Read(t.Ctx(), id)
	require.NoError(t, err)
	require.True(t, entities.NotFound(entity), "%s %d still exists: %+v", client.Kind().Name, id, entity)
}

// RequireListItemsHave checks that a raw collection is a JSON array and that every item has
// the given properties.
func RequireListItemsHave(t *T, list ldvalue.Value, properties ...string) {
	require.Equal(t, ldvalue.ArrayType, list.Type(), "expected a JSON array")
	for i := 0; i < list.Count(); i++ {
		item := list.GetByIndex(i)
		require.Equal(t, ldvalue.ObjectType, item.Type(), "item %d is not an object", i)
		keys := item.Keys()
		for _, p := range properties {
			require.Contains(t, keys, p, "item %d has no %q property", i, p)
		}
	}
}
