package entities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/framework"
	"github.com/crudcheck/rest-contract-tests/refapi"
)

func newReferenceAPI(t *testing.T) *API {
	t.Helper()
	ts, err := refapi.NewTestServer(testToken)
	require.NoError(t, err)
	t.Cleanup(ts.Close)
	return NewAPI(testConfig(ts.URL), nil)
}

func TestRoundTripAgainstReferenceAPI(t *testing.T) {
	api := newReferenceAPI(t)
	ctx := context.Background()

	user, err := api.Users.Create(ctx, ldvalue.OptionalInt{}, UserFields{Gender: ldvalue.NewOptionalString("female")})
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, user.Gender)
	assert.Equal(t, StatusActive, user.Status)

	post, err := api.Posts.Create(ctx, ldvalue.NewOptionalInt(user.ID), PostFields{})
	require.NoError(t, err)
	assert.Equal(t, user.ID, post.UserID)

	updated, err := api.Posts.Update(ctx, post.ID, PostFields{Body: ldvalue.NewOptionalString("edited")})
	require.NoError(t, err)
	assert.Equal(t, post.Title, updated.Title)
	assert.Equal(t, "edited", updated.Body)

	read, err := api.Posts.Read(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, read)
	assert.Equal(t, updated, *read)

	require.NoError(t, api.Posts.Delete(ctx, post.ID))
	read, err = api.Posts.Read(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, NotFound(read))
	assert.NoError(t, api.Posts.Delete(ctx, post.ID), "deleting twice should succeed")

	require.NoError(t, api.Users.Delete(ctx, user.ID))
}

func TestWrongTokenIsRequestError(t *testing.T) {
	ts, err := refapi.NewTestServer(testToken)
	require.NoError(t, err)
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.Token = "wrong"
	_, err = NewAPI(cfg, nil).Users.List(context.Background())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 401, reqErr.Status)
	assert.ErrorIs(t, err, ErrListFailed)
}

func TestRequestsAreLoggedToGivenLogger(t *testing.T) {
	api := newReferenceAPI(t)
	var logger framework.CapturingLogger
	_, err := api.WithLogger(&logger).Users.List(context.Background())
	require.NoError(t, err)

	output := logger.Output()
	require.Len(t, output, 2)
	assert.Equal(t, "GET /users", output[0].Message)
	assert.Equal(t, "GET /users -> 200 []", output[1].Message)
}
