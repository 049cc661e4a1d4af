package apitests

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/crudcheck/rest-contract-tests/entities"
	"github.com/crudcheck/rest-contract-tests/framework"
)

// ErrUnauthorized is returned by Preflight when the API rejects the configured token.
var ErrUnauthorized = errors.New("the API rejected the token")

func RunTestSuite(
	api *entities.API,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, api)

		t.Run("users", DoUserTests)
		t.Run("posts", DoPostTests)
		t.Run("comments", DoCommentTests)
		t.Run("lifecycle", DoLifecycleTests)
	})
}

// Preflight makes one request to check that the API is reachable and accepts the token, so
// that a bad configuration is reported once instead of as a failure of every test.
func Preflight(ctx context.Context, api *entities.API) error {
	_, err := api.Users.ListRaw(ctx)
	if err == nil {
		return nil
	}
	var reqErr *entities.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Status {
		case 0:
			return fmt.Errorf("the API is not reachable: %w", reqErr.Err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w (status %d)", ErrUnauthorized, reqErr.Status)
		}
	}
	return err
}
