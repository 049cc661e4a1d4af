// Package entities contains the clients for the three resources of the API under test.
//
// There is one generic Client, parameterized by a Kind that describes the resource path, the
// parent relationship, the default payload, and the expected success statuses. API bundles
// one instance per kind.
package entities

import (
	"github.com/crudcheck/rest-contract-tests/config"
	"github.com/crudcheck/rest-contract-tests/framework"
)

type (
	UserClient    = Client[User, UserFields]
	PostClient    = Client[Post, PostFields]
	CommentClient = Client[Comment, CommentFields]
)

// API holds a client for each entity kind. It has no mutable state and can be shared by
// concurrent tests.
type API struct {
	Users    *UserClient
	Posts    *PostClient
	Comments *CommentClient
}

// NewAPI creates clients for all entity kinds using the same configuration.
func NewAPI(cfg config.Config, logger framework.Logger) *API {
	return &API{
		Users:    NewClient[User](UserKind, cfg, logger),
		Posts:    NewClient[Post](PostKind, cfg, logger),
		Comments: NewClient[Comment](CommentKind, cfg, logger),
	}
}

// WithLogger returns a copy of the API whose clients log to the given logger, typically the
// debug logger of one test.
func (a *API) WithLogger(logger framework.Logger) *API {
	return &API{
		Users:    a.Users.WithLogger(logger),
		Posts:    a.Posts.WithLogger(logger),
		Comments: a.Comments.WithLogger(logger),
	}
}
