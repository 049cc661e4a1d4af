package fixtures

import (
	"context"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/entities"
)

// Composer builds entity graphs through an entities.API, registering each created entity
// with a Teardown. It holds no state besides the API, so one Composer can serve concurrent
// tests as long as each test uses its own Teardown.
type Composer struct {
	api *entities.API
}

func NewComposer(api *entities.API) *Composer {
	return &Composer{api: api}
}

// API returns the clients the composer uses.
func (c *Composer) API() *entities.API {
	return c.api
}

// UserGraph is a created user and its teardown handle.
type UserGraph struct {
	User entities.User
	user *Handle
}

// DeleteUser deletes the user now instead of at teardown.
func (g UserGraph) DeleteUser(ctx context.Context) error {
	return release(ctx, g.user)
}

// PostGraph is a post together with its owning user.
type PostGraph struct {
	UserGraph
	Post entities.Post
	post *Handle
}

// DeletePost deletes the post now instead of at teardown.
func (g PostGraph) DeletePost(ctx context.Context) error {
	return release(ctx, g.post)
}

// CommentGraph is a comment together with its post and that post's user.
type CommentGraph struct {
	PostGraph
	Comment entities.Comment
	comment *Handle
}

// DeleteComment deletes the comment now instead of at teardown.
func (g CommentGraph) DeleteComment(ctx context.Context) error {
	return release(ctx, g.comment)
}

func release(ctx context.Context, h *Handle) error {
	if h == nil {
		return nil
	}
	return h.Release(ctx)
}

// PostSpec describes the post to create. If Owner is nil a new user is created from User;
// otherwise User is ignored.
type PostSpec struct {
	Owner *UserGraph
	User  entities.UserFields
	Post  entities.PostFields
}

// CommentSpec describes the comment to create. If Parent is nil a new user and post are
// created from User and Post; otherwise those are ignored.
type CommentSpec struct {
	Parent  *PostGraph
	User    entities.UserFields
	Post    entities.PostFields
	Comment entities.CommentFields
}

// User creates a user and registers its deletion.
func (c *Composer) User(ctx context.Context, td *Teardown, overrides entities.UserFields) (UserGraph, error) {
	user, err := c.api.Users.Create(ctx, ldvalue.OptionalInt{}, overrides)
	if err != nil {
		return UserGraph{}, err
	}
	h := td.Add(fmt.Sprintf("user %d", user.ID), func(ctx context.Context) error {
		return c.api.Users.Delete(ctx, user.ID)
	})
	return UserGraph{User: user, user: h}, nil
}

// Post creates a post, and its owner first unless one is given. If the post cannot be
// created, a user created here is still registered and will be deleted at teardown.
func (c *Composer) Post(ctx context.Context, td *Teardown, spec PostSpec) (PostGraph, error) {
	var owner UserGraph
	if spec.Owner != nil {
		owner = *spec.Owner
	} else {
		var err error
		if owner, err = c.User(ctx, td, spec.User); err != nil {
			return PostGraph{}, err
		}
	}
	post, err := c.api.Posts.Create(ctx, ldvalue.NewOptionalInt(owner.User.ID), spec.Post)
	if err != nil {
		return PostGraph{UserGraph: owner}, err
	}
	h := td.Add(fmt.Sprintf("post %d", post.ID), func(ctx context.Context) error {
		return c.api.Posts.Delete(ctx, post.ID)
	})
	return PostGraph{UserGraph: owner, Post: post, post: h}, nil
}

// Comment creates a comment, and its post and user first unless a parent post is given.
func (c *Composer) Comment(ctx context.Context, td *Teardown, spec CommentSpec) (CommentGraph, error) {
	var parent PostGraph
	if spec.Parent != nil {
		parent = *spec.Parent
	} else {
		var err error
		if parent, err = c.Post(ctx, td, PostSpec{User: spec.User, Post: spec.Post}); err != nil {
			return CommentGraph{PostGraph: parent}, err
		}
	}
	comment, err := c.api.Comments.Create(ctx, ldvalue.NewOptionalInt(parent.Post.ID), spec.Comment)
	if err != nil {
		return CommentGraph{PostGraph: parent}, err
	}
	h := td.Add(fmt.Sprintf("comment %d", comment.ID), func(ctx context.Context) error {
		return c.api.Comments.Delete(ctx, comment.ID)
	})
	return CommentGraph{PostGraph: parent, Comment: comment, comment: h}, nil
}
