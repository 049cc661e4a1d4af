package entities

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/identity"
)

// Comment is owned by exactly one post.
type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"post_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// CommentFields is a partial comment. The owning post is passed to Create separately.
type CommentFields struct {
	Name  ldvalue.OptionalString
	Email ldvalue.OptionalString
	Body  ldvalue.OptionalString
}

func (f CommentFields) Values() ldvalue.Value {
	return definedObject(
		optString("name", f.Name),
		optString("email", f.Email),
		optString("body", f.Body),
	)
}

func defaultCommentFields() CommentFields {
	return CommentFields{
		Name:  ldvalue.NewOptionalString(identity.UniqueName("Commenting User")),
		Email: ldvalue.NewOptionalString(identity.UniqueEmail("comment")),
		Body:  ldvalue.NewOptionalString("Test comment"),
	}
}

// CommentKind is served at /comments and references its post through post_id.
var CommentKind = NewKind("comment", defaultCommentFields).WithParent("post", "post_id")
