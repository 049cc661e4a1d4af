package entities

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/identity"
)

// Post is owned by exactly one user.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// PostFields is a partial post. The owning user is never part of it: Create takes the parent
// id separately.
type PostFields struct {
	Title ldvalue.OptionalString
	Body  ldvalue.OptionalString
}

func (f PostFields) Values() ldvalue.Value {
	return definedObject(
		optString("title", f.Title),
		optString("body", f.Body),
	)
}

func defaultPostFields() PostFields {
	return PostFields{
		Title: ldvalue.NewOptionalString("Test post " + identity.ShortToken()),
		Body:  ldvalue.NewOptionalString("Test post body"),
	}
}

// PostKind is served at /posts and references its user through user_id.
var PostKind = NewKind("post", defaultPostFields).WithParent("user", "user_id")
