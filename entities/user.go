package entities

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/identity"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// User is the root entity. It owns zero or more posts.
type User struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Gender Gender     `json:"gender"`
	Status UserStatus `json:"status"`
}

// UserFields is a partial user. Undefined members are left out of requests.
type UserFields struct {
	Name   ldvalue.OptionalString
	Email  ldvalue.OptionalString
	Gender ldvalue.OptionalString
	Status ldvalue.OptionalString
}

func (f UserFields) Values() ldvalue.Value {
	return definedObject(
		optString("name", f.Name),
		optString("email", f.Email),
		optString("gender", f.Gender),
		optString("status", f.Status),
	)
}

func defaultUserFields() UserFields {
	return UserFields{
		Name:   ldvalue.NewOptionalString(identity.UniqueName("Patrick QA")),
		Email:  ldvalue.NewOptionalString(identity.UniqueEmail("patrick.qa")),
		Gender: ldvalue.NewOptionalString(string(GenderMale)),
		Status: ldvalue.NewOptionalString(string(StatusActive)),
	}
}

// UserKind is the root of the ownership chain, served at /users.
var UserKind = NewKind("user", defaultUserFields)
