package refapi

import (
	"context"
	"strings"
)

// FieldError is one element of the body of a 422 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const (
	msgBlank   = "can't be blank"
	msgInvalid = "is invalid"
	msgTaken   = "has already been taken"
	msgMissing = "must exist"
)

// input is a request body for creating or updating a T. Members left out of the body are
// nil; on create every member is required, on update only the given ones are checked and
// applied.
type input[T any] interface {
	validate(ctx context.Context, s *Store, current *T) ([]FieldError, error)
	apply(record *T)
}

type fieldChecker struct {
	creating bool
	errs     []FieldError
}

func (f *fieldChecker) add(field, message string) {
	f.errs = append(f.errs, FieldError{Field: field, Message: message})
}

// text checks a string member and reports whether it is present and non-blank.
func (f *fieldChecker) text(field string, value *string) bool {
	if value == nil {
		if f.creating {
			f.add(field, msgBlank)
		}
		return false
	}
	if strings.TrimSpace(*value) == "" {
		f.add(field, msgBlank)
		return false
	}
	return true
}

func (f *fieldChecker) oneOf(field string, value *string, allowed ...string) {
	if !f.text(field, value) {
		return
	}
	for _, a := range allowed {
		if *value == a {
			return
		}
	}
	f.add(field, "can be "+strings.Join(allowed, " or "))
}

func (f *fieldChecker) email(field string, value *string) bool {
	if !f.text(field, value) {
		return false
	}
	local, domain, ok := strings.Cut(*value, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") || strings.ContainsAny(*value, " \t\n") {
		f.add(field, msgInvalid)
		return false
	}
	return true
}

func (f *fieldChecker) reference(ctx context.Context, s *Store, field string, model interface{}, id *int) error {
	if id == nil {
		if f.creating {
			f.add(field, msgMissing)
		}
		return nil
	}
	ok, err := s.exists(ctx, model, *id)
	if err != nil {
		return err
	}
	if !ok {
		f.add(field, msgMissing)
	}
	return nil
}

func setString(dest *string, value *string) {
	if value != nil {
		*dest = *value
	}
}

func setInt(dest *int, value *int) {
	if value != nil {
		*dest = *value
	}
}

type userInput struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Gender *string `json:"gender"`
	Status *string `json:"status"`
}

func (in userInput) validate(ctx context.Context, s *Store, current *User) ([]FieldError, error) {
	f := fieldChecker{creating: current == nil}
	f.text("name", in.Name)
	if f.email("email", in.Email) {
		exceptID := 0
		if current != nil {
			exceptID = current.ID
		}
		taken, err := s.emailTaken(ctx, *in.Email, exceptID)
		if err != nil {
			return nil, err
		}
		if taken {
			f.add("email", msgTaken)
		}
	}
	f.oneOf("gender", in.Gender, "male", "female")
	f.oneOf("status", in.Status, "active", "inactive")
	return f.errs, nil
}

func (in userInput) apply(u *User) {
	setString(&u.Name, in.Name)
	setString(&u.Email, in.Email)
	setString(&u.Gender, in.Gender)
	setString(&u.Status, in.Status)
}

type postInput struct {
	UserID *int    `json:"user_id"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
}

func (in postInput) validate(ctx context.Context, s *Store, current *Post) ([]FieldError, error) {
	f := fieldChecker{creating: current == nil}
	if err := f.reference(ctx, s, "user", &User{}, in.UserID); err != nil {
		return nil, err
	}
	f.text("title", in.Title)
	f.text("body", in.Body)
	return f.errs, nil
}

func (in postInput) apply(p *Post) {
	setInt(&p.UserID, in.UserID)
	setString(&p.Title, in.Title)
	setString(&p.Body, in.Body)
}

type commentInput struct {
	PostID *int    `json:"post_id"`
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Body   *string `json:"body"`
}

func (in commentInput) validate(ctx context.Context, s *Store, current *Comment) ([]FieldError, error) {
	f := fieldChecker{creating: current == nil}
	if err := f.reference(ctx, s, "post", &Post{}, in.PostID); err != nil {
		return nil, err
	}
	f.text("name", in.Name)
	f.email("email", in.Email)
	f.text("body", in.Body)
	return f.errs, nil
}

func (in commentInput) apply(c *Comment) {
	setInt(&c.PostID, in.PostID)
	setString(&c.Name, in.Name)
	setString(&c.Email, in.Email)
	setString(&c.Body, in.Body)
}
