package apitests

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/entities"
	"github.com/crudcheck/rest-contract-tests/identity"
)

var userProperties = []string{"id", "name", "email", "gender", "status"}

func DoUserTests(t *T) {
	t.Run("create user", func(t *T) {
		fields := entities.UserFields{
			Name:   ldvalue.NewOptionalString(identity.UniqueName("Patrick QA")),
			Email:  ldvalue.NewOptionalString(identity.UniqueEmail("patrick.qa")),
			Gender: ldvalue.NewOptionalString(string(entities.GenderMale)),
			Status: ldvalue.NewOptionalString(string(entities.StatusActive)),
		}
		user, err := t.API().Users.Create(t.Ctx(), ldvalue.OptionalInt{}, fields)
		require.NoError(t, err)
		t.Track("user", func(ctx context.Context) error { return t.API().Users.Delete(ctx, user.ID) })

		assert.NotZero(t, user.ID)
		assert.Equal(t, fields.Name.StringValue(), user.Name)
		assert.Equal(t, fields.Email.StringValue(), user.Email)
		assert.Equal(t, entities.GenderMale, user.Gender)
		assert.Equal(t, entities.StatusActive, user.Status)
	})

	t.Run("read existing user", func(t *T) {
		created := t.NewUser(entities.UserFields{
			Name:   ldvalue.NewOptionalString("User for GET"),
			Gender: ldvalue.NewOptionalString(string(entities.GenderFemale)),
		})
		user := RequireRead(t, t.API().Users, created.User.ID)
		assert.Equal(t, created.User, user)
	})

	t.Run("update user", func(t *T) {
		created := t.NewUser(entities.UserFields{
			Name:   ldvalue.NewOptionalString("Original User"),
			Status: ldvalue.NewOptionalString(string(entities.StatusActive)),
		})
		updated, err := t.API().Users.Update(t.Ctx(), created.User.ID, entities.UserFields{
			Name:   ldvalue.NewOptionalString("Updated User"),
			Status: ldvalue.NewOptionalString(string(entities.StatusInactive)),
		})
		require.NoError(t, err)
		assert.Equal(t, created.User.ID, updated.ID)
		assert.Equal(t, "Updated User", updated.Name)
		assert.Equal(t, entities.StatusInactive, updated.Status)

		user := RequireRead(t, t.API().Users, created.User.ID)
		assert.Equal(t, updated, user)
		assert.Equal(t, created.User.Email, user.Email)
		assert.Equal(t, created.User.Gender, user.Gender)
	})

	t.Run("delete user", func(t *T) {
		created := t.NewUser(entities.UserFields{Name: ldvalue.NewOptionalString("User to delete")})
		status, err := t.API().Users.DeleteRaw(t.Ctx(), created.User.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, status)
		RequireAbsent(t, t.API().Users, created.User.ID)
	})

	t.Run("list users", func(t *T) {
		t.NewUser(entities.UserFields{})
		list, err := t.API().Users.ListRaw(t.Ctx())
		require.NoError(t, err)
		assert.NotZero(t, list.Count())
		RequireListItemsHave(t, list, userProperties...)
	})
}
