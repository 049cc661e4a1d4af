package apitests

import (
	"context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/entities"
	"github.com/crudcheck/rest-contract-tests/fixtures"
)

var postProperties = []string{"id", "user_id", "title", "body"}

func DoPostTests(t *T) {
	t.Run("create post", func(t *T) {
		owner := t.NewUser(entities.UserFields{})
		post, err := t.API().Posts.Create(t.Ctx(), ldvalue.NewOptionalInt(owner.User.ID), entities.PostFields{
			Title: ldvalue.NewOptionalString("My first post"),
			Body:  ldvalue.NewOptionalString("Post content"),
		})
		require.NoError(t, err)
		t.Track("post", func(ctx context.Context) error { return t.API().Posts.Delete(ctx, post.ID) })

		assert.NotZero(t, post.ID)
		assert.Equal(t, owner.User.ID, post.UserID)
		assert.Equal(t, "My first post", post.Title)
		assert.Equal(t, "Post content", post.Body)
	})

	t.Run("list posts", func(t *T) {
		t.NewPost(fixtures.PostSpec{})
		list, err := t.API().Posts.ListRaw(t.Ctx())
		require.NoError(t, err)
		assert.NotZero(t, list.Count())
		RequireListItemsHave(t, list, postProperties...)
	})

	t.Run("read post", func(t *T) {
		g := t.NewPost(fixtures.PostSpec{})
		post := RequireRead(t, t.API().Posts, g.Post.ID)
		assert.Equal(t, g.Post, post)
	})

	t.Run("update post", func(t *T) {
		g := t.NewPost(fixtures.PostSpec{Post: entities.PostFields{
			Title: ldvalue.NewOptionalString("Original title"),
			Body:  ldvalue.NewOptionalString("Original body"),
		}})
		updated, err := t.API().Posts.Update(t.Ctx(), g.Post.ID, entities.PostFields{
			Title: ldvalue.NewOptionalString("Updated title"),
			Body:  ldvalue.NewOptionalString("Updated body"),
		})
		require.NoError(t, err)
		assert.Equal(t, entities.Post{ID: g.Post.ID, UserID: g.User.ID, Title: "Updated title", Body: "Updated body"}, updated)
		assert.Equal(t, updated, RequireRead(t, t.API().Posts, g.Post.ID))
	})

	t.Run("partial update keeps other fields", func(t *T) {
		g := t.NewPost(fixtures.PostSpec{})
		_, err := t.API().Posts.Update(t.Ctx(), g.Post.ID, entities.PostFields{
			Title: ldvalue.NewOptionalString("Only the title changes"),
		})
		require.NoError(t, err)

		post := RequireRead(t, t.API().Posts, g.Post.ID)
		assert.Equal(t, "Only the title changes", post.Title)
		assert.Equal(t, g.Post.Body, post.Body)
		assert.Equal(t, g.User.ID, post.UserID)
	})

	t.Run("delete post", func(t *T) {
		g := t.NewPost(fixtures.PostSpec{})
		require.NoError(t, g.DeletePost(t.Ctx()))
		RequireAbsent(t, t.API().Posts, g.Post.ID)
		RequireRead(t, t.API().Users, g.User.ID)
	})
}
