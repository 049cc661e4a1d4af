package apitests

import (
	"context"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/entities"
	"github.com/crudcheck/rest-contract-tests/fixtures"
)

var commentProperties = []string{"id", "post_id", "name", "email", "body"}

func DoCommentTests(t *T) {
	t.Run("create comment", func(t *T) {
		parent := t.NewPost(fixtures.PostSpec{})
		comment, err := t.API().Comments.Create(t.Ctx(), ldvalue.NewOptionalInt(parent.Post.ID), entities.CommentFields{
			Name: ldvalue.NewOptionalString("João Silva"),
			Body: ldvalue.NewOptionalString("Excellent post!"),
		})
		require.NoError(t, err)
		t.Track("comment", func(ctx context.Context) error { return t.API().Comments.Delete(ctx, comment.ID) })

		assert.NotZero(t, comment.ID)
		assert.Equal(t, parent.Post.ID, comment.PostID)
		assert.Equal(t, "João Silva", comment.Name)
		assert.Equal(t, "Excellent post!", comment.Body)
		assert.Equal(t, 1, strings.Count(comment.Email, "@"), comment.Email)
	})

	t.Run("list comments", func(t *T) {
		t.NewComment(fixtures.CommentSpec{})
		list, err := t.API().Comments.ListRaw(t.Ctx())
		require.NoError(t, err)
		assert.NotZero(t, list.Count())
		RequireListItemsHave(t, list, commentProperties...)
	})

	t.Run("read comment", func(t *T) {
		g := t.NewComment(fixtures.CommentSpec{})
		comment := RequireRead(t, t.API().Comments, g.Comment.ID)
		assert.Equal(t, g.Comment.ID, comment.ID)
		assert.Equal(t, g.Post.ID, comment.PostID)
	})

	t.Run("update comment", func(t *T) {
		g := t.NewComment(fixtures.CommentSpec{Comment: entities.CommentFields{
			Name: ldvalue.NewOptionalString("Original name"),
			Body: ldvalue.NewOptionalString("Original comment"),
		}})
		updated, err := t.API().Comments.Update(t.Ctx(), g.Comment.ID, entities.CommentFields{
			Name: ldvalue.NewOptionalString("Updated name"),
			Body: ldvalue.NewOptionalString("Updated comment"),
		})
		require.NoError(t, err)
		assert.Equal(t, g.Comment.ID, updated.ID)
		assert.Equal(t, "Updated name", updated.Name)
		assert.Equal(t, "Updated comment", updated.Body)
		assert.Equal(t, g.Comment.Email, updated.Email)
	})

	t.Run("delete comment", func(t *T) {
		g := t.NewComment(fixtures.CommentSpec{})
		require.NoError(t, g.DeleteComment(t.Ctx()))
		RequireAbsent(t, t.API().Comments, g.Comment.ID)
	})

	t.Run("list comments of a post", func(t *T) {
		parent := t.NewPost(fixtures.PostSpec{})
		c1 := t.NewComment(fixtures.CommentSpec{Parent: &parent})
		c2 := t.NewComment(fixtures.CommentSpec{Parent: &parent})
		t.NewComment(fixtures.CommentSpec{}) // on another post

		comments, err := t.API().Comments.ListUnder(t.Ctx(), parent.Post.ID)
		require.NoError(t, err)
		for _, c := range comments {
			assert.Equal(t, parent.Post.ID, c.PostID, "comment %d", c.ID)
		}
		assert.ElementsMatch(t, []int{c1.Comment.ID, c2.Comment.ID}, commentIDs(comments))
	})
}

func commentIDs(comments []entities.Comment) []int {
	ids := make([]int, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	return ids
}
