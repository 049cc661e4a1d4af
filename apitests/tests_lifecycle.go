package apitests

import (
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/crudcheck/rest-contract-tests/entities"
	"github.com/crudcheck/rest-contract-tests/fixtures"
	"github.com/crudcheck/rest-contract-tests/identity"
)

const uniqueEmailSamples = 10000

func DoLifecycleTests(t *T) {
	t.Run("post read, partial update, delete", func(t *T) {
		u1 := t.NewUser(entities.UserFields{})
		p1 := t.NewPost(fixtures.PostSpec{Owner: &u1, Post: entities.PostFields{
			Title: ldvalue.NewOptionalString("T"),
			Body:  ldvalue.NewOptionalString("B"),
		}})

		assert.Equal(t, entities.Post{ID: p1.Post.ID, UserID: u1.User.ID, Title: "T", Body: "B"},
			RequireRead(t, t.API().Posts, p1.Post.ID))

		_, err := t.API().Posts.Update(t.Ctx(), p1.Post.ID, entities.PostFields{Title: ldvalue.NewOptionalString("T2")})
		require.NoError(t, err)
		post := RequireRead(t, t.API().Posts, p1.Post.ID)
		assert.Equal(t, "T2", post.Title)
		assert.Equal(t, "B", post.Body)

		require.NoError(t, p1.DeletePost(t.Ctx()))
		RequireAbsent(t, t.API().Posts, p1.Post.ID)
		require.NoError(t, u1.DeleteUser(t.Ctx()))
		RequireAbsent(t, t.API().Users, u1.User.ID)
	})

	t.Run("nested comments, deleted children first", func(t *T) {
		p2 := t.NewPost(fixtures.PostSpec{})
		c1 := t.NewComment(fixtures.CommentSpec{Parent: &p2})
		c2 := t.NewComment(fixtures.CommentSpec{Parent: &p2})

		comments, err := t.API().Comments.ListUnder(t.Ctx(), p2.Post.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{c1.Comment.ID, c2.Comment.ID}, commentIDs(comments))
		for _, c := range comments {
			assert.Equal(t, p2.Post.ID, c.PostID)
		}

		require.NoError(t, c1.DeleteComment(t.Ctx()))
		require.NoError(t, c2.DeleteComment(t.Ctx()))
		require.NoError(t, p2.DeletePost(t.Ctx()))
		require.NoError(t, p2.DeleteUser(t.Ctx()))
		RequireAbsent(t, t.API().Comments, c1.Comment.ID)
		RequireAbsent(t, t.API().Comments, c2.Comment.ID)
		RequireAbsent(t, t.API().Posts, p2.Post.ID)
		RequireAbsent(t, t.API().Users, p2.User.ID)
	})

	t.Run("composed comment reads back consistently", func(t *T) {
		g := t.NewComment(fixtures.CommentSpec{})
		user := RequireRead(t, t.API().Users, g.User.ID)
		post := RequireRead(t, t.API().Posts, g.Post.ID)
		comment := RequireRead(t, t.API().Comments, g.Comment.ID)

		assert.Equal(t, g.User, user)
		assert.Equal(t, user.ID, post.UserID)
		assert.Equal(t, post.ID, comment.PostID)
	})

	t.Run("created entities are removed when the test ends", func(t *T) {
		var g fixtures.CommentGraph
		t.Run("create", func(t *T) {
			g = t.NewComment(fixtures.CommentSpec{})
		})
		RequireAbsent(t, t.API().Comments, g.Comment.ID)
		RequireAbsent(t, t.API().Posts, g.Post.ID)
		RequireAbsent(t, t.API().Users, g.User.ID)
	})

	t.Run("generated emails are unique", func(t *T) {
		seen := make(map[string]struct{}, uniqueEmailSamples)
		for i := 0; i < uniqueEmailSamples; i++ {
			email := identity.UniqueEmail("qa")
			require.Equal(t, 1, strings.Count(email, "@"), email)
			_, dup := seen[email]
			require.False(t, dup, "duplicate email %s", email)
			seen[email] = struct{}{}
		}
	})
}
