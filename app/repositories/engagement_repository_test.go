package repositories

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgraph/app/models"
)

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	repos := NewGormRepositories(setupTestDB(t))

	alice := createTestUser(t, repos.Users, "alice")
	bob := createTestUser(t, repos.Users, "bob")
	first := createTestPost(t, repos.Posts, alice, "first")
	second := createTestPost(t, repos.Posts, alice, "second")

	t.Run("create on existing post", func(t *testing.T) {
		comment := &models.Comment{PostID: first.ID, UserID: bob.ID, Comment: "Nice post"}
		require.NoError(t, repos.Comments.Create(ctx, comment))
		assert.NotZero(t, comment.ID)
		assert.False(t, comment.CreatedAt.IsZero())
	})

	t.Run("create on missing post", func(t *testing.T) {
		comment := &models.Comment{PostID: 9999, UserID: bob.ID, Comment: "Hello?"}
		assert.ErrorIs(t, repos.Comments.Create(ctx, comment), ErrNotFound)
	})

	t.Run("summaries grouped by post", func(t *testing.T) {
		require.NoError(t, repos.Comments.Create(ctx, &models.Comment{PostID: first.ID, UserID: alice.ID, Comment: "Thanks"}))

		summaries, err := repos.Comments.ListSummariesByPosts(ctx, []uint{first.ID, second.ID})
		require.NoError(t, err)
		require.Len(t, summaries[first.ID], 2)
		assert.Empty(t, summaries[second.ID])

		assert.Equal(t, "Nice post", summaries[first.ID][0].Comment)
		assert.Equal(t, "bob", summaries[first.ID][0].Username)
		assert.Equal(t, "alice", summaries[first.ID][1].Username)
	})

	t.Run("no post ids", func(t *testing.T) {
		summaries, err := repos.Comments.ListSummariesByPosts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})
}

func TestLikeRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repos := NewGormRepositories(db)

	alice := createTestUser(t, repos.Users, "alice")
	bob := createTestUser(t, repos.Users, "bob")
	post := createTestPost(t, repos.Posts, alice, "likeable")

	t.Run("upsert is get-or-create", func(t *testing.T) {
		created, err := repos.Likes.Upsert(ctx, post.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = repos.Likes.Upsert(ctx, post.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, created)

		var rows int64
		db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, bob.ID).Count(&rows)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("upsert on missing post", func(t *testing.T) {
		_, err := repos.Likes.Upsert(ctx, 9999, bob.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("counts by post", func(t *testing.T) {
		_, err := repos.Likes.Upsert(ctx, post.ID, alice.ID)
		require.NoError(t, err)

		counts, err := repos.Likes.CountByPosts(ctx, []uint{post.ID, 9999})
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[post.ID])
		assert.Zero(t, counts[9999])
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repos.Likes.Delete(ctx, post.ID, bob.ID))
		assert.ErrorIs(t, repos.Likes.Delete(ctx, post.ID, bob.ID), ErrNotFound)
		assert.ErrorIs(t, repos.Likes.Delete(ctx, 9999, bob.ID), ErrNotFound)
	})
}

func TestLikeRepository_ConcurrentUpsert(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repos := NewGormRepositories(db)

	alice := createTestUser(t, repos.Users, "alice")
	bob := createTestUser(t, repos.Users, "bob")
	post := createTestPost(t, repos.Posts, alice, "contested")

	var created atomic.Int32
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repos.Likes.Upsert(ctx, post.ID, bob.ID)
			if err != nil {
				errs <- err
				return
			}
			if ok {
				created.Add(1)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), created.Load())

	var rows int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, bob.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestEngagementRepository_PostIDZero(t *testing.T) {
	ctx := context.Background()
	repos := NewGormRepositories(setupTestDB(t))
	bob := createTestUser(t, repos.Users, "bob")

	_, err := repos.Likes.Upsert(ctx, 0, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repos.Likes.Delete(ctx, 0, bob.ID), ErrNotFound)
	assert.ErrorIs(t, repos.Comments.Create(ctx, &models.Comment{PostID: 0, UserID: bob.ID, Comment: "hi"}), ErrNotFound)
}
