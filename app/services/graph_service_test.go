package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgraph/app/repositories"
)

// vanishingFollows fails Add as the store does when the target row is
// deleted between the lookup and the insert.
type vanishingFollows struct {
	repositories.FollowRepository
	err error
}

func (f vanishingFollows) Add(context.Context, uint, uint) (bool, error) {
	return false, f.err
}

func TestGraphService_FollowUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	target, err := env.graph.FollowUser(ctx, alice, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, "bob", target.Username)

	t.Run("following twice is a no-op", func(t *testing.T) {
		_, err := env.graph.FollowUser(ctx, alice, bob.UserID)
		require.NoError(t, err)
		assert.Equal(t, 1, env.store.FollowingCount(alice.UserID))
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := env.graph.FollowUser(ctx, alice, 999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		_, err := env.graph.FollowUser(ctx, alice, alice.UserID)
		assert.ErrorIs(t, err, ErrCannotFollowSelf)
		assert.Equal(t, 1, env.store.FollowingCount(alice.UserID))
	})
}

func TestGraphService_FollowUser_TargetDeletedDuringInsert(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	graph := NewGraphService(env.repos.Users, vanishingFollows{FollowRepository: env.repos.Follows, err: repositories.ErrNotFound})
	_, err := graph.FollowUser(ctx, alice, bob.UserID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	boom := errors.New("connection reset")
	graph = NewGraphService(env.repos.Users, vanishingFollows{FollowRepository: env.repos.Follows, err: boom})
	_, err = graph.FollowUser(ctx, alice, bob.UserID)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestGraphService_UnfollowUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.graph.FollowUser(ctx, alice, bob.UserID)
	require.NoError(t, err)

	target, err := env.graph.UnfollowUser(ctx, alice, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, "bob", target.Username)
	assert.Equal(t, 0, env.store.FollowingCount(alice.UserID))

	// Unfollowing someone not followed still succeeds.
	_, err = env.graph.UnfollowUser(ctx, alice, bob.UserID)
	require.NoError(t, err)

	_, err = env.graph.UnfollowUser(ctx, alice, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGraphService_GetProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	_, err := env.graph.FollowUser(ctx, bob, alice.UserID)
	require.NoError(t, err)
	_, err = env.graph.FollowUser(ctx, carol, alice.UserID)
	require.NoError(t, err)
	_, err = env.graph.FollowUser(ctx, alice, bob.UserID)
	require.NoError(t, err)

	profile, err := env.graph.GetProfile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, int64(2), profile.Followers)
	assert.Equal(t, int64(1), profile.Following)

	profile, err = env.graph.GetProfile(ctx, carol)
	require.NoError(t, err)
	assert.Equal(t, int64(0), profile.Followers)
	assert.Equal(t, int64(1), profile.Following)
}
