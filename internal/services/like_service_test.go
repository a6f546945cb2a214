package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavely-app/backend/internal/pagination"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPolicy() pagination.Policy {
	return pagination.NewPolicy(pagination.DefaultPageSize, pagination.MaxPageSize)
}

func TestLikeIncrementsCounter(t *testing.T) {
	store := newMemStore()
	author := store.seedUser("ana", "ana@example.com")
	liker := store.seedUser("bo", "bo@example.com")
	post := store.seedPost(author.ID, "hello")

	svc := NewLikeService(store, testPolicy(), testLogger())

	count, err := svc.Like(context.Background(), liker.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := store.Posts().GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LikesCount)
	assert.Equal(t, 1, store.likeRowCount(post.ID))
}

func TestLikeTwiceRejectsSecond(t *testing.T) {
	store := newMemStore()
	author := store.seedUser("ana", "ana@example.com")
	liker := store.seedUser("bo", "bo@example.com")
	post := store.seedPost(author.ID, "hello")

	svc := NewLikeService(store, testPolicy(), testLogger())
	ctx := context.Background()

	_, err := svc.Like(ctx, liker.ID, post.ID)
	require.NoError(t, err)

	_, err = svc.Like(ctx, liker.ID, post.ID)
	require.Error(t, err)
	assert.Equal(t, KindAlreadyLiked, KindOf(err))

	// the rejected like must not move the counter
	stored, err := store.Posts().GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.LikesCount)
	assert.Equal(t, 1, store.likeRowCount(post.ID))
}

func TestUnlikeWithoutLike(t *testing.T) {
	store := newMemStore()
	author := store.seedUser("ana", "ana@example.com")
	viewer := store.seedUser("bo", "bo@example.com")
	post := store.seedPost(author.ID, "hello")

	svc := NewLikeService(store, testPolicy(), testLogger())

	_, err := svc.Unlike(context.Background(), viewer.ID, post.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotLiked, KindOf(err))

	stored, err := store.Posts().GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.LikesCount)
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	store := newMemStore()
	author := store.seedUser("ana", "ana@example.com")
	post := store.seedPost(author.ID, "hello")
	svc := NewLikeService(store, testPolicy(), testLogger())
	ctx := context.Background()

	var likerIDs []uint
	for _, name := range []string{"u1", "u2", "u3"} {
		u := store.seedUser(name, name+"@example.com")
		likerIDs = append(likerIDs, u.ID)
		_, err := svc.Like(ctx, u.ID, post.ID)
		require.NoError(t, err)
	}

	count, err := svc.Unlike(ctx, likerIDs[1], post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// counter equals the surviving relation rows
	stored, err := store.Posts().GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	rows, err := store.Likes().CountByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int(rows), stored.LikesCount)
	assert.GreaterOrEqual(t, stored.LikesCount, 0)
}

func TestLikeMissingPost(t *testing.T) {
	store := newMemStore()
	liker := store.seedUser("bo", "bo@example.com")
	svc := NewLikeService(store, testPolicy(), testLogger())

	_, err := svc.Like(context.Background(), liker.ID, 999)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestLikeRequiresAuthentication(t *testing.T) {
	store := newMemStore()
	author := store.seedUser("ana", "ana@example.com")
	post := store.seedPost(author.ID, "hello")
	svc := NewLikeService(store, testPolicy(), testLogger())

	_, err := svc.Like(context.Background(), 0, post.ID)
	require.Error(t, err)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestListLikesNewestFirst(t *testing.T) {
	store := newMemStore()
	author := store.seedUser("ana", "ana@example.com")
	post := store.seedPost(author.ID, "hello")
	svc := NewLikeService(store, testPolicy(), testLogger())
	ctx := context.Background()

	first := store.seedUser("u1", "u1@example.com")
	second := store.seedUser("u2", "u2@example.com")
	_, err := svc.Like(ctx, first.ID, post.ID)
	require.NoError(t, err)
	_, err = svc.Like(ctx, second.ID, post.ID)
	require.NoError(t, err)

	likes, err := svc.ListLikes(ctx, post.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Equal(t, second.ID, likes[0].UserID)
	assert.Equal(t, first.ID, likes[1].UserID)
	assert.Equal(t, "u2", likes[0].Name)
}

func TestListLikesMissingPost(t *testing.T) {
	store := newMemStore()
	svc := NewLikeService(store, testPolicy(), testLogger())

	_, err := svc.ListLikes(context.Background(), 42, 0, 0)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestHasLiked(t *testing.T) {
	store := newMemStore()
	author := store.seedUser("ana", "ana@example.com")
	liker := store.seedUser("bo", "bo@example.com")
	post := store.seedPost(author.ID, "hello")
	svc := NewLikeService(store, testPolicy(), testLogger())
	ctx := context.Background()

	liked, err := svc.HasLiked(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = svc.Like(ctx, liker.ID, post.ID)
	require.NoError(t, err)

	liked, err = svc.HasLiked(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}
