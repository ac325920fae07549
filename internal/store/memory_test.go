package store

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreCreatePost(t *testing.T) {
	st := NewMemStore()
	st.SeedUser(models.User{ID: 1, Email: "one@example.com"})

	post := &models.Post{Text: "hi"}
	require.NoError(t, st.CreatePost(post, 1))
	assert.NotZero(t, post.ID)

	got, err := st.PostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Text)
	assert.Equal(t, models.TagList{}, got.Tags)

	authors, err := st.AuthorIDs(post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, authors)
}

func TestMemStorePostByIDNotFound(t *testing.T) {
	st := NewMemStore()
	_, err := st.PostByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStorePostsByAuthorEmpty(t *testing.T) {
	st := NewMemStore()
	posts, err := st.PostsByAuthor(42)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NotNil(t, posts)
}

func TestMemStoreDuplicateAuthorshipRejected(t *testing.T) {
	st := NewMemStore()
	st.SeedPost(models.Post{ID: 1, Text: "hi"}, 1)

	post, err := st.PostByID(1)
	require.NoError(t, err)
	err = st.ApplyPostPatch(post, []uint{1}, nil)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemStoreSetPopularityBound(t *testing.T) {
	st := NewMemStore()
	st.SeedPost(models.Post{ID: 1, Text: "hi"}, 1)

	assert.ErrorIs(t, st.SetPopularity(1, 1.5), models.ErrPopularityBound)
	assert.ErrorIs(t, st.SetPopularity(1, -0.5), models.ErrPopularityBound)

	for _, popularity := range []float64{0.0, 0.42, 1.0} {
		require.NoError(t, st.SetPopularity(1, popularity))
		post, err := st.PostByID(1)
		require.NoError(t, err)
		assert.Equal(t, popularity, post.Popularity)
	}

	assert.ErrorIs(t, st.SetPopularity(99, 0.5), ErrNotFound)
}

func TestMemStoreCounters(t *testing.T) {
	st := NewMemStore()
	st.SeedPost(models.Post{ID: 1, Text: "hi", Likes: 2, Reads: 7}, 1)

	likes, err := st.IncrementLikes(1)
	require.NoError(t, err)
	assert.Equal(t, 3, likes)

	reads, err := st.IncrementReads(1)
	require.NoError(t, err)
	assert.Equal(t, 8, reads)

	_, err = st.IncrementLikes(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreUsers(t *testing.T) {
	st := NewMemStore()

	user := models.User{Username: "ada", Email: "ada@example.com"}
	require.NoError(t, st.CreateUser(&user))
	assert.NotZero(t, user.ID)

	dup := models.User{Username: "eve", Email: "ada@example.com"}
	assert.ErrorIs(t, st.CreateUser(&dup), ErrDuplicate)

	got, err := st.UserByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	exists, err := st.UserExists(user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = st.UserExists(404)
	require.NoError(t, err)
	assert.False(t, exists)
}
