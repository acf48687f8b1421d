package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SteveHaveIt/Blog/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndGetPost(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreatePost(ctx, model.InsertPost{
		Type:      model.TypeBlog,
		Title:     "Hello",
		Content:   "First post body",
		Author:    "Steve Have It",
		Tags:      []string{"tech", "intro"},
		Slug:      "hello",
		Published: true,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)

	got, err := store.PostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TypeBlog, got.Type)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "First post body", got.Content)
	assert.Equal(t, []string{"tech", "intro"}, got.Tags)
	assert.Equal(t, "hello", got.Slug)
	assert.True(t, got.Published)
	assert.Nil(t, got.PublishedAt)
}

func TestCreatePostInvalidType(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreatePost(context.Background(), model.InsertPost{
		Type:    model.PostType("podcast"),
		Content: "body",
	})
	assert.Error(t, err)
}

func TestPostByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.PostByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostsFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreatePost(ctx, model.InsertPost{Type: model.TypeBlog, Content: "a", Published: true})
	require.NoError(t, err)
	_, err = store.CreatePost(ctx, model.InsertPost{Type: model.TypeVlog, Content: "b", Published: false})
	require.NoError(t, err)
	_, err = store.CreatePost(ctx, model.InsertPost{Type: model.TypeBlog, Content: "c", Published: false})
	require.NoError(t, err)

	all, err := store.Posts(ctx, model.PostFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	blogs, err := store.Posts(ctx, model.PostFilter{Type: model.TypeBlog})
	require.NoError(t, err)
	assert.Len(t, blogs, 2)

	published := true
	livePosts, err := store.Posts(ctx, model.PostFilter{Published: &published})
	require.NoError(t, err)
	require.Len(t, livePosts, 1)
	assert.Equal(t, "a", livePosts[0].Content)

	unpublished := false
	draftBlogs, err := store.Posts(ctx, model.PostFilter{Type: model.TypeBlog, Published: &unpublished})
	require.NoError(t, err)
	require.Len(t, draftBlogs, 1)
	assert.Equal(t, "c", draftBlogs[0].Content)
}

func TestRecentPostsOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		_, err := store.CreatePost(ctx, model.InsertPost{
			Type:      model.TypeBlog,
			Title:     string(rune('a' + i)),
			Content:   "body body body",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	recent, err := store.RecentPosts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "g", recent[0].Title, "newest first")
	assert.Equal(t, "c", recent[4].Title)
}

func TestUpdatePost(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreatePost(ctx, model.InsertPost{Type: model.TypeBlog, Title: "old", Content: "body"})
	require.NoError(t, err)

	newTitle := "new"
	newType := model.TypeStory
	updated, err := store.UpdatePost(ctx, created.ID, model.UpdatePost{
		Title: &newTitle,
		Type:  &newType,
		Tags:  []string{"edited"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, model.TypeStory, updated.Type)
	assert.Equal(t, []string{"edited"}, updated.Tags)
	assert.Equal(t, "body", updated.Content, "unset fields stay untouched")

	_, err = store.UpdatePost(ctx, uuid.NewString(), model.UpdatePost{Title: &newTitle})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishPost(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreatePost(ctx, model.InsertPost{Type: model.TypeVlog, Content: "body"})
	require.NoError(t, err)
	require.False(t, created.Published)

	published, err := store.PublishPost(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishedAt)

	_, err = store.PublishPost(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreatePost(ctx, model.InsertPost{Type: model.TypeBlog, Content: "body"})
	require.NoError(t, err)

	require.NoError(t, store.DeletePost(ctx, created.ID))

	_, err = store.PostByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.DeletePost(ctx, created.ID))
}
