package posts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore/memory"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

func TestPostLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository(memory.New().Collection(CollectionName))
	author := docstore.NewID()

	id, err := repo.Create(ctx, &models.Post{Name: "Hello", Date: "2024-01-01", Text: "body", Description: "d", Author: &author})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Name)
	require.NotNil(t, got.Author)
	assert.Equal(t, author, *got.Author)

	_, err = repo.UpdateByID(ctx, id, &models.Post{Text: "edited"})
	require.NoError(t, err)

	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.Equal(t, "Hello", got.Name)
	require.NotNil(t, got.Author, "nil author in an update leaves it alone")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteByID(ctx, id))
	_, err = repo.GetByID(ctx, id)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostWithoutAuthor(t *testing.T) {
	ctx := context.Background()
	coll := memory.New().Collection(CollectionName)
	repo := NewDocumentRepository(coll)

	id, err := repo.Create(ctx, &models.Post{Name: "anon"})
	require.NoError(t, err)

	raw, err := coll.FindOne(ctx, docstore.ByID(id))
	require.NoError(t, err)
	_, has := raw["author"]
	assert.False(t, has)
}
