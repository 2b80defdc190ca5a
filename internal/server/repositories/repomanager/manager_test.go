package repomanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore/memory"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

func TestNewDocumentRepositoryManager_ReturnsInterface(t *testing.T) {
	var m RepositoryManager = NewDocumentRepositoryManager(memory.New())
	require.NotNil(t, m.Users())
	require.NotNil(t, m.Posts())
}

func TestRepositoriesUseSeparateCollections(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	m := NewDocumentRepositoryManager(store)

	id, err := m.Users().Create(ctx, &models.Account{UserName: "a", PasswordHash: "h", Name: "A"})
	require.NoError(t, err)

	_, err = store.Collection("users").FindOne(ctx, docstore.ByID(id))
	require.NoError(t, err)
	_, err = store.Collection("posts").FindOne(ctx, docstore.ByID(id))
	require.ErrorIs(t, err, docstore.ErrNoDocuments)
}

func TestPingAndClose(t *testing.T) {
	ctx := context.Background()
	m := NewDocumentRepositoryManager(memory.New())

	require.NoError(t, m.Ping(ctx))
	require.NoError(t, m.Close())
	require.ErrorIs(t, m.Ping(ctx), docstore.ErrClosed)
}
