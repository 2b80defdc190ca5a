package users

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

func newRepo(t *testing.T) (*DocumentRepository, docstore.Collection) {
	t.Helper()
	coll := memory.New().Collection(CollectionName)
	return NewDocumentRepository(coll), coll
}

func TestCreate_StoresHashUnderPassword(t *testing.T) {
	ctx := context.Background()
	repo, coll := newRepo(t)

	id, err := repo.Create(ctx, &models.Account{UserName: "alice", PasswordHash: "$argon2id$x", Name: "Alice"})
	require.NoError(t, err)

	raw, err := coll.FindOne(ctx, docstore.ByID(id))
	require.NoError(t, err)
	assert.Equal(t, "alice", raw["user"])
	assert.Equal(t, "$argon2id$x", raw["password"])
	assert.Equal(t, "Alice", raw["name"])

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &models.Account{ID: id, UserName: "alice", PasswordHash: "$argon2id$x", Name: "Alice"}, got)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	_, err := repo.Create(ctx, &models.Account{UserName: "alice", PasswordHash: "h1", Name: "A"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Account{UserName: "alice", PasswordHash: "h2", Name: "B"})
	require.ErrorIs(t, err, common.ErrorConflict)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "h1", all[0].PasswordHash)
}

func TestGetUserByLogin(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	id, err := repo.Create(ctx, &models.Account{UserName: "alice", PasswordHash: "h", Name: "A"})
	require.NoError(t, err)

	got, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = repo.GetUserByLogin(ctx, "bob")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, found, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateByID_KeepsUnsetFields(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	id, err := repo.Create(ctx, &models.Account{UserName: "alice", PasswordHash: "h", Name: "A"})
	require.NoError(t, err)

	_, err = repo.UpdateByID(ctx, id, &models.Account{Name: "Alice Liddell"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, "h", got.PasswordHash)
	assert.Equal(t, "Alice Liddell", got.Name)
}

func TestDecode_BadPasswordType(t *testing.T) {
	_, err := accountCodec{}.Decode(docstore.Document{"user": "a", "password": float64(1)})
	require.Error(t, err)
}
