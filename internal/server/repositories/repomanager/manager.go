// Package repomanager vends the repositories of one docstore.Store and
// exposes the store's lifecycle to the app.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Posts() posts.Repository
	Ping(ctx context.Context) error
	Close() error
}

// DocumentRepositoryManager binds every repository to collections of the
// same store.
type DocumentRepositoryManager struct {
	store docstore.Store
	users users.Repository
	posts posts.Repository
}

// NewDocumentRepositoryManager takes ownership of store; Close closes it.
func NewDocumentRepositoryManager(store docstore.Store) *DocumentRepositoryManager {
	return &DocumentRepositoryManager{
		store: store,
		users: users.NewDocumentRepository(store.Collection(users.CollectionName)),
		posts: posts.NewDocumentRepository(store.Collection(posts.CollectionName)),
	}
}

func (m *DocumentRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *DocumentRepositoryManager) Posts() posts.Repository {
	return m.posts
}

func (m *DocumentRepositoryManager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *DocumentRepositoryManager) Close() error {
	return m.store.Close()
}
