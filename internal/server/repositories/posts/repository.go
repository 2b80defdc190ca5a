// Package posts stores blog posts.
package posts

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/crud"
)

// CollectionName is the docstore collection holding posts.
const CollectionName = "posts"

type Repository interface {
	Create(ctx context.Context, post *models.Post) (string, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	UpdateByID(ctx context.Context, id string, post *models.Post) (int64, error)
	DeleteByID(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*models.Post, error)
}

type DocumentRepository struct {
	*crud.Repository[models.Post]
}

var _ Repository = (*DocumentRepository)(nil)

func NewDocumentRepository(coll docstore.Collection) *DocumentRepository {
	return &DocumentRepository{Repository: crud.New[models.Post](coll, crud.JSONCodec[models.Post]{})}
}
