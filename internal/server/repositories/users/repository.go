package users

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

// CollectionName is the docstore collection holding accounts.
const CollectionName = "users"

type Repository interface {
	Create(ctx context.Context, account *models.Account) (string, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetUserByLogin(ctx context.Context, login string) (*models.Account, error)
	FindByUsername(ctx context.Context, userName string) (*models.Account, bool, error)
	UpdateByID(ctx context.Context, id string, account *models.Account) (int64, error)
	DeleteByID(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*models.Account, error)
}
