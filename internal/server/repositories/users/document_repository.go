// Package users stores accounts. Usernames are unique: Create looks the
// name up first and refuses a duplicate with common.ErrorConflict.
package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/docstore"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/crud"
)

const (
	fieldUserName = "user"
	fieldPassword = "password"
)

type DocumentRepository struct {
	*crud.Repository[models.Account]
}

var _ Repository = (*DocumentRepository)(nil)

func NewDocumentRepository(coll docstore.Collection) *DocumentRepository {
	return &DocumentRepository{Repository: crud.New[models.Account](coll, accountCodec{})}
}

// Create inserts account unless its username is taken. The check and the
// insert are two store calls, so two racing creates can both succeed.
func (r *DocumentRepository) Create(ctx context.Context, account *models.Account) (string, error) {
	_, found, err := r.FindByUsername(ctx, account.UserName)
	if err != nil {
		return "", err
	}
	if found {
		return "", fmt.Errorf("%w: user %q", common.ErrorConflict, account.UserName)
	}
	return r.Repository.Create(ctx, account)
}

func (r *DocumentRepository) FindByUsername(ctx context.Context, userName string) (*models.Account, bool, error) {
	return r.FindOne(ctx, docstore.Filter{fieldUserName: userName})
}

func (r *DocumentRepository) GetUserByLogin(ctx context.Context, login string) (*models.Account, error) {
	account, found, err := r.FindByUsername(ctx, login)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, common.ErrorNotFound
	}
	return account, nil
}

// accountCodec persists PasswordHash under "password", which the JSON form
// of models.Account leaves out.
type accountCodec struct{}

func (accountCodec) Encode(a *models.Account) (docstore.Document, error) {
	doc, err := docstore.Encode(a)
	if err != nil {
		return nil, err
	}
	doc[fieldPassword] = a.PasswordHash
	return doc, nil
}

func (accountCodec) Decode(doc docstore.Document) (*models.Account, error) {
	a := &models.Account{}
	if err := docstore.Decode(doc, a); err != nil {
		return nil, err
	}
	if v, ok := doc[fieldPassword]; ok {
		s, isString := v.(string)
		if !isString {
			return nil, fmt.Errorf("decode document: %s is %T, want string", fieldPassword, v)
		}
		a.PasswordHash = s
	}
	return a, nil
}

func (c accountCodec) Fields(a *models.Account) (docstore.Fields, error) {
	doc, err := c.Encode(a)
	if err != nil {
		return nil, err
	}
	return crud.NonEmpty(doc), nil
}
