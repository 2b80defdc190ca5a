package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

// PostService manages posts. An author reference is checked against the
// accounts before it is written; the check is not atomic with the write.
type PostService struct {
	posts    posts.Repository
	accounts users.Repository
}

func NewPostService(posts posts.Repository, accounts users.Repository) *PostService {
	return &PostService{posts: posts, accounts: accounts}
}

func (s *PostService) Create(ctx context.Context, in *models.Post) (string, error) {
	if in.Name == "" {
		return "", fmt.Errorf("%w: missing name", common.ErrorValidation)
	}
	if err := s.checkAuthor(ctx, in.Author); err != nil {
		return "", err
	}

	post := *in
	post.ID = ""
	return s.posts.Create(ctx, &post)
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.posts.ListAll(ctx)
}

// Update applies the non-empty fields of in and returns the stored post.
func (s *PostService) Update(ctx context.Context, id string, in *models.Post) (*models.Post, error) {
	if in.Name == "" && in.Date == "" && in.Text == "" && in.Description == "" && in.Author == nil {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrorValidation)
	}
	if err := s.checkAuthor(ctx, in.Author); err != nil {
		return nil, err
	}

	if _, err := s.posts.UpdateByID(ctx, id, in); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.posts.DeleteByID(ctx, id)
}

func (s *PostService) checkAuthor(ctx context.Context, author *string) error {
	if author == nil {
		return nil
	}
	_, err := s.accounts.GetByID(ctx, *author)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorValidation):
		return fmt.Errorf("%w: author %q is not an account id", common.ErrorValidation, *author)
	case errors.Is(err, common.ErrorNotFound):
		return fmt.Errorf("%w: author %q does not exist", common.ErrorValidation, *author)
	default:
		return err
	}
}
