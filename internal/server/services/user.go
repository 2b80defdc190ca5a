// Package services contains server-side business logic. UserService handles
// login and account management; PostService manages posts.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) bool
}

// TokenIssuer mints a bearer token for a username.
type TokenIssuer interface {
	Issue(userName string) (string, error)
}

// NewAccount is the body of an account creation request.
type NewAccount struct {
	UserName string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AccountUpdate is the body of an account update. Empty fields are left unchanged.
type AccountUpdate struct {
	UserName string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type UserService struct {
	repo   users.Repository
	hasher PasswordHasher
	tokens TokenIssuer

	// dummyHash is verified against when the user does not exist, so both
	// login failures cost one hash comparison.
	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(repo users.Repository, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{repo: repo, hasher: hasher, tokens: tokens}
}

// Login checks the credentials and returns a signed token. An unknown user
// and a wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {
	if userName == "" || password == "" {
		return "", common.ErrorUnauthorized
	}

	user, err := s.repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummy())
			return "", common.ErrorUnauthorized
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.UserName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}

// Create registers an account and returns its identifier.
func (s *UserService) Create(ctx context.Context, in NewAccount) (string, error) {
	var missing []string
	if strings.TrimSpace(in.UserName) == "" {
		missing = append(missing, "user")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", common.ErrorValidation, strings.Join(missing, ", "))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}

	return s.repo.Create(ctx, &models.Account{UserName: in.UserName, PasswordHash: hash, Name: in.Name})
}

func (s *UserService) Get(ctx context.Context, id string) (*models.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*models.Account, error) {
	return s.repo.ListAll(ctx)
}

// Update applies the non-empty fields of in and returns the stored account.
// A new password is hashed before it is written.
func (s *UserService) Update(ctx context.Context, id string, in AccountUpdate) (*models.Account, error) {
	if in.UserName == "" && in.Password == "" && in.Name == "" {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrorValidation)
	}

	patch := &models.Account{UserName: in.UserName, Name: in.Name}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = hash
	}

	if _, err := s.repo.UpdateByID(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		// a failure leaves the hash empty, which Verify rejects
		s.dummyHash, _ = s.hasher.Hash("login-timing-placeholder")
	})
	return s.dummyHash
}
