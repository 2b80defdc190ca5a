package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

// --- fakes ---

type fakeHasher struct {
	hashErr     error
	hashCalls   int
	verifyCalls int
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	h.hashCalls++
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Verify(plain, encoded string) bool {
	h.verifyCalls++
	return encoded != "" && encoded == "hashed:"+plain
}

type fakeTokens struct {
	out string
	err error
	got string
}

func (f *fakeTokens) Issue(userName string) (string, error) {
	f.got = userName
	return f.out, f.err
}

type fakeUsersRepo struct {
	accounts map[string]*models.Account
	nextID   int
	err      error

	lastUpdate *models.Account
}

func newFakeUsersRepo(accounts ...*models.Account) *fakeUsersRepo {
	r := &fakeUsersRepo{accounts: map[string]*models.Account{}}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

func (f *fakeUsersRepo) checkID(id string) error {
	if !strings.HasPrefix(id, "id-") {
		return common.ErrorInvalidIdentifier
	}
	return nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, a *models.Account) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for _, v := range f.accounts {
		if v.UserName == a.UserName {
			return "", common.ErrorConflict
		}
	}
	f.nextID++
	cp := *a
	cp.ID = "id-" + string(rune('0'+f.nextID))
	f.accounts[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if err := f.checkID(id); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, login string) (*models.Account, error) {
	a, found, err := f.FindByUsername(ctx, login)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeUsersRepo) FindByUsername(ctx context.Context, userName string) (*models.Account, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	for _, v := range f.accounts {
		if v.UserName == userName {
			cp := *v
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUsersRepo) UpdateByID(ctx context.Context, id string, a *models.Account) (int64, error) {
	if err := f.checkID(id); err != nil {
		return 0, err
	}
	if f.err != nil {
		return 0, f.err
	}
	f.lastUpdate = a
	cur, ok := f.accounts[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	if a.UserName != "" {
		cur.UserName = a.UserName
	}
	if a.PasswordHash != "" {
		cur.PasswordHash = a.PasswordHash
	}
	if a.Name != "" {
		cur.Name = a.Name
	}
	return 1, nil
}

func (f *fakeUsersRepo) DeleteByID(ctx context.Context, id string) error {
	if err := f.checkID(id); err != nil {
		return err
	}
	if _, ok := f.accounts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeUsersRepo) ListAll(ctx context.Context) ([]*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Account, 0, len(f.accounts))
	for _, v := range f.accounts {
		out = append(out, v)
	}
	return out, nil
}

type fakePostsRepo struct {
	created   *models.Post
	updated   *models.Post
	createErr error
	getOut    *models.Post
	getErr    error
	updErr    error
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.Post) (string, error) {
	f.created = p
	if f.createErr != nil {
		return "", f.createErr
	}
	return "post-1", nil
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return f.getOut, f.getErr
}

func (f *fakePostsRepo) UpdateByID(ctx context.Context, id string, p *models.Post) (int64, error) {
	f.updated = p
	if f.updErr != nil {
		return 0, f.updErr
	}
	return 1, nil
}

func (f *fakePostsRepo) DeleteByID(ctx context.Context, id string) error {
	return f.getErr
}

func (f *fakePostsRepo) ListAll(ctx context.Context) ([]*models.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return []*models.Post{f.getOut}, nil
}

var errDBDown = errors.New("db error: connection refused")
