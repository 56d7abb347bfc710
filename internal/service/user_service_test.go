package service

import (
	"context"
	"testing"
	"time"

	"forestry-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository for exercising the auth flows
// without a database.
type fakeUserRepo struct {
	users         map[uuid.UUID]*model.User
	refreshTokens map[string]*model.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         make(map[uuid.UUID]*model.User),
		refreshTokens: make(map[string]*model.RefreshToken),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	user, ok := f.users[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	users := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(f.users, parsed)
	return nil
}

func (f *fakeUserRepo) GetRolesByNames(_ context.Context, names []string) ([]model.Role, error) {
	roles := make([]model.Role, 0, len(names))
	for _, name := range names {
		roles = append(roles, model.Role{ID: uuid.New(), Name: name, IsSystem: true})
	}
	return roles, nil
}

func (f *fakeUserRepo) ReplaceRoles(_ context.Context, user *model.User, roles []model.Role) error {
	user.Roles = roles
	return nil
}

func (f *fakeUserRepo) CreateRefreshToken(_ context.Context, token *model.RefreshToken) error {
	f.refreshTokens[token.Token] = token
	return nil
}

func (f *fakeUserRepo) GetRefreshToken(_ context.Context, token string) (*model.RefreshToken, error) {
	rec, ok := f.refreshTokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *rec
	if user, ok := f.users[rec.UserID]; ok {
		out.User = *user
	}
	return &out, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(_ context.Context, token string) error {
	delete(f.refreshTokens, token)
	return nil
}

func seedOperator(t *testing.T, repo *fakeUserRepo, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		ID:       uuid.New(),
		Username: "operator-banyumas",
		Email:    email,
		Password: string(hash),
		Roles:    []model.Role{{ID: uuid.New(), Name: "operator", IsSystem: true}},
	}
	repo.users[user.ID] = user
	return user
}

func TestLoginPersistsRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedOperator(t, repo, "op@forestry.test", "hutan-lestari")
	svc := NewUserService(repo)

	pair, err := svc.Login(context.Background(), LoginUserRequest{Email: "op@forestry.test", Password: "hutan-lestari"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Token)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Contains(t, repo.refreshTokens, pair.RefreshToken)
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedOperator(t, repo, "op@forestry.test", "hutan-lestari")
	svc := NewUserService(repo)

	pair, err := svc.Login(context.Background(), LoginUserRequest{Email: "op@forestry.test", Password: "hutan-lestari"})
	require.NoError(t, err)

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.Token)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// Single use: the old token is consumed, only the rotated one survives.
	assert.NotContains(t, repo.refreshTokens, pair.RefreshToken)
	assert.Contains(t, repo.refreshTokens, next.RefreshToken)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorContains(t, err, "invalid refresh token")
}

func TestRefreshConsumesExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedOperator(t, repo, "op@forestry.test", "hutan-lestari")
	repo.refreshTokens["stale"] = &model.RefreshToken{
		UserID:    user.ID,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	svc := NewUserService(repo)

	_, err := svc.Refresh(context.Background(), "stale")
	assert.ErrorContains(t, err, "expired")
	assert.NotContains(t, repo.refreshTokens, "stale")
}

func TestRevokeRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedOperator(t, repo, "op@forestry.test", "hutan-lestari")
	svc := NewUserService(repo)

	pair, err := svc.Login(context.Background(), LoginUserRequest{Email: "op@forestry.test", Password: "hutan-lestari"})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeRefreshToken(context.Background(), pair.RefreshToken))
	assert.NotContains(t, repo.refreshTokens, pair.RefreshToken)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.Error(t, err)
}
