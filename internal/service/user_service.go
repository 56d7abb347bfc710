package service

import (
	"context"
	"errors"
	"os"
	"regexp"
	"time"

	"forestry-backend/internal/model"
	"forestry-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// DTOs for Request validation
type CreateUserRequest struct {
	Username       string   `json:"username" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=6"`
	Roles          []string `json:"roles" binding:"required,min=1"`
	ForestOfficeID string   `json:"forest_office_id"`
}

type UpdateUserRequest struct {
	Username       string   `json:"username"`
	Email          string   `json:"email" binding:"omitempty,email"`
	Roles          []string `json:"roles"`
	ForestOfficeID string   `json:"forest_office_id"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Roles          []string  `json:"roles"`
	ForestOfficeID *string   `json:"forest_office_id"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	RevokeRefreshToken(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Helper: check that every requested role is one of the approval-chain roles
func validateRoles(roles []string) bool {
	for _, role := range roles {
		switch role {
		case string(model.RoleAdmin), string(model.RoleOperator), string(model.RoleKasi), string(model.RoleKadis):
		default:
			return false
		}
	}
	return len(roles) > 0
}

// Helper: parse model to standard json API response
func mapToResponse(user *model.User) *UserResponse {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Name)
	}

	resp := &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Roles:     roles,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if user.ForestOfficeID != nil {
		id := user.ForestOfficeID.String()
		resp.ForestOfficeID = &id
	}
	return resp
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if !validateRoles(req.Roles) {
		return nil, errors.New("invalid roles: must be admin, operator, kasi, or kadis")
	}

	// Basic Email format validation fallback
	emailRegex := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)
	if !emailRegex.MatchString(req.Email) {
		return nil, errors.New("invalid email format")
	}

	// Double check username/email uniqueness via repo directly
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errors.New("username already exists")
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	roles, err := s.repo.GetRolesByNames(ctx, req.Roles)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(req.Roles) {
		return nil, errors.New("one or more roles are not seeded")
	}

	// Hash password automatically
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Roles:    roles,
	}
	if req.ForestOfficeID != "" {
		officeID, parseErr := uuid.Parse(req.ForestOfficeID)
		if parseErr != nil {
			return nil, errors.New("invalid forest_office_id")
		}
		user.ForestOfficeID = &officeID
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

// signAccessToken issues a short-lived JWT carrying the user's full role set.
func signAccessToken(user *model.User) (string, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Name)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"roles": roles,
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	})

	// Use same fallback strategy as middleware for simplicity here or get from env centrally
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}

	return token.SignedString([]byte(secret))
}

func (s *userService) issueTokenPair(ctx context.Context, user *model.User) (*TokenResponse, error) {
	access, err := signAccessToken(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.repo.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &TokenResponse{Token: access, RefreshToken: refresh.Token}, nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.issueTokenPair(ctx, user)
}

// Refresh exchanges a stored refresh token for a fresh token pair. Tokens are
// single use: the presented token is consumed even when it has expired.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	rec, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	if err := s.repo.DeleteRefreshToken(ctx, rec.Token); err != nil {
		return nil, err
	}
	if time.Now().After(rec.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}

	return s.issueTokenPair(ctx, &rec.User)
}

func (s *userService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var responses []UserResponse
	for _, u := range users {
		responses = append(responses, *mapToResponse(&u))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if len(req.Roles) > 0 {
		if !validateRoles(req.Roles) {
			return nil, errors.New("invalid roles: must be admin, operator, kasi, or kadis")
		}
		roles, rolesErr := s.repo.GetRolesByNames(ctx, req.Roles)
		if rolesErr != nil {
			return nil, rolesErr
		}
		if len(roles) != len(req.Roles) {
			return nil, errors.New("one or more roles are not seeded")
		}
		if err := s.repo.ReplaceRoles(ctx, user, roles); err != nil {
			return nil, err
		}
		user.Roles = roles
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, errors.New("username already exists")
		}
		user.Username = req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, errors.New("email already exists")
		}
		user.Email = req.Email
	}

	if req.ForestOfficeID != "" {
		officeID, parseErr := uuid.Parse(req.ForestOfficeID)
		if parseErr != nil {
			return nil, errors.New("invalid forest_office_id")
		}
		user.ForestOfficeID = &officeID
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	// Let repo handle existence check implicitly or we can check first
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("user not found")
	}
	return s.repo.Delete(ctx, id)
}
