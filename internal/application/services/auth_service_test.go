package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskplanner/core/internal/domain/entities"
	"github.com/taskplanner/core/internal/infrastructure/config"
	"github.com/taskplanner/core/internal/infrastructure/logger"
	"github.com/taskplanner/core/internal/ports"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entities.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return entities.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return entities.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestAuthService() *AuthService {
	jwtCfg := config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "taskplanner-test",
	}
	return NewAuthService(newFakeUserRepo(), jwtCfg, logger.NewNop())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newTestAuthService()

	registered, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.Empty(t, registered.User.PasswordHash)

	loggedIn, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loggedIn.AccessToken)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "ada@example.com",
		Username: "lovelace",
		Password: "other-password",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), ports.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := newTestAuthService()

	registered, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID.String(), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, entities.UserRoleUser, claims.Role)
}

func TestAuthService_ValidateTokenRejectsTampered(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	other := NewAuthService(newFakeUserRepo(), config.JWTConfig{
		Secret:    "different-secret",
		ExpiresIn: time.Hour,
		Issuer:    "taskplanner-test",
	}, logger.NewNop())

	registered, err := other.Register(context.Background(), ports.RegisterRequest{
		Email:    "eve@example.com",
		Username: "eve",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(registered.AccessToken)
	assert.Error(t, err)
}
