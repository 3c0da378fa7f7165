package ports

import (
	"context"

	"github.com/taskplanner/core/internal/domain/entities"
)

// TaskService interface for task management operations.
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id int) (*entities.Task, error)
	UpdateTask(ctx context.Context, id int, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id int) error
	ListTasks(ctx context.Context) ([]*entities.Task, error)
}

// AuthService interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// Request/Response Types

type CreateTaskRequest struct {
	Title       string              `json:"title" validate:"required,max=50"`
	Description string              `json:"description"`
	Status      entities.TaskStatus `json:"status" validate:"required"`
	DueDate     *string             `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Title       *string              `json:"title" validate:"omitempty,max=50"`
	Description *string              `json:"description"`
	Status      *entities.TaskStatus `json:"status"`
	DueDate     *string              `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

// TokenClaims carries the identity extracted from a validated access token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   entities.UserRole
}
