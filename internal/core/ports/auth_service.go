package ports

import (
	"context"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

// RegisterInput carries a new account registration. Artist registrations may
// seed the profile fields; the rest start at their zero values.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Bio      string
	TOS      string
	Tags     []string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
