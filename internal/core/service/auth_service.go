package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
	"github.com/inkmarket/commission-market/internal/core/validate"
)

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	cards     ports.CardService
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, cards ports.CardService, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, cards: cards, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register creates a new account. Artist registrations get an empty profile
// seeded from the input plus a browse card; the admin role is never
// self-assignable.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username, err := validate.String("username", input.Username)
	if err != nil {
		return nil, err
	}
	email, err := validate.String("email", input.Email)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "must be a valid email")
	}
	if len(input.Password) < 8 {
		return nil, domain.NewValidationError("password", "must be at least 8 characters")
	}
	if input.Role != domain.RoleUser && input.Role != domain.RoleArtist {
		return nil, domain.NewValidationError("role", "must be user or artist")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Role:                 input.Role,
		Username:             strings.ToLower(username),
		Email:                strings.ToLower(email),
		PasswordHash:         string(hash),
		RequestedCommissions: []string{},
		ReviewsGiven:         []string{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if input.Role == domain.RoleArtist {
		user.ArtistProfile = newArtistProfile(input.Bio, input.TOS, input.Tags)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if created.IsArtist() {
		card, err := s.cards.CreateForArtist(ctx, created)
		if err != nil {
			// The account exists either way; the card can be recreated.
			s.logger.Error().Err(err).Str("artist_id", created.ID).Msg("failed to create card for new artist")
			return nil, err
		}
		created.ArtistProfile.CardID = card.ID
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and returns a signed token plus the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func newArtistProfile(bio, tos string, tags []string) *domain.ArtistProfile {
	if tags == nil {
		tags = []string{}
	}
	return &domain.ArtistProfile{
		Bio:                bio,
		Portfolio:          []string{},
		PricingInfo:        map[string]float64{},
		Tags:               tags,
		Availability:       true,
		TOS:                tos,
		CreatedCommissions: []string{},
		ReviewsReceived:    []string{},
	}
}
