// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/pkg/configpkg"
	"github.com/securebank/ledger/pkg/passpkg"
	"github.com/securebank/ledger/pkg/tokenpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo       Repo
	config     configpkg.Config
	TokenMaker tokenpkg.Maker
}

// New returns user service struct to manage user business logic.
func New(ur Repo, config configpkg.Config, tokenMaker tokenpkg.Maker) *Service {
	return &Service{
		repo:       ur,
		config:     config,
		TokenMaker: tokenMaker,
	}
}

// RegisterParams is the input data for user registration.
type RegisterParams struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// Register creates a customer user with a hashed password.
func (s *Service) Register(ctx context.Context, arg RegisterParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	hashedPassword, err := passpkg.Hash(arg.Password)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, err
	}

	user, err := s.repo.Create(ctx, domain.CreateUserParams{
		Email:          arg.Email,
		HashedPassword: hashedPassword,
		FullName:       arg.FullName,
		Phone:          arg.Phone,
		Role:           domain.RoleCustomer,
	})
	if err != nil {
		return user, err
	}

	l.Info().Str("user_id", user.ID).Msg("user registered")

	return user, nil
}

// Login verifies the credentials and returns the user with an access token.
// A wrong email and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}

		return domain.User{}, "", err
	}

	if err := passpkg.Check(password, user.HashedPassword); err != nil {
		l.Info().Str("email", email).Msg("failed login attempt")
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, _, err := s.TokenMaker.CreateToken(user.ID, user.Email, string(user.Role), s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, "", err
	}

	return user, token, nil
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	return s.repo.Get(ctx, id)
}
