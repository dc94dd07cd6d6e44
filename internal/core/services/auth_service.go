package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/storekit/catalog/internal/core/domain"
	"github.com/storekit/catalog/internal/core/ports"
)

type AuthService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenProvider
}

func NewAuthService(userRepo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenProvider) ports.AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.AuthToken, error) {
	verr := &domain.ValidationError{}

	if input.Name == "" {
		verr.Add("name", "The name field is required.")
	} else if len(input.Name) > 255 {
		verr.Add("name", "The name may not be greater than 255 characters.")
	}

	switch {
	case input.Email == "":
		verr.Add("email", "The email field is required.")
	case !validEmail(input.Email):
		verr.Add("email", "The email must be a valid email address.")
	default:
		existing, err := s.userRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if existing != nil {
			verr.Add("email", "The email has already been taken.")
		}
	}

	switch {
	case input.Password == "":
		verr.Add("password", "The password field is required.")
	case len(input.Password) < 8:
		verr.Add("password", "The password must be at least 8 characters.")
	case input.Password != input.PasswordConfirmation:
		verr.Add("password", "The password confirmation does not match.")
	}

	if verr.HasErrors() {
		return nil, verr
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraint closes the race between concurrent
		// registrations; surface it as the same field error.
		if errors.Is(err, domain.ErrEmailTaken) {
			verr.Add("email", "The email has already been taken.")
			return nil, verr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*domain.AuthToken, error) {
	verr := &domain.ValidationError{}

	switch {
	case input.Email == "":
		verr.Add("email", "The email field is required.")
	case !validEmail(input.Email):
		verr.Add("email", "The email must be a valid email address.")
	}

	switch {
	case input.Password == "":
		verr.Add("password", "The password field is required.")
	case len(input.Password) < 6:
		verr.Add("password", "The password must be at least 6 characters.")
	}

	if verr.HasErrors() {
		return nil, verr
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// Unknown email and wrong password are indistinguishable to the caller.
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *domain.User) (*domain.AuthToken, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.AuthToken{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int(s.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
