package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/storekit/catalog/internal/adapters/hash"
	"github.com/storekit/catalog/internal/adapters/repository/memory"
	"github.com/storekit/catalog/internal/adapters/token/jwt"
	"github.com/storekit/catalog/internal/core/domain"
	"github.com/storekit/catalog/internal/core/ports"
)

func newAuthService() (ports.AuthService, ports.UserRepository, ports.PasswordHasher) {
	userRepo := memory.NewUserRepository()
	hasher := hash.NewBcryptHasher(bcrypt.MinCost)
	tokens := jwt.NewProvider([]byte("test-secret"), time.Hour)
	return NewAuthService(userRepo, hasher, tokens), userRepo, hasher
}

func validRegisterInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:                 "Jordan Doe",
		Email:                "jordan@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token and user", func(t *testing.T) {
		svc, _, _ := newAuthService()

		token, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		assert.NotEmpty(t, token.Token)
		assert.Equal(t, "bearer", token.TokenType)
		assert.Equal(t, 3600, token.ExpiresIn)
		assert.Equal(t, "jordan@example.com", token.User.Email)
		assert.NotZero(t, token.User.ID)
	})

	t.Run("never stores the raw password", func(t *testing.T) {
		svc, userRepo, hasher := newAuthService()

		_, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		user, err := userRepo.GetByEmail(ctx, "jordan@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.NotEqual(t, "password123", user.PasswordHash)

		ok, err := hasher.Verify("password123", user.PasswordHash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _, _ := newAuthService()

		_, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		_, err = svc.Register(ctx, validRegisterInput())
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors, "email")
	})

	t.Run("validates input", func(t *testing.T) {
		tests := []struct {
			name     string
			mutate   func(*ports.RegisterInput)
			wantKeys []string
		}{
			{
				name:     "missing name",
				mutate:   func(in *ports.RegisterInput) { in.Name = "" },
				wantKeys: []string{"name"},
			},
			{
				name: "name too long",
				mutate: func(in *ports.RegisterInput) {
					for len(in.Name) <= 255 {
						in.Name += "x"
					}
				},
				wantKeys: []string{"name"},
			},
			{
				name:     "invalid email",
				mutate:   func(in *ports.RegisterInput) { in.Email = "not-an-email" },
				wantKeys: []string{"email"},
			},
			{
				name:     "short password",
				mutate:   func(in *ports.RegisterInput) { in.Password = "short"; in.PasswordConfirmation = "short" },
				wantKeys: []string{"password"},
			},
			{
				name:     "confirmation mismatch",
				mutate:   func(in *ports.RegisterInput) { in.PasswordConfirmation = "different123" },
				wantKeys: []string{"password"},
			},
			{
				name: "everything missing",
				mutate: func(in *ports.RegisterInput) {
					*in = ports.RegisterInput{}
				},
				wantKeys: []string{"name", "email", "password"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, _, _ := newAuthService()
				input := validRegisterInput()
				tt.mutate(&input)

				_, err := svc.Register(ctx, input)
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				for _, key := range tt.wantKeys {
					assert.Contains(t, verr.Errors, key)
				}
			})
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token for valid credentials", func(t *testing.T) {
		svc, _, _ := newAuthService()
		_, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		token, err := svc.Login(ctx, ports.LoginInput{
			Email:    "jordan@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token.Token)
		assert.Equal(t, "bearer", token.TokenType)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc, _, _ := newAuthService()
		_, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		_, errWrongPassword := svc.Login(ctx, ports.LoginInput{
			Email:    "jordan@example.com",
			Password: "wrong-password",
		})
		_, errUnknownEmail := svc.Login(ctx, ports.LoginInput{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, errWrongPassword, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownEmail, domain.ErrInvalidCredentials)
		assert.Equal(t, errWrongPassword, errUnknownEmail)
	})

	t.Run("validates input", func(t *testing.T) {
		svc, _, _ := newAuthService()

		_, err := svc.Login(ctx, ports.LoginInput{Email: "bad", Password: "12345"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors, "email")
		assert.Contains(t, verr.Errors, "password")
	})
}
