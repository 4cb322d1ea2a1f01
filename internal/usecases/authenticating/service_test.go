package authenticating_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repoMocks "github.com/vfg2006/budget-review-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-review-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := repoMocks.NewMockUserRepository(ctrl)
	service := authenticating.NewService(userRepo, config.Auth{Secret: "segredo", TokenTTL: time.Hour})

	user := &domain.User{ID: 7, Name: "Ana", Email: "ana@agencia.com", PasswordHash: hashed(t, "Senha@123"), Active: true, RoleID: 1}

	t.Run("login com sucesso gera token válido", func(t *testing.T) {
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@agencia.com").Return(user, nil)

		token, err := service.LoginUser(context.Background(), "  Ana@Agencia.com ", "Senha@123")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, 1, claims.UserRoleID)
		assert.Equal(t, "ana@agencia.com", claims.UserEmail)
	})

	t.Run("senha incorreta", func(t *testing.T) {
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@agencia.com").Return(user, nil)

		_, err := service.LoginUser(context.Background(), "ana@agencia.com", "errada")

		var authErr *authenticating.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, apiErrors.ErrInvalidCredentials, authErr.Code)
		assert.True(t, authenticating.IsCredentialsError(err))
	})

	t.Run("usuário desativado", func(t *testing.T) {
		disabled := *user
		disabled.Active = false
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@agencia.com").Return(&disabled, nil)

		_, err := service.LoginUser(context.Background(), "ana@agencia.com", "Senha@123")
		assert.ErrorIs(t, err, authenticating.ErrUserDisabled)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "nao@existe.com").Return(nil, nil)

		_, err := service.LoginUser(context.Background(), "nao@existe.com", "Senha@123")
		assert.ErrorIs(t, err, authenticating.ErrUserNotFound)
	})

	t.Run("erro de banco", func(t *testing.T) {
		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@agencia.com").Return(nil, errors.New("connection refused"))

		_, err := service.LoginUser(context.Background(), "ana@agencia.com", "Senha@123")
		assert.ErrorIs(t, err, authenticating.ErrDatabaseOperation)
	})

	t.Run("dados obrigatórios", func(t *testing.T) {
		_, err := service.LoginUser(context.Background(), "", "")
		assert.ErrorIs(t, err, authenticating.ErrMissingRequiredData)
	})
}

func TestService_ValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := repoMocks.NewMockUserRepository(ctrl)

	defaultTTL := authenticating.NewService(userRepo, config.Auth{Secret: "segredo", TokenTTL: -time.Minute})
	other := authenticating.NewService(userRepo, config.Auth{Secret: "outro", TokenTTL: time.Hour})
	service := authenticating.NewService(userRepo, config.Auth{Secret: "segredo", TokenTTL: time.Hour})

	user := &domain.User{ID: 1, Email: "ana@agencia.com", PasswordHash: hashed(t, "Senha@123"), Active: true}
	userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@agencia.com").Return(user, nil).Times(1)

	token, err := other.LoginUser(context.Background(), "ana@agencia.com", "Senha@123")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, authenticating.ErrInvalidToken)

	_, err = service.ValidateToken("nao-e-um-jwt")
	assert.ErrorIs(t, err, authenticating.ErrInvalidToken)

	// TTL não positivo cai no padrão de 24h
	userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@agencia.com").Return(user, nil)
	token, err = defaultTTL.LoginUser(context.Background(), "ana@agencia.com", "Senha@123")
	require.NoError(t, err)
	_, err = service.ValidateToken(token)
	assert.NoError(t, err)
}

func TestService_GetUserProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := repoMocks.NewMockUserRepository(ctrl)
	service := authenticating.NewService(userRepo, config.Auth{Secret: "segredo"})

	userRepo.EXPECT().GetUserByID(gomock.Any(), 7).Return(&domain.User{ID: 7, PasswordHash: "hash"}, nil)
	user, err := service.GetUserProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	userRepo.EXPECT().GetUserByID(gomock.Any(), 8).Return(nil, nil)
	_, err = service.GetUserProfile(context.Background(), 8)
	assert.ErrorIs(t, err, authenticating.ErrUserNotFound)
}
