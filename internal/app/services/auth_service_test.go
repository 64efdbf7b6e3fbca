package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/auth"
)

type authFixture struct {
	users  *mockUserRepo
	tokens *mockTokenRepo
	people *mockConsultantRepo
	svc    AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{users: &mockUserRepo{}, tokens: &mockTokenRepo{}, people: &mockConsultantRepo{}}
	f.svc = NewAuthService(f.users, f.tokens, f.people, stubIssuer{}, nopMailer{}, zerolog.Nop())
	return f
}

func TestRegister_WeakPassword(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Priya", Email: "priya@bench.example", Password: "onlyletters",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	f.users.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.users.On("EmailExists", ctx, "priya@bench.example").Return(true, nil)

	_, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Name: "Priya", Email: " Priya@Bench.example ", Password: "Password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_ConsultantGetsProfile(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.users.On("EmailExists", ctx, "priya@bench.example").Return(false, nil)
	f.people.On("CreateWithUser", ctx, mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.Consultant")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 10
			c := args.Get(2).(*models.Consultant)
			c.ID = 4
			assert.Equal(t, models.ConsultantAvailable, c.Status)
			assert.Equal(t, models.ResumeStatusPending, c.ResumeStatus)
		}).Return(nil)
	f.tokens.On("CreateToken", ctx, "refresh-priya@bench.example", int64(10), mock.Anything).Return(nil)

	resp, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Name: "Priya", Email: "priya@bench.example", Password: "Password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "consultant", resp.User.Role)
	require.NotNil(t, resp.User.ConsultantID)
	assert.Equal(t, int64(4), *resp.User.ConsultantID)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.tokens.AssertExpectations(t)
}

func TestRegister_AdminSkipsProfile(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.users.On("EmailExists", ctx, "ops@bench.example").Return(false, nil)
	f.users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)
	f.tokens.On("CreateToken", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.Register(ctx, &dto.RegisterRequest{
		Name: "Ops", Email: "ops@bench.example", Password: "Password123", Role: models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.User.ConsultantID)
	f.people.AssertNotCalled(t, "CreateWithUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("Password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		user     *models.User
		findErr  error
		password string
		wantErr  error
	}{
		{"unknown email", nil, apperrors.ErrUserNotFound, "Password123", apperrors.ErrInvalidCredentials},
		{"wrong password", &models.User{ID: 1, Password: hash, IsActive: true, Role: models.RoleAdmin}, nil, "nope12345", apperrors.ErrInvalidCredentials},
		{"disabled", &models.User{ID: 1, Password: hash, IsActive: false, Role: models.RoleAdmin}, nil, "Password123", apperrors.ErrAccountDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			ctx := context.Background()
			f.users.On("GetByEmail", ctx, "a@bench.example").Return(tt.user, tt.findErr)

			_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "a@bench.example", Password: tt.password})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin_Consultant(t *testing.T) {
	hash, err := auth.HashPassword("Password123")
	require.NoError(t, err)

	f := newAuthFixture()
	ctx := context.Background()
	user := &models.User{ID: 10, Email: "priya@bench.example", Password: hash, IsActive: true, Role: models.RoleConsultant}
	f.users.On("GetByEmail", ctx, "priya@bench.example").Return(user, nil)
	f.users.On("UpdateLastLogin", ctx, int64(10)).Return(nil)
	f.people.On("GetByUserID", ctx, int64(10)).Return(&models.Consultant{ID: 4}, nil)
	f.tokens.On("CreateToken", ctx, mock.Anything, int64(10), mock.Anything).Return(nil)

	resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "priya@bench.example", Password: "Password123"})
	require.NoError(t, err)
	require.NotNil(t, resp.User.ConsultantID)
	assert.Equal(t, int64(4), *resp.User.ConsultantID)
}

func TestRefreshToken_RotatesToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.tokens.On("GetToken", ctx, "old").Return(&models.RefreshToken{UserID: 1, Token: "old"}, nil)
	f.users.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1, Email: "ops@bench.example", IsActive: true, Role: models.RoleAdmin}, nil)
	f.tokens.On("RevokeToken", ctx, "old").Return(nil)
	f.tokens.On("CreateToken", ctx, "refresh-ops@bench.example", int64(1), mock.Anything).Return(nil)

	resp, err := f.svc.RefreshToken(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "refresh-ops@bench.example", resp.RefreshToken)
	f.tokens.AssertExpectations(t)
}

func TestRefreshToken_Revoked(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.tokens.On("GetToken", ctx, "old").Return(nil, apperrors.ErrTokenRevoked)

	_, err := f.svc.RefreshToken(ctx, "old")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.tokens.On("RevokeToken", ctx, "gone").Return(apperrors.ErrTokenNotFound)
	f.tokens.On("RevokeAllUserTokens", ctx, int64(3)).Return(nil)

	assert.NoError(t, f.svc.Logout(ctx, 3, "gone"))
	assert.NoError(t, f.svc.Logout(ctx, 3, ""))
	f.tokens.AssertExpectations(t)
}
