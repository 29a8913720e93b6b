package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pxeeio/flex-api/internal/apperr"
	"github.com/pxeeio/flex-api/internal/config"
	"github.com/pxeeio/flex-api/internal/logger"
	"github.com/pxeeio/flex-api/internal/mock"
	"github.com/pxeeio/flex-api/internal/store"
	"github.com/pxeeio/flex-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSessionSecret = "test-session-secret"

// newTestAuthSvc builds an authService backed by repository mocks and a
// cheap bcrypt cost.
func newTestAuthSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*authService,
	*mock.MockUserRepository,
	*mock.MockSessionRepository,
) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockSessions := mock.NewMockSessionRepository(ctrl)

	storages := &store.Storages{
		UserRepository:    mockUsers,
		SessionRepository: mockSessions,
	}

	app := config.App{
		BcryptCost:        bcrypt.MinCost,
		PasswordMinLength: 8,
		PasswordMaxLength: 100,
		PasswordMinDigits: 1,
	}
	auth := config.Auth{
		SessionSecret: testSessionSecret,
		SessionTTL:    time.Hour,
	}

	svc := NewAuthService(storages, app, auth, logger.Nop()).(*authService)

	return svc, mockUsers, mockSessions
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:           "Jane.Doe@Example.com",
		Password:        "Str0ng~Password",
		PasswordConfirm: "Str0ng~Password",
		FirstName:       "Jane",
		LastName:        "Doe",
		Birthday:        "1990-04-15",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	req := validRegisterRequest()

	gomock.InOrder(
		mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "jane.doe@example.com", u.Email, "email must be stored lowercased")
				assert.NotEqual(t, req.Password, u.PasswordHash)
				require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)))
				u.ID = 42
				return u, nil
			},
		),
		mockSessions.EXPECT().CreateSession(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s models.Session) (models.Session, error) {
				assert.NotEmpty(t, s.ID)
				assert.Equal(t, int64(42), s.UserID)
				assert.True(t, s.ExpiresAt.After(s.CreatedAt))
				return s, nil
			},
		),
	)

	user, session, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, int64(42), session.UserID)
}

// A freshly registered user can immediately log in with the same plaintext
// credentials, and both flows resolve to the same account.
func TestAuthService_RegisterThenLogin_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	req := validRegisterRequest()

	var stored models.User
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			u.ID = 42
			stored = u
			return u, nil
		},
	)
	mockSessions.EXPECT().CreateSession(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Session) (models.Session, error) {
			return s, nil
		},
	).Times(2)

	registered, _, err := svc.Register(ctx, req)
	require.NoError(t, err)

	mockUsers.EXPECT().FindUserByEmail(ctx, stored.Email).Return(stored, nil)

	loggedIn, _, err := svc.Login(ctx, models.LoginRequest{
		Email:    stored.Email,
		Password: req.Password,
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, _, err := svc.Register(context.Background(), models.RegisterRequest{})
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Fields, 5)
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "password")
	assert.Contains(t, appErr.Fields, "first_name")
	assert.Contains(t, appErr.Fields, "last_name")
	assert.Contains(t, appErr.Fields, "birthday")
}

func TestAuthService_Register_PasswordConfirmationMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	req := validRegisterRequest()
	req.PasswordConfirm = "Different~Passw0rd"

	_, _, err := svc.Register(context.Background(), req)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, []string{"Passwords do not match."}, appErr.Fields["password"])
}

func TestAuthService_Register_WeakPasswordRejectedBeforeHashing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no repository expectations: a policy failure must stop the flow
	// before any store access
	svc, _, _ := newTestAuthSvc(t, ctrl)
	req := validRegisterRequest()
	req.Password = "short"
	req.PasswordConfirm = "short"

	_, _, err := svc.Register(context.Background(), req)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, "Invalid password.", appErr.Message)
	assert.NotEmpty(t, appErr.Fields["password"])
}

func TestAuthService_Register_InvalidBirthday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	req := validRegisterRequest()
	req.Birthday = "15/04/1990"

	_, _, err := svc.Register(context.Background(), req)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "birthday")
}

func TestAuthService_Register_EmailAlreadyTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, _, err := svc.Register(ctx, validRegisterRequest())

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, []string{"The email has already been taken."}, appErr.Fields["email"])
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	hash, err := svc.hasher.Hash("Str0ng~Password")
	require.NoError(t, err)

	stored := models.User{ID: 7, Email: "jane.doe@example.com", PasswordHash: hash}

	gomock.InOrder(
		mockUsers.EXPECT().FindUserByEmail(ctx, "jane.doe@example.com").Return(stored, nil),
		mockSessions.EXPECT().CreateSession(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s models.Session) (models.Session, error) {
				return s, nil
			},
		),
	)

	user, session, err := svc.Login(ctx, models.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: "Str0ng~Password",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, int64(7), session.UserID)
}

// An unknown email and a wrong password must be indistinguishable from the
// caller's point of view.
func TestAuthService_Login_UnknownEmailAndWrongPasswordMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByEmail(ctx, "ghost@example.com").Return(models.User{}, store.ErrUserNotFound)
	_, _, unknownErr := svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	hash, err := svc.hasher.Hash("Correct~Passw0rd")
	require.NoError(t, err)
	mockUsers.EXPECT().FindUserByEmail(ctx, "jane.doe@example.com").
		Return(models.User{ID: 7, Email: "jane.doe@example.com", PasswordHash: hash}, nil)
	_, _, wrongErr := svc.Login(ctx, models.LoginRequest{Email: "jane.doe@example.com", Password: "Wrong~Passw0rd"})

	var unknownAppErr, wrongAppErr *apperr.Error
	require.ErrorAs(t, unknownErr, &unknownAppErr)
	require.ErrorAs(t, wrongErr, &wrongAppErr)

	assert.Equal(t, apperr.KindInvalidCredentials, unknownAppErr.Kind)
	assert.Equal(t, unknownAppErr.Kind, wrongAppErr.Kind)
	assert.Equal(t, unknownAppErr.Message, wrongAppErr.Message)
	assert.Equal(t, "Invalid credentials.", wrongAppErr.Message)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, models.LoginRequest{Password: "something"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"An email is required."}, appErr.Fields["email"])

	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "jane.doe@example.com"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"A password is required."}, appErr.Fields["password"])
}

func TestAuthService_Logout_ValidCookieDeletesSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	session := models.Session{ID: "sid-123"}
	cookieValue := svc.CookieValue(session)

	mockSessions.EXPECT().DeleteSession(ctx, "sid-123").Return(nil)

	require.NoError(t, svc.Logout(ctx, cookieValue))
}

// A forged or absent cookie yields no store call and no error.
func TestAuthService_Logout_InvalidCookieIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, ""))
	require.NoError(t, svc.Logout(ctx, "sid-123.forged-signature"))
	require.NoError(t, svc.Logout(ctx, "no-dot-at-all"))
}

func TestAuthService_ResolveCookie_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	session := models.Session{ID: "sid-123", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}
	cookieValue := svc.CookieValue(session)

	gomock.InOrder(
		mockSessions.EXPECT().FindSessionByID(ctx, "sid-123").Return(session, nil),
		mockUsers.EXPECT().FindUserByID(ctx, int64(7)).Return(models.User{ID: 7, Email: "jane.doe@example.com"}, nil),
	)

	user, err := svc.ResolveCookie(ctx, cookieValue)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

func TestAuthService_ResolveCookie_ForgedSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.ResolveCookie(context.Background(), "sid-123.deadbeef")
	require.ErrorIs(t, err, ErrSessionInvalid)
}

func TestAuthService_ResolveCookie_SessionNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	cookieValue := svc.CookieValue(models.Session{ID: "sid-gone"})
	mockSessions.EXPECT().FindSessionByID(ctx, "sid-gone").Return(models.Session{}, store.ErrSessionNotFound)

	_, err := svc.ResolveCookie(ctx, cookieValue)
	require.ErrorIs(t, err, ErrSessionInvalid)
}

func TestAuthService_ResolveCookie_DeletedUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	session := models.Session{ID: "sid-123", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}
	cookieValue := svc.CookieValue(session)

	gomock.InOrder(
		mockSessions.EXPECT().FindSessionByID(ctx, "sid-123").Return(session, nil),
		mockUsers.EXPECT().FindUserByID(ctx, int64(7)).Return(models.User{}, store.ErrUserNotFound),
	)

	_, err := svc.ResolveCookie(ctx, cookieValue)
	require.ErrorIs(t, err, ErrSessionInvalid)
}

func TestAuthService_ResolveCookie_StoreFault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	cookieValue := svc.CookieValue(models.Session{ID: "sid-123"})
	storeErr := errors.New("connection refused")
	mockSessions.EXPECT().FindSessionByID(ctx, "sid-123").Return(models.Session{}, storeErr)

	_, err := svc.ResolveCookie(ctx, cookieValue)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionInvalid)
	assert.ErrorIs(t, err, storeErr)
}

func TestAuthService_CookieValue_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	cookieValue := svc.CookieValue(models.Session{ID: "sid-abc.def"})

	// the sid itself may contain dots; the signature follows the last one
	sid, ok := svc.parseCookieValue(cookieValue)
	require.True(t, ok)
	assert.Equal(t, "sid-abc.def", sid)
}
