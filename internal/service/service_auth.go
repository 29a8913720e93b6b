package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pxeeio/flex-api/internal/apperr"
	"github.com/pxeeio/flex-api/internal/config"
	"github.com/pxeeio/flex-api/internal/logger"
	"github.com/pxeeio/flex-api/internal/store"
	"github.com/pxeeio/flex-api/internal/utils"
	"github.com/pxeeio/flex-api/models"
)

// birthdayLayout is the ISO date format accepted in registration requests.
const birthdayLayout = "2006-01-02"

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, and the server-side
// session lifecycle using a UserRepository and a SessionRepository for
// persistence, bcrypt for password hashing, and an HMAC-signed cookie value
// as the identity carrier.
type authService struct {
	// userRepository is the data-access layer used to create and look up
	// accounts.
	userRepository store.UserRepository

	// sessionRepository persists the server-side session records.
	sessionRepository store.SessionRepository

	// hasher derives and verifies password hashes.
	hasher PasswordHasher

	// policy is the plaintext password admission policy applied before
	// hashing on registration.
	policy *PasswordPolicy

	// cookieSecret is the HMAC key used to sign session cookie values.
	cookieSecret string

	// sessionTTL controls how long a newly issued session remains valid.
	sessionTTL time.Duration

	// uuidGenerator produces opaque session identifiers.
	uuidGenerator *utils.UUIDGenerator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(storages *store.Storages, app config.App, auth config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    storages.UserRepository,
		sessionRepository: storages.SessionRepository,
		hasher:            NewBcryptHasher(app.BcryptCost),
		policy:            NewPasswordPolicy(app),
		cookieSecret:      auth.SessionSecret,
		sessionTTL:        auth.SessionTTL,
		uuidGenerator:     utils.NewUUIDGenerator(),
		logger:            logger,
	}
}

// Register creates a new user account and establishes a session for it.
//
// Validation order: required fields, password confirmation, password policy,
// birthday format. The policy runs strictly before hashing. A uniqueness
// conflict from the credential store surfaces as a validation failure scoped
// to the email field, not as a server error.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Session, error) {
	log := logger.FromContext(ctx)

	if missing := missingRegistrationFields(req); len(missing) > 0 {
		log.Error().Str("email", req.Email).Msg("registration request with missing fields")
		return models.User{}, models.Session{}, apperr.ValidationFields(missing, "")
	}

	if req.Password != req.PasswordConfirm {
		return models.User{}, models.Session{}, apperr.Validation("password", []string{"Passwords do not match."}, "")
	}

	if violations := a.policy.Validate(req.Password); len(violations) > 0 {
		return models.User{}, models.Session{}, apperr.Validation("password", violations, "Invalid password.")
	}

	birthday, err := time.Parse(birthdayLayout, req.Birthday)
	if err != nil {
		return models.User{}, models.Session{}, apperr.Validation("birthday", []string{"The birthday must be a valid date (yyyy-mm-dd)."}, "")
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.Session{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Birthday:     birthday,
		PasswordHash: passwordHash,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Error().Str("email", user.Email).Msg("registration attempt with taken email")
			return models.User{}, models.Session{}, apperr.Validation("email", []string{"The email has already been taken."}, "")
		}
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, models.Session{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	session, err := a.issueSession(ctx, registeredUser.ID)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	log.Debug().Int64("id", registeredUser.ID).Msg("user successfully registered")

	return registeredUser, session, nil
}

// Login authenticates an existing user and establishes a session.
//
// An unknown email and a wrong password both map to the identical
// invalid-credentials failure so the two cases cannot be told apart by
// inspecting the response.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Session, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" {
		return models.User{}, models.Session{}, apperr.Validation("email", []string{"An email is required."}, "")
	}
	if req.Password == "" {
		return models.User{}, models.Session{}, apperr.Validation("password", []string{"A password is required."}, "")
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Error().Str("email", req.Email).Msg("login attempt for unknown email")
			return models.User{}, models.Session{}, apperr.InvalidCredentials()
		}
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.User{}, models.Session{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(req.Password, foundUser.PasswordHash) {
		log.Error().Int64("id", foundUser.ID).Msg("login attempt with wrong password")
		return models.User{}, models.Session{}, apperr.InvalidCredentials()
	}

	session, err := a.issueSession(ctx, foundUser.ID)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	log.Debug().Int64("id", foundUser.ID).Msg("user successfully logged in")

	return foundUser, session, nil
}

// Logout destroys the session referenced by the signed cookie value.
//
// An absent, malformed, or forged cookie is not an error: the caller simply
// has no session to destroy, and logout stays idempotent. Only a storage
// failure propagates.
func (a *authService) Logout(ctx context.Context, cookieValue string) error {
	sid, ok := a.parseCookieValue(cookieValue)
	if !ok {
		return nil
	}

	if err := a.sessionRepository.DeleteSession(ctx, sid); err != nil {
		return fmt.Errorf("session destruction failed: %w", err)
	}

	return nil
}

// ResolveCookie maps a signed cookie value to a live user.
//
// Every "not authenticated" condition — bad signature, unknown or expired
// session, a user that was deleted after the session was issued — is
// normalised to ErrSessionInvalid so the identity-resolution middleware can
// treat them all as an anonymous request. Infrastructure faults are wrapped
// and returned as-is.
func (a *authService) ResolveCookie(ctx context.Context, cookieValue string) (models.User, error) {
	sid, ok := a.parseCookieValue(cookieValue)
	if !ok {
		return models.User{}, ErrSessionInvalid
	}

	session, err := a.sessionRepository.FindSessionByID(ctx, sid)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.User{}, ErrSessionInvalid
		}
		return models.User{}, fmt.Errorf("session lookup failed: %w", err)
	}

	user, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// The account was deleted after the session was issued.
			return models.User{}, ErrSessionInvalid
		}
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// CookieValue renders the signed cookie payload for a session:
// "<sid>.<hex hmac-sha256(sid)>".
func (a *authService) CookieValue(session models.Session) string {
	return session.ID + "." + utils.HashString(session.ID, a.cookieSecret)
}

// issueSession creates a fresh session record for the given user.
func (a *authService) issueSession(ctx context.Context, userID int64) (models.Session, error) {
	now := time.Now()
	session := models.Session{
		ID:        a.uuidGenerator.Generate(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionTTL),
	}

	created, err := a.sessionRepository.CreateSession(ctx, session)
	if err != nil {
		return models.Session{}, fmt.Errorf("session creation failed: %w", err)
	}

	return created, nil
}

// parseCookieValue splits and verifies a signed cookie value, returning the
// embedded session id. The signature comparison is constant-time.
func (a *authService) parseCookieValue(cookieValue string) (string, bool) {
	idx := strings.LastIndex(cookieValue, ".")
	if idx <= 0 || idx == len(cookieValue)-1 {
		return "", false
	}

	sid, signature := cookieValue[:idx], cookieValue[idx+1:]
	if !utils.SecureCompare(signature, utils.HashString(sid, a.cookieSecret)) {
		return "", false
	}

	return sid, true
}

// missingRegistrationFields collects the required-field violations of a
// registration request, keyed by input field name.
func missingRegistrationFields(req models.RegisterRequest) map[string][]string {
	missing := make(map[string][]string)

	if req.Email == "" {
		missing["email"] = []string{"An email is required."}
	}
	if req.Password == "" {
		missing["password"] = []string{"A password is required."}
	}
	if req.FirstName == "" {
		missing["first_name"] = []string{"A first name is required."}
	}
	if req.LastName == "" {
		missing["last_name"] = []string{"A last name is required."}
	}
	if req.Birthday == "" {
		missing["birthday"] = []string{"A birthday is required."}
	}

	if len(missing) == 0 {
		return nil
	}

	return missing
}
