package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aimplatform/reviewintel/internal/config"
	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/internal/store"
	"github.com/aimplatform/reviewintel/internal/utils"
	"github.com/aimplatform/reviewintel/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification for both stored
// hash formats, and the JWT token lifecycle.
type authService struct {
	userRepository     store.UserRepository
	activityRepository store.ActivityRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, activityRepository store.ActivityRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:     userRepository,
		activityRepository: activityRepository,
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		logger:             logger,
	}
}

// Register creates a new account. The plain-text password is hashed with
// bcrypt before it reaches the repository.
//
// Returns the persisted user (with server-assigned ID and defaults) or:
//   - ErrInvalidDataProvided if username, email or password is empty.
//   - A wrapped storage error if the repository call fails (e.g. duplicate
//     username, see store.ErrDuplicateUser).
func (a *authService) Register(ctx context.Context, user models.User, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Email == "" || password == "" {
		log.Error().Str("username", user.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := utils.BcryptPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = hash

	registered, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registered, nil
}

// Login authenticates an existing account against either stored credential
// format. Inactive accounts are refused, last_login is touched on success
// and a login activity is appended to the audit log.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - store.ErrUserNotFound / store.ErrWrongPassword / store.ErrUserInactive
//     from the credential check, wrapped.
func (a *authService) Login(ctx context.Context, username, password, ipAddress string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	found, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	user, err := a.verify(ctx, found, password)
	if err != nil {
		log.Err(err).Str("username", username).Msg("credential verification failed")
		return models.User{}, fmt.Errorf("credential verification failed: %w", err)
	}

	// Audit trail only; a failed insert must not undo the login.
	if _, actErr := a.activityRepository.LogActivity(ctx, models.Activity{
		UserID:       user.ID,
		ActivityType: "login",
		Description:  fmt.Sprintf("user %s logged in", user.Username),
		IPAddress:    ipAddress,
	}); actErr != nil {
		log.Warn().Err(actErr).Int64("user_id", user.ID).Msg("failed to record login activity")
	}

	return user, nil
}

// verify dispatches on the stored credential format. Legacy hex digests go
// through the repository's hash-equality path; bcrypt hashes are compared
// here and the repository only touches last_login.
func (a *authService) verify(ctx context.Context, found models.User, password string) (models.User, error) {
	if utils.IsLegacyHash(found.PasswordHash) {
		return a.userRepository.Authenticate(ctx, found.Username, utils.LegacyHashPassword(password))
	}

	if !utils.VerifyPassword(password, found.PasswordHash) {
		return models.User{}, store.ErrWrongPassword
	}
	if found.Status != models.StatusActive {
		return models.User{}, store.ErrUserInactive
	}

	if err := a.userRepository.UpdateLastLogin(ctx, found.ID); err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	found.LastLogin = &now

	return found, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
