package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/555cider/admin-server/common"
	"github.com/555cider/admin-server/logger"
	"github.com/555cider/admin-server/model"
	"github.com/555cider/admin-server/repository"
)

// Login failures for a missing user and a wrong password must be
// indistinguishable to the caller.
const invalidCredentialsMessage = "Invalid username or password"

const permissionCacheTTL = 5 * time.Minute

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService orchestrates login, registration, and token rotation over the
// credential store, the password hasher, and the token codec.
type AuthService struct {
	authRepo     repository.IAuthRepository
	userRepo     repository.IUserRepository
	userTypeRepo repository.IUserTypeRepository
	history      *HistoryService
	tokens       *TokenCodec
	passwords    *PasswordHasher
	cache        ICacheClient
}

func NewAuthService(
	authRepo repository.IAuthRepository,
	userRepo repository.IUserRepository,
	userTypeRepo repository.IUserTypeRepository,
	history *HistoryService,
	tokens *TokenCodec,
	passwords *PasswordHasher,
	cache ICacheClient,
) *AuthService {
	return &AuthService{
		authRepo:     authRepo,
		userRepo:     userRepo,
		userTypeRepo: userTypeRepo,
		history:      history,
		tokens:       tokens,
		passwords:    passwords,
		cache:        cache,
	}
}

// Login verifies the credentials and returns a fresh token pair. The refresh
// token is persisted, replacing any prior one for the user.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest, ipAddress string) (*TokenPair, *common.AppError) {
	if appErr := common.ValidateStruct(&req); appErr != nil {
		return nil, appErr
	}
	logger.Log.WithField("username", req.Username).Info("Login attempt")

	cred, err := s.authRepo.FindCredentialByUsername(req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			s.history.LogLoginFailed(req.Username, "user_not_found", ipAddress)
			return nil, common.Unauthorized(invalidCredentialsMessage)
		}
		return nil, common.Internal("Failed to look up user", err)
	}

	match, err := s.passwords.Verify(ctx, req.Password, cred.PasswordHash)
	if err != nil {
		return nil, common.Internal("Password verification failed", err)
	}
	if !match {
		s.history.LogLoginFailed(req.Username, "invalid_password", ipAddress)
		return nil, common.Unauthorized(invalidCredentialsMessage)
	}

	pair, appErr := s.issuePair(cred.ID, cred.Username, cred.Role)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.userRepo.UpdateLastLogin(cred.ID); err != nil {
		logger.Log.WithError(err).WithField("user_id", cred.ID).Warn("Failed to update last login time")
	}
	s.history.LogLoginSuccess(cred.ID, cred.Username, ipAddress)

	logger.Log.WithField("user_id", cred.ID).Info("User logged in successfully")
	return pair, nil
}

// Register creates a new active admin user and returns its id.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest, ipAddress string) (int64, *common.AppError) {
	if appErr := common.ValidateStruct(&req); appErr != nil {
		return 0, appErr
	}
	logger.Log.WithField("username", req.Username).Info("Register request")

	_, err := s.authRepo.FindCredentialByUsername(req.Username)
	if err == nil {
		return 0, common.BadRequest("Username already exists")
	}
	if err != sql.ErrNoRows {
		return 0, common.Internal("Failed to look up user", err)
	}

	if _, err := s.userTypeRepo.FindByID(req.UserTypeID); err != nil {
		return 0, common.BadRequest("Invalid user type")
	}

	hash, err := s.passwords.Hash(ctx, req.Password)
	if err != nil {
		return 0, common.Internal("Password hashing failed", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	userID, err := s.authRepo.CreateUser(req.Username, hash, req.UserTypeID, isActive)
	if err != nil {
		return 0, common.Internal("Failed to create user", err)
	}

	s.history.LogUserCreated(userID, req.Username, ipAddress)

	logger.Log.WithField("user_id", userID).Info("User registered successfully")
	return userID, nil
}

// Refresh rotates a refresh token: both a new access token and a new refresh
// token are issued, and the stored refresh token is replaced. The user is
// re-resolved from storage so the claims pick up the current role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, ipAddress string) (*TokenPair, *common.AppError) {
	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		logger.Log.WithError(err).Warn("Invalid refresh token")
		return nil, common.Unauthorized("Invalid refresh token")
	}

	// Decode already rejects expired tokens; re-check here so a codec change
	// can never silently drop the expiry check on the rotation path.
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		logger.Log.WithField("user_id", claims.UserID).Warn("Expired refresh token used")
		return nil, common.Unauthorized("Refresh token expired")
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", claims.UserID).Warn("User not found for refresh token")
		return nil, common.Unauthorized("User not found")
	}

	role := "user"
	if userType, err := s.userTypeRepo.FindByID(user.UserTypeID); err == nil {
		role = userType.Name
	}

	pair, appErr := s.issuePair(user.ID, user.Username, role)
	if appErr != nil {
		return nil, appErr
	}

	s.history.LogTokenRefresh(user.ID, ipAddress)

	logger.Log.WithField("user_id", user.ID).Info("Refreshed tokens")
	return pair, nil
}

// GetCurrentUser returns the profile, user type, and permission set for an
// already-authenticated user id. Permissions are cached per user type.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*model.CurrentUserResponse, *common.AppError) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NotFound("User not found")
		}
		return nil, common.Internal("Failed to look up user", err)
	}

	userType, err := s.userTypeRepo.FindByID(user.UserTypeID)
	if err != nil && err != sql.ErrNoRows {
		return nil, common.Internal("Failed to look up user type", err)
	}

	permissions, err := s.getPermissions(ctx, user.UserTypeID)
	if err != nil {
		return nil, common.Internal("Failed to look up permissions", err)
	}

	return &model.CurrentUserResponse{
		ID:          user.ID,
		Username:    user.Username,
		UserTypeID:  user.UserTypeID,
		UserType:    userType,
		Permissions: permissions,
	}, nil
}

// getPermissions resolves the permission names for a user type with a
// cache-aside lookup.
func (s *AuthService) getPermissions(ctx context.Context, userTypeID int64) ([]string, error) {
	cacheKey := fmt.Sprintf("permissions:%d", userTypeID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var permissions []string
			if err := json.Unmarshal([]byte(cached), &permissions); err == nil {
				return permissions, nil
			}
		}
	}

	permissions, err := s.userTypeRepo.GetPermissions(userTypeID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(permissions); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, permissionCacheTTL).Err(); err != nil {
				logger.Log.WithError(err).Warn("Failed to cache permissions")
			}
		}
	}
	return permissions, nil
}

// issuePair issues a fresh access/refresh pair and persists the new refresh
// token, replacing the prior one for the user.
func (s *AuthService) issuePair(userID int64, username, role string) (*TokenPair, *common.AppError) {
	accessToken, err := s.tokens.IssueAccessToken(userID, username, role)
	if err != nil {
		return nil, common.Internal("Failed to issue access token", err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(userID, username, role)
	if err != nil {
		return nil, common.Internal("Failed to issue refresh token", err)
	}

	expiresAt := time.Now().Add(s.tokens.RefreshTTL())
	if err := s.authRepo.SaveRefreshToken(userID, refreshToken, expiresAt); err != nil {
		return nil, common.Internal("Failed to persist refresh token", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
