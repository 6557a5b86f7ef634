// Package services contains server-side business logic. This file implements
// UserService: registration, login, bearer-token issuance and revocation,
// profile updates, avatar handling, and account deletion with its cascade.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avorobyov/taskkeeper/internal/common"
	"github.com/avorobyov/taskkeeper/internal/cryptox"
	"github.com/avorobyov/taskkeeper/internal/dbx"
	"github.com/avorobyov/taskkeeper/internal/server/auth"
	"github.com/avorobyov/taskkeeper/internal/server/avatars"
	"github.com/avorobyov/taskkeeper/internal/server/config"
	"github.com/avorobyov/taskkeeper/internal/server/models"
	"github.com/avorobyov/taskkeeper/internal/server/repositories/repomanager"
)

// ProfilePatch carries the updatable profile fields. Nil means "leave as is".
type ProfilePatch struct {
	Name   *string
	Email  *string
	Secret *string
}

// UserService provides identity operations:
//   - Signup / Login: create accounts, verify credentials, mint tokens
//   - Authenticate: resolve a presented bearer token to its user
//   - Logout / LogoutAll: revoke one or all sessions
//   - UpdateProfile / DeleteAccount / avatar handling
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	avatarStore           avatars.Store
	normalizer            avatars.Normalizer
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories, the avatar
// backend, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, store avatars.Store, n avatars.Normalizer, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		avatarStore:           store,
		normalizer:            n,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// NormalizeEmail lowercases and trims an email for lookup and storage so the
// uniqueness constraint is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateSecret enforces the password policy the request-level validator
// cannot express with tags alone.
func validateSecret(secret string) error {
	if len(secret) < 7 {
		return fmt.Errorf("%w: password must be at least 7 characters", common.ErrorValidation)
	}
	if strings.Contains(strings.ToLower(secret), "password") {
		return fmt.Errorf("%w: password must not contain the word \"password\"", common.ErrorValidation)
	}
	return nil
}

// Signup creates a new user and issues the first bearer token for it, both
// inside one transaction: either the account exists with a valid session or
// nothing was persisted. A duplicate email yields common.ErrorConflict.
func (s *UserService) Signup(ctx context.Context, email, name, secret string) (*models.User, string, error) {
	if err := validateSecret(secret); err != nil {
		return nil, "", err
	}

	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{Email: NormalizeEmail(email), Name: name, SecretHash: hash}

	var token string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		token, err = s.issueToken(ctx, tx, user.ID)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, "", common.ErrorConflict
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	return user, token, nil
}

// Login verifies the secret against the stored hash and, on success, issues
// one additional bearer token without touching existing sessions. A missing
// account and a wrong secret are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, secret string) (*models.User, string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !cryptox.VerifySecret(secret, user.SecretHash) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.issueToken(ctx, s.db, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Authenticate resolves a presented bearer token to its user. The token must
// both carry a valid signature and still be a member of the user's stored
// token set; a structurally valid but revoked token is rejected. Every
// failure mode collapses to common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	stored, err := s.repomanager.AuthTokens(s.db).Find(ctx, token)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	if stored.UserID != userID {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// Logout revokes exactly the presented token ("log out this session").
// Revoking an already-absent token is a no-op.
func (s *UserService) Logout(ctx context.Context, user *models.User, token string) error {
	if err := s.repomanager.AuthTokens(s.db).Delete(ctx, token); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// LogoutAll revokes every token of the user ("log out everywhere").
func (s *UserService) LogoutAll(ctx context.Context, user *models.User) error {
	if err := s.repomanager.AuthTokens(s.db).DeleteAllForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("error revoking tokens: %w", err)
	}
	return nil
}

// UpdateProfile applies the patch to the user's own record. When the secret
// changes, the stored hash is re-derived before persisting; the plaintext is
// never written.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, patch ProfilePatch) (*models.User, error) {
	updated := *user

	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Email != nil {
		updated.Email = NormalizeEmail(*patch.Email)
	}
	if patch.Secret != nil {
		if err := validateSecret(*patch.Secret); err != nil {
			return nil, err
		}
		hash, err := cryptox.HashSecret(*patch.Secret)
		if err != nil {
			return nil, common.ErrorInternal
		}
		updated.SecretHash = hash
	}

	saved, err := s.repomanager.Users(s.db).Update(ctx, &updated)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return saved, nil
}

// DeleteAccount removes the user and everything attached: all owned tasks,
// every issued token, and the account row itself, in one transaction so a
// partial cascade is never visible.
func (s *UserService) DeleteAccount(ctx context.Context, user *models.User) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Tasks(tx).DeleteAllForOwner(ctx, user.ID); err != nil {
			return err
		}
		if err := s.repomanager.AuthTokens(tx).DeleteAllForUser(ctx, user.ID); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}

	// best effort: the S3 backend keeps the blob outside the transaction
	_ = s.avatarStore.Delete(ctx, user.ID)

	return nil
}

// SetAvatar runs the upload through the normalizer and stores the result.
func (s *UserService) SetAvatar(ctx context.Context, user *models.User, data []byte) error {
	normalized, err := s.normalizer.Normalize(data)
	if err != nil {
		return err
	}
	if err := s.avatarStore.Put(ctx, user.ID, normalized); err != nil {
		return fmt.Errorf("error storing avatar: %w", err)
	}
	return nil
}

// GetAvatar returns the stored avatar blob for any user ID. Serving avatars
// is public in this API, so it takes an ID rather than an authenticated user.
func (s *UserService) GetAvatar(ctx context.Context, userID string) ([]byte, error) {
	return s.avatarStore.Get(ctx, userID)
}

// DeleteAvatar clears the user's avatar.
func (s *UserService) DeleteAvatar(ctx context.Context, user *models.User) error {
	if err := s.avatarStore.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("error deleting avatar: %w", err)
	}
	return nil
}

// issueToken mints a JWT for the user and inserts it into the credential
// store. Issuance is additive: existing sessions stay valid.
func (s *UserService) issueToken(ctx context.Context, db dbx.DBTX, userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", err
	}
	if err := s.repomanager.AuthTokens(db).Create(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}
