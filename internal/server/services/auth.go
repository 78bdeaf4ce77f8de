// Package services contains the server-side business logic: credential
// verification and token issuance, the session membership rules, and the
// thin account/teacher lookups the API exposes.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/yogabook/internal/common"
	"github.com/dmitrijs2005/yogabook/internal/dbx"
	"github.com/dmitrijs2005/yogabook/internal/server/auth"
	"github.com/dmitrijs2005/yogabook/internal/server/config"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
	"github.com/dmitrijs2005/yogabook/internal/server/repositories/repomanager"
)

// AuthService verifies credentials, registers accounts, and mints tokens.
type AuthService struct {
	db                    dbx.DBTX
	repomanager           repomanager.RepositoryManager
	hasher                auth.PasswordHasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	now                   func() time.Time
}

func NewAuthService(db dbx.DBTX, m repomanager.RepositoryManager, hasher auth.PasswordHasher, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                    db,
		repomanager:           m,
		hasher:                hasher,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		now:                   time.Now,
	}
}

// Login checks email+password against the stored hash and, on success,
// returns the resolved Principal together with a freshly signed token.
// An unknown email and a wrong password both surface as
// common.ErrAuthenticationFailed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Principal, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrAuthenticationFailed
		}
		return nil, "", fmt.Errorf("error loading account: %w", err)
	}

	if !s.hasher.Compare(user.Password, password) {
		return nil, "", common.ErrAuthenticationFailed
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.now(), s.tokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("error signing token: %w", err)
	}

	return models.PrincipalFromUser(user), token, nil
}

// Register creates a new account with a hashed password. A taken email
// yields common.ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, email, firstName, lastName, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	taken, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if taken {
		return nil, common.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, FirstName: firstName, LastName: lastName, Password: hash}
	created, err := repo.Create(ctx, user)
	if err != nil {
		// the unique index may still fire between the check and the insert
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return created, nil
}

// ResolvePrincipal maps a validated token subject back to a live account.
// A token for a since-deleted account yields common.ErrNotFound.
func (s *AuthService) ResolvePrincipal(ctx context.Context, subject string) (*models.Principal, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error resolving principal: %w", err)
	}

	return models.PrincipalFromUser(user), nil
}

// ValidateToken exposes codec validation with the service's secret.
func (s *AuthService) ValidateToken(tokenString string) (string, bool) {
	return auth.ValidateToken(tokenString, s.jwtSecret)
}
