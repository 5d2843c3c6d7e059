package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nextiwant/wishlist-backend/internal/domain"
	"github.com/nextiwant/wishlist-backend/internal/repository"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = domain.Unauthorized("invalid credentials")
	ErrInvalidToken       = domain.Unauthorized("invalid or expired refresh token")
	ErrEmailTaken         = domain.Conflict("email already registered")
)

type AuthResult struct {
	User             *domain.User
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type AuthService struct {
	store      repository.Store
	hasher     PasswordHasher
	tokens     TokenService
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(store repository.Store, hasher PasswordHasher, tokens TokenService, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		store:      store,
		hasher:     hasher,
		tokens:     tokens,
		refreshTTL: refreshTTL,
		now:        utcNow,
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	if len(password) < minPasswordLength {
		return nil, domain.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user, err := domain.NewUser(email, hash)
	if err != nil {
		return nil, err
	}

	var result *AuthResult
	err = repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		if _, err := uow.Users().GetByEmail(ctx, user.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := uow.Users().Add(ctx, user); err != nil {
			return err
		}
		if err := uow.Profiles().Upsert(ctx, domain.NewUserProfile(user.ID)); err != nil {
			return err
		}
		result, err = s.issue(ctx, uow, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Info("user signed up", "user_id", user.ID.String(), "action", "signup")
	return result, nil
}

// Login never tells the caller which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result *AuthResult
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		user, err := s.authenticate(ctx, uow, email, password)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return ErrInvalidCredentials
		}
		result, err = s.issue(ctx, uow, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	var result *AuthResult
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		stored, err := uow.RefreshTokens().GetByHash(ctx, hashToken(refreshToken))
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}
		if stored.Revoked || s.now().After(stored.ExpiresAt) {
			return ErrInvalidToken
		}
		if err := uow.RefreshTokens().Revoke(ctx, stored.ID); err != nil {
			return err
		}

		user, err := uow.Users().GetByID(ctx, stored.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			return err
		}
		if !user.IsActive {
			return ErrInvalidToken
		}
		result, err = s.issue(ctx, uow, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Logout revokes the presented refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		stored, err := uow.RefreshTokens().GetByHash(ctx, hashToken(refreshToken))
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return uow.RefreshTokens().Revoke(ctx, stored.ID)
	})
}

func (s *AuthService) ChangePassword(ctx context.Context, userID domain.UserID, current, next string) error {
	if len(next) < minPasswordLength {
		return domain.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		user, err := uow.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !s.hasher.Verify(user.PasswordHash, current) {
			return ErrInvalidCredentials
		}
		hash, err := s.hasher.Hash(next)
		if err != nil {
			return err
		}
		if err := user.ChangePasswordHash(hash); err != nil {
			return err
		}
		return uow.Users().Update(ctx, user)
	})
}

// Deactivate turns the account off and revokes every refresh token.
func (s *AuthService) Deactivate(ctx context.Context, userID domain.UserID, password string) error {
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		user, err := uow.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !s.hasher.Verify(user.PasswordHash, password) {
			return ErrInvalidCredentials
		}
		user.Deactivate()
		if err := uow.Users().Update(ctx, user); err != nil {
			return err
		}
		return uow.RefreshTokens().RevokeAllForUser(ctx, user.ID)
	})
	if err != nil {
		return err
	}
	slog.Info("user deactivated", "user_id", userID.String(), "action", "deactivate")
	return nil
}

func (s *AuthService) Reactivate(ctx context.Context, email, password string) (*AuthResult, error) {
	var result *AuthResult
	err := repository.WithinTx(ctx, s.store, func(uow repository.UnitOfWork) error {
		user, err := s.authenticate(ctx, uow, email, password)
		if err != nil {
			return err
		}
		user.Activate()
		if err := uow.Users().Update(ctx, user); err != nil {
			return err
		}
		result, err = s.issue(ctx, uow, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *AuthService) authenticate(ctx context.Context, uow repository.UnitOfWork, email, password string) (*domain.User, error) {
	user, err := uow.Users().GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) issue(ctx context.Context, uow repository.UnitOfWork, user *domain.User) (*AuthResult, error) {
	access, accessExp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	raw := base64.URLEncoding.EncodeToString(rawBytes)
	record := &repository.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(raw),
		ExpiresAt: s.now().Add(s.refreshTTL),
	}
	if err := uow.RefreshTokens().Add(ctx, record); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:             user,
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     raw,
		RefreshExpiresAt: record.ExpiresAt,
	}, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

func utcNow() time.Time { return time.Now().UTC() }
