package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"rentnest/server/internal/database"
	"rentnest/server/internal/models"
)

var (
	// ErrInvalidCredentials is returned when the provided credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when an account already exists for the email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidRole is returned for roles outside tenant/landlord/admin.
	ErrInvalidRole = errors.New("invalid role")
)

// Claims carried inside a session token.
type Claims struct {
	jwt.RegisteredClaims
}

// Service owns sign-up, sign-in, sign-out and the session bootstrap.
type Service struct {
	db      *database.Database
	secret  []byte
	ttl     time.Duration
	revoked RevocationStore
	logger  *logrus.Logger
}

func NewService(db *database.Database, secret string, ttl time.Duration, revoked RevocationStore, logger *logrus.Logger) *Service {
	if revoked == nil {
		revoked = noopRevocationStore{}
	}
	return &Service{
		db:      db,
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		logger:  logger,
	}
}

// SignUp creates the credential and the profile row with the chosen role.
// The role is immutable afterwards; nothing in the application can change
// it.
func (s *Service) SignUp(ctx context.Context, email, password, fullName, role string) (*models.Account, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.db.GetAccountByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
	}
	if err := s.db.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// SignIn verifies the credentials and mints a session token. Failures are
// surfaced to the caller unmodified and never retried.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *models.Account, error) {
	account, err := s.db.GetAccountByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.mintToken(account.ID)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// SignOut revokes the token until its natural expiry. Revocation is best
// effort: a failure is logged and the token simply ages out instead.
func (s *Service) SignOut(ctx context.Context, tokenString string) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return
	}
	until := time.Until(claims.ExpiresAt.Time)
	if until <= 0 {
		return
	}
	if err := s.revoked.Revoke(ctx, claims.ID, until); err != nil {
		s.logger.WithError(err).Warn("Failed to revoke session token")
	}
}

// Bootstrap resolves a token to its account. Any failure — bad token,
// revoked session, unreachable store, missing profile row — yields the
// logged-out state (nil, nil), never an error: the gate fails open to
// logged-out rather than crashing the caller.
func (s *Service) Bootstrap(ctx context.Context, tokenString string) *models.Account {
	if tokenString == "" {
		return nil
	}

	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.WithError(err).Warn("Revocation check failed, treating session as signed out")
		return nil
	}
	if revoked {
		return nil
	}

	account, err := s.db.GetAccountByID(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			s.logger.WithError(err).Warn("Session bootstrap failed, treating as signed out")
		}
		return nil
	}
	return account
}

func (s *Service) mintToken(accountID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
}

func (s *Service) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if token.Method.Alg() != "HS512" {
			return nil, fmt.Errorf("only HS512 is allowed")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
