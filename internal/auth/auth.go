// Package auth implements the registration/login boundary: password
// hashing and bearer-token issuance. It is a thin wrapper over bcrypt and
// HS256 JWTs; the search core never sees it.
package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gokulkrishnanav-stack/Temple-Finder-Bot/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// UserStore is the persistence capability the service needs.
type UserStore interface {
	CreateUser(u *model.User) error
	UserByEmail(email string) (*model.User, error)
}

// TokenFactory signs and verifies HS256 bearer tokens.
type TokenFactory struct {
	Secret   []byte
	Issuer   string
	Validity time.Duration
}

// Create issues a signed token whose subject is the user id.
func (tf *TokenFactory) Create(now time.Time, subject string) (string, error) {
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.StandardClaims{
			Subject:   subject,
			Issuer:    tf.Issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tf.Validity).Unix(),
			NotBefore: now.Unix(),
		},
	)
	signed, err := token.SignedString(tf.Secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its subject (the user id).
func (tf *TokenFactory) Verify(tokenString string) (string, error) {
	var claims jwt.StandardClaims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return tf.Secret, nil
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if err := claims.Valid(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.Subject, nil
}

// Service handles registration and login against a user store.
type Service struct {
	Users    UserStore
	Tokens   *TokenFactory
	TimeFunc func() time.Time
}

func (s *Service) now() time.Time {
	if s.TimeFunc != nil {
		return s.TimeFunc()
	}
	return time.Now()
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(email, name, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email", ErrInvalidCredentials)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password shorter than 8 characters", ErrInvalidCredentials)
	}

	if _, err := s.Users.UserByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}
	if err := s.Users.CreateUser(u); err != nil {
		return nil, fmt.Errorf("storing user: %w", err)
	}
	return u, nil
}

// Login checks credentials and issues a bearer token.
func (s *Service) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Users.UserByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	} else if err != nil {
		return "", fmt.Errorf("loading user: %w", err)
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.Tokens.Create(s.now(), u.ID)
}
