package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopcart/internal/domain"
	"shopcart/internal/repos"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
	ErrBadToken   = errors.New("invalid or expired token")
)

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *repos.TokenRepo
	Secret []byte
	TTL    time.Duration
}

// Token is a freshly minted bearer credential.
type Token struct {
	Value     string
	ExpiresIn int64 // seconds
}

func (s *AuthService) issue(userID int64) (Token, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresIn: int64(s.TTL.Seconds())}, nil
}

func (s *AuthService) Register(name, email, password string) (*domain.User, Token, error) {
	taken, err := s.Users.EmailTaken(email)
	if err != nil {
		return nil, Token{}, err
	}
	if taken {
		return nil, Token{}, ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, Token{}, err
	}
	u, err := s.Users.Create(name, email, string(h))
	if err != nil {
		return nil, Token{}, err
	}
	tok, err := s.issue(u.ID)
	return u, tok, err
}

func (s *AuthService) Login(email, password string) (*domain.User, Token, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, Token{}, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, Token{}, ErrBadCreds
	}
	tok, err := s.issue(u.ID)
	return u, tok, err
}

// Authenticate verifies a bearer token and resolves its user. Revoked and
// malformed tokens both come back as ErrBadToken.
func (s *AuthService) Authenticate(tokenString string) (*domain.User, *jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.Secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, nil, ErrBadToken
	}
	if revoked, err := s.Tokens.IsRevoked(claims.ID); err != nil || revoked {
		return nil, nil, ErrBadToken
	}
	uid, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, nil, ErrBadToken
	}
	u, err := s.Users.ByID(uid)
	if err != nil {
		return nil, nil, ErrBadToken
	}
	return u, claims, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(claims *jwt.RegisteredClaims) error {
	exp := time.Now().Add(s.TTL)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return s.Tokens.Revoke(claims.ID, exp)
}

// Refresh revokes the presented token and mints a new one for the same user.
func (s *AuthService) Refresh(userID int64, claims *jwt.RegisteredClaims) (Token, error) {
	if err := s.Logout(claims); err != nil {
		return Token{}, err
	}
	return s.issue(userID)
}
