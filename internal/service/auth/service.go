package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/prabhatlnct2008/mywabiz/internal/domain"
	merchantrepo "github.com/prabhatlnct2008/mywabiz/internal/repository/merchant"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles merchant signup/login and access token issuance.
type Service struct {
	repo        merchantrepo.Repository
	secret      []byte
	accessTTL   time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo merchantrepo.Repository, secret string, accessTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = 48 * time.Hour
	}
	return &Service{
		repo:        repo,
		secret:      []byte(secret),
		accessTTL:   accessTTL,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginInput captures the login payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session pairs an authenticated merchant with a bearer token.
type Session struct {
	Merchant    *domain.Merchant `json:"merchant"`
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// Signup registers a new merchant account and logs it in.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, domain.Invalid("email required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, domain.Invalid("password too short")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, domain.Merchant{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(in.Name),
	})
	if err != nil {
		return nil, err
	}
	return s.session(created)
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	m, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.session(m)
}

// Validate parses a bearer token and returns the merchant id it carries.
func (s *Service) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// Merchant loads the account behind a validated token subject.
func (s *Service) Merchant(ctx context.Context, id string) (*domain.Merchant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) session(m *domain.Merchant) (*Session, error) {
	expires := time.Now().Add(s.accessTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": m.ID,
		"exp": expires.Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &Session{Merchant: m, AccessToken: signed, ExpiresAt: expires}, nil
}
