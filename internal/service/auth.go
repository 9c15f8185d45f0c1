package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Strob0t/clientdesk/internal/config"
	"github.com/Strob0t/clientdesk/internal/domain"
	"github.com/Strob0t/clientdesk/internal/domain/user"
	"github.com/Strob0t/clientdesk/internal/operation"
	"github.com/Strob0t/clientdesk/internal/port/database"
)

const (
	tokenIssuer   = "clientdesk"
	tokenAudience = "clientdesk-api"

	msgInvalidCredentials = "Invalid credentials."
)

var loginMessages = operation.Messages{
	"email":    "No email given.",
	"password": "No password given.",
}

// Claims is the JWT payload. The subject carries the user id.
type Claims struct {
	Role user.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles password authentication and JWT tokens.
type AuthService struct {
	store  database.Store
	cfg    *config.Auth
	secret []byte
	runner *operation.Runner
	now    func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(store database.Store, cfg *config.Auth, runner *operation.Runner) *AuthService {
	return &AuthService{
		store:  store,
		cfg:    cfg,
		secret: []byte(cfg.JWTSecret),
		runner: runner,
		now:    time.Now,
	}
}

// Login verifies email and password and answers with a signed token.
func (s *AuthService) Login(ctx context.Context, p operation.Params) operation.Envelope {
	req := user.LoginRequest{Email: p.Text("email"), Password: p.String("password")}
	return operation.Run(ctx, s.runner, operation.Operation[*user.LoginResponse]{
		Name:     "auth.login",
		Kind:     operation.KindReadOne,
		Validate: func(l *operation.ErrorList) { operation.Check(l, req, loginMessages) },
		Execute: func(ctx context.Context) (*user.LoginResponse, error) {
			u, err := s.store.GetUserByEmail(ctx, req.Email)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, operation.Errorf(operation.ClassAuthorization, msgInvalidCredentials)
			}
			if err != nil {
				return nil, fmt.Errorf("get user: %w", err)
			}
			if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
				return nil, operation.Errorf(operation.ClassAuthorization, msgInvalidCredentials)
			}
			token, err := s.IssueToken(u.Actor())
			if err != nil {
				return nil, err
			}
			return &user.LoginResponse{
				Token:     token,
				ExpiresIn: int(s.cfg.TokenExpiry.Seconds()),
				UserID:    u.ID,
				Role:      u.Role,
			}, nil
		},
		Failure: "Undetermined error logging in.",
	})
}

// IssueToken signs an HS256 token for the actor.
func (s *AuthService) IssueToken(a user.Actor) (string, error) {
	if a.Anonymous() {
		return "", fmt.Errorf("issue token for anonymous actor: %w", domain.ErrValidation)
	}
	now := s.now()
	claims := Claims{
		Role: a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(a.UserID, 10),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiry)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a token and returns the actor it was issued for.
func (s *AuthService) ValidateToken(tokenStr string) (user.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return user.Actor{}, fmt.Errorf("parse token: %w", err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return user.Actor{}, errors.New("parse token: invalid subject")
	}
	if !user.ValidRoles[claims.Role] {
		return user.Actor{}, fmt.Errorf("parse token: unknown role %q", claims.Role)
	}
	return user.Actor{UserID: id, Role: claims.Role}, nil
}

// HashPassword returns the bcrypt hash of password at the configured cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// SetPassword replaces the password of the account registered under email.
func (s *AuthService) SetPassword(ctx context.Context, email, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", domain.ErrValidation)
	}
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user %s: %w", email, err)
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
