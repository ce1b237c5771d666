package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inventario-api/internal/model"
	"inventario-api/pkg/apierror"
)

// fallbackTokenTTL applies when IssueToken is called without a lifetime. The
// login flow always passes the configured TTL (30m by default), so this only
// covers direct callers; the two defaults differ on purpose.
const fallbackTokenTTL = 15 * time.Minute

const bcryptCost = 12

type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (model.Usuario, error)
}

// AuthService verifies credentials and manages the bearer-token lifecycle.
// Tokens are stateless: there is no revocation, a token stays valid until its
// expiry regardless of anything that happens server-side.
type AuthService struct {
	users     UserFinder
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(jwtSecret string, accessTTL time.Duration, users UserFinder) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}

	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}, nil
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(plain string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Authenticate returns the user when the username exists and the password
// matches, and (nil, nil) otherwise. A failed match is a normal outcome, not
// an error.
func (s *AuthService) Authenticate(ctx context.Context, username string, password string) (*model.Usuario, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	if !s.VerifyPassword(password, u.Password) {
		return nil, nil
	}

	return &u, nil
}

// IssueToken signs an HS256 token for the subject. A non-positive ttl falls
// back to fallbackTokenTTL.
func (s *AuthService) IssueToken(subjectID int64, now time.Time, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = fallbackTokenTTL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(subjectID, 10),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})

	return token.SignedString(s.jwtSecret)
}

// Login authenticates and issues a token with the configured lifetime.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.Token, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return model.Token{}, err
	}
	if u == nil {
		return model.Token{}, apierror.Unauthorized("incorrect username or password")
	}

	signed, err := s.IssueToken(u.ID, time.Now().UTC(), s.accessTTL)
	if err != nil {
		return model.Token{}, err
	}

	return model.Token{AccessToken: signed, TokenType: "bearer"}, nil
}

// ResolveToken verifies signature, algorithm, and expiry, returning the
// subject id. Malformed, forged, and expired tokens all collapse to the same
// unauthorized outcome so callers cannot tell the causes apart.
func (s *AuthService) ResolveToken(tokenString string) (int64, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return 0, apierror.Unauthorized("invalid or expired token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apierror.Unauthorized("invalid or expired token")
	}

	sub, _ := claims["sub"].(string)
	subjectID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, apierror.Unauthorized("invalid or expired token")
	}

	return subjectID, nil
}
