package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	"github.com/yungbote/skillgraph-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

// IdentityService resolves the (user_id, role) pair for a request. Credentials
// are issued elsewhere; this side only verifies HS256 tokens.
type IdentityService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	ParseToken(tokenString string) (*ctxutil.Identity, error)
	IssueToken(userID string, role domain.Role, ttl time.Duration) (string, error)
}

type identityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type identityService struct {
	log    *logger.Logger
	secret []byte
	issuer string
}

func NewIdentityService(log *logger.Logger, jwtSecretKey, issuer string) IdentityService {
	return &identityService{
		log:    log.With("service", "IdentityService"),
		secret: []byte(jwtSecretKey),
		issuer: strings.TrimSpace(issuer),
	}
}

func (s *identityService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	id, err := s.ParseToken(tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithIdentity(ctx, id), nil
}

func (s *identityService) ParseToken(tokenString string) (*ctxutil.Identity, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("jwt secret not configured")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("token role: %w", err)
	}
	return &ctxutil.Identity{UserID: userID, Role: role.String()}, nil
}

func (s *identityService) IssueToken(userID string, role domain.Role, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("jwt secret not configured")
	}
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := time.Now()
	claims := identityClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.TrimSpace(userID),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
