package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
)

const issuer = "saas-metrics-api"

// Authenticator valida os tokens de acesso da API. Os tokens são emitidos fora da API
// (cmd/token) com o mesmo segredo.
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	IssueToken(subject, role string) (string, error)
}

type Service struct {
	cfg config.Auth
	now func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	return &Service{
		cfg: cfg,
		now: time.Now,
	}
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if s.cfg.Secret == "" {
		return nil, NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "AUTH_SECRET vazio")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

// IssueToken gera um token HS256 para o subject e papel informados
func (s *Service) IssueToken(subject, role string) (string, error) {
	if s.cfg.Secret == "" {
		return "", NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "AUTH_SECRET vazio")
	}

	role = strings.ToLower(strings.TrimSpace(role))
	if role != domain.RoleAdmin && role != domain.RoleViewer {
		return "", NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidRequest, role)
	}

	now := s.now()
	claims := &domain.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
