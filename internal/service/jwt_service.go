package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const jwtIssuer = "outfit-planner"

// JWTService emite y valida tokens de operador para las rutas que modifican datos.
type JWTService struct {
	secret    []byte
	accessTTL time.Duration
	issuer    string
	now       func() time.Time
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Claims struct {
	Operator  string `json:"op"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewJWTService(secret string, accessTTL time.Duration) *JWTService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &JWTService{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		issuer:    jwtIssuer,
		now:       time.Now,
	}
}

// Enabled indica si hay secreto configurado. Sin secreto la API queda abierta.
func (s *JWTService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// IssueAccessToken firma un token de acceso para operator.
func (s *JWTService) IssueAccessToken(operator string) (AccessToken, error) {
	if !s.Enabled() {
		return AccessToken{}, ErrJWTInvalid
	}
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return AccessToken{}, ErrJWTInvalid
	}
	now := s.now().UTC()
	claims := Claims{
		Operator:  operator,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   operator,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *JWTService) ParseAccessToken(accessToken string) (Claims, error) {
	if !s.Enabled() {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, ErrJWTInvalid
	}
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != "access" {
		return Claims{}, ErrJWTInvalid
	}
	if !s.isValidClaims(claims) {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *JWTService) parseToken(tokenString string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.Operator) == "" {
		return false
	}
	if claims.Subject != claims.Operator {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
