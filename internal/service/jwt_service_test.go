package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTService_IssueParseAccess(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)

	token, err := svc.IssueAccessToken("stylist")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token.AccessToken == "" || token.ExpiresIn != 900 {
		t.Fatalf("unexpected token: %+v", token)
	}

	claims, err := svc.ParseAccessToken(token.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.Operator != "stylist" || claims.Issuer != jwtIssuer || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RejectsEmptySecret(t *testing.T) {
	svc := NewJWTService("", 15*time.Minute)
	if svc.Enabled() {
		t.Fatalf("expected service disabled without secret")
	}
	if _, err := svc.IssueAccessToken("stylist"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
}

func TestJWTService_RejectsEmptyOperator(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	if _, err := svc.IssueAccessToken("  "); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for empty operator, got %v", err)
	}
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	issuedAt := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	token, err := svc.IssueAccessToken("stylist")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	if _, err := svc.ParseAccessToken(token.AccessToken); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret", time.Minute).IssueAccessToken("stylist")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := NewJWTService("other", time.Minute).ParseAccessToken(token.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong secret, got %v", err)
	}
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	now := time.Now().UTC()
	claims := Claims{
		Operator:  "stylist",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "other-issuer",
			Subject:   "stylist",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.ParseAccessToken(signed); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong issuer, got %v", err)
	}
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	now := time.Now().UTC()
	claims := Claims{
		Operator:  "stylist",
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Subject:   "stylist",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.ParseAccessToken(signed); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for non-access token, got %v", err)
	}
}
