package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidate(t *testing.T) {
	Init("test-secret", "command-center", 1)

	tokenString, err := GenerateToken("8a4e1c1e-0000-4000-8000-000000000001", "ops@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateToken() err = %v", err)
	}
	claims, err := ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() err = %v", err)
	}
	if claims.Subject != "8a4e1c1e-0000-4000-8000-000000000001" || claims.Email != "ops@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.EffectiveRole() != "ADMIN" {
		t.Fatalf("role = %q", claims.EffectiveRole())
	}
	if ttl := RemainingTTL(claims); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("ttl = %v", ttl)
	}
}

func TestValidateRejects(t *testing.T) {
	Init("test-secret", "", 0)
	sign := func(secret string, claims jwt.Claims, method jwt.SigningMethod) string {
		var key interface{} = []byte(secret)
		if method == jwt.SigningMethodNone {
			key = jwt.UnsafeAllowNoneSignatureType
		}
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	cases := map[string]string{
		"wrong secret": sign("other", &UserClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: future}}, jwt.SigningMethodHS256),
		"expired":      sign("test-secret", &UserClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: past}}, jwt.SigningMethodHS256),
		"no exp":       sign("test-secret", &UserClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}, jwt.SigningMethodHS256),
		"no sub":       sign("test-secret", &UserClaims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future}}, jwt.SigningMethodHS256),
		"alg none":     sign("", &UserClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: future}}, jwt.SigningMethodNone),
		"garbage":      "not.a.token",
	}
	for name, tokenString := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ValidateToken(tokenString); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestEffectiveRole(t *testing.T) {
	cases := []struct {
		name   string
		claims UserClaims
		want   string
	}{
		{"app metadata wins", UserClaims{Role: "authenticated", AppMetadata: AppMetadata{Role: "editor"}}, "EDITOR"},
		{"top level role", UserClaims{Role: "admin"}, "ADMIN"},
		{"authenticated", UserClaims{Role: "authenticated"}, "USER"},
		{"unknown", UserClaims{Role: "service_role"}, "USER"},
		{"empty", UserClaims{}, "USER"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.claims.EffectiveRole(); got != tc.want {
				t.Fatalf("EffectiveRole() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractSignature(t *testing.T) {
	if sig, err := ExtractSignature("a.b.c"); err != nil || sig != "c" {
		t.Fatalf("ExtractSignature() = %q, %v", sig, err)
	}
	if _, err := ExtractSignature(strings.Repeat("x", 10)); err == nil {
		t.Fatalf("expected error")
	}
}
