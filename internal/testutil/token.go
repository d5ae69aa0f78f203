package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestToken signs an HS256 token shaped like the hosted auth provider's, valid
// for ttl (already expired when ttl is negative).
func TestToken(t *testing.T, secret string, userID, companyID int64, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"company_id": companyID,
		"exp":        now.Add(ttl).Unix(),
		"iat":        now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}
