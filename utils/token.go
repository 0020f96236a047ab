package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/kikelara/kikelara-backend-go/config"
)

// AdminTokenTTL is the fixed lifetime of an admin bearer token.
const AdminTokenTTL = 12 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature,
// malformed payload, wrong role, expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// AdminClaims is the token payload: {role, iat, exp}.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

func adminSecret() []byte {
	return []byte(config.GetEnv("ADMIN_SECRET", "CHANGE_ME_SUPER_SECRET"))
}

// GenerateAdminToken issues a signed admin token valid for AdminTokenTTL.
func GenerateAdminToken(now time.Time) (string, error) {
	claims := &AdminClaims{
		Role: "admin",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(AdminTokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(adminSecret())
}

// ValidateAdminToken verifies the signature (constant-time HMAC compare
// inside the library), the expiry and the admin role.
func ValidateAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return adminSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != "admin" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
