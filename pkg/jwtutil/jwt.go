package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dispensary-pos/pkg/config"
)

var (
	signingKey []byte
	expiration = 24 * time.Hour
)

// Initialize sets the signing key and token lifetime from configuration.
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		expiration = time.Duration(cfg.ExpirationHours) * time.Hour
	}
}

// EmployeeClaims represents the JWT claims for employee authentication
type EmployeeClaims struct {
	Email      string `json:"email"`
	EmployeeID uint   `json:"employee_id"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a JWT token for an employee
func GenerateToken(email string, employeeID uint, role string) (string, error) {
	claims := EmployeeClaims{
		Email:      email,
		EmployeeID: employeeID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*EmployeeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &EmployeeClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*EmployeeClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
