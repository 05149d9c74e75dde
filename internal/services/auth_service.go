package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 12 * time.Hour

// AuthService issues and validates HS256 access tokens.
type AuthService struct {
	jwtSecret  []byte
	tokenDurat time.Duration
	now        func() time.Time
}

// NewAuthService creates a new AuthService. A non-positive ttl selects DefaultTokenTTL.
func NewAuthService(jwtSecret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: ttl,
		now:        time.Now,
	}
}

// IssueToken signs the caller-supplied claims as they are, adding iat and
// exp. Any exp or iat in claims is overwritten.
func (s *AuthService) IssueToken(claims map[string]interface{}) (string, error) {
	now := s.now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(s.tokenDurat).Unix()

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Debugf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
