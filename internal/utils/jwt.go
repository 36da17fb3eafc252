package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fopmanager/fop-api/internal/models"
)

// GenerateJWT issues a signed token carrying the user's identity and role
func GenerateJWT(user models.JWT, cfg models.JWTConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"role":     user.Role,
		"iss":      cfg.Issuer,
		"aud":      cfg.Audience,
		"iat":      now.Unix(),
		"exp":      now.Add(cfg.Expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ParseJWT validates a token string and returns the embedded claims
func ParseJWT(tokenString string, cfg models.JWTConfig) (*models.JWT, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SecretKey), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithAudience(cfg.Audience))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	user := &models.JWT{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
	}
	if id, ok := claims["id"].(float64); ok {
		user.ID = int(id)
	}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if username, ok := claims["username"].(string); ok {
		user.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}
	if exp, ok := claims["exp"].(float64); ok {
		user.ExpiresAt = int64(exp)
	}
	if iat, ok := claims["iat"].(float64); ok {
		user.IssuedAt = int64(iat)
	}
	return user, nil
}
