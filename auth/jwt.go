package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zarib-ali-wasif/ecommerce-api/models"
)

// issueJWT generates a signed token for a user.
func issueJWT(secret string, expiry time.Duration, user *models.User) string {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"name":    user.Name,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return ""
	}
	return signedToken
}
