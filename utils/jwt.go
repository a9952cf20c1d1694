package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"zapcontacts/config"
	"zapcontacts/models"
)

type Claims struct {
	UserID    uint   `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateJWTToken issues an access/refresh token pair for the user and
// records the refresh token so the session can be revoked later.
func GenerateJWTToken(user *models.User, userAgent, ip string) (string, string, string, error) {
	sessionID := uuid.NewString()

	// Access token (15 minutes expiry)
	accessClaims := &Claims{
		UserID:    user.ID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(config.AppConfig.EncryptionKey))
	if err != nil {
		return "", "", "", err
	}

	// Refresh token (7 days expiry)
	refreshExpiry := time.Now().Add(7 * 24 * time.Hour)
	refreshClaims := &Claims{
		UserID:    user.ID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(config.AppConfig.EncryptionKey))
	if err != nil {
		return "", "", "", err
	}

	record := models.RefreshToken{
		UserID:    user.ID,
		SessionID: sessionID,
		Token:     refreshTokenString,
		UserAgent: userAgent,
		IPAddress: ip,
		ExpiresAt: refreshExpiry,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		return "", "", "", err
	}

	return accessTokenString, refreshTokenString, sessionID, nil
}

func ParseJWTToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.EncryptionKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// RefreshTokens rotates a refresh token into a fresh token pair. The stored
// session row must still exist and be unrevoked.
func RefreshTokens(refreshToken, userAgent, ip string) (string, string, string, error) {
	claims, err := ParseJWTToken(refreshToken)
	if err != nil {
		return "", "", "", err
	}

	if time.Until(claims.ExpiresAt.Time) <= 0 {
		return "", "", "", errors.New("refresh token expired")
	}

	var stored models.RefreshToken
	if err := config.DB.Where("session_id = ? AND revoked_at IS NULL", claims.SessionID).First(&stored).Error; err != nil {
		return "", "", "", errors.New("session revoked or not found")
	}

	var user models.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		return "", "", "", errors.New("user not found")
	}

	// Revoke the old session before issuing a new one
	now := time.Now()
	stored.RevokedAt = &now
	if err := config.DB.Save(&stored).Error; err != nil {
		return "", "", "", err
	}

	return GenerateJWTToken(&user, userAgent, ip)
}

// RevokeSession marks a session's refresh token as revoked.
func RevokeSession(sessionID string) error {
	now := time.Now()
	return config.DB.Model(&models.RefreshToken{}).
		Where("session_id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", &now).Error
}
