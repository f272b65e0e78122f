package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/config"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
)

// JWTClaims is the identity context carried by every authenticated request.
// The correspondence core trusts these claims for organization scoping and
// never re-authenticates.
type JWTClaims struct {
	UserID         uint        `json:"user_id"`
	OrganizationID uint        `json:"organization_id"`
	Role           models.Role `json:"role"`
	Username       string      `json:"username"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(user models.User) (string, *JWTClaims, error) {
	cfg := config.LoadJWTConfig()
	now := time.Now()

	claims := &JWTClaims{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
		Username:       user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(cfg.SecretKey)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func VerifyAccessToken(tokenString string) (*JWTClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}

	cfg := config.LoadJWTConfig()

	claims := &JWTClaims{}
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, errors.New("unexpected signing method")
			}
			return cfg.SecretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}

	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
