package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	actorPatient   = "patient"
	actorCaregiver = "caregiver"

	contextUserIDKey      = "current_user_id"
	contextCaregiverIDKey = "current_caregiver_id"
)

const authTokenTTL = 72 * time.Hour

type authClaims struct {
	AccountID uint   `json:"uid"`
	Actor     string `json:"actor"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildToken(accountID uint, actor string) (string, error) {
	now := time.Now()
	claims := authClaims{
		AccountID: accountID,
		Actor:     actor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(accountID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(authTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseBearerToken(c *fiber.Ctx) (*authClaims, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return nil, errors.New("missing authorization header")
	}
	tokenValue, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return nil, errors.New("malformed authorization header")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenValue), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}
	return claims, nil
}

func (handler *Handler) PatientRequired(c *fiber.Ctx) error {
	claims, err := handler.parseBearerToken(c)
	if err != nil || claims.Actor != actorPatient {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if _, err := handler.auth.GetPatient(claims.AccountID); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserIDKey, claims.AccountID)
	return c.Next()
}

func (handler *Handler) CaregiverRequired(c *fiber.Ctx) error {
	claims, err := handler.parseBearerToken(c)
	if err != nil || claims.Actor != actorCaregiver {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if _, err := handler.auth.GetCaregiver(claims.AccountID); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextCaregiverIDKey, claims.AccountID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals(contextUserIDKey).(uint)
	return userID
}

func currentCaregiverID(c *fiber.Ctx) uint {
	caregiverID, _ := c.Locals(contextCaregiverIDKey).(uint)
	return caregiverID
}
