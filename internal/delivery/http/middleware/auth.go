package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/pkg/utils"
)

// localsUserKey - ключ AuthUser в locals запроса.
const localsUserKey = "auth_user"

type userClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// UserAuth - проверка Bearer JWT от identity-провайдера (HS256, общий
// секрет). Идентичности из валидного токена система доверяет как есть.
func UserAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &userClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(localsUserKey, domain.AuthUser{
			ID:       claims.Subject,
			Email:    claims.Email,
			Name:     claims.Name,
			FullName: claims.FullName,
			Phone:    claims.Phone,
		})

		return c.Next()
	}
}

// AuthUserFromCtx - AuthUser текущего запроса. Второе значение false,
// если запрос прошёл мимо UserAuth.
func AuthUserFromCtx(c *fiber.Ctx) (domain.AuthUser, bool) {
	user, ok := c.Locals(localsUserKey).(domain.AuthUser)
	return user, ok
}
