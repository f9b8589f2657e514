package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/consultation-service/internal/pkg/utils"
	"github.com/consultation-service/internal/usecase"
	"github.com/consultation-service/internal/usecase/dto"
)

const (
	// AdminSessionCookie - HttpOnly cookie с идентификатором сессии.
	AdminSessionCookie = "admin_session"

	localsAdminKey = "auth_admin"
)

// AdminAuth - проверка админской сессии: cookie разрешается в активного
// администратора через redis, иначе 401.
func AdminAuth(authUC *usecase.AdminAuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(AdminSessionCookie)

		admin, err := authUC.Verify(c.Context(), sessionID)
		if err != nil {
			return utils.SendError(c, err)
		}

		c.Locals(localsAdminKey, admin)
		return c.Next()
	}
}

// AdminFromCtx - администратор текущего запроса.
func AdminFromCtx(c *fiber.Ctx) (*dto.AdminResponse, bool) {
	admin, ok := c.Locals(localsAdminKey).(*dto.AdminResponse)
	return admin, ok
}
