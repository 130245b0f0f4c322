package http

import (
	"net/http"

	"github.com/Manishsonibwr/saas-task-manager/internal/middleware/auth"
	"github.com/labstack/echo/v4"
)

// Me handles GET /api/v1/me and echoes the authenticated identity
func Me(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":    user.UserID,
		"email": user.Email,
	})
}
