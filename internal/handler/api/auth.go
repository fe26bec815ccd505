package api

import (
	"net/http"

	reqdto "equipment-reservation/internal/handler/dto/request"
	resdto "equipment-reservation/internal/handler/dto/response"
	"equipment-reservation/internal/handler/httperr"
	"equipment-reservation/internal/handler/middleware"
	"equipment-reservation/internal/pkg/config"
	"equipment-reservation/internal/pkg/cookie"
	"equipment-reservation/internal/pkg/errs"
	"equipment-reservation/internal/usecase/commands"
	"equipment-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds commands.AuthCommands
	q    queries.AdminQueries
	cfg  config.Config
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.AdminQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds: cmds,
		q:    q,
		cfg:  cfg,
	}
}

// @Summary Admin login
// @Description Login with email and password; the token is also set as an HttpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidCredentials),
			errs.Is(err, commands.ErrAuthenticationFailed):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errs.Is(err, commands.ErrAdminInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	adminView, err := h.q.GetCurrentAdmin(c.Request.Context(), result.AdminID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	cookie.SetAccessToken(c, h.cfg.Cookie, result.AccessToken, result.ExpiresIn)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
		Admin:       resdto.FromAdminView(adminView),
	})
}

// @Summary Admin logout
// @Description Clears the access token cookie. Bearer tokens expire on their own.
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Current admin
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.AdminResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Admin not authenticated", nil)
		return
	}

	adminView, err := h.q.GetCurrentAdmin(c.Request.Context(), adminID)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrAdminNotFound):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Admin not found", nil)
		case errs.Is(err, queries.ErrAdminInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAdminView(adminView))
}
