package handlers

import (
	"net/http"
	"strings"

	parking "parking_monitor"
	"parking_monitor/internal/models"
	"parking_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest accepts either username or email as the identifier.
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Email    string `json:"email,omitempty" example:"admin@example.com"`
	Password string `json:"password" example:"secret123"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" example:"operator"`
	Email    string `json:"email,omitempty" example:"operator@example.com"`
	Password string `json:"password" example:"secret123"`
	Role     string `json:"role,omitempty" example:"admin"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		// optional structured logging
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, parking.Fail(errInvalidBody))
		return false
	}
	return true
}

func userInfo(u models.AdminUser) parking.UserInfo {
	return parking.UserInfo{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// @Summary      Login
// @Description  Exchange username (or email) and password for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  parking_monitor.Response
// @Failure      400   {object}  parking_monitor.Response
// @Failure      401   {object}  parking_monitor.Response
// @Failure      429   {object}  parking_monitor.Response
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	identifier := strings.TrimSpace(input.Username)
	if identifier == "" {
		identifier = strings.TrimSpace(input.Email)
	}
	if identifier == "" || input.Password == "" {
		h.respondError(c, service.ErrUsernameRequired, "auth_login_rejected")
		return
	}

	tok, err := h.services.Authenticate(c.Request.Context(), identifier, input.Password, c.ClientIP())
	if err != nil {
		h.respondError(c, err, "auth_login_failed", "identifier", identifier, "client_ip", c.ClientIP())
		return
	}

	if h.log != nil {
		h.log.Infow("auth_login", "username", tok.User.Username, "role", tok.User.Role)
	}
	c.JSON(http.StatusOK, parking.OK(parking.TokenResponse{
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		User:      userInfo(tok.User),
	}))
}

// @Summary      Register admin account
// @Description  Open registration gets the configured default role. Choosing a role requires an admin bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Account"
// @Success      201   {object}  parking_monitor.Response
// @Failure      400   {object}  parking_monitor.Response
// @Failure      401   {object}  parking_monitor.Response
// @Failure      403   {object}  parking_monitor.Response
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	params := service.RegisterParams{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}
	if strings.TrimSpace(input.Role) != "" {
		claims, ok := h.authenticate(c)
		if !ok {
			return
		}
		if !models.IsAdmin(claims.Role) {
			h.respondError(c, service.ErrAdminRequired, "auth_register_forbidden", "username", claims.Username, "role", claims.Role)
			return
		}
		params.Role = input.Role
		params.AssignRole = true
	}

	u, err := h.services.Register(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, err, "auth_register_failed", "username", input.Username)
		return
	}

	if h.log != nil {
		h.log.Infow("auth_registered", "user_id", u.ID, "username", u.Username, "role", u.Role)
	}
	c.JSON(http.StatusCreated, parking.OK(userInfo(u)))
}

// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  parking_monitor.Response
// @Failure      401  {object}  parking_monitor.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		h.respondError(c, service.ErrMissingToken, "auth_me_rejected")
		return
	}
	c.JSON(http.StatusOK, parking.OK(parking.UserInfo{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}))
}
