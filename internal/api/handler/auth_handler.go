package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartshelf/inventory-system/internal/api/metrics"
	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Description  Accounts are always created as USER. Unknown roles get 400, STORE_MANAGER or ADMIN get 403.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Contact:  req.Contact,
		Location: req.Location,
		Role:     req.Role,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", authResult(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	return c.JSON(http.StatusCreated, registerResponse{Message: "User registered successfully!", User: user})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", authResult(err)).Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, Role: string(user.Role), Email: user.Email})
}

func authResult(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrUnknownRole),
		errors.Is(err, domain.ErrForbidden),
		errors.As(err, &ve):
		return "rejected"
	default:
		return "error"
	}
}

type meResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Me echoes the identity carried by the caller's token.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Email: p.Email, Role: string(p.Role)})
}
