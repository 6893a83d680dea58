package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/authz"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// AuthHandler maneja login, registro y perfil del usuario autenticado.
type AuthHandler struct {
	uc       *auth.UseCase
	authz    *authz.Service
	resolver *Resolver
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase, authzSvc *authz.Service, resolver *Resolver) *AuthHandler {
	return &AuthHandler{uc: uc, authz: authzSvc, resolver: resolver}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return handleError(c, domain.NewValidationError("email", "email y password son requeridos"))
	}
	user, token, err := h.uc.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return handleError(c, err)
	}
	role, _ := h.authz.Role(c.Context(), user.ID)
	return c.JSON(dto.LoginResponse{
		User:      h.resolver.userResponse(c.Context(), user, role),
		Token:     token,
		TokenType: "Bearer",
	})
}

// Register godoc
// @Summary      Registro de autoservicio (rol Visualizador)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.LoginResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Password != in.PasswordConfirmation {
		return handleError(c, domain.NewValidationError("password", "las contraseñas no coinciden"))
	}
	user, token, err := h.uc.Register(c.Context(), in.Name, in.Email, in.Password, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	role, _ := h.authz.Role(c.Context(), user.ID)
	return c.Status(fiber.StatusCreated).JSON(dto.LoginResponse{
		User:      h.resolver.userResponse(c.Context(), user, role),
		Token:     token,
		TokenType: "Bearer",
	})
}

// Me godoc
// @Summary      Perfil del usuario autenticado, con sus permisos efectivos
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, role, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.userResponse(c.Context(), user, role))
}

// UpdateProfile godoc
// @Summary      Actualizar el propio perfil (nombre, email, contraseña)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Datos del perfil"
// @Success      200   {object}  dto.UserResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/me [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	userID := GetUserID(c)
	user, err := h.uc.UpdateProfile(c.Context(), userID, in.Name, in.Email, in.Password, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	role, _ := h.authz.Role(c.Context(), user.ID)
	return c.JSON(h.resolver.userResponse(c.Context(), user, role))
}
