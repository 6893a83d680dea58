package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "almacen-api-test"
	testExpMin    = 60
)

// stubAuthorizer autorizador programable para el middleware de permisos.
type stubAuthorizer struct {
	granted map[entity.Capability]bool
	err     error
}

func (a *stubAuthorizer) Can(_ context.Context, _ string, cap entity.Capability) (bool, error) {
	if a.err != nil {
		return false, a.err
	}
	return a.granted[cap], nil
}

// buildTestApp construye una aplicación Fiber mínima: AuthMiddleware para
// parsear el JWT y RequirePermission para autorizar, más un handler dummy.
func buildTestApp(authorizer *stubAuthorizer, required entity.Capability) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(required, authorizer),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Almacenero", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(&stubAuthorizer{}, entity.CapRead)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&stubAuthorizer{}, entity.CapRead)
	resp := doRequest(t, app, "Token abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un esquema distinto de Bearer debe rechazarse")
}

func TestAuthMiddleware_TokenMalformado_Retorna401(t *testing.T) {
	app := buildTestApp(&stubAuthorizer{}, entity.CapRead)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp(&stubAuthorizer{}, entity.CapRead)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Almacenero", testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(&stubAuthorizer{}, entity.CapRead)
	tok, err := pkgjwt.Generate("otro-secret-distinto", testUserID, "Almacenero", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CargaUserIDEnLocals(t *testing.T) {
	authorizer := &stubAuthorizer{granted: map[entity.Capability]bool{entity.CapRead: true}}
	app := buildTestApp(authorizer, entity.CapRead)

	resp := doRequest(t, app, validToken(t))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_Concedido_Retorna200(t *testing.T) {
	authorizer := &stubAuthorizer{granted: map[entity.Capability]bool{entity.CapManageUsers: true}}
	app := buildTestApp(authorizer, entity.CapManageUsers)

	resp := doRequest(t, app, validToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_Denegado_Retorna403(t *testing.T) {
	authorizer := &stubAuthorizer{granted: map[entity.Capability]bool{}}
	app := buildTestApp(authorizer, entity.CapManageUsers)

	resp := doRequest(t, app, validToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"sin la capacidad requerida el acceso debe denegarse")
}

func TestRequirePermission_FalloDeInfra_Retorna503(t *testing.T) {
	authorizer := &stubAuthorizer{err: domain.ErrNotFound}
	app := buildTestApp(authorizer, entity.CapRead)

	resp := doRequest(t, app, validToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode,
		"un fallo al consultar permisos no debe traducirse en un 403 silencioso")
}

// ──────────────────────────────────────────────────────────────────────────────
// pkg/jwt — integridad de generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "Almacenero", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "Almacenero", role)
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "Almacenero", testIssuer, testExpMin)
	assert.Error(t, err)
}
