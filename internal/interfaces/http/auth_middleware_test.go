package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	apphttp "github.com/jhoicas/ledger-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ledger-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testBusinessID = "00000000-0000-0000-0000-000000000002"
	testIssuer     = "ledger-api-test"
	testExpMin     = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware para resolver la sesión
//   - /whoami abierto a cualquier sesión
//   - /remote-only protegido con RequireMode(remote)
//   - /local-only protegido con RequireMode(local)
func buildTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	whoami := func(c *fiber.Ctx) error {
		s := apphttp.GetSession(c)
		return c.JSON(fiber.Map{
			"scope":   s.Scope,
			"mode":    string(s.Mode),
			"user_id": apphttp.GetUserID(c),
		})
	}
	app.Use(apphttp.SessionMiddleware(testJWTSecret))
	app.Get("/whoami", whoami)
	app.Get("/remote-only", apphttp.RequireMode(entity.ModeRemote), whoami)
	app.Get("/local-only", apphttp.RequireMode(entity.ModeLocal), whoami)
	return app
}

// bearerFor genera un JWT para el negocio indicado.
func bearerFor(t *testing.T, businessID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, businessID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → sesión local del invitado.
func TestSessionMiddleware_SinHeader_EsInvitado(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/whoami", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, entity.GuestScope, body["scope"])
	assert.Equal(t, "local", body["mode"])
	assert.Empty(t, body["user_id"])
}

// Token válido → sesión remota con el negocio del token.
func TestSessionMiddleware_TokenValido_EsNegocio(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/whoami", bearerFor(t, testBusinessID))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, testBusinessID, body["scope"])
	assert.Equal(t, "remote", body["mode"])
	assert.Equal(t, testUserID, body["user_id"])
}

func TestSessionMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/whoami", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestSessionMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/whoami", "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un token cuyo negocio es el alcance invitado no abre una sesión remota.
func TestSessionMiddleware_TokenSinNegocio_Retorna401(t *testing.T) {
	app := buildTestApp()
	for _, business := range []string{"", entity.GuestScope} {
		resp := doRequest(t, app, "/whoami", bearerFor(t, business))
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "negocio %q", business)
		assert.Contains(t, string(body), "MISSING_BUSINESS")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireMode
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireMode_InvitadoEnRutaRemota_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/remote-only", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "AUTH_REQUIRED")
}

func TestRequireMode_NegocioEnRutaRemota_Pasa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/remote-only", bearerFor(t, testBusinessID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireMode_NegocioEnRutaLocal_Retorna403(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/local-only", bearerFor(t, testBusinessID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODE_NOT_ALLOWED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testBusinessID, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, businessID, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testBusinessID, businessID)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testBusinessID, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testBusinessID, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testBusinessID, testIssuer, testExpMin)
	assert.Error(t, err)
}
