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

	apphttp "github.com/jhoicas/cpc-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/cpc-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "cpc-api-test"
	testExpMin    = 60
)

// buildTestApp app mínima con AuthMiddleware + RequireRole y un handler que responde 200.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, role string, permisos ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Identidad{
		UserID:   testUserID,
		Username: "jperez",
		Role:     role,
		Permisos: permisos,
	})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doGet(t, app, "/protected", tokenFor(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_OperadorAccedeRutaAdminOOperador(t *testing.T) {
	app := buildTestApp("admin", "operador")
	resp := doGet(t, app, "/protected", tokenFor(t, "operador"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_ConsultaBloqueada(t *testing.T) {
	app := buildTestApp("admin", "operador")
	resp := doGet(t, app, "/protected", tokenFor(t, "consulta"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doGet(t, app, "/protected", tokenFor(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := buildTestApp("admin")
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin esquema bearer", "Token abc", "INVALID_TOKEN"},
		{"token vacío", "Bearer   ", "MISSING_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doGet(t, app, "/protected", tc.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
			"role":     apphttp.GetRole(c),
			"permisos": apphttp.GetPermisos(c),
		})
	})

	resp := doGet(t, app, "/me", tokenFor(t, "operador", "importar_datos", "ver_reportes"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID   string   `json:"user_id"`
		Username string   `json:"username"`
		Role     string   `json:"role"`
		Permisos []string `json:"permisos"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, "jperez", body.Username)
	assert.Equal(t, "operador", body.Role)
	assert.Equal(t, []string{"importar_datos", "ver_reportes"}, body.Permisos)
}

func TestRequirePermission(t *testing.T) {
	app := fiber.New()
	app.Get("/importar",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission("importar_datos"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"admin sin permisos explícitos", tokenFor(t, "admin"), http.StatusOK},
		{"operador con permiso", tokenFor(t, "operador", "importar_datos"), http.StatusOK},
		{"consulta sin permiso", tokenFor(t, "consulta", "ver_reportes"), http.StatusForbidden},
		{"token sin rol", tokenFor(t, "", "importar_datos"), http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doGet(t, app, "/importar", tc.header)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
