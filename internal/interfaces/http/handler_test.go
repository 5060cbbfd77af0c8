package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cpc-api/internal/application/auth"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/importacion"
	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/infrastructure/chart"
	"github.com/jhoicas/cpc-api/internal/infrastructure/memory"
	"github.com/jhoicas/cpc-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cpc-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/cpc-api/internal/interfaces/http"
	"github.com/jhoicas/cpc-api/pkg/logger"
)

const clave = "clave-segura-123"

// newAPI monta el Router completo sobre un store en memoria con usuarios admin1, oper1, cons1 e inactivo.
func newAPI(t *testing.T, importMaxBytes int) *fiber.App {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	r := s.Repos()

	roles := memory.NewRolRepo(s)
	roles.AgregarRol(entity.Rol{ID: "r-admin", Nombre: entity.RolAdmin})
	roles.AgregarRol(entity.Rol{ID: "r-op", Nombre: entity.RolOperador, Permisos: []entity.Permiso{
		{ID: "p-1", Codigo: entity.PermisoImportarDatos},
		{ID: "p-3", Codigo: entity.PermisoVerReportes},
	}})
	roles.AgregarRol(entity.Rol{ID: "r-con", Nombre: entity.RolConsulta, Permisos: []entity.Permiso{
		{ID: "p-3", Codigo: entity.PermisoVerReportes},
	}})
	roles.AgregarDocumento(entity.Documento{ID: "d-1", Documento: "CC"})
	usuarios := memory.NewUsuarioRepo(s)
	usuarioUC := usecase.NewUsuarioUseCase(usuarios, roles)
	for username, rol := range map[string]string{
		"admin1":   entity.RolAdmin,
		"oper1":    entity.RolOperador,
		"cons1":    entity.RolConsulta,
		"inactivo": entity.RolOperador,
	} {
		u, err := usuarioUC.Create(ctx, dto.CreateUsuarioRequest{
			Nombre1: "Ana", Apellido1: "Ruiz", Username: username, Password: clave, Rol: rol,
		})
		require.NoError(t, err)
		if username == "inactivo" {
			activo := false
			_, err = usuarioUC.Update(ctx, u.ID, dto.UpdateUsuarioRequest{Activo: &activo})
			require.NoError(t, err)
		}
	}

	tipos := memory.NewTipoLaborRepo(s)
	labores := memory.NewLaborRepo(s)
	renderer := chart.NewRenderer()

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(usuarios, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		TaxonomiaUC: usecase.NewTaxonomiaUseCase(r.Flores, r.Colores, r.FlorColores, r.Variedades),
		UbicacionUC: usecase.NewUbicacionUseCase(r.Bloques, r.Camas, r.Lados, r.BloqueCamaLados),
		GeometriaUC: usecase.NewGeometriaUseCase(r.Areas, r.Densidades),
		CausaUC:     usecase.NewCausaUseCase(r.Causas),
		TipoLaborUC: usecase.NewTipoLaborUseCase(tipos, r.Flores),
		SiembraUC:   usecase.NewSiembraUseCase(s, r.Siembras, r.Cortes, r.Perdidas, labores),
		CorteUC:     usecase.NewCorteUseCase(s, r.Cortes, r.Siembras),
		PerdidaUC:   usecase.NewPerdidaUseCase(s, r.Perdidas, r.Siembras),
		LaborUC:     usecase.NewLaborUseCase(labores, tipos, r.Siembras),
		UsuarioUC:   usuarioUC,
		ReporteUC:   reportes.NewReporteUseCase(nil, renderer, spreadsheet.NewWriter()),
		CurvaUC: reportes.NewCurvaUseCase(r.Variedades, r.Siembras, renderer, pdf.NewMarotoPDFGenerator(),
			produccion.Parametros{MaximoCicloAbsoluto: 93, SuavizadoMinimoPuntos: 4}),
		DashboardUC:    reportes.NewDashboardUseCase(nil, renderer),
		ImportUC:       importacion.NewImportUseCase(s, spreadsheet.NewReader(), logger.Nop()),
		ImportMaxBytes: importMaxBytes,
		JWTSecret:      testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, resp).Code
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: clave})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return "Bearer " + decode[dto.LoginResponse](t, resp).Token
}

// crear hace POST y devuelve el id del recurso creado.
func crear(t *testing.T, app *fiber.App, bearer, path string, body any) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, path, bearer, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, path)
	return decode[map[string]any](t, resp)["id"].(string)
}

func TestLogin(t *testing.T) {
	app := newAPI(t, 0)

	t.Run("credenciales válidas", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "oper1", Password: clave})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		out := decode[dto.LoginResponse](t, resp)
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, "oper1", out.Usuario.Username)

		me := doJSON(t, app, http.MethodGet, "/api/auth/me", "Bearer "+out.Token, nil)
		require.Equal(t, http.StatusOK, me.StatusCode)
		body := decode[map[string]any](t, me)
		assert.Equal(t, entity.RolOperador, body["role"])
		assert.ElementsMatch(t, []any{entity.PermisoImportarDatos, entity.PermisoVerReportes}, body["permisos"])
	})

	cases := []struct {
		name     string
		username string
		password string
		status   int
	}{
		{"password incorrecto", "oper1", "otro-password", http.StatusUnauthorized},
		{"usuario inexistente", "nadie", clave, http.StatusUnauthorized},
		{"usuario inactivo", "inactivo", clave, http.StatusForbidden},
		{"password vacío", "oper1", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: tc.username, Password: tc.password})
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestFlujoSiembra(t *testing.T) {
	app := newAPI(t, 0)
	oper := login(t, app, "oper1")

	florID := crear(t, app, oper, "/api/flores", dto.FlorRequest{Flor: "Clavel", FlorAbrev: "CL"})
	colorID := crear(t, app, oper, "/api/colores", dto.ColorRequest{Color: "Rojo", ColorAbrev: "RJ"})
	fcID := crear(t, app, oper, "/api/flor-colores", dto.FlorColorRequest{FlorID: florID, ColorID: colorID})
	variedadID := crear(t, app, oper, "/api/variedades", dto.VariedadRequest{Variedad: "Don Pedro", FlorColorID: fcID})
	bloqueID := crear(t, app, oper, "/api/bloques", dto.NombreRequest{Nombre: "07"})
	camaID := crear(t, app, oper, "/api/camas", dto.NombreRequest{Nombre: "12"})
	densidadID := crear(t, app, oper, "/api/densidades", fiber.Map{"densidad": "Normal", "valor": 50})
	causaID := crear(t, app, oper, "/api/causas", dto.CausaRequest{Nombre: "botrytis"})

	t.Run("nombre duplicado", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/bloques", oper, dto.NombreRequest{Nombre: "07"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "DUPLICATE", errorCode(t, resp))
	})

	t.Run("cuerpo inválido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/flores", strings.NewReader("{no-json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", oper)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
	})

	siembraID := crear(t, app, oper, "/api/siembras", dto.CreateSiembraRequest{
		BloqueID:        bloqueID,
		CamaID:          camaID,
		VariedadID:      variedadID,
		CantidadPlantas: 1000,
		DensidadID:      densidadID,
		FechaSiembra:    "2025-01-10",
	})

	t.Run("corte sin inicio de corte", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/siembras/"+siembraID+"/cortes", oper, dto.CreateCorteRequest{FechaCorte: "2025-03-25", CantidadTallos: 10})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "NO_HARVEST_START", errorCode(t, resp))
	})

	resp := doJSON(t, app, http.MethodPost, "/api/siembras/"+siembraID+"/inicio-corte", oper, dto.FechaRequest{Fecha: "2025-03-20"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	crear(t, app, oper, "/api/siembras/"+siembraID+"/cortes", dto.CreateCorteRequest{FechaCorte: "2025-03-25", CantidadTallos: 300})

	t.Run("corte que excede las plantas", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/siembras/"+siembraID+"/cortes", oper, dto.CreateCorteRequest{FechaCorte: "2025-04-01", CantidadTallos: 800})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "EXCEEDS_PLANTS", errorCode(t, resp))
	})

	crear(t, app, oper, "/api/perdidas", dto.CreatePerdidaRequest{SiembraID: siembraID, CausaID: causaID, Cantidad: 10, FechaPerdida: "2025-03-26"})

	t.Run("detalle con estadísticas", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/siembras/"+siembraID, oper, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		det := decode[dto.SiembraDetalleResponse](t, resp)
		assert.Equal(t, 1000, det.Stats.TotalPlantas)
		assert.Equal(t, 300, det.Stats.TotalTallos)
		assert.Equal(t, 10, det.Stats.TotalPerdidas)
		assert.Len(t, det.Cortes, 1)
	})

	t.Run("listado filtrado", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/siembras?estado=Activa&variedad_id="+variedadID+"&limit=5", oper, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		out := decode[dto.SiembraListResponse](t, resp)
		assert.Len(t, out.Items, 1)
	})

	t.Run("registros asociados impiden borrar", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/causas/"+causaID, oper, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "IN_USE", errorCode(t, resp))

		resp = doJSON(t, app, http.MethodDelete, "/api/siembras/"+siembraID, oper, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("siembra finalizada no admite cortes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/siembras/"+siembraID+"/finalizar", oper, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, entity.EstadoFinalizada, decode[dto.SiembraResponse](t, resp).Estado)

		resp = doJSON(t, app, http.MethodPost, "/api/siembras/"+siembraID+"/cortes", oper, dto.CreateCorteRequest{FechaCorte: "2025-04-02", CantidadTallos: 5})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "SIEMBRA_INACTIVE", errorCode(t, resp))
	})

	t.Run("recurso inexistente", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/siembras/no-existe", oper, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp = doJSON(t, app, http.MethodGet, "/api/reportes/curva/no-existe", oper, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPermisos(t *testing.T) {
	app := newAPI(t, 0)
	admin, oper, cons := login(t, app, "admin1"), login(t, app, "oper1"), login(t, app, "cons1")

	cases := []struct {
		name   string
		method string
		path   string
		bearer string
		body   any
		status int
	}{
		{"consulta lee siembras", http.MethodGet, "/api/siembras", cons, nil, http.StatusOK},
		{"consulta no registra bloques", http.MethodPost, "/api/bloques", cons, dto.NombreRequest{Nombre: "1"}, http.StatusForbidden},
		{"consulta no crea causas", http.MethodPost, "/api/causas", cons, dto.CausaRequest{Nombre: "X"}, http.StatusForbidden},
		{"operador no administra usuarios", http.MethodGet, "/api/usuarios", oper, nil, http.StatusForbidden},
		{"admin administra usuarios", http.MethodGet, "/api/usuarios", admin, nil, http.StatusOK},
		{"admin lista roles", http.MethodGet, "/api/roles", admin, nil, http.StatusOK},
		{"documentos para todos", http.MethodGet, "/api/documentos", cons, nil, http.StatusOK},
		{"consulta sin permiso de importar", http.MethodGet, "/api/importar/tipos", cons, nil, http.StatusForbidden},
		{"operador ve tipos de importación", http.MethodGet, "/api/importar/tipos", oper, nil, http.StatusOK},
		{"exportar tipo inválido", http.MethodGet, "/api/reportes/exportar/otro", cons, nil, http.StatusBadRequest},
		{"sin token", http.MethodGet, "/api/siembras", "", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, tc.method, tc.path, tc.bearer, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}

	t.Run("admin no se elimina a sí mismo", func(t *testing.T) {
		me := decode[map[string]any](t, doJSON(t, app, http.MethodGet, "/api/auth/me", admin, nil))
		resp := doJSON(t, app, http.MethodDelete, "/api/usuarios/"+me["user_id"].(string), admin, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func multipartArchivo(t *testing.T, path, bearer, nombre, contenido string, campos map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("archivo", nombre)
	require.NoError(t, err)
	_, err = io.WriteString(fw, contenido)
	require.NoError(t, err)
	for k, v := range campos {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", bearer)
	return req
}

func TestImportar(t *testing.T) {
	const csv = "CAUSA DE PÉRDIDA\nBotrytis\nmildeo\nBOTRYTIS\n"

	t.Run("solo validar no guarda", func(t *testing.T) {
		app := newAPI(t, 0)
		oper := login(t, app, "oper1")
		resp, err := app.Test(multipartArchivo(t, "/api/importar/causas", oper, "causas.csv", csv, map[string]string{"solo_validar": "true"}), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		res := decode[dto.ImportResultado](t, resp)
		assert.False(t, res.Confirmado)
		assert.Equal(t, 3, res.Filas)

		causas := decode[[]dto.CausaResponse](t, doJSON(t, app, http.MethodGet, "/api/causas", oper, nil))
		assert.Empty(t, causas)
	})

	t.Run("importa y deduplica", func(t *testing.T) {
		app := newAPI(t, 0)
		oper := login(t, app, "oper1")
		resp, err := app.Test(multipartArchivo(t, "/api/importar/causas", oper, "causas.csv", csv, nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		res := decode[dto.ImportResultado](t, resp)
		assert.True(t, res.Confirmado)
		assert.Equal(t, 2, res.Nuevos)
		assert.Equal(t, 1, res.Existentes)
	})

	t.Run("archivo demasiado grande", func(t *testing.T) {
		app := newAPI(t, 16)
		oper := login(t, app, "oper1")
		resp, err := app.Test(multipartArchivo(t, "/api/importar/causas", oper, "causas.csv", csv, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, "FILE_TOO_LARGE", errorCode(t, resp))
	})

	t.Run("tipo o formato no soportado", func(t *testing.T) {
		app := newAPI(t, 0)
		oper := login(t, app, "oper1")
		resp, err := app.Test(multipartArchivo(t, "/api/importar/otros", oper, "causas.csv", csv, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, err = app.Test(multipartArchivo(t, "/api/importar/causas", oper, "causas.txt", csv, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("sin archivo", func(t *testing.T) {
		app := newAPI(t, 0)
		resp := doJSON(t, app, http.MethodPost, "/api/importar/causas", login(t, app, "oper1"), nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"request_id": apphttp.GetRequestID(c)})
	})
	app.Get("/falla", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "no")
	})

	t.Run("genera id y registra la petición", func(t *testing.T) {
		buf.Reset()
		resp := doJSON(t, app, http.MethodGet, "/ok", "", nil)
		reqID := resp.Header.Get(apphttp.HeaderRequestID)
		require.NotEmpty(t, reqID)
		assert.Equal(t, reqID, decode[map[string]string](t, resp)["request_id"])

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, "http", entry["component"])
		assert.Equal(t, "GET", entry["method"])
		assert.Equal(t, "/ok", entry["path"])
		assert.EqualValues(t, 200, entry["status"])
		assert.Equal(t, reqID, entry["request_id"])
	})

	t.Run("respeta el id del cliente", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(apphttp.HeaderRequestID, "abc-123")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
	})

	t.Run("error del handler", func(t *testing.T) {
		buf.Reset()
		resp := doJSON(t, app, http.MethodGet, "/falla", "", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusTeapot, resp.StatusCode)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, "warn", entry["level"])
		assert.EqualValues(t, http.StatusTeapot, entry["status"])
	})
}
