package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/auth"
	"github.com/jhoicas/cpc-api/internal/application/importacion"
	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	TaxonomiaUC    *usecase.TaxonomiaUseCase
	UbicacionUC    *usecase.UbicacionUseCase
	GeometriaUC    *usecase.GeometriaUseCase
	CausaUC        *usecase.CausaUseCase
	TipoLaborUC    *usecase.TipoLaborUseCase
	SiembraUC      *usecase.SiembraUseCase
	CorteUC        *usecase.CorteUseCase
	PerdidaUC      *usecase.PerdidaUseCase
	LaborUC        *usecase.LaborUseCase
	UsuarioUC      *usecase.UsuarioUseCase
	ReporteUC      *reportes.ReporteUseCase
	CurvaUC        *reportes.CurvaUseCase
	DashboardUC    *reportes.DashboardUseCase
	ImportUC       *importacion.ImportUseCase
	ImportMaxBytes int
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// el rol consulta solo lee
	escritura := RequireRole(entity.RolAdmin, entity.RolOperador)

	// Taxonomía
	tax := NewTaxonomiaHandler(deps.TaxonomiaUC)
	flores := protected.Group("/flores")
	flores.Get("/", tax.ListFlores)
	flores.Get("/:id", tax.GetFlor)
	flores.Post("/", escritura, tax.CreateFlor)
	flores.Put("/:id", escritura, tax.UpdateFlor)
	flores.Delete("/:id", escritura, tax.DeleteFlor)

	colores := protected.Group("/colores")
	colores.Get("/", tax.ListColores)
	colores.Get("/:id", tax.GetColor)
	colores.Post("/", escritura, tax.CreateColor)
	colores.Put("/:id", escritura, tax.UpdateColor)
	colores.Delete("/:id", escritura, tax.DeleteColor)

	florColores := protected.Group("/flor-colores")
	florColores.Get("/", tax.ListFlorColores)
	florColores.Post("/", escritura, tax.CreateFlorColor)
	florColores.Delete("/:id", escritura, tax.DeleteFlorColor)

	variedades := protected.Group("/variedades")
	variedades.Get("/", tax.ListVariedades)
	variedades.Get("/:id", tax.GetVariedad)
	variedades.Post("/", escritura, tax.CreateVariedad)
	variedades.Put("/:id", escritura, tax.UpdateVariedad)
	variedades.Delete("/:id", escritura, tax.DeleteVariedad)

	// Ubicación
	ubic := NewUbicacionHandler(deps.UbicacionUC)
	for path, crud := range map[string]nombreCRUD{
		"/bloques": ubic.Bloques(),
		"/camas":   ubic.Camas(),
		"/lados":   ubic.Lados(),
	} {
		g := protected.Group(path)
		g.Get("/", crud.List)
		g.Post("/", escritura, crud.Create)
		g.Put("/:id", escritura, crud.Update)
		g.Delete("/:id", escritura, crud.Delete)
	}
	ubicaciones := protected.Group("/ubicaciones")
	ubicaciones.Get("/", ubic.ListUbicaciones)
	ubicaciones.Post("/", escritura, ubic.CreateUbicacion)
	ubicaciones.Delete("/:id", escritura, ubic.DeleteUbicacion)

	// Geometría
	geo := NewGeometriaHandler(deps.GeometriaUC)
	areas := protected.Group("/areas")
	areas.Get("/", geo.ListAreas)
	areas.Post("/calcular", geo.CalcularArea)
	areas.Get("/:id", geo.GetArea)
	areas.Post("/", escritura, geo.CreateArea)
	areas.Put("/:id", escritura, geo.UpdateArea)
	areas.Delete("/:id", escritura, geo.DeleteArea)

	densidades := protected.Group("/densidades")
	densidades.Get("/", geo.ListDensidades)
	densidades.Get("/:id", geo.GetDensidad)
	densidades.Post("/", escritura, geo.CreateDensidad)
	densidades.Put("/:id", escritura, geo.UpdateDensidad)
	densidades.Delete("/:id", escritura, geo.DeleteDensidad)

	// Causas de pérdida: las mutaciones requieren importar_datos
	causaHandler := NewCausaHandler(deps.CausaUC)
	causas := protected.Group("/causas")
	importarDatos := RequirePermission(entity.PermisoImportarDatos)
	causas.Get("/", causaHandler.List)
	causas.Get("/:id", causaHandler.GetByID)
	causas.Post("/", importarDatos, causaHandler.Create)
	causas.Put("/:id", importarDatos, causaHandler.Update)
	causas.Delete("/:id", importarDatos, causaHandler.Delete)

	tipoLabor := NewTipoLaborHandler(deps.TipoLaborUC)
	tiposLabor := protected.Group("/tipos-labor")
	tiposLabor.Get("/", tipoLabor.List)
	tiposLabor.Post("/", escritura, tipoLabor.Create)
	tiposLabor.Put("/:id", escritura, tipoLabor.Update)
	tiposLabor.Delete("/:id", escritura, tipoLabor.Delete)

	// Siembras con sus cortes y labores
	siembraHandler := NewSiembraHandler(deps.SiembraUC, deps.CorteUC, deps.LaborUC)
	siembras := protected.Group("/siembras")
	siembras.Get("/", siembraHandler.List)
	siembras.Get("/:id", siembraHandler.Get)
	siembras.Post("/", escritura, siembraHandler.Create)
	siembras.Put("/:id", escritura, siembraHandler.Update)
	siembras.Delete("/:id", escritura, siembraHandler.Delete)
	siembras.Post("/:id/inicio-corte", escritura, siembraHandler.InicioCorte)
	siembras.Post("/:id/finalizar", escritura, siembraHandler.Finalizar)
	siembras.Get("/:id/cortes", siembraHandler.ListCortes)
	siembras.Post("/:id/cortes", escritura, siembraHandler.CreateCorte)
	siembras.Get("/:id/labores", siembraHandler.ListLabores)
	siembras.Post("/:id/labores", escritura, siembraHandler.CreateLabor)

	corteHandler := NewCorteHandler(deps.CorteUC)
	cortes := protected.Group("/cortes")
	cortes.Get("/", corteHandler.List)
	cortes.Get("/:id/prediccion", corteHandler.Prediccion)
	cortes.Put("/:id", escritura, corteHandler.Update)
	cortes.Delete("/:id", escritura, corteHandler.Delete)

	laborHandler := NewLaborHandler(deps.LaborUC)
	labores := protected.Group("/labores")
	labores.Put("/:id", escritura, laborHandler.Update)
	labores.Delete("/:id", escritura, laborHandler.Delete)

	perdidaHandler := NewPerdidaHandler(deps.PerdidaUC)
	perdidas := protected.Group("/perdidas")
	perdidas.Get("/", perdidaHandler.List)
	perdidas.Get("/resumen", perdidaHandler.Resumen)
	perdidas.Post("/", escritura, perdidaHandler.Create)
	perdidas.Put("/:id", escritura, perdidaHandler.Update)
	perdidas.Delete("/:id", escritura, perdidaHandler.Delete)

	// Reportes y dashboard
	reporteHandler := NewReporteHandler(deps.ReporteUC, deps.CurvaUC, deps.DashboardUC)
	verReportes := RequirePermission(entity.PermisoVerReportes)
	protected.Get("/dashboard", verReportes, reporteHandler.Dashboard)
	rep := protected.Group("/reportes", verReportes)
	rep.Get("/produccion-variedad", reporteHandler.ProduccionVariedad)
	rep.Get("/produccion-bloque", reporteHandler.ProduccionBloque)
	rep.Get("/dias-produccion", reporteHandler.DiasProduccion)
	rep.Get("/curva/:id", reporteHandler.Curva)
	rep.Get("/curva/:id/grafico", reporteHandler.CurvaPNG)
	rep.Get("/curva/:id/pdf", reporteHandler.CurvaPDF)
	rep.Get("/ciclos/:id", reporteHandler.Ciclos)
	rep.Get("/diagnostico", reporteHandler.Diagnostico)
	rep.Get("/exportar/:tipo", reporteHandler.Exportar)

	// Importación
	importHandler := NewImportHandler(deps.ImportUC, deps.ImportMaxBytes)
	imp := protected.Group("/importar", importarDatos)
	imp.Get("/tipos", importHandler.Tipos)
	imp.Post("/:tipo", importHandler.Importar)

	// Usuarios
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	adminUsuarios := RequirePermission(entity.PermisoAdministrarUsuarios)
	usuarios := protected.Group("/usuarios", adminUsuarios)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Put("/:id", usuarioHandler.Update)
	usuarios.Delete("/:id", usuarioHandler.Delete)
	protected.Get("/roles", adminUsuarios, usuarioHandler.ListRoles)
	protected.Get("/documentos", usuarioHandler.ListDocumentos)
}
