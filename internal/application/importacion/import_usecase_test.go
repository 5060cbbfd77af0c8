package importacion_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/importacion"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
	"github.com/jhoicas/cpc-api/internal/infrastructure/memory"
	"github.com/jhoicas/cpc-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hojaFija devuelve siempre la misma hoja y recuerda el formato pedido.
type hojaFija struct {
	hoja    *importacion.Hoja
	formato string
}

func (f *hojaFija) Read(_ io.Reader, formato string) (*importacion.Hoja, error) {
	f.formato = formato
	return f.hoja, nil
}

func nuevoImport(s *memory.Store, h *importacion.Hoja) (*importacion.ImportUseCase, *hojaFija) {
	reader := &hojaFija{hoja: h}
	return importacion.NewImportUseCase(s, reader, logger.Nop()), reader
}

func solicitud(tipo string, soloValidar bool) importacion.Solicitud {
	return importacion.Solicitud{
		Tipo:        tipo,
		Archivo:     "datos.XLSX",
		Datos:       strings.NewReader(""),
		SoloValidar: soloValidar,
		UsuarioID:   "u-1",
	}
}

func TestImportar_Variedades(t *testing.T) {
	s := memory.NewStore()
	uc, reader := nuevoImport(s, &importacion.Hoja{
		Encabezados: []string{"flor", " Color ", "VARIEDAD"},
		Filas: [][]string{
			{"Clavel", "Rojo", "Don Pedro"},
			{"clavel ", "rojo", "don  pedro"},
			{"", "", ""},
			{"Clavel", "", "Sin color"},
			{"Mini Clavel", "Blanco", "Nelson"},
		},
	})

	res, err := uc.Importar(context.Background(), solicitud(importacion.TipoVariedades, false))
	require.NoError(t, err)

	assert.Equal(t, ".xlsx", reader.formato)
	assert.True(t, res.Confirmado)
	assert.Equal(t, 4, res.Filas)
	assert.Equal(t, 2, res.Nuevos)
	assert.Equal(t, 1, res.Existentes)
	require.Len(t, res.Errores, 1)
	assert.Equal(t, 4, res.Errores[0].Fila)
	assert.Equal(t, 2, res.Creados["flores"])
	assert.Equal(t, 2, res.Creados["colores"])
	assert.Equal(t, 2, res.Creados["variedades"])

	vs, err := s.Repos().Variedades.List(context.Background(), repository.VariedadFiltro{})
	require.NoError(t, err)
	require.Len(t, vs, 2)
	f, err := s.Repos().Flores.GetByNombre(context.Background(), "MINI CLAVEL")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "MINI CLAVE", f.FlorAbrev)
}

func TestImportar_Bloques(t *testing.T) {
	s := memory.NewStore()
	uc, _ := nuevoImport(s, &importacion.Hoja{
		Encabezados: []string{"BLOQUE", "CAMA"},
		Filas: [][]string{
			{"01", "003"},
			{"01", "003"},
			{"2", "5"},
		},
	})

	res, err := uc.Importar(context.Background(), solicitud(importacion.TipoBloques, false))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Nuevos)
	assert.Equal(t, 1, res.Existentes)
	assert.Equal(t, 1, res.Creados["lados"])

	ctx := context.Background()
	b, err := s.Repos().Bloques.GetByNombre(ctx, "01")
	require.NoError(t, err)
	require.NotNil(t, b)
	l, err := s.Repos().Lados.GetByNombre(ctx, entity.LadoUnico)
	require.NoError(t, err)
	require.NotNil(t, l)
	us, err := s.Repos().BloqueCamaLados.List(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, us, 1)
	assert.Equal(t, "01-003-ÚNICO", us[0].Etiqueta())
}

func TestImportar_Causas(t *testing.T) {
	s := memory.NewStore()
	uc, _ := nuevoImport(s, &importacion.Hoja{
		Encabezados: []string{"Código", "Causa de pérdida"},
		Filas: [][]string{
			{"1", "trips"},
			{"2", "TRIPS"},
			{"3", "Hongo"},
		},
	})

	res, err := uc.Importar(context.Background(), solicitud(importacion.TipoCausas, false))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Nuevos)
	assert.Equal(t, 1, res.Existentes)

	cs, err := s.Repos().Causas.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cs, 2)
}

func TestImportar_SoloValidarNoGuarda(t *testing.T) {
	s := memory.NewStore()
	uc, _ := nuevoImport(s, &importacion.Hoja{
		Encabezados: []string{"FLOR", "COLOR", "VARIEDAD"},
		Filas:       [][]string{{"Clavel", "Rojo", "Don Pedro"}},
	})

	res, err := uc.Importar(context.Background(), solicitud(importacion.TipoVariedades, true))
	require.NoError(t, err)
	assert.False(t, res.Confirmado)
	assert.Equal(t, 1, res.Nuevos)
	assert.Contains(t, res.Mensaje, "validado")

	vs, err := s.Repos().Variedades.List(context.Background(), repository.VariedadFiltro{})
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestImportar_TodasLasFilasFallan(t *testing.T) {
	s := memory.NewStore()
	uc, _ := nuevoImport(s, &importacion.Hoja{
		Encabezados: []string{"BLOQUE", "CAMA", "LADO"},
		Filas:       [][]string{{"1", "", "A"}, {"", "2", "B"}},
	})

	res, err := uc.Importar(context.Background(), solicitud(importacion.TipoBloques, false))
	require.NoError(t, err)
	assert.False(t, res.Confirmado)
	assert.Len(t, res.Errores, 2)

	bs, err := s.Repos().Bloques.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bs)
}

func TestImportar_Validaciones(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	uc, _ := nuevoImport(s, &importacion.Hoja{
		Encabezados: []string{"FLOR", "VARIEDAD"},
		Filas:       [][]string{{"Clavel", "Don Pedro"}},
	})
	_, err := uc.Importar(ctx, solicitud(importacion.TipoVariedades, false))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "COLOR")

	_, err = uc.Importar(ctx, solicitud("productos", false))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := solicitud(importacion.TipoVariedades, false)
	in.Archivo = "datos.pdf"
	_, err = uc.Importar(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	vacio, _ := nuevoImport(s, &importacion.Hoja{
		Encabezados: []string{"CAUSA"},
		Filas:       [][]string{{" "}},
	})
	_, err = vacio.Importar(ctx, solicitud(importacion.TipoCausas, false))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// filaHistorico arma una fila de 40 columnas con los datos básicos, cortes y pérdidas dados.
func filaHistorico(cama, fechaSiembra, inicio string, cortes []string, perdida []string) []string {
	f := make([]string, 40)
	copy(f, []string{"1", cama, "Clavel", "Rojo", "Moonlight", fechaSiembra, "20", "50", inicio, ""})
	copy(f[10:], cortes)
	copy(f[25:], perdida)
	return f
}

func encabezadosHistorico() []string {
	h := make([]string, 40)
	for i := range h {
		h[i] = "COL"
	}
	return h
}

func TestImportar_Historico(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	hoja := &importacion.Hoja{
		Encabezados: encabezadosHistorico(),
		Filas: [][]string{
			filaHistorico("55B", "45292", "2024-03-10", []string{"100", "200"}, []string{"10", "Hongo", "01/02/2024"}),
			filaHistorico("56", "2024-01-08", "", []string{"", "50"}, nil),
		},
	}
	uc, _ := nuevoImport(s, hoja)

	res, err := uc.Importar(ctx, solicitud(importacion.TipoHistorico, false))
	require.NoError(t, err)
	assert.True(t, res.Confirmado)
	assert.Equal(t, 2, res.Nuevos)
	assert.Equal(t, 2, res.Creados["siembras"])
	assert.Equal(t, 3, res.Creados["cortes"])
	assert.Equal(t, 1, res.Creados["perdidas"])
	assert.Equal(t, len(importacion.CausasPredefinidas)+1, res.Creados["causas"])

	r := s.Repos()
	list, total, err := r.Siembras.List(ctx, repository.SiembraFiltro{}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	var conLado *entity.SiembraDetalle
	for _, d := range list {
		assert.Equal(t, entity.EstadoFinalizada, d.Estado)
		if d.Cama == "55B" {
			conLado = d
		}
	}
	require.NotNil(t, conLado)
	assert.Equal(t, "B", conLado.Lado)
	assert.Equal(t, "2024-01-01", conLado.FechaSiembra.Format("2006-01-02"))

	cortes, err := r.Cortes.ListBySiembra(ctx, conLado.ID)
	require.NoError(t, err)
	require.Len(t, cortes, 2)
	assert.Equal(t, "2024-03-10", cortes[0].FechaCorte.Format("2006-01-02"))
	assert.Equal(t, "2024-03-17", cortes[1].FechaCorte.Format("2006-01-02"))

	perdidas, _, err := r.Perdidas.List(ctx, repository.PerdidaFiltro{SiembraID: conLado.ID}, 0, 0)
	require.NoError(t, err)
	require.Len(t, perdidas, 1)
	assert.Equal(t, "HONGO", perdidas[0].Causa)
	assert.Equal(t, "2024-02-01", perdidas[0].FechaPerdida.Format("2006-01-02"))

	// sin inicio de corte la fecha se estima desde el día 65: 2024-01-08 + 65 + 7
	var sinLado *entity.SiembraDetalle
	for _, d := range list {
		if d.Cama == "56" {
			sinLado = d
		}
	}
	require.NotNil(t, sinLado)
	assert.Equal(t, "A", sinLado.Lado, "cama sin letra va al lado A")
	unico, err := r.Lados.GetByNombre(ctx, entity.LadoUnico)
	require.NoError(t, err)
	assert.Nil(t, unico, "el histórico no crea el lado ÚNICO")
	cortes, err = r.Cortes.ListBySiembra(ctx, sinLado.ID)
	require.NoError(t, err)
	require.Len(t, cortes, 1)
	assert.Equal(t, 2, cortes[0].NumCorte)
	assert.Equal(t, "2024-03-20", cortes[0].FechaCorte.Format("2006-01-02"))

	// reimportar no duplica siembras ni cortes
	res, err = uc.Importar(ctx, solicitud(importacion.TipoHistorico, false))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Nuevos)
	assert.Equal(t, 2, res.Existentes)
	assert.Zero(t, res.Creados["cortes"])
}

func TestImportar_HistoricoDemasiadosErrores(t *testing.T) {
	s := memory.NewStore()
	hoja := &importacion.Hoja{
		Encabezados: encabezadosHistorico(),
		Filas: [][]string{
			filaHistorico("1", "2024-01-01", "", []string{"10"}, nil),
			filaHistorico("2", "2024-01-01", "", []string{"10"}, nil),
			filaHistorico("3", "no es fecha", "", []string{"10"}, nil),
		},
	}
	uc, _ := nuevoImport(s, hoja)

	res, err := uc.Importar(context.Background(), solicitud(importacion.TipoHistorico, false))
	require.NoError(t, err)
	assert.False(t, res.Confirmado)
	require.Len(t, res.Errores, 1)
	assert.Equal(t, 3, res.Errores[0].Fila)

	_, total, err := s.Repos().Siembras.List(context.Background(), repository.SiembraFiltro{}, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	cs, err := s.Repos().Causas.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestImportar_HistoricoColumnasInsuficientes(t *testing.T) {
	s := memory.NewStore()
	uc, _ := nuevoImport(s, &importacion.Hoja{
		Encabezados: []string{"BLOQUE", "CAMA"},
		Filas:       [][]string{{"1", "2"}},
	})

	_, err := uc.Importar(context.Background(), solicitud(importacion.TipoHistorico, false))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
