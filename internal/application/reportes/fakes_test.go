package reportes_test

import (
	"context"
	"io"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

type fakeCharts struct {
	barras []reportes.GraficoBarras
	curvas []reportes.GraficoCurva
	err    error
}

func (f *fakeCharts) Barras(g reportes.GraficoBarras) ([]byte, error) {
	f.barras = append(f.barras, g)
	return []byte("png"), f.err
}

func (f *fakeCharts) Curva(g reportes.GraficoCurva) ([]byte, error) {
	f.curvas = append(f.curvas, g)
	return []byte("png"), f.err
}

type fakePDF struct {
	curva   *dto.CurvaResponse
	grafico []byte
}

func (f *fakePDF) GenerateCurvaPDF(_ context.Context, c *dto.CurvaResponse, grafico []byte) ([]byte, error) {
	f.curva, f.grafico = c, grafico
	return []byte("%PDF"), nil
}

type fakeXLSX struct{ tabla reportes.Tabla }

func (f *fakeXLSX) WriteXLSX(w io.Writer, t reportes.Tabla) error {
	f.tabla = t
	_, err := io.WriteString(w, "xlsx")
	return err
}

// fakeReportes devuelve datos fijos y recuerda el último filtro recibido.
type fakeReportes struct {
	variedades []repository.ProduccionVariedad
	bloques    []repository.ProduccionBloque
	dias       []repository.DiasCorte
	siembras   repository.ConteoSiembras
	cortes     repository.ConteoCortes
	numVar     int
	filas      []repository.FilaAprovechamiento
	recientes  []*entity.SiembraDetalle
	diag       *repository.Diagnostico
	expS       []repository.ExportSiembra
	expC       []repository.ExportCorte
	err        error

	filtro repository.DashboardFiltro
}

var _ repository.ReporteRepository = (*fakeReportes)(nil)

func (f *fakeReportes) ProduccionPorVariedad(context.Context) ([]repository.ProduccionVariedad, error) {
	return f.variedades, f.err
}

func (f *fakeReportes) ProduccionPorBloque(context.Context) ([]repository.ProduccionBloque, error) {
	return f.bloques, f.err
}

func (f *fakeReportes) DiasProduccion(context.Context) ([]repository.DiasCorte, error) {
	return f.dias, f.err
}

func (f *fakeReportes) ConteoSiembras(_ context.Context, fl repository.DashboardFiltro) (repository.ConteoSiembras, error) {
	return f.siembras, f.err
}

func (f *fakeReportes) ConteoCortes(_ context.Context, fl repository.DashboardFiltro) (repository.ConteoCortes, error) {
	return f.cortes, f.err
}

func (f *fakeReportes) ContarVariedades(context.Context) (int, error) {
	return f.numVar, f.err
}

// Aprovechamiento es la única consulta del dashboard que guarda el filtro.
func (f *fakeReportes) Aprovechamiento(_ context.Context, fl repository.DashboardFiltro) ([]repository.FilaAprovechamiento, error) {
	f.filtro = fl
	return f.filas, f.err
}

func (f *fakeReportes) UltimasSiembras(context.Context, string, int) ([]*entity.SiembraDetalle, error) {
	return f.recientes, f.err
}

func (f *fakeReportes) Diagnostico(context.Context) (*repository.Diagnostico, error) {
	return f.diag, f.err
}

func (f *fakeReportes) ExportSiembras(context.Context) ([]repository.ExportSiembra, error) {
	return f.expS, f.err
}

func (f *fakeReportes) ExportCortes(context.Context) ([]repository.ExportCorte, error) {
	return f.expC, f.err
}
