package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/ports"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SiembraUseCase registro, consulta y ciclo de vida de siembras.
type SiembraUseCase struct {
	tx       ports.TxRunner
	siembras repository.SiembraRepository
	cortes   repository.CorteRepository
	perdidas repository.PerdidaRepository
	labores  repository.LaborRepository
	now      func() time.Time
}

// NewSiembraUseCase construye el caso de uso.
func NewSiembraUseCase(
	tx ports.TxRunner,
	siembras repository.SiembraRepository,
	cortes repository.CorteRepository,
	perdidas repository.PerdidaRepository,
	labores repository.LaborRepository,
) *SiembraUseCase {
	return &SiembraUseCase{
		tx:       tx,
		siembras: siembras,
		cortes:   cortes,
		perdidas: perdidas,
		labores:  labores,
		now:      time.Now,
	}
}

// Create registra una siembra activa. La ubicación bloque-cama-lado se crea si no existe;
// sin area_id el área se calcula con cantidad_plantas / densidad.
func (uc *SiembraUseCase) Create(ctx context.Context, usuarioID string, in dto.CreateSiembraRequest) (*dto.SiembraResponse, error) {
	fecha, err := parseFecha(in.FechaSiembra)
	if err != nil {
		return nil, err
	}
	s := &entity.Siembra{
		ID:            uuid.New().String(),
		FechaSiembra:  fecha,
		Estado:        entity.EstadoActiva,
		UsuarioID:     usuarioID,
		FechaRegistro: uc.now(),
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		u, err := ubicacionPorIDs(ctx, r, in.BloqueID, in.CamaID, in.LadoID)
		if err != nil {
			return err
		}
		v, err := requerir(r.Variedades.GetByID(ctx, in.VariedadID))
		if err != nil {
			return err
		}
		d, err := requerir(r.Densidades.GetByID(ctx, in.DensidadID))
		if err != nil {
			return err
		}
		a, err := areaSiembra(ctx, r.Areas, in.AreaID, in.CantidadPlantas, d)
		if err != nil {
			return err
		}
		s.BloqueCamaLadoID = u.ID
		s.VariedadID = v.ID
		s.DensidadID = d.ID
		s.AreaID = a.ID
		return r.Siembras.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	det, err := requerir(uc.siembras.GetDetalle(ctx, s.ID))
	if err != nil {
		return nil, err
	}
	return toSiembraResponse(det), nil
}

// Get devuelve la siembra con cortes, pérdidas, labores y estadísticas.
func (uc *SiembraUseCase) Get(ctx context.Context, id string) (*dto.SiembraDetalleResponse, error) {
	det, err := requerir(uc.siembras.GetDetalle(ctx, id))
	if err != nil {
		return nil, err
	}
	tot, err := uc.siembras.Totales(ctx, id)
	if err != nil {
		return nil, err
	}
	cortes, err := uc.cortes.ListBySiembra(ctx, id)
	if err != nil {
		return nil, err
	}
	perdidas, _, err := uc.perdidas.List(ctx, repository.PerdidaFiltro{SiembraID: id}, 0, 0)
	if err != nil {
		return nil, err
	}
	resumen, err := uc.perdidas.ResumenPorCausa(ctx, id)
	if err != nil {
		return nil, err
	}
	labores, err := uc.labores.ListBySiembra(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &dto.SiembraDetalleResponse{
		Siembra:          *toSiembraResponse(det),
		Stats:            siembraStats(det, tot, uc.now()),
		Cortes:           cortesConIndice(cortes, det.FechaSiembra, tot.Plantas),
		Perdidas:         make([]dto.PerdidaResponse, 0, len(perdidas)),
		PerdidasPorCausa: toResumenCausaResponses(resumen),
		Labores:          make([]dto.LaborResponse, 0, len(labores)),
	}
	for _, p := range perdidas {
		out.Perdidas = append(out.Perdidas, *toPerdidaResponse(p))
	}
	for _, l := range labores {
		out.Labores = append(out.Labores, *toLaborResponse(l, &det.Siembra))
	}
	return out, nil
}

// List lista siembras por fecha de siembra descendente.
func (uc *SiembraUseCase) List(ctx context.Context, filtro repository.SiembraFiltro, limit, offset int) (*dto.SiembraListResponse, error) {
	if filtro.Estado != "" && filtro.Estado != entity.EstadoActiva && filtro.Estado != entity.EstadoFinalizada {
		return nil, invalido("estado debe ser %s o %s", entity.EstadoActiva, entity.EstadoFinalizada)
	}
	list, total, err := uc.siembras.List(ctx, filtro, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SiembraResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toSiembraResponse(d))
	}
	return &dto.SiembraListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Update edita una siembra activa; los campos nil conservan su valor.
func (uc *SiembraUseCase) Update(ctx context.Context, id string, in dto.UpdateSiembraRequest) (*dto.SiembraResponse, error) {
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		s, err := requerir(r.Siembras.GetByID(ctx, id))
		if err != nil {
			return err
		}
		if !s.EstaActiva() {
			return domain.ErrSiembraInactiva
		}
		if in.BloqueID != nil || in.CamaID != nil || in.LadoID != nil {
			actual, err := requerir(r.BloqueCamaLados.GetByID(ctx, s.BloqueCamaLadoID))
			if err != nil {
				return err
			}
			u, err := ubicacionPorIDs(ctx, r, valorO(in.BloqueID, actual.BloqueID), valorO(in.CamaID, actual.CamaID), valorO(in.LadoID, actual.LadoID))
			if err != nil {
				return err
			}
			s.BloqueCamaLadoID = u.ID
		}
		if in.VariedadID != nil {
			v, err := requerir(r.Variedades.GetByID(ctx, *in.VariedadID))
			if err != nil {
				return err
			}
			s.VariedadID = v.ID
		}
		d, err := requerir(r.Densidades.GetByID(ctx, valorO(in.DensidadID, s.DensidadID)))
		if err != nil {
			return err
		}
		s.DensidadID = d.ID
		if in.AreaID != nil || in.CantidadPlantas != nil {
			plantas := 0
			if in.CantidadPlantas != nil {
				plantas = *in.CantidadPlantas
			}
			a, err := areaSiembra(ctx, r.Areas, valorO(in.AreaID, ""), plantas, d)
			if err != nil {
				return err
			}
			s.AreaID = a.ID
		}
		if in.FechaSiembra != nil {
			f, err := parseFecha(*in.FechaSiembra)
			if err != nil {
				return err
			}
			if s.FechaInicioCorte != nil && f.After(*s.FechaInicioCorte) {
				return domain.ErrFechaInvalida
			}
			s.FechaSiembra = f
		}
		return r.Siembras.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	det, err := requerir(uc.siembras.GetDetalle(ctx, id))
	if err != nil {
		return nil, err
	}
	return toSiembraResponse(det), nil
}

// RegistrarInicioCorte fija la fecha de inicio de corte una sola vez; debe ser >= fecha de siembra.
func (uc *SiembraUseCase) RegistrarInicioCorte(ctx context.Context, id string, in dto.FechaRequest) (*dto.SiembraResponse, error) {
	fecha, err := parseFecha(in.Fecha)
	if err != nil {
		return nil, err
	}
	s, err := requerir(uc.siembras.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !s.EstaActiva() {
		return nil, domain.ErrSiembraInactiva
	}
	if s.FechaInicioCorte != nil {
		return nil, domain.ErrConflict
	}
	if fecha.Before(s.FechaSiembra) {
		return nil, domain.ErrFechaInvalida
	}
	s.FechaInicioCorte = &fecha
	if err := uc.siembras.Update(ctx, s); err != nil {
		return nil, err
	}
	det, err := requerir(uc.siembras.GetDetalle(ctx, id))
	if err != nil {
		return nil, err
	}
	return toSiembraResponse(det), nil
}

// Finalizar cierra el ciclo: fecha_fin_corte es el último corte (u hoy sin cortes) y el estado pasa a Finalizada.
func (uc *SiembraUseCase) Finalizar(ctx context.Context, id string) (*dto.SiembraResponse, error) {
	s, err := requerir(uc.siembras.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !s.EstaActiva() {
		return nil, domain.ErrSiembraInactiva
	}
	tot, err := uc.siembras.Totales(ctx, id)
	if err != nil {
		return nil, err
	}
	fin := truncarDia(uc.now())
	if tot.UltimoCorte != nil {
		fin = *tot.UltimoCorte
	}
	s.FechaFinCorte = &fin
	s.Estado = entity.EstadoFinalizada
	if err := uc.siembras.Update(ctx, s); err != nil {
		return nil, err
	}
	det, err := requerir(uc.siembras.GetDetalle(ctx, id))
	if err != nil {
		return nil, err
	}
	return toSiembraResponse(det), nil
}

// Delete elimina una siembra sin cortes, pérdidas ni labores.
func (uc *SiembraUseCase) Delete(ctx context.Context, id string) error {
	if _, err := requerir(uc.siembras.GetByID(ctx, id)); err != nil {
		return err
	}
	n, err := uc.siembras.CountDependencias(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrEnUso
	}
	return uc.siembras.Delete(ctx, id)
}

// ubicacionPorIDs resuelve bloque, cama y lado (vacío = ÚNICO) y devuelve la ubicación, creándola si falta.
func ubicacionPorIDs(ctx context.Context, r ports.Repos, bloqueID, camaID, ladoID string) (*entity.BloqueCamaLado, error) {
	b, err := requerir(r.Bloques.GetByID(ctx, bloqueID))
	if err != nil {
		return nil, err
	}
	c, err := requerir(r.Camas.GetByID(ctx, camaID))
	if err != nil {
		return nil, err
	}
	var l *entity.Lado
	if ladoID == "" {
		l, err = ladoUnico(ctx, r.Lados)
	} else {
		l, err = requerir(r.Lados.GetByID(ctx, ladoID))
	}
	if err != nil {
		return nil, err
	}
	return resolverUbicacion(ctx, r.BloqueCamaLados, b, c, l)
}

// areaSiembra usa el área indicada o la deriva de plantas / densidad.
func areaSiembra(ctx context.Context, areas repository.AreaRepository, areaID string, plantas int, d *entity.Densidad) (*entity.Area, error) {
	if areaID != "" {
		return requerir(areas.GetByID(ctx, areaID))
	}
	if plantas <= 0 {
		return nil, invalido("indique area_id o cantidad_plantas")
	}
	m2, err := AreaPorPlantas(plantas, d.Valor)
	if err != nil {
		return nil, err
	}
	return resolverAreaCalculada(ctx, areas, m2)
}

func siembraStats(det *entity.SiembraDetalle, tot repository.SiembraTotales, hoy time.Time) dto.SiembraStats {
	return dto.SiembraStats{
		TotalPlantas:          tot.Plantas,
		TotalTallos:           tot.Tallos,
		TotalPerdidas:         tot.Perdidas,
		PlantasDisponibles:    produccion.PlantasDisponibles(tot.Plantas, tot.Tallos, tot.Perdidas),
		NumCortes:             tot.NumCortes,
		IndiceAprovechamiento: produccion.IndiceAprovechamiento(tot.Tallos, tot.Plantas),
		DiasCiclo:             produccion.DiasCiclo(det.FechaSiembra, det.FechaFinCorte, tot.UltimoCorte, hoy),
	}
}

// cortesConIndice arma la respuesta de cortes ordenados por número con índice individual y acumulado.
func cortesConIndice(cortes []*entity.Corte, fechaSiembra time.Time, plantas int) []dto.CorteResponse {
	out := make([]dto.CorteResponse, 0, len(cortes))
	acumulado := 0
	for _, c := range cortes {
		acumulado += c.CantidadTallos
		r := toCorteResponse(c, fechaSiembra, plantas)
		r.IndiceAcumulado = produccion.IndiceAprovechamiento(acumulado, plantas)
		out = append(out, *r)
	}
	return out
}

func plantasDetalle(d *entity.SiembraDetalle) int {
	return produccion.PlantasTotales(decimal.NewFromFloat(d.Area), decimal.NewFromFloat(d.Densidad))
}

func valorO(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func truncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toSiembraResponse(d *entity.SiembraDetalle) *dto.SiembraResponse {
	u := entity.BloqueCamaLado{Bloque: d.Bloque, Cama: d.Cama, Lado: d.Lado}
	v := entity.Variedad{Variedad: d.Variedad, Flor: d.Flor, Color: d.Color}
	return &dto.SiembraResponse{
		ID:               d.ID,
		BloqueCamaLadoID: d.BloqueCamaLadoID,
		Ubicacion:        u.Etiqueta(),
		Bloque:           d.Bloque,
		Cama:             d.Cama,
		Lado:             d.Lado,
		VariedadID:       d.VariedadID,
		Variedad:         v.NombreCompleto(),
		Flor:             d.Flor,
		Color:            d.Color,
		AreaID:           d.AreaID,
		Area:             decimal.NewFromFloat(d.Area),
		DensidadID:       d.DensidadID,
		Densidad:         decimal.NewFromFloat(d.Densidad),
		FechaSiembra:     dto.FormatFecha(d.FechaSiembra),
		FechaInicioCorte: dto.FormatFechaPtr(d.FechaInicioCorte),
		FechaFinCorte:    dto.FormatFechaPtr(d.FechaFinCorte),
		Estado:           d.Estado,
		UsuarioID:        d.UsuarioID,
		TotalPlantas:     plantasDetalle(d),
	}
}
