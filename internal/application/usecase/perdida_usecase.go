package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/ports"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

// PerdidaUseCase registro y resúmenes de pérdidas.
type PerdidaUseCase struct {
	tx       ports.TxRunner
	perdidas repository.PerdidaRepository
	siembras repository.SiembraRepository
	now      func() time.Time
}

// NewPerdidaUseCase construye el caso de uso.
func NewPerdidaUseCase(tx ports.TxRunner, perdidas repository.PerdidaRepository, siembras repository.SiembraRepository) *PerdidaUseCase {
	return &PerdidaUseCase{tx: tx, perdidas: perdidas, siembras: siembras, now: time.Now}
}

// Create registra una pérdida sobre una siembra activa; cantidad <= plantas disponibles.
func (uc *PerdidaUseCase) Create(ctx context.Context, usuarioID string, in dto.CreatePerdidaRequest) (*dto.PerdidaResponse, error) {
	if in.Cantidad <= 0 {
		return nil, invalido("cantidad debe ser positiva")
	}
	fecha, err := parseFecha(in.FechaPerdida)
	if err != nil {
		return nil, err
	}
	p := &entity.Perdida{
		ID:            uuid.New().String(),
		SiembraID:     in.SiembraID,
		Cantidad:      in.Cantidad,
		FechaPerdida:  fecha,
		Observaciones: strings.TrimSpace(in.Observaciones),
		UsuarioID:     usuarioID,
		FechaRegistro: uc.now(),
	}
	var causa string
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		s, err := siembraBloqueada(ctx, r.Siembras, in.SiembraID)
		if err != nil {
			return err
		}
		if fecha.Before(s.FechaSiembra) {
			return domain.ErrFechaInvalida
		}
		c, err := requerir(r.Causas.GetByID(ctx, in.CausaID))
		if err != nil {
			return err
		}
		p.CausaID = c.ID
		causa = c.Nombre
		if err := validarDisponibles(ctx, r, in.SiembraID, p.Cantidad, ""); err != nil {
			return err
		}
		return r.Perdidas.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	out := toPerdidaResponse(&repository.PerdidaListado{Perdida: *p, Causa: causa})
	return out, nil
}

// Update edita una pérdida de una siembra activa; la capacidad excluye la propia pérdida.
func (uc *PerdidaUseCase) Update(ctx context.Context, id string, in dto.UpdatePerdidaRequest) (*dto.PerdidaResponse, error) {
	var p *entity.Perdida
	var causa string
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		p, err = requerir(r.Perdidas.GetByID(ctx, id))
		if err != nil {
			return err
		}
		s, err := siembraBloqueada(ctx, r.Siembras, p.SiembraID)
		if err != nil {
			return err
		}
		c, err := requerir(r.Causas.GetByID(ctx, valorO(in.CausaID, p.CausaID)))
		if err != nil {
			return err
		}
		p.CausaID = c.ID
		causa = c.Nombre
		if in.FechaPerdida != nil {
			f, err := parseFecha(*in.FechaPerdida)
			if err != nil {
				return err
			}
			if f.Before(s.FechaSiembra) {
				return domain.ErrFechaInvalida
			}
			p.FechaPerdida = f
		}
		if in.Observaciones != nil {
			p.Observaciones = strings.TrimSpace(*in.Observaciones)
		}
		if in.Cantidad != nil {
			if *in.Cantidad <= 0 {
				return invalido("cantidad debe ser positiva")
			}
			p.Cantidad = *in.Cantidad
		}
		if err := validarDisponibles(ctx, r, p.SiembraID, p.Cantidad, p.ID); err != nil {
			return err
		}
		return r.Perdidas.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toPerdidaResponse(&repository.PerdidaListado{Perdida: *p, Causa: causa}), nil
}

// Delete elimina una pérdida de una siembra activa.
func (uc *PerdidaUseCase) Delete(ctx context.Context, id string) error {
	p, err := requerir(uc.perdidas.GetByID(ctx, id))
	if err != nil {
		return err
	}
	if _, err := siembraEditable(ctx, uc.siembras, p.SiembraID); err != nil {
		return err
	}
	return uc.perdidas.Delete(ctx, id)
}

// List lista pérdidas filtradas por siembra, causa y rango de fechas.
func (uc *PerdidaUseCase) List(ctx context.Context, in dto.PerdidaFiltroRequest, limit, offset int) (*dto.PerdidaListResponse, error) {
	desde, err := parseFechaOpcional(in.FechaDesde)
	if err != nil {
		return nil, err
	}
	hasta, err := parseFechaOpcional(in.FechaHasta)
	if err != nil {
		return nil, err
	}
	if desde != nil && hasta != nil && hasta.Before(*desde) {
		return nil, invalido("fecha_hasta anterior a fecha_desde")
	}
	list, total, err := uc.perdidas.List(ctx, repository.PerdidaFiltro{
		SiembraID:  in.SiembraID,
		CausaID:    in.CausaID,
		FechaDesde: desde,
		FechaHasta: hasta,
	}, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PerdidaResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPerdidaResponse(p))
	}
	return &dto.PerdidaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Resumen totales globales por causa y por variedad-causa.
func (uc *PerdidaUseCase) Resumen(ctx context.Context) (*dto.ResumenPerdidasResponse, error) {
	porCausa, err := uc.perdidas.ResumenPorCausa(ctx, "")
	if err != nil {
		return nil, err
	}
	porVariedad, err := uc.perdidas.ResumenPorVariedadCausa(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ResumenPerdidasResponse{
		PorCausa:         toResumenCausaResponses(porCausa),
		PorVariedadCausa: make([]dto.ResumenVariedadCausaResponse, 0, len(porVariedad)),
	}
	for _, r := range porCausa {
		out.Total += r.Total
	}
	for _, r := range porVariedad {
		out.PorVariedadCausa = append(out.PorVariedadCausa, dto.ResumenVariedadCausaResponse{
			VariedadID: r.VariedadID,
			Variedad:   r.Variedad,
			CausaID:    r.CausaID,
			Causa:      r.Causa,
			Total:      r.Total,
		})
	}
	return out, nil
}

// validarDisponibles comprueba cantidad <= plantas - tallos - otras pérdidas.
func validarDisponibles(ctx context.Context, r ports.Repos, siembraID string, cantidad int, excluirID string) error {
	tot, err := r.Siembras.Totales(ctx, siembraID)
	if err != nil {
		return err
	}
	otras, err := r.Perdidas.SumCantidad(ctx, siembraID, excluirID)
	if err != nil {
		return err
	}
	if cantidad > produccion.PlantasDisponibles(tot.Plantas, tot.Tallos, otras) {
		return domain.ErrExcedePlantas
	}
	return nil
}

func toPerdidaResponse(p *repository.PerdidaListado) *dto.PerdidaResponse {
	return &dto.PerdidaResponse{
		ID:            p.ID,
		SiembraID:     p.SiembraID,
		CausaID:       p.CausaID,
		Causa:         p.Causa,
		Cantidad:      p.Cantidad,
		FechaPerdida:  dto.FormatFecha(p.FechaPerdida),
		Observaciones: p.Observaciones,
		Variedad:      p.Variedad,
		Ubicacion:     p.Ubicacion,
	}
}

func toResumenCausaResponses(list []repository.ResumenCausa) []dto.ResumenCausaResponse {
	out := make([]dto.ResumenCausaResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ResumenCausaResponse{
			CausaID:   r.CausaID,
			Causa:     r.Causa,
			Total:     r.Total,
			Registros: r.Registros,
		})
	}
	return out
}
