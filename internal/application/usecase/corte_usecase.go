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
)

// CorteUseCase registro de cortes con validación de capacidad de la siembra.
type CorteUseCase struct {
	tx       ports.TxRunner
	cortes   repository.CorteRepository
	siembras repository.SiembraRepository
	now      func() time.Time
}

// NewCorteUseCase construye el caso de uso.
func NewCorteUseCase(tx ports.TxRunner, cortes repository.CorteRepository, siembras repository.SiembraRepository) *CorteUseCase {
	return &CorteUseCase{tx: tx, cortes: cortes, siembras: siembras, now: time.Now}
}

// Create registra un corte. Requiere siembra activa con inicio de corte; sin num_corte se usa el siguiente.
// La suma de tallos no puede superar las plantas de la siembra.
func (uc *CorteUseCase) Create(ctx context.Context, usuarioID, siembraID string, in dto.CreateCorteRequest) (*dto.CorteResponse, error) {
	if in.CantidadTallos <= 0 {
		return nil, invalido("cantidad de tallos debe ser positiva")
	}
	fecha, err := parseFecha(in.FechaCorte)
	if err != nil {
		return nil, err
	}
	c := &entity.Corte{
		ID:             uuid.New().String(),
		SiembraID:      siembraID,
		FechaCorte:     fecha,
		CantidadTallos: in.CantidadTallos,
		UsuarioID:      usuarioID,
		FechaRegistro:  uc.now(),
	}
	var s *entity.Siembra
	var plantas int
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		s, err = siembraBloqueada(ctx, r.Siembras, siembraID)
		if err != nil {
			return err
		}
		if s.FechaInicioCorte == nil {
			return domain.ErrSinInicioCorte
		}
		if fecha.Before(s.FechaSiembra) {
			return domain.ErrFechaInvalida
		}
		if in.NumCorte == nil {
			last, err := r.Cortes.MaxNumCorte(ctx, siembraID)
			if err != nil {
				return err
			}
			c.NumCorte = last + 1
		} else {
			c.NumCorte = *in.NumCorte
		}
		if err := validarNumCorte(ctx, r.Cortes, siembraID, c.NumCorte, ""); err != nil {
			return err
		}
		plantas, err = validarCapacidadTallos(ctx, r, siembraID, c.CantidadTallos, "")
		if err != nil {
			return err
		}
		return r.Cortes.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toCorteResponse(c, s.FechaSiembra, plantas), nil
}

// Update edita un corte de una siembra activa; unicidad y capacidad excluyen el propio corte.
func (uc *CorteUseCase) Update(ctx context.Context, id string, in dto.UpdateCorteRequest) (*dto.CorteResponse, error) {
	var c *entity.Corte
	var s *entity.Siembra
	var plantas int
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		c, err = requerir(r.Cortes.GetByID(ctx, id))
		if err != nil {
			return err
		}
		s, err = siembraBloqueada(ctx, r.Siembras, c.SiembraID)
		if err != nil {
			return err
		}
		if in.FechaCorte != nil {
			f, err := parseFecha(*in.FechaCorte)
			if err != nil {
				return err
			}
			if f.Before(s.FechaSiembra) {
				return domain.ErrFechaInvalida
			}
			c.FechaCorte = f
		}
		if in.NumCorte != nil && *in.NumCorte != c.NumCorte {
			if err := validarNumCorte(ctx, r.Cortes, c.SiembraID, *in.NumCorte, c.ID); err != nil {
				return err
			}
			c.NumCorte = *in.NumCorte
		}
		if in.CantidadTallos != nil {
			if *in.CantidadTallos <= 0 {
				return invalido("cantidad de tallos debe ser positiva")
			}
			c.CantidadTallos = *in.CantidadTallos
		}
		plantas, err = validarCapacidadTallos(ctx, r, c.SiembraID, c.CantidadTallos, c.ID)
		if err != nil {
			return err
		}
		return r.Cortes.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toCorteResponse(c, s.FechaSiembra, plantas), nil
}

// Delete elimina un corte de una siembra activa.
func (uc *CorteUseCase) Delete(ctx context.Context, id string) error {
	c, err := requerir(uc.cortes.GetByID(ctx, id))
	if err != nil {
		return err
	}
	if _, err := siembraEditable(ctx, uc.siembras, c.SiembraID); err != nil {
		return err
	}
	return uc.cortes.Delete(ctx, id)
}

// List lista todos los cortes por fecha descendente.
func (uc *CorteUseCase) List(ctx context.Context, limit, offset int) (*dto.CorteListResponse, error) {
	list, total, err := uc.cortes.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CorteResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.CorteResponse{
			ID:             l.ID,
			SiembraID:      l.SiembraID,
			NumCorte:       l.NumCorte,
			FechaCorte:     dto.FormatFecha(l.FechaCorte),
			CantidadTallos: l.CantidadTallos,
			Indice:         produccion.IndiceAprovechamiento(l.CantidadTallos, l.Plantas),
			Ubicacion:      l.Ubicacion,
			Variedad:       l.Variedad,
		})
	}
	return &dto.CorteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// ListBySiembra lista los cortes de una siembra por número con índice y acumulado.
func (uc *CorteUseCase) ListBySiembra(ctx context.Context, siembraID string) ([]dto.CorteResponse, error) {
	s, err := requerir(uc.siembras.GetByID(ctx, siembraID))
	if err != nil {
		return nil, err
	}
	tot, err := uc.siembras.Totales(ctx, siembraID)
	if err != nil {
		return nil, err
	}
	cortes, err := uc.cortes.ListBySiembra(ctx, siembraID)
	if err != nil {
		return nil, err
	}
	return cortesConIndice(cortes, s.FechaSiembra, tot.Plantas), nil
}

// Prediccion compara el índice del corte con cortes de otras siembras de la misma variedad (±5 días).
func (uc *CorteUseCase) Prediccion(ctx context.Context, corteID string) (*dto.PrediccionResponse, error) {
	c, err := requerir(uc.cortes.GetByID(ctx, corteID))
	if err != nil {
		return nil, err
	}
	s, err := requerir(uc.siembras.GetByID(ctx, c.SiembraID))
	if err != nil {
		return nil, err
	}
	tot, err := uc.siembras.Totales(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	refs, err := uc.cortes.ListReferencias(ctx, s.VariedadID, s.ID)
	if err != nil {
		return nil, err
	}
	referencias := make([]produccion.Referencia, 0, len(refs))
	for _, r := range refs {
		if r.Plantas <= 0 {
			continue
		}
		referencias = append(referencias, produccion.Referencia{
			DiasDesdeSiembra: r.DiasDesdeSiembra,
			Indice:           produccion.IndiceAprovechamiento(r.Tallos, r.Plantas),
		})
	}
	dias := produccion.DiasEntre(s.FechaSiembra, c.FechaCorte)
	p := produccion.Predecir(produccion.IndiceAprovechamiento(c.CantidadTallos, tot.Plantas), dias, referencias)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.PrediccionResponse{
		CorteID:          c.ID,
		DiasDesdeSiembra: dias,
		IndiceActual:     p.IndiceActual,
		IndicePromedio:   p.IndicePromedio,
		IndiceMaximo:     p.IndiceMaximo,
		IndiceMinimo:     p.IndiceMinimo,
		Diferencia:       p.Diferencia,
		NumReferencias:   p.NumReferencias,
	}, nil
}

// siembraEditable devuelve la siembra si existe y está activa.
func siembraEditable(ctx context.Context, repo repository.SiembraRepository, id string) (*entity.Siembra, error) {
	return siembraActiva(repo.GetByID(ctx, id))
}

// siembraBloqueada es siembraEditable con la fila bloqueada; se usa dentro de tx.Run antes
// de validar capacidad para que dos escrituras concurrentes no superen las plantas.
func siembraBloqueada(ctx context.Context, repo repository.SiembraRepository, id string) (*entity.Siembra, error) {
	return siembraActiva(repo.GetByIDForUpdate(ctx, id))
}

func siembraActiva(s *entity.Siembra, err error) (*entity.Siembra, error) {
	s, err = requerir(s, err)
	if err != nil {
		return nil, err
	}
	if !s.EstaActiva() {
		return nil, domain.ErrSiembraInactiva
	}
	return s, nil
}

func validarNumCorte(ctx context.Context, cortes repository.CorteRepository, siembraID string, num int, excluirID string) error {
	if num <= 0 {
		return invalido("num_corte debe ser positivo")
	}
	existe, err := cortes.ExisteNumCorte(ctx, siembraID, num, excluirID)
	if err != nil {
		return err
	}
	if existe {
		return domain.ErrDuplicate
	}
	return nil
}

// validarCapacidadTallos comprueba que los tallos acumulados más cantidad no superen las plantas; devuelve las plantas.
func validarCapacidadTallos(ctx context.Context, r ports.Repos, siembraID string, cantidad int, excluirID string) (int, error) {
	tot, err := r.Siembras.Totales(ctx, siembraID)
	if err != nil {
		return 0, err
	}
	suma, err := r.Cortes.SumTallos(ctx, siembraID, excluirID)
	if err != nil {
		return 0, err
	}
	if suma+cantidad > tot.Plantas {
		return 0, domain.ErrExcedePlantas
	}
	return tot.Plantas, nil
}

func toCorteResponse(c *entity.Corte, fechaSiembra time.Time, plantas int) *dto.CorteResponse {
	return &dto.CorteResponse{
		ID:               c.ID,
		SiembraID:        c.SiembraID,
		NumCorte:         c.NumCorte,
		FechaCorte:       dto.FormatFecha(c.FechaCorte),
		CantidadTallos:   c.CantidadTallos,
		DiasDesdeSiembra: produccion.DiasEntre(fechaSiembra, c.FechaCorte),
		Indice:           produccion.IndiceAprovechamiento(c.CantidadTallos, plantas),
	}
}
