package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

// LaborUseCase registro de labores culturales por siembra.
type LaborUseCase struct {
	labores  repository.LaborRepository
	tipos    repository.TipoLaborRepository
	siembras repository.SiembraRepository
	now      func() time.Time
}

// NewLaborUseCase construye el caso de uso.
func NewLaborUseCase(labores repository.LaborRepository, tipos repository.TipoLaborRepository, siembras repository.SiembraRepository) *LaborUseCase {
	return &LaborUseCase{labores: labores, tipos: tipos, siembras: siembras, now: time.Now}
}

// Create registra una labor sobre una siembra activa.
func (uc *LaborUseCase) Create(ctx context.Context, usuarioID, siembraID string, in dto.CreateLaborRequest) (*dto.LaborResponse, error) {
	s, err := siembraEditable(ctx, uc.siembras, siembraID)
	if err != nil {
		return nil, err
	}
	t, err := requerir(uc.tipos.GetByID(ctx, in.TipoLaborID))
	if err != nil {
		return nil, err
	}
	fecha, err := parseFecha(in.FechaLabor)
	if err != nil {
		return nil, err
	}
	l := &entity.LaborCultural{
		ID:            uuid.New().String(),
		SiembraID:     s.ID,
		TipoLaborID:   t.ID,
		TipoLabor:     t.Nombre,
		FechaLabor:    fecha,
		Observaciones: strings.TrimSpace(in.Observaciones),
		UsuarioID:     usuarioID,
		FechaRegistro: uc.now(),
	}
	if err := uc.labores.Create(ctx, l); err != nil {
		return nil, err
	}
	return toLaborResponse(l, s), nil
}

// ListBySiembra lista las labores de una siembra por fecha.
func (uc *LaborUseCase) ListBySiembra(ctx context.Context, siembraID string) ([]dto.LaborResponse, error) {
	s, err := requerir(uc.siembras.GetByID(ctx, siembraID))
	if err != nil {
		return nil, err
	}
	list, err := uc.labores.ListBySiembra(ctx, siembraID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LaborResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLaborResponse(l, s))
	}
	return out, nil
}

// Update edita una labor de una siembra activa.
func (uc *LaborUseCase) Update(ctx context.Context, id string, in dto.UpdateLaborRequest) (*dto.LaborResponse, error) {
	l, err := requerir(uc.labores.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	s, err := siembraEditable(ctx, uc.siembras, l.SiembraID)
	if err != nil {
		return nil, err
	}
	if in.TipoLaborID != nil {
		t, err := requerir(uc.tipos.GetByID(ctx, *in.TipoLaborID))
		if err != nil {
			return nil, err
		}
		l.TipoLaborID = t.ID
		l.TipoLabor = t.Nombre
	}
	if in.FechaLabor != nil {
		f, err := parseFecha(*in.FechaLabor)
		if err != nil {
			return nil, err
		}
		l.FechaLabor = f
	}
	if in.Observaciones != nil {
		l.Observaciones = strings.TrimSpace(*in.Observaciones)
	}
	if err := uc.labores.Update(ctx, l); err != nil {
		return nil, err
	}
	return toLaborResponse(l, s), nil
}

// Delete elimina una labor de una siembra activa.
func (uc *LaborUseCase) Delete(ctx context.Context, id string) error {
	l, err := requerir(uc.labores.GetByID(ctx, id))
	if err != nil {
		return err
	}
	if _, err := siembraEditable(ctx, uc.siembras, l.SiembraID); err != nil {
		return err
	}
	return uc.labores.Delete(ctx, id)
}

// toLaborResponse incluye los días hasta el inicio de corte (nil si la siembra no lo tiene).
func toLaborResponse(l *entity.LaborCultural, s *entity.Siembra) *dto.LaborResponse {
	out := &dto.LaborResponse{
		ID:            l.ID,
		SiembraID:     l.SiembraID,
		TipoLaborID:   l.TipoLaborID,
		TipoLabor:     l.TipoLabor,
		FechaLabor:    dto.FormatFecha(l.FechaLabor),
		Observaciones: l.Observaciones,
	}
	if s != nil && s.FechaInicioCorte != nil {
		d := produccion.DiasEntre(l.FechaLabor, *s.FechaInicioCorte)
		out.DiasHastaInicioCorte = &d
	}
	return out
}
