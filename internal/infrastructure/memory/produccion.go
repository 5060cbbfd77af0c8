package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var (
	_ repository.SiembraRepository   = (*SiembraRepo)(nil)
	_ repository.CorteRepository     = (*CorteRepo)(nil)
	_ repository.PerdidaRepository   = (*PerdidaRepo)(nil)
	_ repository.CausaRepository     = (*CausaRepo)(nil)
	_ repository.TipoLaborRepository = (*TipoLaborRepo)(nil)
	_ repository.LaborRepository     = (*LaborRepo)(nil)
)

func paginar[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func (d *datos) plantas(s entity.Siembra) int {
	return produccion.PlantasTotales(d.areas[s.AreaID].Area, d.densidades[s.DensidadID].Valor)
}

func (d *datos) detalle(id string) *entity.SiembraDetalle {
	s, ok := d.siembras[id]
	if !ok {
		return nil
	}
	out := &entity.SiembraDetalle{Siembra: s}
	if u := d.ubicacion(s.BloqueCamaLadoID); u != nil {
		out.Bloque, out.Cama, out.Lado, out.BloqueID = u.Bloque, u.Cama, u.Lado, u.BloqueID
	}
	if v := d.variedad(s.VariedadID); v != nil {
		out.Variedad, out.Flor, out.Color = v.Variedad, v.Flor, v.Color
	}
	a := d.areas[s.AreaID]
	out.AreaNombre = a.Nombre
	out.Area = a.Area.InexactFloat64()
	den := d.densidades[s.DensidadID]
	out.DensidadNombre = den.Densidad
	out.Densidad = den.Valor.InexactFloat64()
	out.Usuario = d.usuarios[s.UsuarioID].Username
	return out
}

func (d *datos) etiquetas(siembraID string) (ubicacion, variedad string) {
	s := d.siembras[siembraID]
	if u := d.ubicacion(s.BloqueCamaLadoID); u != nil {
		ubicacion = u.Etiqueta()
	}
	if v := d.variedad(s.VariedadID); v != nil {
		variedad = v.NombreCompleto()
	}
	return ubicacion, variedad
}

// ── Siembras ────────────────────────────────────────────────────────────────

// SiembraRepo siembras en memoria.
type SiembraRepo struct{ s *Store }

func (r *SiembraRepo) Create(_ context.Context, s *entity.Siembra) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.ubicaciones[s.BloqueCamaLadoID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := d.variedades[s.VariedadID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := d.areas[s.AreaID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := d.densidades[s.DensidadID]; !ok {
			return domain.ErrConflict
		}
		d.siembras[s.ID] = *s
		return nil
	})
}

func (r *SiembraRepo) GetByID(_ context.Context, id string) (out *entity.Siembra, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.siembras, id) })
	return out, nil
}

// GetByIDForUpdate equivale a GetByID: las transacciones del store ya son serializadas.
func (r *SiembraRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Siembra, error) {
	return r.GetByID(ctx, id)
}

func (r *SiembraRepo) GetByClave(_ context.Context, bloqueCamaLadoID, variedadID string, fecha time.Time) (out *entity.Siembra, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.siembras, func(x entity.Siembra) bool {
			return x.BloqueCamaLadoID == bloqueCamaLadoID && x.VariedadID == variedadID && x.FechaSiembra.Equal(fecha)
		})
	})
	return out, nil
}

func (r *SiembraRepo) GetDetalle(_ context.Context, id string) (out *entity.SiembraDetalle, err error) {
	r.s.leer(func(d *datos) { out = d.detalle(id) })
	return out, nil
}

func (r *SiembraRepo) List(_ context.Context, f repository.SiembraFiltro, limit, offset int) (out []*entity.SiembraDetalle, total int, err error) {
	r.s.leer(func(d *datos) {
		for id, s := range d.siembras {
			if f.Estado != "" && s.Estado != f.Estado {
				continue
			}
			if f.VariedadID != "" && s.VariedadID != f.VariedadID {
				continue
			}
			det := d.detalle(id)
			if f.BloqueID != "" && det.BloqueID != f.BloqueID {
				continue
			}
			out = append(out, det)
		}
	})
	slices.SortFunc(out, func(a, b *entity.SiembraDetalle) int {
		return cmp.Or(b.FechaSiembra.Compare(a.FechaSiembra), cmp.Compare(a.ID, b.ID))
	})
	return paginar(out, limit, offset), len(out), nil
}

func (r *SiembraRepo) Update(_ context.Context, s *entity.Siembra) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.siembras[s.ID]; !ok {
			return domain.ErrNotFound
		}
		d.siembras[s.ID] = *s
		return nil
	})
}

func (r *SiembraRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error { return borrar(d.siembras, id) })
}

func (r *SiembraRepo) Totales(_ context.Context, id string) (out repository.SiembraTotales, err error) {
	r.s.leer(func(d *datos) {
		s, ok := d.siembras[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		out.Plantas = d.plantas(s)
		for _, c := range d.cortes {
			if c.SiembraID != id {
				continue
			}
			out.Tallos += c.CantidadTallos
			out.NumCortes++
			if out.UltimoCorte == nil || c.FechaCorte.After(*out.UltimoCorte) {
				f := c.FechaCorte
				out.UltimoCorte = &f
			}
		}
		for _, p := range d.perdidas {
			if p.SiembraID == id {
				out.Perdidas += p.Cantidad
			}
		}
	})
	return out, err
}

func (r *SiembraRepo) CountDependencias(_ context.Context, id string) (n int, err error) {
	r.s.leer(func(d *datos) {
		for _, c := range d.cortes {
			if c.SiembraID == id {
				n++
			}
		}
		for _, p := range d.perdidas {
			if p.SiembraID == id {
				n++
			}
		}
		for _, l := range d.labores {
			if l.SiembraID == id {
				n++
			}
		}
	})
	return n, nil
}

func (r *SiembraRepo) ListMuestras(_ context.Context, f repository.MuestraFiltro) (out []produccion.SiembraMuestra, err error) {
	r.s.leer(func(d *datos) {
		for id, s := range d.siembras {
			if s.VariedadID != f.VariedadID {
				continue
			}
			if f.BloqueID != "" && d.ubicaciones[s.BloqueCamaLadoID].BloqueID != f.BloqueID {
				continue
			}
			if f.SembradaDesde != nil && s.FechaSiembra.Before(*f.SembradaDesde) {
				continue
			}
			m := produccion.SiembraMuestra{ID: id, FechaSiembra: s.FechaSiembra, Plantas: d.plantas(s)}
			for _, c := range d.cortes {
				if c.SiembraID == id {
					m.Cortes = append(m.Cortes, produccion.CorteMuestra{Fecha: c.FechaCorte, Tallos: c.CantidadTallos})
				}
			}
			slices.SortFunc(m.Cortes, func(a, b produccion.CorteMuestra) int { return a.Fecha.Compare(b.Fecha) })
			out = append(out, m)
		}
	})
	slices.SortFunc(out, func(a, b produccion.SiembraMuestra) int {
		return cmp.Or(a.FechaSiembra.Compare(b.FechaSiembra), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// ── Cortes ──────────────────────────────────────────────────────────────────

// CorteRepo cortes en memoria.
type CorteRepo struct{ s *Store }

func existeNum(d *datos, siembraID string, num int, excluirID string) bool {
	return buscar(d.cortes, func(c entity.Corte) bool {
		return c.SiembraID == siembraID && c.NumCorte == num && c.ID != excluirID
	}) != nil
}

func (r *CorteRepo) Create(_ context.Context, c *entity.Corte) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.siembras[c.SiembraID]; !ok {
			return domain.ErrConflict
		}
		if existeNum(d, c.SiembraID, c.NumCorte, "") {
			return domain.ErrDuplicate
		}
		d.cortes[c.ID] = *c
		return nil
	})
}

func (r *CorteRepo) GetByID(_ context.Context, id string) (out *entity.Corte, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.cortes, id) })
	return out, nil
}

func (r *CorteRepo) Update(_ context.Context, c *entity.Corte) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.cortes[c.ID]; !ok {
			return domain.ErrNotFound
		}
		if existeNum(d, c.SiembraID, c.NumCorte, c.ID) {
			return domain.ErrDuplicate
		}
		d.cortes[c.ID] = *c
		return nil
	})
}

func (r *CorteRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error { return borrar(d.cortes, id) })
}

func (r *CorteRepo) List(_ context.Context, limit, offset int) (out []*repository.CorteListado, total int, err error) {
	r.s.leer(func(d *datos) {
		for _, c := range d.cortes {
			ubic, variedad := d.etiquetas(c.SiembraID)
			out = append(out, &repository.CorteListado{
				Corte:     c,
				Ubicacion: ubic,
				Variedad:  variedad,
				Plantas:   d.plantas(d.siembras[c.SiembraID]),
			})
		}
	})
	slices.SortFunc(out, func(a, b *repository.CorteListado) int {
		return cmp.Or(b.FechaCorte.Compare(a.FechaCorte), cmp.Compare(a.ID, b.ID))
	})
	return paginar(out, limit, offset), len(out), nil
}

func (r *CorteRepo) ListBySiembra(_ context.Context, siembraID string) (out []*entity.Corte, err error) {
	r.s.leer(func(d *datos) {
		for _, c := range d.cortes {
			if c.SiembraID == siembraID {
				out = append(out, &c)
			}
		}
	})
	slices.SortFunc(out, func(a, b *entity.Corte) int { return cmp.Compare(a.NumCorte, b.NumCorte) })
	return out, nil
}

func (r *CorteRepo) SumTallos(_ context.Context, siembraID, excluirID string) (n int, err error) {
	r.s.leer(func(d *datos) {
		for _, c := range d.cortes {
			if c.SiembraID == siembraID && c.ID != excluirID {
				n += c.CantidadTallos
			}
		}
	})
	return n, nil
}

func (r *CorteRepo) MaxNumCorte(_ context.Context, siembraID string) (n int, err error) {
	r.s.leer(func(d *datos) {
		for _, c := range d.cortes {
			if c.SiembraID == siembraID && c.NumCorte > n {
				n = c.NumCorte
			}
		}
	})
	return n, nil
}

func (r *CorteRepo) ExisteNumCorte(_ context.Context, siembraID string, num int, excluirID string) (ok bool, err error) {
	r.s.leer(func(d *datos) { ok = existeNum(d, siembraID, num, excluirID) })
	return ok, nil
}

func (r *CorteRepo) ListReferencias(_ context.Context, variedadID, excluirSiembraID string) (out []repository.CorteReferencia, err error) {
	r.s.leer(func(d *datos) {
		for _, c := range d.cortes {
			s := d.siembras[c.SiembraID]
			if s.VariedadID != variedadID || s.ID == excluirSiembraID {
				continue
			}
			out = append(out, repository.CorteReferencia{
				DiasDesdeSiembra: produccion.DiasEntre(s.FechaSiembra, c.FechaCorte),
				Tallos:           c.CantidadTallos,
				Plantas:          d.plantas(s),
			})
		}
	})
	return out, nil
}

// ── Pérdidas y causas ───────────────────────────────────────────────────────

// PerdidaRepo pérdidas en memoria.
type PerdidaRepo struct{ s *Store }

func (r *PerdidaRepo) Create(_ context.Context, p *entity.Perdida) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.siembras[p.SiembraID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := d.causas[p.CausaID]; !ok {
			return domain.ErrConflict
		}
		d.perdidas[p.ID] = *p
		return nil
	})
}

func (r *PerdidaRepo) GetByID(_ context.Context, id string) (out *entity.Perdida, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.perdidas, id) })
	return out, nil
}

func (r *PerdidaRepo) Update(_ context.Context, p *entity.Perdida) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.perdidas[p.ID]; !ok {
			return domain.ErrNotFound
		}
		d.perdidas[p.ID] = *p
		return nil
	})
}

func (r *PerdidaRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error { return borrar(d.perdidas, id) })
}

func (r *PerdidaRepo) List(_ context.Context, f repository.PerdidaFiltro, limit, offset int) (out []*repository.PerdidaListado, total int, err error) {
	r.s.leer(func(d *datos) {
		for _, p := range d.perdidas {
			if f.SiembraID != "" && p.SiembraID != f.SiembraID {
				continue
			}
			if f.CausaID != "" && p.CausaID != f.CausaID {
				continue
			}
			if f.FechaDesde != nil && p.FechaPerdida.Before(*f.FechaDesde) {
				continue
			}
			if f.FechaHasta != nil && p.FechaPerdida.After(*f.FechaHasta) {
				continue
			}
			ubic, variedad := d.etiquetas(p.SiembraID)
			out = append(out, &repository.PerdidaListado{
				Perdida:   p,
				Causa:     d.causas[p.CausaID].Nombre,
				Variedad:  variedad,
				Ubicacion: ubic,
			})
		}
	})
	slices.SortFunc(out, func(a, b *repository.PerdidaListado) int {
		return cmp.Or(b.FechaPerdida.Compare(a.FechaPerdida), cmp.Compare(a.ID, b.ID))
	})
	return paginar(out, limit, offset), len(out), nil
}

func (r *PerdidaRepo) SumCantidad(_ context.Context, siembraID, excluirID string) (n int, err error) {
	r.s.leer(func(d *datos) {
		for _, p := range d.perdidas {
			if p.SiembraID == siembraID && p.ID != excluirID {
				n += p.Cantidad
			}
		}
	})
	return n, nil
}

func (r *PerdidaRepo) ResumenPorCausa(_ context.Context, siembraID string) (out []repository.ResumenCausa, err error) {
	r.s.leer(func(d *datos) {
		idx := map[string]int{}
		for _, p := range d.perdidas {
			if siembraID != "" && p.SiembraID != siembraID {
				continue
			}
			i, ok := idx[p.CausaID]
			if !ok {
				i = len(out)
				idx[p.CausaID] = i
				out = append(out, repository.ResumenCausa{CausaID: p.CausaID, Causa: d.causas[p.CausaID].Nombre})
			}
			out[i].Total += p.Cantidad
			out[i].Registros++
		}
	})
	slices.SortFunc(out, func(a, b repository.ResumenCausa) int {
		return cmp.Or(cmp.Compare(b.Total, a.Total), cmp.Compare(a.Causa, b.Causa))
	})
	return out, nil
}

func (r *PerdidaRepo) ResumenPorVariedadCausa(_ context.Context) (out []repository.ResumenVariedadCausa, err error) {
	r.s.leer(func(d *datos) {
		idx := map[[2]string]int{}
		for _, p := range d.perdidas {
			s := d.siembras[p.SiembraID]
			k := [2]string{s.VariedadID, p.CausaID}
			i, ok := idx[k]
			if !ok {
				i = len(out)
				idx[k] = i
				_, variedad := d.etiquetas(p.SiembraID)
				out = append(out, repository.ResumenVariedadCausa{
					VariedadID: s.VariedadID,
					Variedad:   variedad,
					CausaID:    p.CausaID,
					Causa:      d.causas[p.CausaID].Nombre,
				})
			}
			out[i].Total += p.Cantidad
		}
	})
	slices.SortFunc(out, func(a, b repository.ResumenVariedadCausa) int {
		return cmp.Or(cmp.Compare(a.Variedad, b.Variedad), cmp.Compare(b.Total, a.Total))
	})
	return out, nil
}

// CausaRepo causas en memoria.
type CausaRepo struct{ s *Store }

func (r *CausaRepo) Create(_ context.Context, c *entity.CausaPerdida) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.causas, func(x entity.CausaPerdida) bool { return strings.EqualFold(x.Nombre, c.Nombre) }) != nil {
			return domain.ErrDuplicate
		}
		d.causas[c.ID] = *c
		return nil
	})
}

func (r *CausaRepo) GetByID(_ context.Context, id string) (out *entity.CausaPerdida, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.causas, id) })
	return out, nil
}

func (r *CausaRepo) GetByNombre(_ context.Context, nombre string) (out *entity.CausaPerdida, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.causas, func(x entity.CausaPerdida) bool { return strings.EqualFold(x.Nombre, nombre) })
	})
	return out, nil
}

func (r *CausaRepo) List(_ context.Context) (out []*entity.CausaPerdida, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.causas, func(a, b entity.CausaPerdida) int { return cmp.Compare(a.Nombre, b.Nombre) })
	})
	return out, nil
}

func (r *CausaRepo) Update(_ context.Context, c *entity.CausaPerdida) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.causas[c.ID]; !ok {
			return domain.ErrNotFound
		}
		d.causas[c.ID] = *c
		return nil
	})
}

func (r *CausaRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.perdidas, func(p entity.Perdida) bool { return p.CausaID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.causas, id)
	})
}

func (r *CausaRepo) CountPerdidas(_ context.Context, id string) (n int, err error) {
	r.s.leer(func(d *datos) {
		for _, p := range d.perdidas {
			if p.CausaID == id {
				n++
			}
		}
	})
	return n, nil
}

// ── Labores ─────────────────────────────────────────────────────────────────

// TipoLaborRepo tipos de labor en memoria.
type TipoLaborRepo struct{ s *Store }

// NewTipoLaborRepo construye el repositorio sobre el store.
func NewTipoLaborRepo(s *Store) *TipoLaborRepo { return &TipoLaborRepo{s} }

func (r *TipoLaborRepo) Create(_ context.Context, t *entity.TipoLabor) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.tipos, func(x entity.TipoLabor) bool { return x.Nombre == t.Nombre }) != nil {
			return domain.ErrDuplicate
		}
		d.tipos[t.ID] = *t
		return nil
	})
}

func (r *TipoLaborRepo) GetByID(_ context.Context, id string) (out *entity.TipoLabor, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.tipos, id) })
	return out, nil
}

func (r *TipoLaborRepo) List(_ context.Context) (out []*entity.TipoLabor, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.tipos, func(a, b entity.TipoLabor) int { return cmp.Compare(a.Nombre, b.Nombre) })
	})
	return out, nil
}

func (r *TipoLaborRepo) Update(_ context.Context, t *entity.TipoLabor) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.tipos[t.ID]; !ok {
			return domain.ErrNotFound
		}
		d.tipos[t.ID] = *t
		return nil
	})
}

func (r *TipoLaborRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.labores, func(l entity.LaborCultural) bool { return l.TipoLaborID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.tipos, id)
	})
}

// LaborRepo labores culturales en memoria.
type LaborRepo struct{ s *Store }

// NewLaborRepo construye el repositorio sobre el store.
func NewLaborRepo(s *Store) *LaborRepo { return &LaborRepo{s} }

func (r *LaborRepo) Create(_ context.Context, l *entity.LaborCultural) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.siembras[l.SiembraID]; !ok {
			return domain.ErrConflict
		}
		d.labores[l.ID] = *l
		return nil
	})
}

func (r *LaborRepo) GetByID(_ context.Context, id string) (out *entity.LaborCultural, err error) {
	r.s.leer(func(d *datos) {
		out = obtener(d.labores, id)
		if out != nil {
			out.TipoLabor = d.tipos[out.TipoLaborID].Nombre
		}
	})
	return out, nil
}

func (r *LaborRepo) ListBySiembra(_ context.Context, siembraID string) (out []*entity.LaborCultural, err error) {
	r.s.leer(func(d *datos) {
		for _, l := range d.labores {
			if l.SiembraID == siembraID {
				l.TipoLabor = d.tipos[l.TipoLaborID].Nombre
				out = append(out, &l)
			}
		}
	})
	slices.SortFunc(out, func(a, b *entity.LaborCultural) int { return a.FechaLabor.Compare(b.FechaLabor) })
	return out, nil
}

func (r *LaborRepo) Update(_ context.Context, l *entity.LaborCultural) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.labores[l.ID]; !ok {
			return domain.ErrNotFound
		}
		d.labores[l.ID] = *l
		return nil
	})
}

func (r *LaborRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error { return borrar(d.labores, id) })
}
