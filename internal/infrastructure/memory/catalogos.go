package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var (
	_ repository.FlorRepository           = (*FlorRepo)(nil)
	_ repository.ColorRepository          = (*ColorRepo)(nil)
	_ repository.FlorColorRepository      = (*FlorColorRepo)(nil)
	_ repository.VariedadRepository       = (*VariedadRepo)(nil)
	_ repository.BloqueRepository         = (*BloqueRepo)(nil)
	_ repository.CamaRepository           = (*CamaRepo)(nil)
	_ repository.LadoRepository           = (*LadoRepo)(nil)
	_ repository.BloqueCamaLadoRepository = (*UbicacionRepo)(nil)
	_ repository.AreaRepository           = (*AreaRepo)(nil)
	_ repository.DensidadRepository       = (*DensidadRepo)(nil)
)

// ordenNumerico ordena por (longitud, texto) como los bloques y camas en SQL.
func ordenNumerico(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func listar[T any](m map[string]T, cmpFn func(a, b T) int) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		out = append(out, &v)
	}
	slices.SortFunc(out, func(a, b *T) int { return cmpFn(*a, *b) })
	return out
}

func buscar[T any](m map[string]T, pred func(T) bool) *T {
	for _, v := range m {
		if pred(v) {
			return &v
		}
	}
	return nil
}

func borrar[T any](m map[string]T, id string) error {
	if _, ok := m[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m, id)
	return nil
}

// ── Flor / Color ────────────────────────────────────────────────────────────

// FlorRepo flores en memoria.
type FlorRepo struct{ s *Store }

func (r *FlorRepo) Create(_ context.Context, f *entity.Flor) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.flores, func(x entity.Flor) bool { return x.Flor == f.Flor || x.FlorAbrev == f.FlorAbrev }) != nil {
			return domain.ErrDuplicate
		}
		d.flores[f.ID] = *f
		return nil
	})
}

func (r *FlorRepo) GetByID(_ context.Context, id string) (out *entity.Flor, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.flores, id) })
	return out, nil
}

func (r *FlorRepo) GetByNombre(_ context.Context, nombre string) (out *entity.Flor, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.flores, func(x entity.Flor) bool { return x.Flor == nombre })
	})
	return out, nil
}

func (r *FlorRepo) List(_ context.Context) (out []*entity.Flor, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.flores, func(a, b entity.Flor) int { return cmp.Compare(a.Flor, b.Flor) })
	})
	return out, nil
}

func (r *FlorRepo) Update(_ context.Context, f *entity.Flor) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.flores[f.ID]; !ok {
			return domain.ErrNotFound
		}
		d.flores[f.ID] = *f
		return nil
	})
}

func (r *FlorRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.florColores, func(x entity.FlorColor) bool { return x.FlorID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.flores, id)
	})
}

// ColorRepo colores en memoria.
type ColorRepo struct{ s *Store }

func (r *ColorRepo) Create(_ context.Context, c *entity.Color) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.colores, func(x entity.Color) bool { return x.Color == c.Color || x.ColorAbrev == c.ColorAbrev }) != nil {
			return domain.ErrDuplicate
		}
		d.colores[c.ID] = *c
		return nil
	})
}

func (r *ColorRepo) GetByID(_ context.Context, id string) (out *entity.Color, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.colores, id) })
	return out, nil
}

func (r *ColorRepo) GetByNombre(_ context.Context, nombre string) (out *entity.Color, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.colores, func(x entity.Color) bool { return x.Color == nombre })
	})
	return out, nil
}

func (r *ColorRepo) List(_ context.Context) (out []*entity.Color, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.colores, func(a, b entity.Color) int { return cmp.Compare(a.Color, b.Color) })
	})
	return out, nil
}

func (r *ColorRepo) Update(_ context.Context, c *entity.Color) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.colores[c.ID]; !ok {
			return domain.ErrNotFound
		}
		d.colores[c.ID] = *c
		return nil
	})
}

func (r *ColorRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.florColores, func(x entity.FlorColor) bool { return x.ColorID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.colores, id)
	})
}

// ── Flor-Color / Variedad ───────────────────────────────────────────────────

// FlorColorRepo combinaciones en memoria.
type FlorColorRepo struct{ s *Store }

func (d *datos) florColor(id string) *entity.FlorColor {
	fc := obtener(d.florColores, id)
	if fc == nil {
		return nil
	}
	fc.Flor = d.flores[fc.FlorID].Flor
	fc.Color = d.colores[fc.ColorID].Color
	return fc
}

func (r *FlorColorRepo) Create(_ context.Context, fc *entity.FlorColor) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.flores[fc.FlorID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := d.colores[fc.ColorID]; !ok {
			return domain.ErrConflict
		}
		if buscar(d.florColores, func(x entity.FlorColor) bool { return x.FlorID == fc.FlorID && x.ColorID == fc.ColorID }) != nil {
			return domain.ErrDuplicate
		}
		d.florColores[fc.ID] = *fc
		return nil
	})
}

func (r *FlorColorRepo) GetByID(_ context.Context, id string) (out *entity.FlorColor, err error) {
	r.s.leer(func(d *datos) { out = d.florColor(id) })
	return out, nil
}

func (r *FlorColorRepo) GetByPar(_ context.Context, florID, colorID string) (out *entity.FlorColor, err error) {
	r.s.leer(func(d *datos) {
		fc := buscar(d.florColores, func(x entity.FlorColor) bool { return x.FlorID == florID && x.ColorID == colorID })
		if fc != nil {
			out = d.florColor(fc.ID)
		}
	})
	return out, nil
}

func (r *FlorColorRepo) List(_ context.Context) (out []*entity.FlorColor, err error) {
	r.s.leer(func(d *datos) {
		for id := range d.florColores {
			out = append(out, d.florColor(id))
		}
	})
	slices.SortFunc(out, func(a, b *entity.FlorColor) int {
		return cmp.Or(cmp.Compare(a.Flor, b.Flor), cmp.Compare(a.Color, b.Color))
	})
	return out, nil
}

func (r *FlorColorRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.variedades, func(x entity.Variedad) bool { return x.FlorColorID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.florColores, id)
	})
}

// VariedadRepo variedades en memoria.
type VariedadRepo struct{ s *Store }

func (d *datos) variedad(id string) *entity.Variedad {
	v := obtener(d.variedades, id)
	if v == nil {
		return nil
	}
	if fc := d.florColor(v.FlorColorID); fc != nil {
		v.Flor = fc.Flor
		v.Color = fc.Color
	}
	return v
}

func (r *VariedadRepo) Create(_ context.Context, v *entity.Variedad) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.florColores[v.FlorColorID]; !ok {
			return domain.ErrConflict
		}
		if buscar(d.variedades, func(x entity.Variedad) bool { return x.Variedad == v.Variedad && x.FlorColorID == v.FlorColorID }) != nil {
			return domain.ErrDuplicate
		}
		d.variedades[v.ID] = *v
		return nil
	})
}

func (r *VariedadRepo) GetByID(_ context.Context, id string) (out *entity.Variedad, err error) {
	r.s.leer(func(d *datos) { out = d.variedad(id) })
	return out, nil
}

func (r *VariedadRepo) GetByNombre(_ context.Context, nombre, florColorID string) (out *entity.Variedad, err error) {
	r.s.leer(func(d *datos) {
		v := buscar(d.variedades, func(x entity.Variedad) bool { return x.Variedad == nombre && x.FlorColorID == florColorID })
		if v != nil {
			out = d.variedad(v.ID)
		}
	})
	return out, nil
}

func (r *VariedadRepo) List(_ context.Context, f repository.VariedadFiltro) (out []*entity.Variedad, err error) {
	r.s.leer(func(d *datos) {
		for id, v := range d.variedades {
			fc := d.florColores[v.FlorColorID]
			if (f.FlorID != "" && fc.FlorID != f.FlorID) || (f.ColorID != "" && fc.ColorID != f.ColorID) {
				continue
			}
			out = append(out, d.variedad(id))
		}
	})
	slices.SortFunc(out, func(a, b *entity.Variedad) int { return cmp.Compare(a.Variedad, b.Variedad) })
	return out, nil
}

func (r *VariedadRepo) ListConSiembras(_ context.Context) (out []*entity.Variedad, err error) {
	r.s.leer(func(d *datos) {
		for id := range d.variedades {
			if buscar(d.siembras, func(s entity.Siembra) bool { return s.VariedadID == id }) != nil {
				out = append(out, d.variedad(id))
			}
		}
	})
	slices.SortFunc(out, func(a, b *entity.Variedad) int { return cmp.Compare(a.Variedad, b.Variedad) })
	return out, nil
}

func (r *VariedadRepo) Update(_ context.Context, v *entity.Variedad) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.variedades[v.ID]; !ok {
			return domain.ErrNotFound
		}
		d.variedades[v.ID] = *v
		return nil
	})
}

func (r *VariedadRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.siembras, func(s entity.Siembra) bool { return s.VariedadID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.variedades, id)
	})
}

// ── Ubicación ───────────────────────────────────────────────────────────────

// BloqueRepo bloques en memoria.
type BloqueRepo struct{ s *Store }

func (r *BloqueRepo) Create(_ context.Context, b *entity.Bloque) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.bloques, func(x entity.Bloque) bool { return x.Bloque == b.Bloque }) != nil {
			return domain.ErrDuplicate
		}
		d.bloques[b.ID] = *b
		return nil
	})
}

func (r *BloqueRepo) GetByID(_ context.Context, id string) (out *entity.Bloque, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.bloques, id) })
	return out, nil
}

func (r *BloqueRepo) GetByNombre(_ context.Context, nombre string) (out *entity.Bloque, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.bloques, func(x entity.Bloque) bool { return x.Bloque == nombre })
	})
	return out, nil
}

func (r *BloqueRepo) List(_ context.Context) (out []*entity.Bloque, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.bloques, func(a, b entity.Bloque) int { return ordenNumerico(a.Bloque, b.Bloque) })
	})
	return out, nil
}

func (r *BloqueRepo) Update(_ context.Context, b *entity.Bloque) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.bloques[b.ID]; !ok {
			return domain.ErrNotFound
		}
		d.bloques[b.ID] = *b
		return nil
	})
}

func (r *BloqueRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.ubicaciones, func(x entity.BloqueCamaLado) bool { return x.BloqueID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.bloques, id)
	})
}

// CamaRepo camas en memoria.
type CamaRepo struct{ s *Store }

func (r *CamaRepo) Create(_ context.Context, c *entity.Cama) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.camas, func(x entity.Cama) bool { return x.Cama == c.Cama }) != nil {
			return domain.ErrDuplicate
		}
		d.camas[c.ID] = *c
		return nil
	})
}

func (r *CamaRepo) GetByID(_ context.Context, id string) (out *entity.Cama, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.camas, id) })
	return out, nil
}

func (r *CamaRepo) GetByNombre(_ context.Context, nombre string) (out *entity.Cama, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.camas, func(x entity.Cama) bool { return x.Cama == nombre })
	})
	return out, nil
}

func (r *CamaRepo) List(_ context.Context) (out []*entity.Cama, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.camas, func(a, b entity.Cama) int { return ordenNumerico(a.Cama, b.Cama) })
	})
	return out, nil
}

func (r *CamaRepo) Update(_ context.Context, c *entity.Cama) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.camas[c.ID]; !ok {
			return domain.ErrNotFound
		}
		d.camas[c.ID] = *c
		return nil
	})
}

func (r *CamaRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.ubicaciones, func(x entity.BloqueCamaLado) bool { return x.CamaID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.camas, id)
	})
}

// LadoRepo lados en memoria.
type LadoRepo struct{ s *Store }

func (r *LadoRepo) Create(_ context.Context, l *entity.Lado) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.lados, func(x entity.Lado) bool { return x.Lado == l.Lado }) != nil {
			return domain.ErrDuplicate
		}
		d.lados[l.ID] = *l
		return nil
	})
}

func (r *LadoRepo) GetByID(_ context.Context, id string) (out *entity.Lado, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.lados, id) })
	return out, nil
}

func (r *LadoRepo) GetByNombre(_ context.Context, nombre string) (out *entity.Lado, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.lados, func(x entity.Lado) bool { return x.Lado == nombre })
	})
	return out, nil
}

func (r *LadoRepo) List(_ context.Context) (out []*entity.Lado, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.lados, func(a, b entity.Lado) int { return cmp.Compare(a.Lado, b.Lado) })
	})
	return out, nil
}

func (r *LadoRepo) Update(_ context.Context, l *entity.Lado) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.lados[l.ID]; !ok {
			return domain.ErrNotFound
		}
		d.lados[l.ID] = *l
		return nil
	})
}

func (r *LadoRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.ubicaciones, func(x entity.BloqueCamaLado) bool { return x.LadoID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.lados, id)
	})
}

// UbicacionRepo ubicaciones bloque-cama-lado en memoria.
type UbicacionRepo struct{ s *Store }

func (d *datos) ubicacion(id string) *entity.BloqueCamaLado {
	u := obtener(d.ubicaciones, id)
	if u == nil {
		return nil
	}
	u.Bloque = d.bloques[u.BloqueID].Bloque
	u.Cama = d.camas[u.CamaID].Cama
	u.Lado = d.lados[u.LadoID].Lado
	return u
}

func (r *UbicacionRepo) Create(_ context.Context, u *entity.BloqueCamaLado) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.ubicaciones, func(x entity.BloqueCamaLado) bool {
			return x.BloqueID == u.BloqueID && x.CamaID == u.CamaID && x.LadoID == u.LadoID
		}) != nil {
			return domain.ErrDuplicate
		}
		d.ubicaciones[u.ID] = *u
		return nil
	})
}

func (r *UbicacionRepo) GetByID(_ context.Context, id string) (out *entity.BloqueCamaLado, err error) {
	r.s.leer(func(d *datos) { out = d.ubicacion(id) })
	return out, nil
}

func (r *UbicacionRepo) GetByTripleta(_ context.Context, bloqueID, camaID, ladoID string) (out *entity.BloqueCamaLado, err error) {
	r.s.leer(func(d *datos) {
		u := buscar(d.ubicaciones, func(x entity.BloqueCamaLado) bool {
			return x.BloqueID == bloqueID && x.CamaID == camaID && x.LadoID == ladoID
		})
		if u != nil {
			out = d.ubicacion(u.ID)
		}
	})
	return out, nil
}

func (r *UbicacionRepo) List(_ context.Context, bloqueID string) (out []*entity.BloqueCamaLado, err error) {
	r.s.leer(func(d *datos) {
		for id, u := range d.ubicaciones {
			if bloqueID == "" || u.BloqueID == bloqueID {
				out = append(out, d.ubicacion(id))
			}
		}
	})
	slices.SortFunc(out, func(a, b *entity.BloqueCamaLado) int {
		return cmp.Or(ordenNumerico(a.Bloque, b.Bloque), ordenNumerico(a.Cama, b.Cama), cmp.Compare(a.Lado, b.Lado))
	})
	return out, nil
}

func (r *UbicacionRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.siembras, func(s entity.Siembra) bool { return s.BloqueCamaLadoID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.ubicaciones, id)
	})
}

// ── Geometría ───────────────────────────────────────────────────────────────

// AreaRepo áreas en memoria.
type AreaRepo struct{ s *Store }

func (r *AreaRepo) Create(_ context.Context, a *entity.Area) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.areas, func(x entity.Area) bool { return x.Nombre == a.Nombre }) != nil {
			return domain.ErrDuplicate
		}
		d.areas[a.ID] = *a
		return nil
	})
}

func (r *AreaRepo) GetByID(_ context.Context, id string) (out *entity.Area, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.areas, id) })
	return out, nil
}

func (r *AreaRepo) GetByNombre(_ context.Context, nombre string) (out *entity.Area, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.areas, func(x entity.Area) bool { return x.Nombre == nombre })
	})
	return out, nil
}

func (r *AreaRepo) FindAproximada(_ context.Context, m2, tolerancia float64) (out *entity.Area, err error) {
	r.s.leer(func(d *datos) {
		mejor := -1.0
		for _, a := range d.areas {
			v := a.Area.InexactFloat64()
			if v < m2*(1-tolerancia) || v > m2*(1+tolerancia) {
				continue
			}
			dist := v - m2
			if dist < 0 {
				dist = -dist
			}
			if mejor < 0 || dist < mejor {
				mejor = dist
				out = &a
			}
		}
	})
	return out, nil
}

func (r *AreaRepo) List(_ context.Context) (out []*entity.Area, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.areas, func(a, b entity.Area) int { return a.Area.Cmp(b.Area) })
	})
	return out, nil
}

func (r *AreaRepo) Update(_ context.Context, a *entity.Area) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.areas[a.ID]; !ok {
			return domain.ErrNotFound
		}
		d.areas[a.ID] = *a
		return nil
	})
}

func (r *AreaRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.siembras, func(s entity.Siembra) bool { return s.AreaID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.areas, id)
	})
}

// DensidadRepo densidades en memoria.
type DensidadRepo struct{ s *Store }

func (r *DensidadRepo) Create(_ context.Context, x *entity.Densidad) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.densidades, func(y entity.Densidad) bool { return strings.EqualFold(y.Densidad, x.Densidad) }) != nil {
			return domain.ErrDuplicate
		}
		d.densidades[x.ID] = *x
		return nil
	})
}

func (r *DensidadRepo) GetByID(_ context.Context, id string) (out *entity.Densidad, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.densidades, id) })
	return out, nil
}

func (r *DensidadRepo) GetByNombre(_ context.Context, nombre string) (out *entity.Densidad, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.densidades, func(y entity.Densidad) bool { return strings.EqualFold(y.Densidad, nombre) })
	})
	return out, nil
}

func (r *DensidadRepo) List(_ context.Context) (out []*entity.Densidad, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.densidades, func(a, b entity.Densidad) int { return a.Valor.Cmp(b.Valor) })
	})
	return out, nil
}

func (r *DensidadRepo) Update(_ context.Context, x *entity.Densidad) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.densidades[x.ID]; !ok {
			return domain.ErrNotFound
		}
		d.densidades[x.ID] = *x
		return nil
	})
}

func (r *DensidadRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.siembras, func(s entity.Siembra) bool { return s.DensidadID == id }) != nil {
			return domain.ErrConflict
		}
		return borrar(d.densidades, id)
	})
}
