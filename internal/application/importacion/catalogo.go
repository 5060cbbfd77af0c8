package importacion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/ports"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Claves del mapa de registros creados.
const (
	creadoFlor        = "flores"
	creadoColor       = "colores"
	creadoCombinacion = "combinaciones"
	creadoVariedad    = "variedades"
	creadoBloque      = "bloques"
	creadoCama        = "camas"
	creadoLado        = "lados"
	creadoUbicacion   = "ubicaciones"
	creadoArea        = "areas"
	creadoDensidad    = "densidades"
	creadoCausa       = "causas"
	creadoSiembra     = "siembras"
	creadoCorte       = "cortes"
	creadoPerdida     = "perdidas"
)

const (
	maxAbreviatura       = 10
	maxSufijoAbreviatura = 99
)

// catalogo obtiene o crea registros de catálogo dentro de la transacción de la importación.
type catalogo struct {
	ctx     context.Context
	r       ports.Repos
	creados map[string]int
	ahora   time.Time

	abrevFlores  map[string]bool
	abrevColores map[string]bool
}

func (c *catalogo) flor(nombre string) (*entity.Flor, error) {
	f, err := c.r.Flores.GetByNombre(c.ctx, nombre)
	if err != nil || f != nil {
		return f, err
	}
	if c.abrevFlores == nil {
		list, err := c.r.Flores.List(c.ctx)
		if err != nil {
			return nil, err
		}
		c.abrevFlores = make(map[string]bool, len(list))
		for _, x := range list {
			c.abrevFlores[x.FlorAbrev] = true
		}
	}
	f = &entity.Flor{ID: uuid.New().String(), Flor: nombre, FlorAbrev: abreviar(nombre, c.abrevFlores)}
	if err := c.r.Flores.Create(c.ctx, f); err != nil {
		return nil, err
	}
	c.creados[creadoFlor]++
	return f, nil
}

func (c *catalogo) color(nombre string) (*entity.Color, error) {
	co, err := c.r.Colores.GetByNombre(c.ctx, nombre)
	if err != nil || co != nil {
		return co, err
	}
	if c.abrevColores == nil {
		list, err := c.r.Colores.List(c.ctx)
		if err != nil {
			return nil, err
		}
		c.abrevColores = make(map[string]bool, len(list))
		for _, x := range list {
			c.abrevColores[x.ColorAbrev] = true
		}
	}
	co = &entity.Color{ID: uuid.New().String(), Color: nombre, ColorAbrev: abreviar(nombre, c.abrevColores)}
	if err := c.r.Colores.Create(c.ctx, co); err != nil {
		return nil, err
	}
	c.creados[creadoColor]++
	return co, nil
}

// variedad resuelve flor, color, combinación y variedad; nueva indica si la variedad se creó.
func (c *catalogo) variedad(flor, color, variedad string) (v *entity.Variedad, nueva bool, err error) {
	f, err := c.flor(flor)
	if err != nil {
		return nil, false, err
	}
	co, err := c.color(color)
	if err != nil {
		return nil, false, err
	}
	fc, err := c.r.FlorColores.GetByPar(c.ctx, f.ID, co.ID)
	if err != nil {
		return nil, false, err
	}
	if fc == nil {
		fc = &entity.FlorColor{ID: uuid.New().String(), FlorID: f.ID, ColorID: co.ID, Flor: f.Flor, Color: co.Color}
		if err := c.r.FlorColores.Create(c.ctx, fc); err != nil {
			return nil, false, err
		}
		c.creados[creadoCombinacion]++
	}
	v, err = c.r.Variedades.GetByNombre(c.ctx, variedad, fc.ID)
	if err != nil || v != nil {
		return v, false, err
	}
	v = &entity.Variedad{ID: uuid.New().String(), Variedad: variedad, FlorColorID: fc.ID, Flor: f.Flor, Color: co.Color}
	if err := c.r.Variedades.Create(c.ctx, v); err != nil {
		return nil, false, err
	}
	c.creados[creadoVariedad]++
	return v, true, nil
}

// ubicacion resuelve bloque, cama y lado; nueva indica si la tripleta se creó.
func (c *catalogo) ubicacion(bloque, cama, lado string) (u *entity.BloqueCamaLado, nueva bool, err error) {
	b, err := c.r.Bloques.GetByNombre(c.ctx, bloque)
	if err != nil {
		return nil, false, err
	}
	if b == nil {
		b = &entity.Bloque{ID: uuid.New().String(), Bloque: bloque}
		if err := c.r.Bloques.Create(c.ctx, b); err != nil {
			return nil, false, err
		}
		c.creados[creadoBloque]++
	}
	cm, err := c.r.Camas.GetByNombre(c.ctx, cama)
	if err != nil {
		return nil, false, err
	}
	if cm == nil {
		cm = &entity.Cama{ID: uuid.New().String(), Cama: cama}
		if err := c.r.Camas.Create(c.ctx, cm); err != nil {
			return nil, false, err
		}
		c.creados[creadoCama]++
	}
	l, err := c.r.Lados.GetByNombre(c.ctx, lado)
	if err != nil {
		return nil, false, err
	}
	if l == nil {
		l = &entity.Lado{ID: uuid.New().String(), Lado: lado}
		if err := c.r.Lados.Create(c.ctx, l); err != nil {
			return nil, false, err
		}
		c.creados[creadoLado]++
	}

	u, err = c.r.BloqueCamaLados.GetByTripleta(c.ctx, b.ID, cm.ID, l.ID)
	if err != nil || u != nil {
		return u, false, err
	}
	u = &entity.BloqueCamaLado{
		ID:       uuid.New().String(),
		BloqueID: b.ID,
		CamaID:   cm.ID,
		LadoID:   l.ID,
		Bloque:   b.Bloque,
		Cama:     cm.Cama,
		Lado:     l.Lado,
	}
	if err := c.r.BloqueCamaLados.Create(c.ctx, u); err != nil {
		return nil, false, err
	}
	c.creados[creadoUbicacion]++
	return u, true, nil
}

func (c *catalogo) area(m2 float64) (*entity.Area, error) {
	nombre := entity.NombreAreaCalculada(m2)
	a, err := c.r.Areas.GetByNombre(c.ctx, nombre)
	if err != nil || a != nil {
		return a, err
	}
	a = &entity.Area{ID: uuid.New().String(), Nombre: nombre, Area: decimal.NewFromFloat(m2).Round(4)}
	if err := c.r.Areas.Create(c.ctx, a); err != nil {
		return nil, err
	}
	c.creados[creadoArea]++
	return a, nil
}

func (c *catalogo) densidad(valor float64) (*entity.Densidad, error) {
	nombre := fmt.Sprintf("DENSIDAD %.1f", valor)
	d, err := c.r.Densidades.GetByNombre(c.ctx, nombre)
	if err != nil || d != nil {
		return d, err
	}
	d = &entity.Densidad{ID: uuid.New().String(), Densidad: nombre, Valor: decimal.NewFromFloat(valor).Round(4)}
	if err := c.r.Densidades.Create(c.ctx, d); err != nil {
		return nil, err
	}
	c.creados[creadoDensidad]++
	return d, nil
}

// causa busca sin distinguir mayúsculas y crea la causa si falta; nueva indica si se creó.
func (c *catalogo) causa(nombre, descripcion string, predefinida bool) (ca *entity.CausaPerdida, nueva bool, err error) {
	ca, err = c.r.Causas.GetByNombre(c.ctx, nombre)
	if err != nil || ca != nil {
		return ca, false, err
	}
	ca = &entity.CausaPerdida{ID: uuid.New().String(), Nombre: nombre, Descripcion: descripcion, EsPredefinida: predefinida}
	if err := c.r.Causas.Create(c.ctx, ca); err != nil {
		return nil, false, err
	}
	c.creados[creadoCausa]++
	return ca, true, nil
}

// abreviar toma los primeros 10 caracteres del nombre; si ya están en uso agrega un sufijo numérico.
func abreviar(nombre string, usadas map[string]bool) string {
	base := []rune(nombre)
	if len(base) > maxAbreviatura {
		base = base[:maxAbreviatura]
	}
	abrev := string(base)
	for n := 2; usadas[abrev] && n <= maxSufijoAbreviatura; n++ {
		corto := base
		if len(corto) > maxAbreviatura-2 {
			corto = corto[:maxAbreviatura-2]
		}
		abrev = fmt.Sprintf("%s%02d", string(corto), n)
	}
	usadas[abrev] = true
	return abrev
}
