// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests de casos de uso y de importación; respeta unicidad,
// referencias y transacciones (rollback restaurando una copia).
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/cpc-api/internal/application/ports"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type datos struct {
	flores      map[string]entity.Flor
	colores     map[string]entity.Color
	florColores map[string]entity.FlorColor
	variedades  map[string]entity.Variedad
	bloques     map[string]entity.Bloque
	camas       map[string]entity.Cama
	lados       map[string]entity.Lado
	ubicaciones map[string]entity.BloqueCamaLado
	areas       map[string]entity.Area
	densidades  map[string]entity.Densidad
	siembras    map[string]entity.Siembra
	cortes      map[string]entity.Corte
	causas      map[string]entity.CausaPerdida
	perdidas    map[string]entity.Perdida
	tipos       map[string]entity.TipoLabor
	labores     map[string]entity.LaborCultural
	usuarios    map[string]entity.Usuario
	roles       map[string]entity.Rol
	documentos  map[string]entity.Documento
}

func nuevosDatos() datos {
	return datos{
		flores:      map[string]entity.Flor{},
		colores:     map[string]entity.Color{},
		florColores: map[string]entity.FlorColor{},
		variedades:  map[string]entity.Variedad{},
		bloques:     map[string]entity.Bloque{},
		camas:       map[string]entity.Cama{},
		lados:       map[string]entity.Lado{},
		ubicaciones: map[string]entity.BloqueCamaLado{},
		areas:       map[string]entity.Area{},
		densidades:  map[string]entity.Densidad{},
		siembras:    map[string]entity.Siembra{},
		cortes:      map[string]entity.Corte{},
		causas:      map[string]entity.CausaPerdida{},
		perdidas:    map[string]entity.Perdida{},
		tipos:       map[string]entity.TipoLabor{},
		labores:     map[string]entity.LaborCultural{},
		usuarios:    map[string]entity.Usuario{},
		roles:       map[string]entity.Rol{},
		documentos:  map[string]entity.Documento{},
	}
}

func (d datos) clonar() datos {
	return datos{
		flores:      maps.Clone(d.flores),
		colores:     maps.Clone(d.colores),
		florColores: maps.Clone(d.florColores),
		variedades:  maps.Clone(d.variedades),
		bloques:     maps.Clone(d.bloques),
		camas:       maps.Clone(d.camas),
		lados:       maps.Clone(d.lados),
		ubicaciones: maps.Clone(d.ubicaciones),
		areas:       maps.Clone(d.areas),
		densidades:  maps.Clone(d.densidades),
		siembras:    maps.Clone(d.siembras),
		cortes:      maps.Clone(d.cortes),
		causas:      maps.Clone(d.causas),
		perdidas:    maps.Clone(d.perdidas),
		tipos:       maps.Clone(d.tipos),
		labores:     maps.Clone(d.labores),
		usuarios:    maps.Clone(d.usuarios),
		roles:       maps.Clone(d.roles),
		documentos:  maps.Clone(d.documentos),
	}
}

// Store base de datos en memoria. Los repositorios comparten su estado.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	d    datos
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: nuevosDatos()}
}

// Repos devuelve todos los repositorios transaccionales sobre el store.
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Flores:          &FlorRepo{s},
		Colores:         &ColorRepo{s},
		FlorColores:     &FlorColorRepo{s},
		Variedades:      &VariedadRepo{s},
		Bloques:         &BloqueRepo{s},
		Camas:           &CamaRepo{s},
		Lados:           &LadoRepo{s},
		BloqueCamaLados: &UbicacionRepo{s},
		Areas:           &AreaRepo{s},
		Densidades:      &DensidadRepo{s},
		Siembras:        &SiembraRepo{s},
		Cortes:          &CorteRepo{s},
		Causas:          &CausaRepo{s},
		Perdidas:        &PerdidaRepo{s},
	}
}

// Run ejecuta fn en exclusión mutua; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	copia := s.d.clonar()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.d = copia
		s.mu.Unlock()
		return err
	}
	return nil
}

// leer ejecuta f con el store bloqueado.
func (s *Store) leer(f func(d *datos)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.d)
}

func (s *Store) escribir(f func(d *datos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(&s.d)
}

// obtener devuelve una copia del valor o nil.
func obtener[T any](m map[string]T, id string) *T {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}
