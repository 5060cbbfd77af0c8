package ports

import (
	"context"

	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de BD.
type Repos struct {
	Flores          repository.FlorRepository
	Colores         repository.ColorRepository
	FlorColores     repository.FlorColorRepository
	Variedades      repository.VariedadRepository
	Bloques         repository.BloqueRepository
	Camas           repository.CamaRepository
	Lados           repository.LadoRepository
	BloqueCamaLados repository.BloqueCamaLadoRepository
	Areas           repository.AreaRepository
	Densidades      repository.DensidadRepository
	Siembras        repository.SiembraRepository
	Cortes          repository.CorteRepository
	Causas          repository.CausaRepository
	Perdidas        repository.PerdidaRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
