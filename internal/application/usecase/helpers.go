package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
)

// requerir convierte el nil de los repositorios en ErrNotFound.
func requerir[T any](v *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func invalido(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func parseFecha(s string) (time.Time, error) {
	t, err := dto.ParseFecha(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return t, nil
}

func parseFechaOpcional(s string) (*time.Time, error) {
	t, err := dto.ParseFechaOpcional(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return t, nil
}
