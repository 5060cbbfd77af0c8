package importacion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/ports"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/pkg/logger"
)

// Tipos de importación.
const (
	TipoVariedades = "variedades"
	TipoBloques    = "bloques"
	TipoCausas     = "causas"
	TipoHistorico  = "historico"
)

// maxErroresHistorico fracción de filas con error a partir de la cual el histórico se revierte.
const maxErroresHistorico = 0.3

// errRevertir fuerza el rollback sin que sea un fallo de la importación.
var errRevertir = errors.New("importacion: revertir")

// Solicitud archivo a importar.
type Solicitud struct {
	Tipo        string
	Archivo     string // nombre original; su extensión decide el formato
	Datos       io.Reader
	SoloValidar bool
	UsuarioID   string
}

// ImportUseCase orquesta lectura, validación y escritura transaccional de una importación.
type ImportUseCase struct {
	tx     ports.TxRunner
	reader SheetReader
	log    *logger.Logger
	now    func() time.Time
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(tx ports.TxRunner, reader SheetReader, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{
		tx:     tx,
		reader: reader,
		log:    log.Component("importacion"),
		now:    time.Now,
	}
}

// Tipos devuelve los tipos de importación soportados.
func Tipos() []string {
	return []string{TipoVariedades, TipoBloques, TipoCausas, TipoHistorico}
}

// Importar procesa el archivo fila por fila dentro de una transacción.
// Los errores de validación se reportan por fila; la transacción se revierte en modo
// solo-validar, cuando todas las filas fallan o, en el histórico, con más del 30% de errores.
func (uc *ImportUseCase) Importar(ctx context.Context, in Solicitud) (*dto.ImportResultado, error) {
	preparar, ok := importadores[in.Tipo]
	if !ok {
		return nil, fmt.Errorf("%w: tipo de importación %q no soportado", domain.ErrInvalidInput, in.Tipo)
	}
	formato := strings.ToLower(filepath.Ext(in.Archivo))
	if formato != FormatoCSV && formato != FormatoXLSX {
		return nil, fmt.Errorf("%w: formato %q no soportado, use .csv o .xlsx", domain.ErrInvalidInput, formato)
	}
	h, err := uc.reader.Read(in.Datos, formato)
	if err != nil {
		return nil, fmt.Errorf("%w: lectura del archivo: %v", domain.ErrInvalidInput, err)
	}
	if len(h.Encabezados) == 0 || contarFilas(h) == 0 {
		return nil, fmt.Errorf("%w: el archivo no tiene filas de datos", domain.ErrInvalidInput)
	}

	res := &dto.ImportResultado{
		Tipo:        in.Tipo,
		SoloValidar: in.SoloValidar,
		Errores:     []dto.ErrorFila{},
		Creados:     map[string]int{},
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		c := &catalogo{ctx: ctx, r: r, creados: res.Creados, ahora: uc.now()}
		procesar, err := preparar(c, h, in.UsuarioID)
		if err != nil {
			return err
		}
		for i, celdas := range h.Filas {
			if filaVacia(celdas) {
				continue
			}
			res.Filas++
			nuevo, err := procesar(celdas)
			var ef *errorFila
			switch {
			case errors.As(err, &ef):
				res.Errores = append(res.Errores, dto.ErrorFila{Fila: i + 1, Mensaje: ef.msg})
			case err != nil:
				return fmt.Errorf("importacion: fila %d: %w", i+1, err)
			case nuevo:
				res.Nuevos++
			default:
				res.Existentes++
			}
		}
		if demasiadosErrores(in.Tipo, len(res.Errores), res.Filas) || in.SoloValidar {
			return errRevertir
		}
		return nil
	})
	if err != nil && !errors.Is(err, errRevertir) {
		return nil, err
	}
	res.Confirmado = err == nil
	res.Mensaje = resumen(res)

	uc.log.Info().
		Str("tipo", res.Tipo).
		Bool("solo_validar", res.SoloValidar).
		Int("filas", res.Filas).
		Int("nuevos", res.Nuevos).
		Int("existentes", res.Existentes).
		Int("errores", len(res.Errores)).
		Bool("confirmado", res.Confirmado).
		Msg("importación procesada")
	return res, nil
}

func demasiadosErrores(tipo string, errores, filas int) bool {
	if tipo == TipoHistorico {
		return float64(errores) > float64(filas)*maxErroresHistorico
	}
	return errores == filas
}

func resumen(res *dto.ImportResultado) string {
	switch {
	case res.SoloValidar && len(res.Errores) < res.Filas:
		return fmt.Sprintf("Archivo validado: %d filas, %d con errores. No se guardaron cambios.", res.Filas, len(res.Errores))
	case res.SoloValidar:
		return "Archivo validado: todas las filas tienen errores."
	case !res.Confirmado:
		return fmt.Sprintf("Demasiados errores (%d de %d filas). No se importaron datos.", len(res.Errores), res.Filas)
	}
	msg := fmt.Sprintf("Importación completada. Nuevos: %d, existentes: %d", res.Nuevos, res.Existentes)
	if n := len(res.Errores); n > 0 {
		msg += fmt.Sprintf(", errores: %d", n)
	}
	return msg + "."
}

func contarFilas(h *Hoja) int {
	n := 0
	for _, f := range h.Filas {
		if !filaVacia(f) {
			n++
		}
	}
	return n
}

func filaVacia(celdas []string) bool {
	for _, c := range celdas {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// errorFila es un error de validación de una fila; no aborta la importación.
type errorFila struct{ msg string }

func (e *errorFila) Error() string { return e.msg }

func filaInvalida(format string, args ...any) error {
	return &errorFila{msg: fmt.Sprintf(format, args...)}
}
