package importacion

import (
	"fmt"
	"strings"

	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// procesarFila importa una fila; nuevo indica si se creó el registro principal.
type procesarFila func(celdas []string) (nuevo bool, err error)

// preparador valida los encabezados y devuelve el procesador de filas del tipo.
type preparador func(c *catalogo, h *Hoja, usuarioID string) (procesarFila, error)

var importadores = map[string]preparador{
	TipoVariedades: prepararVariedades,
	TipoBloques:    prepararBloques,
	TipoCausas:     prepararCausas,
	TipoHistorico:  prepararHistorico,
}

// columnas indexa los encabezados normalizados y exige las columnas requeridas.
func columnas(h *Hoja, requeridas ...string) (map[string]int, error) {
	idx := make(map[string]int, len(h.Encabezados))
	for i, e := range h.Encabezados {
		nombre := entity.NormalizarNombre(e)
		if _, ok := idx[nombre]; !ok && nombre != "" {
			idx[nombre] = i
		}
	}
	var faltantes []string
	for _, r := range requeridas {
		if _, ok := idx[r]; !ok {
			faltantes = append(faltantes, r)
		}
	}
	if len(faltantes) > 0 {
		return nil, fmt.Errorf("%w: columnas requeridas faltantes: %s", domain.ErrInvalidInput, strings.Join(faltantes, ", "))
	}
	return idx, nil
}

// celda devuelve el valor recortado de la columna i, o vacío si la fila es más corta.
func celda(celdas []string, i int) string {
	if i < 0 || i >= len(celdas) {
		return ""
	}
	return strings.TrimSpace(celdas[i])
}

// ── Variedades ──────────────────────────────────────────────────────────────

func prepararVariedades(c *catalogo, h *Hoja, _ string) (procesarFila, error) {
	col, err := columnas(h, "FLOR", "COLOR", "VARIEDAD")
	if err != nil {
		return nil, err
	}
	return func(celdas []string) (bool, error) {
		flor := entity.NormalizarNombre(celda(celdas, col["FLOR"]))
		color := entity.NormalizarNombre(celda(celdas, col["COLOR"]))
		variedad := entity.NormalizarNombre(celda(celdas, col["VARIEDAD"]))
		if flor == "" || color == "" || variedad == "" {
			return false, filaInvalida("valores faltantes: flor, color y variedad son obligatorios")
		}
		_, nueva, err := c.variedad(flor, color, variedad)
		return nueva, err
	}, nil
}

// ── Bloques ─────────────────────────────────────────────────────────────────

// prepararBloques conserva el texto de bloque y cama tal cual (ceros a la izquierda incluidos).
func prepararBloques(c *catalogo, h *Hoja, _ string) (procesarFila, error) {
	col, err := columnas(h, "BLOQUE", "CAMA")
	if err != nil {
		return nil, err
	}
	iLado, conLado := col["LADO"]
	return func(celdas []string) (bool, error) {
		bloque := entity.NormalizarNombre(celda(celdas, col["BLOQUE"]))
		cama := entity.NormalizarNombre(celda(celdas, col["CAMA"]))
		if bloque == "" || cama == "" {
			return false, filaInvalida("bloque y cama son obligatorios")
		}
		lado := entity.LadoUnico
		if conLado {
			if l := entity.NormalizarNombre(celda(celdas, iLado)); l != "" {
				lado = l
			}
		}
		_, nueva, err := c.ubicacion(bloque, cama, lado)
		return nueva, err
	}, nil
}

// ── Causas ──────────────────────────────────────────────────────────────────

// prepararCausas usa la primera columna cuyo encabezado mencione causa o pérdida, o la primera columna.
func prepararCausas(c *catalogo, h *Hoja, _ string) (procesarFila, error) {
	iCausa := 0
	for i, e := range h.Encabezados {
		n := strings.ToLower(e)
		if strings.Contains(n, "causa") || strings.Contains(n, "perdida") || strings.Contains(n, "pérdida") {
			iCausa = i
			break
		}
	}
	return func(celdas []string) (bool, error) {
		nombre := entity.NormalizarNombre(celda(celdas, iCausa))
		if nombre == "" {
			return false, filaInvalida("nombre de causa vacío")
		}
		_, nueva, err := c.causa(nombre, "", false)
		return nueva, err
	}, nil
}
