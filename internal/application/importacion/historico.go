package importacion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// Columnas fijas del archivo histórico (índices 0-based).
const (
	colBloque           = 0
	colCama             = 1
	colFlor             = 2
	colColor            = 3
	colVariedad         = 4
	colFechaSiembra     = 5
	colArea             = 6
	colDensidad         = 7
	colFechaInicioCorte = 8
	colFechaFinCorte    = 9
	colPrimerCorte      = 10
	colPrimeraPerdida   = 25
)

const (
	maxCortesHistorico   = 15
	maxPerdidasHistorico = 5
)

// Estimación de fechas (días) cuando el archivo no las trae.
const (
	diasPrimerCorte    = 65
	diasEntreCortes    = 7
	diasPrimeraPerdida = 45
	diasEntrePerdidas  = 10
)

// serialExcelMinimo es 1970-01-01; valores menores no se interpretan como fecha.
const serialExcelMinimo = 25569

// CausasPredefinidas causas que el histórico garantiza antes de procesar filas.
var CausasPredefinidas = []string{
	"DELGADOS", "TORCIDOS", "TRES PUNTOS", "RAMIFICADO", "DAÑO MECÁNICO",
	"CORTO", "ÁCAROS", "TRIPS", "PSEUDOMONAS", "DEFORMIDAD", "OTROS",
}

var origenExcel = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var layoutsFecha = []string{"2006-01-02", "02/01/2006", "01/02/2006", "2006-01-02 15:04:05", "2/1/2006"}

// prepararHistorico importa siembras finalizadas con sus cortes (1 a 15) y pérdidas (hasta 5 ternas
// cantidad, causa, fecha). Una siembra se identifica por ubicación, variedad y fecha de siembra;
// si ya existe solo se agregan los cortes que falten.
func prepararHistorico(c *catalogo, h *Hoja, usuarioID string) (procesarFila, error) {
	if len(h.Encabezados) < colPrimerCorte {
		return nil, fmt.Errorf("%w: el histórico requiere al menos %d columnas (bloque a fin de corte)", domain.ErrInvalidInput, colPrimerCorte)
	}
	for _, nombre := range CausasPredefinidas {
		if _, _, err := c.causa(nombre, "", true); err != nil {
			return nil, err
		}
	}

	return func(celdas []string) (bool, error) {
		bloque := entity.NormalizarNombre(celda(celdas, colBloque))
		cama := entity.NormalizarNombre(celda(celdas, colCama))
		flor := entity.NormalizarNombre(celda(celdas, colFlor))
		color := entity.NormalizarNombre(celda(celdas, colColor))
		variedad := entity.NormalizarNombre(celda(celdas, colVariedad))
		if bloque == "" || cama == "" || flor == "" || color == "" || variedad == "" {
			return false, filaInvalida("datos básicos incompletos")
		}

		fechaSiembra, ok := parseFechaCelda(celda(celdas, colFechaSiembra))
		if !ok {
			return false, filaInvalida("fecha de siembra inválida: %q", celda(celdas, colFechaSiembra))
		}
		inicio := fechaOpcional(celda(celdas, colFechaInicioCorte))
		fin := fechaOpcional(celda(celdas, colFechaFinCorte))

		area, errA := parseNumero(celda(celdas, colArea))
		densidad, errD := parseNumero(celda(celdas, colDensidad))
		if errA != nil || errD != nil || area <= 0 || densidad <= 0 {
			return false, filaInvalida("área o densidad inválidas: %q, %q", celda(celdas, colArea), celda(celdas, colDensidad))
		}

		v, _, err := c.variedad(flor, color, variedad)
		if err != nil {
			return false, err
		}
		a, err := c.area(area)
		if err != nil {
			return false, err
		}
		d, err := c.densidad(densidad)
		if err != nil {
			return false, err
		}
		u, _, err := c.ubicacion(bloque, cama, ladoDeCama(cama))
		if err != nil {
			return false, err
		}

		s, err := c.r.Siembras.GetByClave(c.ctx, u.ID, v.ID, fechaSiembra)
		if err != nil {
			return false, err
		}
		nueva := s == nil
		if nueva {
			s = &entity.Siembra{
				ID:               uuid.New().String(),
				BloqueCamaLadoID: u.ID,
				VariedadID:       v.ID,
				AreaID:           a.ID,
				DensidadID:       d.ID,
				FechaSiembra:     fechaSiembra,
				FechaInicioCorte: inicio,
				FechaFinCorte:    fin,
				Estado:           entity.EstadoFinalizada,
				UsuarioID:        usuarioID,
				FechaRegistro:    c.ahora,
			}
			if err := c.r.Siembras.Create(c.ctx, s); err != nil {
				return false, err
			}
			c.creados[creadoSiembra]++
		}

		if err := importarCortes(c, s, celdas, usuarioID); err != nil {
			return false, err
		}
		if nueva {
			if err := importarPerdidas(c, s, celdas, usuarioID); err != nil {
				return false, err
			}
		}
		return nueva, nil
	}, nil
}

// importarCortes crea los cortes con tallos > 0 que la siembra aún no tenga. La fecha se estima
// semanalmente desde el inicio de corte, o desde el día 65 tras la siembra.
func importarCortes(c *catalogo, s *entity.Siembra, celdas []string, usuarioID string) error {
	base := s.FechaSiembra.AddDate(0, 0, diasPrimerCorte)
	if s.FechaInicioCorte != nil {
		base = *s.FechaInicioCorte
	}
	for i := range maxCortesHistorico {
		tallos := parseEntero(celda(celdas, colPrimerCorte+i))
		if tallos <= 0 {
			continue
		}
		num := i + 1
		existe, err := c.r.Cortes.ExisteNumCorte(c.ctx, s.ID, num, "")
		if err != nil {
			return err
		}
		if existe {
			continue
		}
		corte := &entity.Corte{
			ID:             uuid.New().String(),
			SiembraID:      s.ID,
			NumCorte:       num,
			FechaCorte:     base.AddDate(0, 0, i*diasEntreCortes),
			CantidadTallos: tallos,
			UsuarioID:      usuarioID,
			FechaRegistro:  c.ahora,
		}
		if err := c.r.Cortes.Create(c.ctx, corte); err != nil {
			return err
		}
		c.creados[creadoCorte]++
	}
	return nil
}

func importarPerdidas(c *catalogo, s *entity.Siembra, celdas []string, usuarioID string) error {
	for i := range maxPerdidasHistorico {
		col := colPrimeraPerdida + i*3
		cantidad := parseEntero(celda(celdas, col))
		nombre := entity.NormalizarNombre(celda(celdas, col+1))
		if cantidad <= 0 || nombre == "" {
			continue
		}
		causa, _, err := c.causa(nombre, "Causa importada: "+nombre, true)
		if err != nil {
			return err
		}
		fecha, ok := parseFechaCelda(celda(celdas, col+2))
		if !ok {
			fecha = s.FechaSiembra.AddDate(0, 0, diasPrimeraPerdida+i*diasEntrePerdidas)
		}
		p := &entity.Perdida{
			ID:            uuid.New().String(),
			SiembraID:     s.ID,
			CausaID:       causa.ID,
			Cantidad:      cantidad,
			FechaPerdida:  fecha,
			Observaciones: "Importado desde históricos",
			UsuarioID:     usuarioID,
			FechaRegistro: c.ahora,
		}
		if err := c.r.Perdidas.Create(c.ctx, p); err != nil {
			return err
		}
		c.creados[creadoPerdida]++
	}
	return nil
}

// ladoHistorico es el lado de las camas del histórico que no traen letra.
const ladoHistorico = "A"

// ladoDeCama toma la letra final de camas como "55B"; sin letra el lado es A.
func ladoDeCama(cama string) string {
	r := []rune(cama)
	if len(r) > 1 && unicode.IsLetter(r[len(r)-1]) && !unicode.IsLetter(r[len(r)-2]) {
		return string(r[len(r)-1])
	}
	return ladoHistorico
}

// parseFechaCelda acepta YYYY-MM-DD, DD/MM/YYYY, MM/DD/YYYY y seriales de Excel.
func parseFechaCelda(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layoutsFecha {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && n > serialExcelMinimo {
		return origenExcel.AddDate(0, 0, int(math.Floor(n))), true
	}
	return time.Time{}, false
}

func fechaOpcional(s string) *time.Time {
	t, ok := parseFechaCelda(s)
	if !ok {
		return nil
	}
	return &t
}

// parseNumero acepta coma o punto decimal.
func parseNumero(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	return strconv.ParseFloat(s, 64)
}

// parseEntero trunca números decimales y devuelve 0 para celdas vacías o inválidas.
func parseEntero(s string) int {
	if s == "" {
		return 0
	}
	n, err := parseNumero(s)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int(n)
}
