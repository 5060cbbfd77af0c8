package produccion

// ventanaPrediccion días de tolerancia al comparar cortes de otras siembras.
const ventanaPrediccion = 5

// Referencia es un corte de otra siembra de la misma variedad.
type Referencia struct {
	DiasDesdeSiembra int
	Indice           float64
}

// Prediccion compara el índice de un corte con cortes históricos en días similares.
type Prediccion struct {
	IndiceActual   float64 `json:"indice_actual"`
	IndicePromedio float64 `json:"indice_promedio"`
	IndiceMaximo   float64 `json:"indice_maximo"`
	IndiceMinimo   float64 `json:"indice_minimo"`
	Diferencia     float64 `json:"diferencia"`
	NumReferencias int     `json:"num_referencias"`
}

// Predecir usa las referencias dentro de ±5 días del corte; nil si no hay ninguna.
func Predecir(indiceActual float64, dias int, refs []Referencia) *Prediccion {
	var suma float64
	var n int
	var minI, maxI float64
	for _, r := range refs {
		d := r.DiasDesdeSiembra - dias
		if d < -ventanaPrediccion || d > ventanaPrediccion {
			continue
		}
		if n == 0 || r.Indice < minI {
			minI = r.Indice
		}
		if n == 0 || r.Indice > maxI {
			maxI = r.Indice
		}
		suma += r.Indice
		n++
	}
	if n == 0 {
		return nil
	}
	prom := suma / float64(n)
	return &Prediccion{
		IndiceActual:   indiceActual,
		IndicePromedio: Redondear(prom, 2),
		IndiceMaximo:   Redondear(maxI, 2),
		IndiceMinimo:   Redondear(minI, 2),
		Diferencia:     Redondear(indiceActual-prom, 2),
		NumReferencias: n,
	}
}
