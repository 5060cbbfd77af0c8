package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrSiembraInactiva = errors.New("la siembra no está activa")
	ErrSinInicioCorte  = errors.New("la siembra no tiene fecha de inicio de corte")
	ErrExcedePlantas   = errors.New("la cantidad excede las plantas disponibles de la siembra")
	ErrFechaInvalida   = errors.New("fecha fuera del rango permitido")
	ErrEnUso           = errors.New("el recurso tiene registros asociados")
)
