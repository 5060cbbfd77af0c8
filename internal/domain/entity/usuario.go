package entity

import (
	"strings"
	"time"
)

// Roles conocidos.
const (
	RolAdmin    = "admin"
	RolOperador = "operador"
	RolConsulta = "consulta"
)

// Códigos de permiso.
const (
	PermisoImportarDatos       = "importar_datos"
	PermisoAdministrarUsuarios = "administrar_usuarios"
	PermisoVerReportes         = "ver_reportes"
)

// Documento tipo de documento de identidad (CC, CE, ...).
type Documento struct {
	ID        string
	Documento string
}

// Permiso autoriza una acción concreta.
type Permiso struct {
	ID          string
	Codigo      string
	Descripcion string
}

// Rol agrupa permisos.
type Rol struct {
	ID          string
	Nombre      string
	Descripcion string
	Permisos    []Permiso
}

// Usuario del sistema.
type Usuario struct {
	ID           string
	Nombre1      string
	Nombre2      string
	Apellido1    string
	Apellido2    string
	Cargo        string
	NumDoc       string
	DocumentoID  *string
	Username     string
	PasswordHash string // bcrypt
	RolID        string
	Rol          string
	Permisos     []string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NombreCompleto une nombres y apellidos no vacíos.
func (u *Usuario) NombreCompleto() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.Nombre1, u.Nombre2, u.Apellido1, u.Apellido2} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// TienePermiso indica si el usuario puede ejecutar la acción; admin siempre puede.
func (u *Usuario) TienePermiso(codigo string) bool {
	if u.Rol == RolAdmin {
		return true
	}
	for _, p := range u.Permisos {
		if p == codigo {
			return true
		}
	}
	return false
}
