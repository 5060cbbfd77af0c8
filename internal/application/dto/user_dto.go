package dto

import "time"

// CreateUsuarioRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUsuarioRequest struct {
	Nombre1     string  `json:"nombre_1" validate:"required,max=50"`
	Nombre2     string  `json:"nombre_2"`
	Apellido1   string  `json:"apellido_1" validate:"required,max=50"`
	Apellido2   string  `json:"apellido_2"`
	Cargo       string  `json:"cargo"`
	NumDoc      string  `json:"num_doc"`
	DocumentoID *string `json:"documento_id" validate:"omitempty,uuid"`
	Username    string  `json:"username" validate:"required,min=3,max=50"`
	Password    string  `json:"password" validate:"required,min=8"`
	Rol         string  `json:"rol" validate:"required"`
}

// UpdateUsuarioRequest entrada para editar un usuario; campos nil no cambian.
type UpdateUsuarioRequest struct {
	Nombre1   *string `json:"nombre_1"`
	Nombre2   *string `json:"nombre_2"`
	Apellido1 *string `json:"apellido_1"`
	Apellido2 *string `json:"apellido_2"`
	Cargo     *string `json:"cargo"`
	NumDoc    *string `json:"num_doc"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	Rol       *string `json:"rol"`
	Activo    *bool   `json:"activo"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	NombreCompleto string    `json:"nombre_completo"`
	Nombre1        string    `json:"nombre_1"`
	Nombre2        string    `json:"nombre_2"`
	Apellido1      string    `json:"apellido_1"`
	Apellido2      string    `json:"apellido_2"`
	Cargo          string    `json:"cargo"`
	NumDoc         string    `json:"num_doc"`
	Rol            string    `json:"rol"`
	Permisos       []string  `json:"permisos"`
	Activo         bool      `json:"activo"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UsuarioListResponse lista paginada de usuarios.
type UsuarioListResponse struct {
	Items []UsuarioResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// RolResponse salida de un rol con sus permisos.
type RolResponse struct {
	ID          string   `json:"id"`
	Nombre      string   `json:"nombre"`
	Descripcion string   `json:"descripcion"`
	Permisos    []string `json:"permisos"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
