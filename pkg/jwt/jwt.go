package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role y Permisos viajan en el token para que el middleware decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Role     string   `json:"role"` // "admin" | "operador" | "consulta"
	Permisos []string `json:"permisos,omitempty"`
}

// Identidad datos del usuario que se firman en el token.
type Identidad struct {
	UserID   string
	Username string
	Role     string
	Permisos []string
}

// Generate genera un token JWT HS256 firmado con la identidad del usuario.
func Generate(secret, issuer string, expMinutes int, id Identidad) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   id.UserID,
		Username: id.Username,
		Role:     id.Role,
		Permisos: id.Permisos,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad firmada.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Identidad, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Identidad{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		Permisos: claims.Permisos,
	}, nil
}
