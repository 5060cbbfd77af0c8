package jwt_test

import (
	"testing"

	"github.com/jhoicas/cpc-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretPrueba = "secreto-de-prueba"

func TestGenerateParse_ConservaIdentidad(t *testing.T) {
	in := jwt.Identidad{
		UserID:   "u-1",
		Username: "operador1",
		Role:     "operador",
		Permisos: []string{"importar_datos", "ver_reportes"},
	}
	token, err := jwt.Generate(secretPrueba, "cpc-api", 60, in)
	require.NoError(t, err)

	out, err := jwt.Parse(secretPrueba, token)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := jwt.Generate(secretPrueba, "cpc-api", 60, jwt.Identidad{UserID: "u-1", Role: "admin"})
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(secretPrueba, "cpc-api", -1, jwt.Identidad{UserID: "u-1", Role: "admin"})
	require.NoError(t, err)

	_, err = jwt.Parse(secretPrueba, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "cpc-api", 60, jwt.Identidad{UserID: "u-1"})
	assert.Error(t, err)
}
