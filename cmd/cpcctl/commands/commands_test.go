package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ejecutar(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestComandosRegistrados(t *testing.T) {
	nombres := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		nombres[c.Name()] = true
	}
	for _, n := range []string{"migrate", "crear-admin", "importar", "exportar"} {
		assert.True(t, nombres[n], n)
	}
}

func TestArgumentosInvalidos(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"exportar tipo desconocido", []string{"exportar", "ventas"}},
		{"exportar sin tipo", []string{"exportar"}},
		{"importar sin archivo", []string{"importar", "causas"}},
		{"importar archivo inexistente", []string{"importar", "causas", "/no/existe/causas.csv"}},
		{"crear-admin password corto", []string{"crear-admin", "--password", "corta"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ejecutar(t, tc.args...)
			require.Error(t, err)
		})
	}
}

func TestAyuda(t *testing.T) {
	out, err := ejecutar(t, "importar", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--solo-validar")
}
