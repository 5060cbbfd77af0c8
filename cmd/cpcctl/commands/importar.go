package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/importacion"
	"github.com/jhoicas/cpc-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cpc-api/internal/infrastructure/spreadsheet"
	"github.com/spf13/cobra"
)

var (
	importUsuario     string
	importSoloValidar bool
)

var importarCmd = &cobra.Command{
	Use:   "importar <tipo> <archivo>",
	Short: "Importar un archivo CSV o XLSX",
	Long: `Importa variedades, bloques, causas o el histórico de siembras.
Todo el archivo corre en una transacción; con --solo-validar nada se guarda.

Ejemplos:
  cpcctl importar variedades variedades.xlsx
  cpcctl importar historico historico.csv --usuario admin --solo-validar`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tipo, ruta := args[0], args[1]
		f, err := os.Open(ruta)
		if err != nil {
			return err
		}
		defer f.Close()

		ctx := cmd.Context()
		env, err := conectar(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var usuarioID string
		if importUsuario != "" {
			u, err := postgres.NewUsuarioRepository(env.pool).GetByUsername(ctx, strings.ToLower(importUsuario))
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("usuario %q no existe", importUsuario)
			}
			usuarioID = u.ID
		}

		uc := importacion.NewImportUseCase(postgres.NewTxRunner(env.pool), spreadsheet.NewReader(), env.log)
		res, err := uc.Importar(ctx, importacion.Solicitud{
			Tipo:        tipo,
			Archivo:     filepath.Base(ruta),
			Datos:       f,
			SoloValidar: importSoloValidar,
			UsuarioID:   usuarioID,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		imprimirResultado(cmd, res)
		return nil
	},
}

func imprimirResultado(cmd *cobra.Command, res *dto.ImportResultado) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Tipo:\t%s\n", res.Tipo)
	fmt.Fprintf(w, "Filas:\t%d\n", res.Filas)
	fmt.Fprintf(w, "Nuevos:\t%d\n", res.Nuevos)
	fmt.Fprintf(w, "Existentes:\t%d\n", res.Existentes)
	fmt.Fprintf(w, "Errores:\t%d\n", len(res.Errores))
	for k, v := range res.Creados {
		fmt.Fprintf(w, "Creados %s:\t%d\n", k, v)
	}
	fmt.Fprintf(w, "Confirmado:\t%t\n", res.Confirmado)
	_ = w.Flush()

	for _, e := range res.Errores {
		fmt.Fprintf(cmd.OutOrStdout(), "  fila %d: %s\n", e.Fila, e.Mensaje)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Mensaje)
}

func init() {
	importarCmd.Flags().StringVar(&importUsuario, "usuario", "", "username que queda como autor de los registros")
	importarCmd.Flags().BoolVar(&importSoloValidar, "solo-validar", false, "validar sin guardar")
	rootCmd.AddCommand(importarCmd)
}
