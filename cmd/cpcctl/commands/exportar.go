package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/jhoicas/cpc-api/internal/infrastructure/chart"
	"github.com/jhoicas/cpc-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cpc-api/internal/infrastructure/spreadsheet"
	"github.com/spf13/cobra"
)

var exportDir string

var exportarCmd = &cobra.Command{
	Use:       "exportar <siembras|cortes>",
	Short:     "Exportar siembras o cortes a Excel",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{reportes.ExportSiembras, reportes.ExportCortes},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := conectar(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		tmp, err := os.CreateTemp(exportDir, "export-*.xlsx")
		if err != nil {
			return err
		}
		defer os.Remove(tmp.Name())

		uc := reportes.NewReporteUseCase(postgres.NewReporteRepository(env.pool), chart.NewRenderer(), spreadsheet.NewWriter())
		nombre, err := uc.Exportar(ctx, args[0], tmp)
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}

		destino := filepath.Join(exportDir, nombre)
		if err := os.Rename(tmp.Name(), destino); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), destino)
		return nil
	},
}

func init() {
	exportarCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "directorio de salida")
	rootCmd.AddCommand(exportarCmd)
}
