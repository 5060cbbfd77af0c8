package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/cpc-api/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplicar migraciones pendientes",
	Long: `Aplica en orden las migraciones SQL embebidas que no estén en schema_migrations.
Es idempotente: volver a ejecutarlo sin migraciones nuevas no cambia nada.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := conectar(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		aplicadas, err := postgres.Migrate(ctx, env.pool)
		if err != nil {
			return err
		}
		env.log.Info().Strs("versiones", aplicadas).Msg("migraciones aplicadas")

		out := cmd.OutOrStdout()
		if jsonOutput {
			return json.NewEncoder(out).Encode(map[string]any{"aplicadas": aplicadas})
		}
		if len(aplicadas) == 0 {
			fmt.Fprintln(out, "sin migraciones pendientes")
			return nil
		}
		for _, v := range aplicadas {
			fmt.Fprintf(out, "aplicada %s\n", v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
