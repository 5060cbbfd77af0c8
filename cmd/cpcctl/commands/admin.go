package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
	adminNombre   string
	adminApellido string
)

var crearAdminCmd = &cobra.Command{
	Use:   "crear-admin",
	Short: "Crear un usuario administrador",
	Long: `Crea un usuario con rol admin. Requiere las migraciones aplicadas (roles sembrados).

Ejemplo:
  cpcctl crear-admin --username admin --password 'clave-larga' --nombre Ana --apellido Ruiz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(adminPassword) < 8 {
			return fmt.Errorf("--password debe tener al menos 8 caracteres")
		}
		ctx := cmd.Context()
		env, err := conectar(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		uc := usecase.NewUsuarioUseCase(postgres.NewUsuarioRepository(env.pool), postgres.NewRolRepository(env.pool))
		u, err := uc.Create(ctx, dto.CreateUsuarioRequest{
			Nombre1:   adminNombre,
			Apellido1: adminApellido,
			Username:  adminUsername,
			Password:  adminPassword,
			Rol:       entity.RolAdmin,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("el usuario %q ya existe", adminUsername)
		}
		if err != nil {
			return err
		}
		env.log.Info().Str("usuario_id", u.ID).Str("username", u.Username).Msg("administrador creado")

		if jsonOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(u)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (%s)\n", u.Username, u.ID)
		return nil
	},
}

func init() {
	crearAdminCmd.Flags().StringVar(&adminUsername, "username", "admin", "nombre de usuario")
	crearAdminCmd.Flags().StringVar(&adminPassword, "password", "", "contraseña (mínimo 8 caracteres)")
	crearAdminCmd.Flags().StringVar(&adminNombre, "nombre", "Administrador", "primer nombre")
	crearAdminCmd.Flags().StringVar(&adminApellido, "apellido", "Sistema", "primer apellido")
	_ = crearAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(crearAdminCmd)
}
