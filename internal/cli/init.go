package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fmrd/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize fmrd storage",
		Long:  "Create the configuration and data directories, then create the schema and seed the built-in catalogs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.attachBackend(cmd.Context())
			if err != nil {
				return err
			}
			cfg, err := a.backendConfig()
			if err != nil {
				b.Detach()
				return sysError(err)
			}
			if err := b.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "fmrd initialized successfully")
			fmt.Fprintln(out, "  config: ", a.configDir)
			if cfg.Backend == types.BackendPostgres {
				fmt.Fprintln(out, "  backend:", cfg.Backend)
			} else {
				fmt.Fprintln(out, "  data:   ", cfg.DataDir)
			}
			return nil
		},
	}
}
