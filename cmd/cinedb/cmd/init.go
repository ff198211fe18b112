package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/cinedb/pkg/config"
	"github.com/ssargent/cinedb/pkg/storage"
)

func newInitCmd(app *cli) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with a generated API key",
		Long: `Write a cinedb config file for local use.

This command will:
- Create the config directory
- Generate an API key for the REST server
- Record the data directory and storage backend

Examples:
  cinedb init
  cinedb init --data-dir=./data --backend=sqlite
  cinedb init --config=./cinedb.yaml --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.configPath
			if path == "" {
				path = config.GetDefaultConfigPath()
			}

			if config.ConfigExists(path) && !force {
				app.say(cmd, "Config already exists at %s. Use --force to overwrite.\n", path)
				return nil
			}

			setBackend := cmd.Flags().Changed("backend")
			if setBackend {
				switch app.backend {
				case storage.BackendPebble, storage.BackendSQLite, storage.BackendMemory:
				default:
					return fmt.Errorf("unknown storage backend %q", app.backend)
				}
			}

			cfg, err := config.BootstrapConfig(path, app.dataDir)
			if err != nil {
				return err
			}
			if setBackend {
				cfg.Storage.Backend = app.backend
				if err := config.SaveConfig(cfg, path); err != nil {
					return err
				}
			}

			app.say(cmd, "Config written to %s\n", path)
			app.say(cmd, "Data directory: %s\n", cfg.DataDir)
			app.say(cmd, "Storage backend: %s\n", cfg.Storage.Backend)
			fmt.Fprintf(cmd.OutOrStdout(), "API key: %s\n", cfg.Security.APIKey)
			app.say(cmd, "\nYou can now start the server with:\n  cinedb serve --config=%s\n", path)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return initCmd
}
