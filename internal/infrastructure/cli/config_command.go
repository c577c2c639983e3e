package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DingxDon/Task-Automate/internal/app"
)

func newConfigCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("# %s\n", container.ConfigLoader.Path())
			raw, err := yaml.Marshal(container.Config)
			if err != nil {
				return err
			}
			fmt.Print(string(raw))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-shortcut [action] [binding]",
		Short: "Persist a keyboard binding for the desktop front end",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigLoader.Load(cmd.Context())
			if err != nil {
				return err
			}
			cfg.SetShortcut(args[0], args[1])
			if err := container.ConfigLoader.Save(cmd.Context(), cfg); err != nil {
				return err
			}
			fmt.Printf("Bound %s to %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
