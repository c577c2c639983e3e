package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DingxDon/Task-Automate/internal/app"
)

func newScriptsCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scripts",
		Short: "Manage the saved script library",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved scripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := container.Scripts.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No scripts saved yet.")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [name]",
		Short: "Print a saved script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := container.Scripts.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Print(body)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save [name] [file]",
		Short: "Save a script file into the library (reads stdin when no file is given)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body []byte
			var err error
			if len(args) == 2 {
				body, err = os.ReadFile(args[1])
			} else {
				body, err = os.ReadFile("/dev/stdin")
			}
			if err != nil {
				return err
			}
			if err := container.Scripts.Save(args[0], string(body)); err != nil {
				return err
			}
			fmt.Printf("Saved %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a saved script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Scripts.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "exec [name]",
		Short: "Run a saved script, installing its dependencies first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := container.Scripts.Load(args[0])
			if err != nil {
				return err
			}
			report, runErr := container.Offline().RunScript(cmd.Context(), args[0], body)
			if report != nil {
				RenderReport(report, nil)
			}
			return runErr
		},
	})

	return cmd
}
