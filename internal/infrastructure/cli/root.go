// Package cli exposes the pipeline through a cobra command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/DingxDon/Task-Automate/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. A bare invocation with arguments
// behaves like `taskauto run`.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	runCmd := newRunCommand(container)

	root := &cobra.Command{
		Use:   "taskauto [instruction]",
		Short: "Task-Automate - run natural-language automations",
		Long:  "Task-Automate turns a natural-language instruction into a Python script, installs its dependencies and runs it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			runCmd.SetArgs(args)
			return runCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(runCmd)
	root.AddCommand(newAskCommand(container))
	root.AddCommand(newWebDevCommand(container))
	root.AddCommand(newScriptsCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newStatsCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newConfigCommand(container))
	return root, nil
}
