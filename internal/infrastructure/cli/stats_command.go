package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DingxDon/Task-Automate/internal/app"
)

func newStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the request budget and run statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Request budget: %d per minute (advisory)\n", container.Limiter.Limit())
			fmt.Printf("This session: %d in window, %d lifetime\n",
				container.Limiter.CurrentLoad(), container.Limiter.TotalCount())

			if container.History == nil {
				return nil
			}
			records, err := container.History.Records(0, "")
			if err != nil {
				return err
			}
			var executed, succeeded, installFailed int
			for _, rec := range records {
				if rec.InstallFailed {
					installFailed++
				}
				if rec.Executed {
					executed++
					if rec.Succeeded {
						succeeded++
					}
				}
			}
			fmt.Printf("\nRecorded runs: %d\n", len(records))
			fmt.Printf("Executed: %d (succeeded %d)\n", executed, succeeded)
			fmt.Printf("Aborted by failed installs: %d\n", installFailed)
			return nil
		},
	}
}
