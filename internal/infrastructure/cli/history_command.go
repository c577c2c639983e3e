package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DingxDon/Task-Automate/internal/app"
	"github.com/DingxDon/Task-Automate/internal/domain"
)

func newHistoryCommand(container *app.Container) *cobra.Command {
	var (
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				return errors.New("run history is unavailable")
			}
			records, err := container.History.Records(limit, search)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("%s  [%s]  %s\n", rec.Timestamp.Format(time.RFC3339), rec.Mode, rec.Instruction)
				fmt.Printf("    %s\n", summarize(rec))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultHistoryLimit, "Maximum records to show")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Filter by instruction or code substring")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				return errors.New("run history is unavailable")
			}
			return container.History.Clear()
		},
	})

	return cmd
}

func summarize(rec domain.RunRecord) string {
	switch {
	case rec.InstallFailed:
		return "install failed, execution skipped"
	case rec.Executed && rec.Succeeded:
		return fmt.Sprintf("executed in %dms", rec.ExecutionMS)
	case rec.Executed:
		return fmt.Sprintf("faulted after %dms: %s", rec.ExecutionMS, rec.Fault)
	default:
		return fmt.Sprintf("generated in %dms", rec.GenerationMS)
	}
}
