package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DingxDon/Task-Automate/internal/app"
	"github.com/DingxDon/Task-Automate/internal/domain"
)

func newWebDevCommand(container *app.Container) *cobra.Command {
	var stream bool

	cmd := &cobra.Command{
		Use:   "webdev [description]",
		Short: "Generate a single-file web page and save it to the script library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.GenerationRequest{
				Instruction: strings.Join(args, " "),
				Mode:        domain.ModeWebDev,
			}
			report, err := runPipeline(cmd, container, req, stream)
			if err != nil {
				return err
			}
			fmt.Printf("Page saved as %s\n", filepath.Join(container.Pages.Root(), report.SavedAs+".html"))
			fmt.Printf("Generated in %s\n", report.Generation.Elapsed.Round(roundTo))
			return nil
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "Print model output incrementally while it streams")
	return cmd
}
