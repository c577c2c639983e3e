package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DingxDon/Task-Automate/internal/app"
	"github.com/DingxDon/Task-Automate/internal/domain"
)

func newAskCommand(container *app.Container) *cobra.Command {
	var (
		attachPath string
		attachMIME string
		stream     bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question; the answer is printed, nothing is executed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.GenerationRequest{
				Instruction: strings.Join(args, " "),
				Mode:        domain.ModeQA,
			}
			if err := loadAttachment(&req, attachPath, attachMIME); err != nil {
				return err
			}

			report, err := runPipeline(cmd, container, req, stream)
			if err != nil {
				return err
			}
			if !stream {
				fmt.Println(strings.TrimSpace(report.Generation.RawText))
			}
			fmt.Printf("\n(answered in %s)\n", report.Generation.Elapsed.Round(10*time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&attachPath, "attach", "f", "", "Attach a file to forward with the question")
	cmd.Flags().StringVar(&attachMIME, "attach-mime", "", "MIME type of the attachment")
	cmd.Flags().BoolVar(&stream, "stream", true, "Print the answer incrementally while it streams")

	return cmd
}
