package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DingxDon/Task-Automate/internal/app"
	"github.com/DingxDon/Task-Automate/internal/domain"
)

func newRunCommand(container *app.Container) *cobra.Command {
	var (
		attachPath string
		attachMIME string
		saveAs     string
		stream     bool
	)

	cmd := &cobra.Command{
		Use:   "run [instruction]",
		Short: "Generate a Python script from an instruction, install its dependencies and run it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.GenerationRequest{
				Instruction: strings.Join(args, " "),
				Mode:        domain.ModeAutomation,
			}
			if err := loadAttachment(&req, attachPath, attachMIME); err != nil {
				return err
			}

			report, err := runPipeline(cmd, container, req, stream)
			if report != nil {
				RenderReport(report, container.Limiter)
			}
			if err != nil {
				return err
			}
			if saveAs != "" && report.Generation.ExtractedCode != "" {
				if err := container.Scripts.Save(saveAs, report.Generation.ExtractedCode); err != nil {
					return err
				}
				fmt.Printf("Saved script %q to %s\n", saveAs, container.Scripts.Root())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&attachPath, "attach", "f", "", "Attach a file to forward with the prompt")
	cmd.Flags().StringVar(&attachMIME, "attach-mime", "", "MIME type of the attachment (detected from extension when empty)")
	cmd.Flags().StringVarP(&saveAs, "save", "s", "", "Save the generated script under this name")
	cmd.Flags().BoolVar(&stream, "stream", false, "Print model output incrementally while it streams")

	return cmd
}

// runPipeline dials the generation service, starts one pipeline invocation
// on its worker and consumes the event channel on this goroutine, which owns
// all terminal output.
func runPipeline(cmd *cobra.Command, container *app.Container, req domain.GenerationRequest, stream bool) (*domain.RunReport, error) {
	svc, closeClient, err := container.Pipeline(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer closeClient()

	progress := newProgressLine(os.Stderr)
	defer progress.Finish()

	var report *domain.RunReport
	var runErr error
	for ev := range svc.Start(cmd.Context(), req) {
		switch ev.Kind {
		case domain.EventStatus:
			progress.Update(ev.Status, ev.Progress)
		case domain.EventChunk:
			if stream {
				progress.Finish()
				fmt.Print(ev.Chunk)
			}
		case domain.EventDone:
			report = ev.Report
		case domain.EventError:
			report = ev.Report
			runErr = ev.Err
		}
	}
	if stream {
		fmt.Println()
	}
	return report, runErr
}

func loadAttachment(req *domain.GenerationRequest, path, mime string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read attachment: %w", err)
	}
	req.Attachment = data
	req.AttachmentMIME = mime
	if req.AttachmentMIME == "" {
		req.AttachmentMIME = detectMIME(path)
	}
	return nil
}

func detectMIME(path string) string {
	switch {
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(path, ".txt"), strings.HasSuffix(path, ".csv"):
		return "text/plain"
	case strings.HasSuffix(path, ".pdf"):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
