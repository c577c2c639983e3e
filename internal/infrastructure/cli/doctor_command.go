package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DingxDon/Task-Automate/internal/app"
	"github.com/DingxDon/Task-Automate/internal/domain"
)

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment the pipeline depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.DoctorService.Run(cmd.Context())
			for _, check := range report.Checks {
				fmt.Printf("%-7s %s: %s\n", marker(check.Status), check.Name, check.Details)
			}
			if err != nil {
				return err
			}
			if !report.Healthy() {
				return errors.New("doctor found problems")
			}
			return nil
		},
	}
}

func marker(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return "[ok]"
	case domain.HealthWarn:
		return "[warn]"
	default:
		return "[error]"
	}
}
