package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

const roundTo = 10 * time.Millisecond

// RenderReport prints a pipeline report in a plain, ASCII-only format.
// Elapsed time is shown even when execution faulted.
func RenderReport(report *domain.RunReport, limiter ports.RateLimiter) {
	fmt.Printf("Instruction: %s\n", report.Instruction)
	fmt.Printf("Generated in %s\n", report.Generation.Elapsed.Round(roundTo))

	if report.Generation.ExtractedCode != "" {
		fmt.Println("\nGenerated script:")
		fmt.Println(report.Generation.ExtractedCode)
	}

	if len(report.Dependencies) > 0 {
		fmt.Println("Dependencies:")
		for _, name := range sortedModules(report.Installs) {
			result := report.Installs[name]
			switch result.Status {
			case domain.StatusAlreadyPresent:
				fmt.Printf("  %s: already present\n", name)
			case domain.StatusInstalled:
				fmt.Printf("  %s: installed\n", name)
			case domain.StatusFailed:
				fmt.Printf("  %s: FAILED (%s)\n", name, result.Reason)
			}
		}
	}

	if report.Execution != nil {
		if report.Execution.Succeeded {
			fmt.Println("\nScript executed successfully.")
		} else {
			fmt.Printf("\nScript failed: %s\n", report.Execution.Fault)
		}
		if report.Execution.Stdout != "" {
			fmt.Println("\nstdout:")
			fmt.Print(report.Execution.Stdout)
		}
		if report.Execution.Stderr != "" {
			fmt.Println("\nstderr:")
			fmt.Print(report.Execution.Stderr)
		}
		fmt.Printf("\nExecution time: %s\n", report.Execution.Duration.Round(roundTo))
	}

	if limiter != nil {
		fmt.Printf("\nRequests this minute: %d/%d (lifetime %d)\n",
			limiter.CurrentLoad(), limiter.Limit(), limiter.TotalCount())
	}
}

func sortedModules(outcome domain.InstallOutcome) []string {
	names := make([]string, 0, len(outcome))
	for name := range outcome {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
