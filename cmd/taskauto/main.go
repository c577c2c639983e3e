package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/DingxDon/Task-Automate/internal/infrastructure/cli"
)

func main() {
	// A .env next to the binary may carry GEMINI_API_KEY; absence is fine.
	_ = godotenv.Load()

	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	value := os.Getenv("TASKAUTO_DEBUG")
	return strings.EqualFold(value, "1") || strings.EqualFold(value, "true")
}
