package main

import (
	"os"

	"github.com/kurogetsusai/wl-ignore-mail/cmd"
	"github.com/kurogetsusai/wl-ignore-mail/internal/colors"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run executes the CLI and returns the process exit code. Structured
// startup logs are skipped for the tui command since they would tear the
// alt screen.
func run(args []string, execute func() error) int {
	if len(args) > 0 && args[0] == "tui" {
		colors.DisableStructuredLogging()
	}

	colors.StructuredInfo("startup", "main", "started", nil, "", nil)
	if err := execute(); err != nil {
		colors.StructuredError("startup", "main", "failed", err, "", nil)
		colors.Error(err.Error())
		return 1
	}
	colors.StructuredInfo("startup", "main", "completed", nil, "", nil)
	return 0
}
