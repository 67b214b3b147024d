// Where: cli/internal/commands/error_helpers.go
// What: Shared CLI error output.
// Why: Keep failure lines identical across commands so the orchestrator can relay them.
package commands

import (
	"fmt"
	"io"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	plainUI(out).Warn(fmt.Sprintf("✗ %v", err))
	return 1
}
