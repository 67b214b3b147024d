// Where: cli/cmd/slsdart/main.go
// What: CLI entrypoint.
// Why: Execute slsdart commands with configured dependencies.
package main

import (
	"os"

	"github.com/poruru/sls-dart/cli/internal/commands"
)

func main() {
	deps, closer := buildDependencies()
	code := commands.Run(os.Args[1:], deps)
	if closer != nil {
		_ = closer.Close()
	}
	os.Exit(code)
}
