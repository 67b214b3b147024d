// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep plugin identity and fixed literals in one place.
package meta

const (
	// Project Identity
	Slug      = "slsdart"
	LogPrefix = "dart"

	// Runtime Identity
	Runtime           = "dart"
	ProvidedRuntime   = "provided.al2"
	SupportedProvider = "aws"

	// Directory Layout
	ConfigDir    = "slsdart"
	BuildDir     = "target"
	DefaultStage = "dev"
	ManifestFile = "serverless.yml"

	// Container Layout
	SourceMount = "/app"
	TargetMount = "/target"
	BinaryName  = "bootstrap"
	ArchiveExt  = ".zip"
)
