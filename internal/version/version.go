// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Report which plugin build compiled an artifact.
package version

import (
	"fmt"
	"runtime/debug"
)

// GetVersion returns the module version when the binary was installed from a
// tagged release, otherwise the short VCS revision ("dev" when neither is known).
func GetVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	switch {
	case revision == "":
		return "dev"
	case modified:
		return fmt.Sprintf("%s (dirty)", revision)
	default:
		return revision
	}
}
