// Package misc keeps program identity values which are set at build time.
package misc

import "fmt"

// Values below are overwritten with -ldflags "-X wse/misc.version=..." during
// release builds.
var (
	appName = "wse"
	version = "1.2.0"
	status  = "stable"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}

// GetReleaseStatus returns one of alpha, beta, rc or stable.
func GetReleaseStatus() string {
	return status
}

// GetDisplayName returns human readable program name used in generated
// documents and terminal output.
func GetDisplayName() string {
	if status == "stable" {
		return fmt.Sprintf("Web Style Extractor v%s", version)
	}
	return fmt.Sprintf("Web Style Extractor v%s-%s", version, status)
}
