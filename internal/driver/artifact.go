package driver

import "strings"

var artifactReplacer = strings.NewReplacer("/", "_", `\`, "_", " ", "_", ":", "_")

// ArtifactName turns a test or scenario name into a file name for a failure
// capture. The extension is left to the caller.
func ArtifactName(name string) string {
	return artifactReplacer.Replace(name)
}
