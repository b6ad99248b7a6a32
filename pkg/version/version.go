// Package version reports the build version of listkit.
package version

// Set at build time with -ldflags "-X github.com/rshade/listkit/pkg/version.version=v1.2.3".
var (
	version = "dev"     //nolint:gochecknoglobals // ldflags target
	commit  = "unknown" //nolint:gochecknoglobals // ldflags target
)

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

// GetCommit returns the commit the binary was built from.
func GetCommit() string {
	return commit
}
