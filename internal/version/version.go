// internal/version/version.go
package version

// Version is overridden at build time with -ldflags "-X alnn/internal/version.Version=...".
var Version = "dev"
