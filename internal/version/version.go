// Package version holds the build version, set at link time:
//
//	go build -ldflags "-X github.com/NielsdaWheelz/mazegen/internal/version.Version=v0.3.0"
package version

// Version is the mazegen version.
var Version = "dev"
