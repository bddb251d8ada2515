package fakeapp

import (
	"fmt"
	"runtime/debug"

	"github.com/blang/semver/v4"
)

const appName = "fakeapp"

// Version returns the main module version, or "unknown" for development
// builds and anything that is not a semantic version.
func Version() string {
	const unknownVersion = "unknown"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknownVersion
	}
	return normalizeVersion(info.Main.Version)
}

func normalizeVersion(raw string) string {
	if raw == "" || raw == "(devel)" {
		return "unknown"
	}
	v, err := semver.ParseTolerant(raw)
	if err != nil {
		return "unknown"
	}
	return "v" + v.String()
}

// UserAgent returns "fakeapp/<version>".
func UserAgent() string {
	return fmt.Sprintf("%s/%s", appName, Version())
}
