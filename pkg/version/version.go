// Package version exposes the build version of xivquote.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// devVersion is reported when the binary was built without an ldflags version.
const devVersion = "0.0.0-dev"

// version is set at build time:
//
//	go build -ldflags "-X github.com/justadataconstruct/xivquote/pkg/version.version=v1.2.0"
var version = devVersion //nolint:gochecknoglobals // Set via ldflags at build time

// GetVersion returns the normalized semantic version of the binary.
// A leading "v" is dropped; an unparseable build value falls back to the dev version.
func GetVersion() string {
	return Normalize(version)
}

// Normalize parses raw as a semantic version and returns its canonical form.
// It returns the dev version when raw is empty or not valid semver.
func Normalize(raw string) string {
	if raw == "" {
		return devVersion
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return devVersion
	}
	return v.String()
}

// UserAgent returns the User-Agent string sent to remote APIs.
func UserAgent() string {
	return "xivquote/" + GetVersion()
}
