package preprocessor

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// CheckVersion reports whether host satisfies a caret requirement on
// builtAgainst (^0.4.40 accepts 0.4.x >= 0.4.40). Either version failing to
// parse is an error.
func CheckVersion(host, builtAgainst string) (bool, error) {
	h, err := canonical(host)
	if err != nil {
		return false, fmt.Errorf("invalid mdbook version: %w", err)
	}
	req, err := canonical(builtAgainst)
	if err != nil {
		return false, fmt.Errorf("invalid version requirement: %w", err)
	}

	if semver.Compare(h, req) < 0 {
		return false, nil
	}
	switch {
	case semver.Major(req) != "v0":
		return semver.Major(h) == semver.Major(req), nil
	case semver.MajorMinor(req) != "v0.0":
		return semver.MajorMinor(h) == semver.MajorMinor(req), nil
	default:
		return semver.Canonical(h) == semver.Canonical(req), nil
	}
}

// canonical requires a full major.minor.patch version.
func canonical(version string) (string, error) {
	v := "v" + strings.TrimPrefix(strings.TrimSpace(version), "v")
	core := v
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core = v[:i]
	}
	if !semver.IsValid(v) || strings.Count(core, ".") != 2 {
		return "", fmt.Errorf("%q is not a semantic version", version)
	}
	return v, nil
}
