// Package version holds the Storyscript compile-target version stamped
// into every emitted Script.
package version

import "golang.org/x/mod/semver"

// Current is the semver string embedded in every compiled Script.
const Current = "v1.0.0"

func init() {
	if !semver.IsValid(Current) {
		panic("version: Current is not a valid semver string: " + Current)
	}
}
