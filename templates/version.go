/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package templates

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionManager checks boilerplate requirements against the running em.
type VersionManager struct {
	emVersion *semver.Version
}

// NewVersionManager returns a VersionManager for the given em version.
// Development builds ("dev" or empty) satisfy every constraint.
func NewVersionManager(emVersion string) (*VersionManager, error) {
	ver, err := ParseVersion(emVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid em version: %w", err)
	}
	return &VersionManager{emVersion: ver}, nil
}

// ParseVersion parses a semantic version with an optional v prefix. It
// returns nil for development builds.
func ParseVersion(version string) (*semver.Version, error) {
	if version == "" || version == "dev" {
		return nil, nil
	}

	ver, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("invalid version format: %w", err)
	}
	return ver, nil
}

// CheckCompatibility reports whether em satisfies the required constraint,
// with a warning for each mismatch.
func (vm *VersionManager) CheckCompatibility(required string) (bool, []string, error) {
	warnings := []string{}

	if required == "" {
		return true, warnings, nil
	}

	constraint, err := semver.NewConstraint(required)
	if err != nil {
		return false, warnings, fmt.Errorf("invalid em version constraint: %w", err)
	}

	if vm.emVersion == nil {
		warnings = append(warnings, fmt.Sprintf(
			"Boilerplate requires em %s; development build, skipping check", required))
		return true, warnings, nil
	}

	compatible := constraint.Check(vm.emVersion)
	if !compatible {
		warnings = append(warnings, fmt.Sprintf(
			"Boilerplate requires em %s, but current version is %s",
			required, vm.emVersion.String(),
		))
	}

	return compatible, warnings, nil
}
