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
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	emerrors "github.com/cowdogmoo/emrocks/errors"
)

// ManifestFile is the optional boilerplate manifest at the repository root.
const ManifestFile = "em.yaml"

// SchemaComment points editors at the manifest JSON schema.
const SchemaComment = "# yaml-language-server: $schema=https://raw.githubusercontent.com/cowdogmoo/emrocks/main/schema/em-manifest.json\n"

// DefaultSubstitute lists the files whose app-name tokens are replaced when
// the manifest does not name any.
var DefaultSubstitute = []string{"package.json", "bower.json"}

// Manifest describes a boilerplate repository.
type Manifest struct {
	// Name of the boilerplate.
	Name string `yaml:"name" json:"name,omitempty"`

	// Description shown when the project is created.
	Description string `yaml:"description" json:"description,omitempty"`

	// Requires holds version constraints the boilerplate depends on.
	Requires Requirements `yaml:"requires" json:"requires,omitempty"`

	// Substitute lists files, relative to the project root, in which the
	// app-name tokens are replaced.
	Substitute []string `yaml:"substitute" json:"substitute,omitempty"`
}

// Requirements are semver constraints.
type Requirements struct {
	// Em is the range of em versions the boilerplate works with, e.g. ">=1.0.0".
	Em string `yaml:"em" json:"em,omitempty"`
}

// LoadManifest reads em.yaml from dir. A missing manifest yields the
// defaults.
func LoadManifest(dir string) (*Manifest, error) {
	manifest := &Manifest{}

	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, emerrors.Wrap("read manifest", ManifestFile, err)
	default:
		if err := yaml.Unmarshal(data, manifest); err != nil {
			return nil, emerrors.Precondition("invalid %s in boilerplate", ManifestFile).WithCause(err)
		}
	}

	if len(manifest.Substitute) == 0 {
		manifest.Substitute = append([]string(nil), DefaultSubstitute...)
	}
	return manifest, nil
}
