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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cowdogmoo/emrocks/config"
	emerrors "github.com/cowdogmoo/emrocks/errors"
	emgit "github.com/cowdogmoo/emrocks/git"
	"github.com/cowdogmoo/emrocks/logging"
	"github.com/cowdogmoo/emrocks/naming"
)

// App-name tokens replaced in the manifest's substitute files.
const (
	TokenAppName          = "__APP_NAME__"
	TokenDasherizeAppName = "__DASHERIZE_APP_NAME__"
	TokenClassifyAppName  = "__CLASSIFY_APP_NAME__"
)

// Fetcher resolves a boilerplate URL to a local checkout.
type Fetcher interface {
	CloneOrUpdate(ctx context.Context, gitURL, version string) (string, error)
}

// AuthorReader returns the identity the initial commit is recorded for.
type AuthorReader interface {
	GetAuthor(ctx context.Context) emgit.Author
}

// CreateOptions configures a new project.
type CreateOptions struct {
	// Dir is where the project is created. Its base name is the app name.
	Dir string

	// URL of the boilerplate repository, short github.com/x/y form allowed.
	URL string

	// Version is a tag or branch of the boilerplate.
	Version string

	// TestMode skips git init and package installs.
	TestMode bool
}

// CreateResult describes the created project.
type CreateResult struct {
	Dir       string    `json:"dir"`
	Name      string    `json:"name"`
	Manifest  *Manifest `json:"manifest,omitempty"`
	Commit    string    `json:"commit,omitempty"`
	Installed []string  `json:"installed,omitempty"`
}

// Creator scaffolds new projects from a boilerplate repository.
type Creator struct {
	fetcher   Fetcher
	versions  *VersionManager
	authors   AuthorReader
	installer *Installer
}

// NewCreator returns a Creator. A nil versions skips compatibility checks.
func NewCreator(fetcher Fetcher, versions *VersionManager, authors AuthorReader, installer *Installer) *Creator {
	return &Creator{
		fetcher:   fetcher,
		versions:  versions,
		authors:   authors,
		installer: installer,
	}
}

// AppVariants returns the replacement for each app-name token.
func AppVariants(name string) map[string]string {
	return map[string]string{
		TokenAppName:          name,
		TokenDasherizeAppName: naming.Dasherize(name),
		TokenClassifyAppName:  naming.Classify(name),
	}
}

// Create fetches the boilerplate, copies it into opts.Dir and personalizes it.
// The target must not exist or must be empty.
func (c *Creator) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, emerrors.Wrap("resolve directory", opts.Dir, err)
	}
	name := filepath.Base(dir)

	if err := checkTarget(dir); err != nil {
		return nil, err
	}

	src, err := c.fetcher.CloneOrUpdate(ctx, NormalizeURL(opts.URL), opts.Version)
	if err != nil {
		return nil, err
	}

	manifest, err := LoadManifest(src)
	if err != nil {
		return nil, err
	}
	if err := c.checkCompatibility(ctx, manifest); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, config.DirPermReadWriteExec); err != nil {
		return nil, emerrors.Wrap("create project directory", dir, err)
	}
	if err := emgit.CopyTree(ctx, src, dir); err != nil {
		return nil, emerrors.Wrap("copy boilerplate", dir, err)
	}
	_ = os.Remove(filepath.Join(dir, ManifestFile))

	if err := Substitute(dir, manifest.Substitute, AppVariants(name)); err != nil {
		return nil, err
	}
	logging.DoneContext(ctx, "Created %s at %s", name, dir)

	result := &CreateResult{Dir: dir, Name: name, Manifest: manifest}
	if opts.TestMode {
		logging.DebugContext(ctx, "Test mode, skipping git init and package installs")
		c.printNextSteps(ctx, result)
		return result, nil
	}

	var author emgit.Author
	if c.authors != nil {
		author = c.authors.GetAuthor(ctx)
	}
	hash, err := emgit.InitRepository(ctx, dir, author)
	if err != nil {
		return nil, err
	}
	result.Commit = hash.String()
	logging.DoneContext(ctx, "Initialized a git repository with an initial commit")

	if c.installer != nil {
		installed, err := c.installer.Install(ctx, dir)
		result.Installed = installed
		if err != nil {
			logging.WarnContext(ctx, "Package install failed: %v", err)
			logging.WarnContext(ctx, "Run npm install and bower install in %s manually", dir)
		}
	}

	c.printNextSteps(ctx, result)
	return result, nil
}

func (c *Creator) checkCompatibility(ctx context.Context, manifest *Manifest) error {
	if c.versions == nil {
		return nil
	}
	compatible, warnings, err := c.versions.CheckCompatibility(manifest.Requires.Em)
	if err != nil {
		return emerrors.Precondition("boilerplate has an invalid em requirement").WithCause(err)
	}
	for _, w := range warnings {
		logging.WarnContext(ctx, "%s", w)
	}
	if !compatible {
		return emerrors.Precondition("boilerplate requires em %s", manifest.Requires.Em).
			WithHint("Upgrade em or pick another --version of the boilerplate")
	}
	return nil
}

// checkTarget rejects a destination that exists and is not an empty
// directory.
func checkTarget(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return emerrors.Wrap("check project directory", dir, err)
	}
	if !info.IsDir() {
		return emerrors.Conflict("%s already exists and is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return emerrors.Wrap("read project directory", dir, err)
	}
	if len(entries) > 0 {
		return emerrors.Conflict("%s already exists and is not empty", dir).
			WithHint("Pick another directory name")
	}
	return nil
}

// Substitute replaces the tokens in each named file under dir. Missing files
// are skipped.
func Substitute(dir string, files []string, tokens map[string]string) error {
	pairs := make([]string, 0, len(tokens)*2)
	for token, value := range tokens {
		pairs = append(pairs, token, value)
	}
	replacer := strings.NewReplacer(pairs...)

	for _, file := range files {
		path := filepath.Join(dir, filepath.FromSlash(file))
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return emerrors.Wrap("stat", file, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return emerrors.Wrap("read", file, err)
		}
		if err := os.WriteFile(path, []byte(replacer.Replace(string(data))), info.Mode().Perm()); err != nil {
			return emerrors.Wrap("write", file, err)
		}
	}
	return nil
}

func (c *Creator) printNextSteps(ctx context.Context, result *CreateResult) {
	if result.Manifest != nil && result.Manifest.Description != "" {
		logging.InfoContext(ctx, "%s", result.Manifest.Description)
	}
	logging.InfoContext(ctx, "Next steps:")
	logging.InfoContext(ctx, "  1. cd %s", result.Name)
	logging.InfoContext(ctx, "  2. em serve")
	logging.InfoContext(ctx, "  3. em generate route:post")
}
