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
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emerrors "github.com/cowdogmoo/emrocks/errors"
	emgit "github.com/cowdogmoo/emrocks/git"
)

type fakeFetcher struct {
	dir     string
	err     error
	gotURL  string
	gotVers string
}

func (f *fakeFetcher) CloneOrUpdate(_ context.Context, gitURL, version string) (string, error) {
	f.gotURL, f.gotVers = gitURL, version
	return f.dir, f.err
}

type fakeAuthor struct{ author emgit.Author }

func (f fakeAuthor) GetAuthor(context.Context) emgit.Author { return f.author }

type recordedCommands struct {
	mu    sync.Mutex
	names []string
}

func (r *recordedCommands) run(_ context.Context, _ string, name string, _ ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	return nil
}

func boilerplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"package.json":      `{"name": "__DASHERIZE_APP_NAME__", "description": "__APP_NAME__"}`,
		"bower.json":        `{"name": "__CLASSIFY_APP_NAME__"}`,
		"client/index.html": "<title>__APP_NAME__</title>",
		"gulpfile.js":       "// gulp",
		".git/HEAD":         "ref: refs/heads/master",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCreator_TestMode(t *testing.T) {
	fetcher := &fakeFetcher{dir: boilerplate(t)}
	target := filepath.Join(t.TempDir(), "myApp")

	result, err := NewCreator(fetcher, nil, nil, nil).Create(context.Background(), CreateOptions{
		Dir:      target,
		URL:      "github.com/mattma/Ember-Rocks-Template-Basic",
		Version:  "v1.0.0",
		TestMode: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/mattma/Ember-Rocks-Template-Basic.git", fetcher.gotURL)
	assert.Equal(t, "v1.0.0", fetcher.gotVers)
	assert.Equal(t, "myApp", result.Name)
	assert.Equal(t, target, result.Dir)
	assert.Empty(t, result.Commit)

	assert.Equal(t, `{"name": "my-app", "description": "myApp"}`, readString(t, filepath.Join(target, "package.json")))
	assert.Equal(t, `{"name": "MyApp"}`, readString(t, filepath.Join(target, "bower.json")))
	assert.Equal(t, "<title>__APP_NAME__</title>", readString(t, filepath.Join(target, "client", "index.html")),
		"files outside the substitute list are copied verbatim")
	assert.NoDirExists(t, filepath.Join(target, ".git"))
}

func TestCreator_InitAndInstall(t *testing.T) {
	fetcher := &fakeFetcher{dir: boilerplate(t)}
	commands := &recordedCommands{}
	installer := NewInstaller(true, true).WithCommandFunc(commands.run)
	authors := fakeAuthor{author: emgit.Author{Name: "Jane Doe", Email: "jane@example.com"}}
	target := filepath.Join(t.TempDir(), "my-app")

	result, err := NewCreator(fetcher, nil, authors, installer).Create(context.Background(), CreateOptions{Dir: target})
	require.NoError(t, err)
	require.NotEmpty(t, result.Commit)

	repo, err := git.PlainOpen(target)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, result.Commit, head.Hash().String())

	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", commit.Author.Name)

	sort.Strings(commands.names)
	assert.Equal(t, []string{"bower", "npm"}, commands.names)
	assert.ElementsMatch(t, []string{"npm", "bower"}, result.Installed)
}

func TestCreator_InstallFailureIsNotFatal(t *testing.T) {
	fetcher := &fakeFetcher{dir: boilerplate(t)}
	installer := NewInstaller(true, false).WithCommandFunc(func(context.Context, string, string, ...string) error {
		return errors.New("npm exploded")
	})
	target := filepath.Join(t.TempDir(), "my-app")

	result, err := NewCreator(fetcher, nil, nil, installer).Create(context.Background(), CreateOptions{Dir: target})
	require.NoError(t, err)
	assert.Equal(t, []string{"npm"}, result.Installed)
	assert.FileExists(t, filepath.Join(target, "package.json"))
}

func TestCreator_TargetNotEmpty(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep.txt"), []byte("x"), 0644))
	fetcher := &fakeFetcher{dir: boilerplate(t)}

	_, err := NewCreator(fetcher, nil, nil, nil).Create(context.Background(), CreateOptions{Dir: target, TestMode: true})
	require.Error(t, err)
	assert.Equal(t, emerrors.KindConflict, emerrors.KindOf(err))
	assert.Empty(t, fetcher.gotURL, "nothing is fetched for a conflicting target")
}

func TestCreator_EmptyTargetIsAllowed(t *testing.T) {
	target := t.TempDir()
	fetcher := &fakeFetcher{dir: boilerplate(t)}

	_, err := NewCreator(fetcher, nil, nil, nil).Create(context.Background(), CreateOptions{Dir: target, TestMode: true})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(target, "gulpfile.js"))
}

func TestCreator_IncompatibleBoilerplate(t *testing.T) {
	src := boilerplate(t)
	require.NoError(t, os.WriteFile(filepath.Join(src, ManifestFile), []byte("requires:\n  em: \">=9.0.0\"\n"), 0644))
	vm, err := NewVersionManager("1.0.0")
	require.NoError(t, err)
	target := filepath.Join(t.TempDir(), "my-app")

	_, err = NewCreator(&fakeFetcher{dir: src}, vm, nil, nil).Create(context.Background(), CreateOptions{Dir: target, TestMode: true})
	require.Error(t, err)
	assert.Equal(t, emerrors.KindPrecondition, emerrors.KindOf(err))
	assert.NoDirExists(t, target)
}

func TestCreator_ManifestSubstitutes(t *testing.T) {
	src := boilerplate(t)
	require.NoError(t, os.WriteFile(filepath.Join(src, ManifestFile),
		[]byte("substitute:\n  - client/index.html\n"), 0644))
	target := filepath.Join(t.TempDir(), "blog")

	_, err := NewCreator(&fakeFetcher{dir: src}, nil, nil, nil).Create(context.Background(), CreateOptions{Dir: target, TestMode: true})
	require.NoError(t, err)
	assert.Equal(t, "<title>blog</title>", readString(t, filepath.Join(target, "client", "index.html")))
	assert.Contains(t, readString(t, filepath.Join(target, "package.json")), "__DASHERIZE_APP_NAME__")
	assert.NoFileExists(t, filepath.Join(target, ManifestFile))
}

func TestCreator_FetchError(t *testing.T) {
	fetchErr := emerrors.Precondition("could not fetch the boilerplate")
	target := filepath.Join(t.TempDir(), "my-app")

	_, err := NewCreator(&fakeFetcher{err: fetchErr}, nil, nil, nil).Create(context.Background(), CreateOptions{Dir: target})
	require.ErrorIs(t, err, fetchErr)
	assert.NoDirExists(t, target)
}

func TestInstaller_SkipsMissingManifests(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0644))
	commands := &recordedCommands{}

	installed, err := NewInstaller(true, true).WithCommandFunc(commands.run).Install(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"npm"}, installed)
	assert.Equal(t, []string{"npm"}, commands.names)
}

func TestInstaller_Disabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0644))
	commands := &recordedCommands{}

	installed, err := NewInstaller(false, false).WithCommandFunc(commands.run).Install(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, installed)
	assert.Empty(t, commands.names)
}
