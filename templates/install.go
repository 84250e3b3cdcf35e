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
	"os/exec"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	emerrors "github.com/cowdogmoo/emrocks/errors"
	"github.com/cowdogmoo/emrocks/logging"
)

// CommandFunc runs name with args in dir.
type CommandFunc func(ctx context.Context, dir, name string, args ...string) error

// Installer fetches a new project's npm and bower packages.
type Installer struct {
	NPM   bool
	Bower bool

	run CommandFunc
}

// NewInstaller returns an installer that runs the package managers found on
// PATH.
func NewInstaller(npm, bower bool) *Installer {
	return &Installer{NPM: npm, Bower: bower, run: runCommand}
}

// WithCommandFunc replaces how package manager commands are run.
func (i *Installer) WithCommandFunc(run CommandFunc) *Installer {
	i.run = run
	return i
}

// Install runs `npm install` and `bower install` in dir concurrently. Each
// runs only when enabled and its manifest file is present. It returns the
// package managers that ran.
func (i *Installer) Install(ctx context.Context, dir string) ([]string, error) {
	var steps []string
	if i.NPM && fileExists(filepath.Join(dir, "package.json")) {
		steps = append(steps, "npm")
	}
	if i.Bower && fileExists(filepath.Join(dir, "bower.json")) {
		steps = append(steps, "bower")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range steps {
		name := name
		g.Go(func() error {
			logging.InfoContext(gctx, "Running %s install in %s", name, dir)
			if err := i.run(gctx, dir, name, "install"); err != nil {
				return emerrors.Wrap("run "+name+" install", dir, err)
			}
			logging.DoneContext(gctx, "%s packages installed", name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return steps, err
	}
	return steps, nil
}

func runCommand(ctx context.Context, dir, name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return emerrors.Precondition("%s is not installed", name).WithCause(err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	if !logging.FromContext(ctx).IsQuiet() {
		cmd.Stdout = logging.FromContext(ctx).Writer()
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
