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

// Package runner delegates serve and build to the project's gulp tasks.
package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mattn/go-shellwords"

	emerrors "github.com/cowdogmoo/emrocks/errors"
	"github.com/cowdogmoo/emrocks/logging"
	"github.com/cowdogmoo/emrocks/project"
)

// DefaultGulpBin is used when the project has no local gulp.
const DefaultGulpBin = "gulp"

// Runner runs gulp tasks.
type Runner struct {
	gulpBin  string
	gulpfile string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// New returns a Runner. gulpBin is a command line such as "gulp" or
// "npx gulp" used when the project has no node_modules/.bin/gulp.
func New(gulpBin string) *Runner {
	if gulpBin == "" {
		gulpBin = DefaultGulpBin
	}
	return &Runner{
		gulpBin: gulpBin,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// WithIO replaces the standard streams handed to gulp.
func (r *Runner) WithIO(stdin io.Reader, stdout, stderr io.Writer) *Runner {
	r.stdin, r.stdout, r.stderr = stdin, stdout, stderr
	return r
}

// WithGulpfile makes Run use path instead of searching for the nearest
// gulpfile.js. A relative path is resolved against the directory passed to
// Run. An empty path keeps the search.
func (r *Runner) WithGulpfile(path string) *Runner {
	r.gulpfile = path
	return r
}

// Command resolves the gulp command line for a build root.
func (r *Runner) Command(root string) ([]string, error) {
	local := filepath.Join(root, "node_modules", ".bin", "gulp")
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return []string{local}, nil
	}

	argv, err := shellwords.Parse(r.gulpBin)
	if err != nil {
		return nil, emerrors.Usage("invalid runner.gulp_bin %q", r.gulpBin).WithCause(err)
	}
	if len(argv) == 0 {
		return nil, emerrors.Usage("runner.gulp_bin is empty")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, emerrors.Precondition("gulp was not found in %s or on PATH", local).
			WithCause(err).
			WithHint("Run npm install in the project, or set runner.gulp_bin")
	}
	argv[0] = path
	return argv, nil
}

// Run finds the build root from dir and runs `gulp task` there. The task
// stops when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, dir, task string) error {
	gulpfile, err := r.resolveGulpfile(dir)
	if err != nil {
		return err
	}
	root := filepath.Dir(gulpfile)

	argv, err := r.Command(root)
	if err != nil {
		return err
	}

	logging.InfoContext(ctx, "Using gulpfile %s", gulpfile)
	logging.DebugContext(ctx, "Running %v %s in %s", argv, task, root)

	args := argv[1:]
	if r.gulpfile != "" {
		args = append(args, "--gulpfile", gulpfile)
	}
	args = append(args, task)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Dir = root
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return emerrors.Wrap("run gulp task", task, err)
	}
	return nil
}

// resolveGulpfile returns the absolute path of the gulpfile Run will use.
func (r *Runner) resolveGulpfile(dir string) (string, error) {
	if r.gulpfile == "" {
		root, err := project.FindBuildRoot(dir)
		if err != nil {
			return "", err
		}
		return filepath.Join(root, project.BuildFile), nil
	}

	path := r.gulpfile
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", emerrors.Wrap("resolve gulpfile", r.gulpfile, err)
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", emerrors.Precondition("gulpfile %s was not found", abs).
			WithHint("Check --gulpfile or runner.gulpfile, or unset them to search for " + project.BuildFile)
	}
	return abs, nil
}
