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

package generator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/cowdogmoo/emrocks/config"
	emerrors "github.com/cowdogmoo/emrocks/errors"
	"github.com/cowdogmoo/emrocks/logging"
)

// Result reports what a plan wrote, or would write on a dry run. Paths are
// slash-separated and relative to the project root.
type Result struct {
	Request     string   `json:"request"`
	Variants    Variants `json:"variants"`
	Written     []string `json:"written"`
	Skipped     []string `json:"skipped,omitempty"`
	CreatedDirs []string `json:"created_dirs,omitempty"`
	DryRun      bool     `json:"dry_run,omitempty"`
}

// Engine renders skeletons into a project.
type Engine struct {
	fs        afero.Fs
	skeletons afero.Fs
}

// NewEngine returns an engine that writes into dest, which must be rooted at
// the project directory, and reads skeletons from skeletons. A nil skeletons
// uses the embedded set.
func NewEngine(dest, skeletons afero.Fs) *Engine {
	if skeletons == nil {
		skeletons = EmbeddedSkeletons()
	}
	return &Engine{fs: dest, skeletons: skeletons}
}

// Apply writes every file in plan. Destinations are checked before anything
// is written: an existing file aborts the run with a conflict error unless it
// is an injection target, which is skipped.
func (e *Engine) Apply(ctx context.Context, plan *Plan) (*Result, error) {
	return e.run(ctx, plan, false)
}

// DryRun reports what Apply would do without touching the filesystem.
func (e *Engine) DryRun(ctx context.Context, plan *Plan) (*Result, error) {
	return e.run(ctx, plan, true)
}

func (e *Engine) run(ctx context.Context, plan *Plan, dryRun bool) (*Result, error) {
	result := &Result{
		Request:  plan.Request.String(),
		Variants: plan.Variants,
		Written:  []string{},
		DryRun:   dryRun,
	}

	pending, err := e.check(ctx, plan, result)
	if err != nil {
		return nil, err
	}

	rendered := make([][]byte, len(pending))
	for i, op := range pending {
		data, err := afero.ReadFile(e.skeletons, op.Skeleton)
		if err != nil {
			return nil, emerrors.Wrap("read skeleton", op.Skeleton, err)
		}
		rendered[i] = Render(data, plan.Variants)
	}

	for i, op := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		created, err := e.ensureDir(ctx, op.Dir, dryRun)
		if err != nil {
			return result, err
		}
		if created {
			result.CreatedDirs = append(result.CreatedDirs, op.Dir)
		}

		if !dryRun {
			if err := e.writeFile(op, rendered[i]); err != nil {
				return result, err
			}
			logging.DoneContext(ctx, "Generated %s at %s", op.File, op.Dir)
		}
		result.Written = append(result.Written, op.Path())
	}

	return result, nil
}

// check returns the ops that will be written, recording skipped injection
// targets in result.
func (e *Engine) check(ctx context.Context, plan *Plan, result *Result) ([]FileOp, error) {
	pending := make([]FileOp, 0, len(plan.Ops))
	for _, op := range plan.Ops {
		exists, err := afero.Exists(e.fs, filepath.FromSlash(op.Path()))
		if err != nil {
			return nil, emerrors.Wrap("check destination", op.Path(), err)
		}
		if !exists {
			pending = append(pending, op)
			continue
		}
		if !op.Injection.IsInjection() {
			return nil, conflictError(op)
		}
		logging.WarnContext(ctx, "%s has existed at %s, skipped", op.File, op.Dir)
		result.Skipped = append(result.Skipped, op.Path())
	}
	return pending, nil
}

func (e *Engine) ensureDir(ctx context.Context, dir string, dryRun bool) (bool, error) {
	exists, err := afero.DirExists(e.fs, filepath.FromSlash(dir))
	if err != nil {
		return false, emerrors.Wrap("check directory", dir, err)
	}
	if exists {
		return false, nil
	}
	if dryRun {
		return true, nil
	}
	if err := e.fs.MkdirAll(filepath.FromSlash(dir), config.DirPermReadWriteExec); err != nil {
		return false, emerrors.Wrap("create directory", dir, err)
	}
	logging.InfoContext(ctx, "Created a new folder at %s", dir)
	return true, nil
}

func (e *Engine) writeFile(op FileOp, data []byte) error {
	f, err := e.fs.OpenFile(filepath.FromSlash(op.Path()), os.O_WRONLY|os.O_CREATE|os.O_EXCL, config.FilePermReadWrite)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return conflictError(op)
		}
		return emerrors.Wrap("create file", op.Path(), err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = e.fs.Remove(filepath.FromSlash(op.Path()))
		return emerrors.Wrap("write file", op.Path(), err)
	}
	return emerrors.Wrap("close file", op.Path(), f.Close())
}

func conflictError(op FileOp) error {
	return emerrors.Conflict("%s has existed at %s", op.File, op.Dir).
		WithHint("Generate task has been canceled")
}
