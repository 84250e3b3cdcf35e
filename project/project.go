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

// Package project locates the directories of an em project.
package project

import (
	"os"
	"path/filepath"

	emerrors "github.com/cowdogmoo/emrocks/errors"
)

// BuildFile marks the directory gulp tasks run from.
const BuildFile = "gulpfile.js"

// FindClientRoot verifies that dir contains the client directory and returns
// the absolute project root. Generating outside a project is a precondition
// error.
func FindClientRoot(dir, clientDir string) (string, error) {
	if clientDir == "" {
		clientDir = "client"
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", emerrors.Wrap("resolve directory", dir, err)
	}

	info, err := os.Stat(filepath.Join(root, clientDir))
	if err != nil || !info.IsDir() {
		return "", emerrors.Precondition("`%s` directory does not exist in %s", clientDir, root).
			WithHint("You must be inside an em project to generate files; run em new first")
	}
	return root, nil
}

// FindBuildRoot walks up from dir to the first directory holding a
// gulpfile.js.
func FindBuildRoot(dir string) (string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", emerrors.Wrap("resolve directory", dir, err)
	}

	for current := start; ; {
		info, err := os.Stat(filepath.Join(current, BuildFile))
		if err == nil && !info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", emerrors.Precondition("no %s found in %s or any parent directory", BuildFile, start).
		WithHint("Run this command inside an em project")
}
