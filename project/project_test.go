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

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emerrors "github.com/cowdogmoo/emrocks/errors"
)

func TestFindClientRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "client", "app"), 0755))

	got, err := FindClientRoot(root, "")
	require.NoError(t, err)
	assert.Equal(t, root, got)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "web"), 0755))
	got, err = FindClientRoot(root, "web")
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindClientRoot_Missing(t *testing.T) {
	root := t.TempDir()

	_, err := FindClientRoot(root, "client")
	require.Error(t, err)
	assert.Equal(t, emerrors.KindPrecondition, emerrors.KindOf(err))
	assert.Contains(t, err.Error(), "`client` directory does not exist")
	assert.NotEmpty(t, emerrors.HintOf(err))
}

func TestFindClientRoot_FileIsNotADirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "client"), []byte("x"), 0644))

	_, err := FindClientRoot(root, "client")
	assert.Equal(t, emerrors.KindPrecondition, emerrors.KindOf(err))
}

func TestFindBuildRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, BuildFile), []byte("// gulp"), 0644))
	nested := filepath.Join(root, "client", "app", "routes")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got, err := FindBuildRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = FindBuildRoot(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindBuildRoot_Missing(t *testing.T) {
	_, err := FindBuildRoot(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, emerrors.KindPrecondition, emerrors.KindOf(err))
}
