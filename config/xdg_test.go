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

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDirs_WithXDGConfigHome(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dirs := GetConfigDirs()

	require.NotEmpty(t, dirs)
	assert.Equal(t, filepath.Join(tmpDir, AppName), dirs[0])

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Contains(t, dirs, filepath.Join(home, ".em"))
}

func TestGetConfigDirs_WithoutXDGConfigHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	dirs := GetConfigDirs()

	require.NotEmpty(t, dirs)
	assert.Equal(t, filepath.Join(home, ".config", AppName), dirs[0])
}

func TestGetConfigDirs_CustomXDGConfigDirs(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("system config dirs are only searched on Linux and BSD")
	}
	t.Setenv("XDG_CONFIG_DIRS", "/opt/a:/opt/b")

	dirs := GetConfigDirs()

	assert.Contains(t, dirs, filepath.Join("/opt/a", AppName))
	assert.Contains(t, dirs, filepath.Join("/opt/b", AppName))
	assert.NotContains(t, dirs, filepath.Join("/etc", "xdg", AppName))
}

func TestConfigFile_CreatesParentDirs(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	path, err := ConfigFile("config.yaml")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, AppName, "config.yaml"), path)
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetCacheDir(t *testing.T) {
	t.Run("default location", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", tmpDir)

		result, err := GetCacheDir("", "templates")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, AppName, "templates"), result)

		info, err := os.Stat(result)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("override", func(t *testing.T) {
		override := t.TempDir()

		result, err := GetCacheDir(override, "templates")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(override, "templates"), result)
	})
}
