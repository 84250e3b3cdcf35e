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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfigDirs points every config search location at empty temp dirs.
func isolateConfigDirs(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(tmpDir, "etc"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, ".cache"))
	t.Setenv(TokenEnvVar, "")

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		_ = os.Chdir(originalDir)
	})
	return tmpDir
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigDirs(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "color", cfg.Log.Format)
	assert.Equal(t, DefaultTemplateURL, cfg.Template.URL)
	assert.Equal(t, "client", cfg.Project.ClientDir)
	assert.Equal(t, "app", cfg.Project.AppDir)
	assert.Equal(t, ".em/skeletons", cfg.Generate.SkeletonDir)
	assert.True(t, cfg.Install.NPM)
	assert.True(t, cfg.Install.Bower)
	assert.Equal(t, "gulp", cfg.Runner.GulpBin)
	assert.Equal(t, "serve", cfg.Runner.Tasks.Serve)
	assert.Equal(t, "build", cfg.Runner.Tasks.Build)
	assert.Equal(t, 0, cfg.ExitCodes.UserError)
	assert.Equal(t, 1, cfg.ExitCodes.Precondition)
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := isolateConfigDirs(t)
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `log:
  level: debug
  format: json
template:
  url: github.com/acme/ember-boilerplate
  version: v2.1.0
install:
  bower: false
runner:
  tasks:
    serve: develop
exit_codes:
  user_error: 2
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "github.com/acme/ember-boilerplate", cfg.Template.URL)
	assert.Equal(t, "v2.1.0", cfg.Template.Version)
	assert.True(t, cfg.Install.NPM)
	assert.False(t, cfg.Install.Bower)
	assert.Equal(t, "develop", cfg.Runner.Tasks.Serve)
	assert.Equal(t, "build", cfg.Runner.Tasks.Build)
	assert.Equal(t, 2, cfg.ExitCodes.UserError)
}

func TestLoad_EnvVarOverride(t *testing.T) {
	tmpDir := isolateConfigDirs(t)
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: info\n"), 0644))

	t.Setenv("EM_LOG_LEVEL", "debug")
	t.Setenv("EM_EXIT_CODES_USER_ERROR", "1")

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1, cfg.ExitCodes.UserError)
}

func TestLoad_FindsConfigInCurrentDir(t *testing.T) {
	tmpDir := isolateConfigDirs(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("runner:\n  gulp_bin: /opt/gulp\n  gulpfile: build/tasks.js\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/gulp", cfg.Runner.GulpBin)
	assert.Equal(t, "build/tasks.js", cfg.Runner.Gulpfile)
}

func TestLoad_WithConfigInXDGDir(t *testing.T) {
	tmpDir := isolateConfigDirs(t)
	dir := filepath.Join(tmpDir, ".config", AppName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("project:\n  client_dir: web\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "web", cfg.Project.ClientDir)
}

func TestLoad_TokenNeverFromConfigFile(t *testing.T) {
	tmpDir := isolateConfigDirs(t)
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("template:\n  token: from-file\n"), 0644))

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Empty(t, cfg.Template.Token)

	t.Setenv(TokenEnvVar, "from-env")
	cfg, err = LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Template.Token)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := isolateConfigDirs(t)
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log: [unclosed\n"), 0644))

	_, err := LoadFromPath(configPath)
	assert.Error(t, err)
}

func TestLoadFromPath_NonexistentFile(t *testing.T) {
	isolateConfigDirs(t)

	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestIsNotFoundError(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.True(t, IsNotFoundError(os.ErrNotExist))
	assert.False(t, IsNotFoundError(os.ErrPermission))
}

func TestIsKnownKey(t *testing.T) {
	assert.True(t, IsKnownKey("log.level"))
	assert.True(t, IsKnownKey("Runner.Tasks.Serve"))
	assert.False(t, IsKnownKey("template.token"))
	assert.False(t, IsKnownKey("registry.default"))
}
