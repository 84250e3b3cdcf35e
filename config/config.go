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

// Package config loads em's user configuration.
//
// Values are resolved with the precedence CLI flags > environment variables
// (EM_ prefix) > config file > defaults. The config file is config.yaml in the
// first of the directories returned by GetConfigDirs, or the current
// directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// AppName names the config and cache directories and the env prefix.
const AppName = "em"

// File and directory permissions used when em writes to disk.
const (
	DirPermReadWriteExec = 0755
	FilePermReadWrite    = 0644
)

// DefaultTemplateURL is the boilerplate `em new` fetches when --path is not
// given.
const DefaultTemplateURL = "github.com/mattma/Ember-Rocks-Template-Basic"

// TokenEnvVar holds the access token for private boilerplate repositories.
// Tokens are read from the environment only, never from the config file.
const TokenEnvVar = "EM_TEMPLATE_TOKEN"

// Config holds the em configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log" json:"log"`
	Template  TemplateConfig  `mapstructure:"template" yaml:"template" json:"template"`
	Project   ProjectConfig   `mapstructure:"project" yaml:"project" json:"project"`
	Generate  GenerateConfig  `mapstructure:"generate" yaml:"generate" json:"generate"`
	Install   InstallConfig   `mapstructure:"install" yaml:"install" json:"install"`
	Runner    RunnerConfig    `mapstructure:"runner" yaml:"runner" json:"runner"`
	ExitCodes ExitCodesConfig `mapstructure:"exit_codes" yaml:"exit_codes" json:"exit_codes"`
}

// LogConfig configures console logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`

	// Format is one of color, text, json.
	Format string `mapstructure:"format" yaml:"format" json:"format" jsonschema:"enum=color,enum=text,enum=json"`
}

// TemplateConfig configures the boilerplate repository used by `em new`.
type TemplateConfig struct {
	// URL of the boilerplate git repository.
	URL string `mapstructure:"url" yaml:"url" json:"url"`

	// Version is a tag or branch of the boilerplate. Empty means the default branch.
	Version string `mapstructure:"version" yaml:"version" json:"version,omitempty"`

	// CacheDir overrides where fetched boilerplates are cached.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir" json:"cache_dir,omitempty"`

	// SSHKeyFile is the private key used for ssh boilerplate URLs.
	SSHKeyFile string `mapstructure:"ssh_key_file" yaml:"ssh_key_file" json:"ssh_key_file,omitempty"`

	// Token authenticates HTTPS clones. Populated from EM_TEMPLATE_TOKEN only.
	Token string `mapstructure:"-" yaml:"-" json:"-"`
}

// ProjectConfig names the directories of a generated project.
type ProjectConfig struct {
	// ClientDir is the client application root inside a project.
	ClientDir string `mapstructure:"client_dir" yaml:"client_dir" json:"client_dir"`

	// AppDir holds application sources inside ClientDir.
	AppDir string `mapstructure:"app_dir" yaml:"app_dir" json:"app_dir"`
}

// GenerateConfig configures `em generate`.
type GenerateConfig struct {
	// SkeletonDir, relative to the project root, holds skeleton overrides.
	SkeletonDir string `mapstructure:"skeleton_dir" yaml:"skeleton_dir" json:"skeleton_dir"`
}

// InstallConfig selects the package managers `em new` runs.
type InstallConfig struct {
	NPM   bool `mapstructure:"npm" yaml:"npm" json:"npm"`
	Bower bool `mapstructure:"bower" yaml:"bower" json:"bower"`
}

// RunnerConfig configures how serve and build reach the build pipeline.
type RunnerConfig struct {
	// GulpBin is used when the project has no local node_modules/.bin/gulp.
	GulpBin string `mapstructure:"gulp_bin" yaml:"gulp_bin" json:"gulp_bin"`

	// Gulpfile, when set, is used instead of the nearest gulpfile.js. A
	// relative path is resolved against the working directory.
	Gulpfile string `mapstructure:"gulpfile" yaml:"gulpfile" json:"gulpfile,omitempty"`

	Tasks RunnerTasks `mapstructure:"tasks" yaml:"tasks" json:"tasks"`
}

// RunnerTasks maps em commands to gulp task names.
type RunnerTasks struct {
	Serve string `mapstructure:"serve" yaml:"serve" json:"serve"`
	Build string `mapstructure:"build" yaml:"build" json:"build"`
}

// ExitCodesConfig sets the process exit status per error class.
type ExitCodesConfig struct {
	// UserError covers usage, naming-convention and conflict errors.
	UserError int `mapstructure:"user_error" yaml:"user_error" json:"user_error"`

	// Precondition covers running outside an em project.
	Precondition int `mapstructure:"precondition" yaml:"precondition" json:"precondition"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"log.level":               "info",
		"log.format":              "color",
		"template.url":            DefaultTemplateURL,
		"template.version":        "",
		"template.cache_dir":      "",
		"template.ssh_key_file":   "",
		"project.client_dir":      "client",
		"project.app_dir":         "app",
		"generate.skeleton_dir":   ".em/skeletons",
		"install.npm":             true,
		"install.bower":           true,
		"runner.gulp_bin":         "gulp",
		"runner.gulpfile":         "",
		"runner.tasks.serve":      "serve",
		"runner.tasks.build":      "build",
		"exit_codes.user_error":   0,
		"exit_codes.precondition": 1,
	}
}

// IsKnownKey reports whether key is a configuration key em understands.
func IsKnownKey(key string) bool {
	_, ok := Defaults()[strings.ToLower(key)]
	return ok
}

// NewViper returns a viper instance with defaults and environment binding
// applied but no config file read.
func NewViper() *viper.Viper {
	v := NewConfigViper()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file from the standard search path. A missing file is
// not an error; defaults and environment values are returned.
func Load() (*Config, error) {
	v := NewViper()
	if err := v.ReadInConfig(); err != nil && !IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return unmarshal(v)
}

// LoadFromPath reads the config from a specific file.
func LoadFromPath(path string) (*Config, error) {
	v, err := LoadViperFromPath(path)
	if err != nil {
		return nil, err
	}
	return unmarshal(v)
}

// LoadViperFromPath returns a fully resolved viper instance for path. An
// empty path searches the standard locations.
func LoadViperFromPath(path string) (*viper.Viper, error) {
	v := NewViper()
	if path == "" {
		if err := v.ReadInConfig(); err != nil && !IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return v, nil
}

// Unmarshal converts a resolved viper instance to a Config.
func Unmarshal(v *viper.Viper) (*Config, error) {
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Template.Token = os.Getenv(TokenEnvVar)
	return &cfg, nil
}

// IsNotFoundError reports whether err means no config file exists.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}
