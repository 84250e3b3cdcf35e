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

// Package git wraps the git operations em performs on a new project:
// reading the user's identity, authenticating remotes, copying a checkout and
// recording the initial commit.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/cowdogmoo/emrocks/logging"
)

// Author identifies the user that commits are recorded for.
type Author struct {
	Name  string
	Email string
}

// IsZero reports whether neither name nor email is known.
func (a Author) IsZero() bool {
	return a.Name == "" && a.Email == ""
}

// String formats the author as "Name <email>", "Name", "email" or "".
func (a Author) String() string {
	switch {
	case a.Name != "" && a.Email != "":
		return fmt.Sprintf("%s <%s>", a.Name, a.Email)
	case a.Name != "":
		return a.Name
	default:
		return a.Email
	}
}

// ConfigReader reads the user section of ~/.gitconfig.
type ConfigReader struct{}

// NewConfigReader creates a new git configuration reader.
func NewConfigReader() *ConfigReader {
	return &ConfigReader{}
}

// GetAuthor returns the user's name and email from ~/.gitconfig, filling in
// missing values from a file named by [include] path. Unreadable config
// yields a zero Author.
func (r *ConfigReader) GetAuthor(ctx context.Context) Author {
	home, err := os.UserHomeDir()
	if err != nil {
		logging.DebugContext(ctx, "Failed to get home directory: %v", err)
		return Author{}
	}

	gitconfigPath := filepath.Join(home, ".gitconfig")
	cfg, err := ini.Load(gitconfigPath)
	if err != nil {
		logging.DebugContext(ctx, "Failed to load .gitconfig: %v", err)
		return Author{}
	}

	author := userInfo(cfg)
	if author.Name == "" || author.Email == "" {
		author = r.fillFromInclude(ctx, cfg, filepath.Dir(gitconfigPath), author)
	}
	return author
}

func userInfo(cfg *ini.File) Author {
	user := cfg.Section("user")
	return Author{
		Name:  user.Key("name").String(),
		Email: user.Key("email").String(),
	}
}

// fillFromInclude only overrides values that are still empty. Relative include
// paths resolve against the directory of the including file.
func (r *ConfigReader) fillFromInclude(ctx context.Context, cfg *ini.File, baseDir string, author Author) Author {
	includePath := cfg.Section("include").Key("path").String()
	if includePath == "" {
		return author
	}

	includePath = expandPath(includePath)
	if !filepath.IsAbs(includePath) {
		includePath = filepath.Join(baseDir, includePath)
	}

	included, err := ini.Load(includePath)
	if err != nil {
		logging.DebugContext(ctx, "Failed to load included config from %s: %v", includePath, err)
		return author
	}

	extra := userInfo(included)
	if author.Name == "" {
		author.Name = extra.Name
	}
	if author.Email == "" {
		author.Email = extra.Email
	}
	return author
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
