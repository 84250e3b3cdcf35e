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

package cli

import (
	"path/filepath"
	"strings"

	emerrors "github.com/cowdogmoo/emrocks/errors"
)

// Validator validates CLI input before passing to business logic.
type Validator struct{}

// NewValidator creates a new CLI validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateNewOptions validates new command options.
func (v *Validator) ValidateNewOptions(opts NewCLIOptions) error {
	name := strings.TrimSpace(opts.DirName)
	if name == "" {
		return emerrors.Usage("missing directory name").
			WithHint("ex: em new my-app")
	}

	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return emerrors.Usage("%q is not a valid application name", opts.DirName).
			WithHint("ex: em new my-app")
	}

	if opts.Path != "" && strings.TrimSpace(opts.Path) == "" {
		return emerrors.Usage("--path must not be blank")
	}
	return validateFormat(opts.Format)
}

// ValidateGenerateOptions validates generate command options.
func (v *Validator) ValidateGenerateOptions(opts GenerateCLIOptions) error {
	if opts.List {
		return validateFormat(opts.Format)
	}

	switch len(opts.Args) {
	case 0:
		return emerrors.Usage("missing `type:name` argument").
			WithHint("ex: em generate route:post\nSee 'em generate --help'")
	case 1:
	default:
		return emerrors.Usage("expected one `type:name` argument, got %d", len(opts.Args)).
			WithHint("ex: em generate route:post")
	}
	return validateFormat(opts.Format)
}

func validateFormat(format string) error {
	switch format {
	case "", "table", "json":
		return nil
	default:
		return emerrors.Usage("unknown format: %s (supported: table, json)", format)
	}
}

// ValidateConfigSetOptions validates config set command options.
func (v *Validator) ValidateConfigSetOptions(key, value string) error {
	if key == "" {
		return emerrors.Usage("key is required")
	}

	if value == "" {
		return emerrors.Usage("value is required")
	}

	if !isValidConfigKey(key) {
		return emerrors.Usage("invalid config key format: %s (use dot notation like log.level)", key)
	}

	return nil
}

// isValidConfigKey checks if a config key is in valid format.
func isValidConfigKey(key string) bool {
	if key == "" {
		return false
	}

	if strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
		return false
	}

	return !strings.Contains(key, "..")
}
