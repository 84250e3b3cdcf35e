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

// NewCLIOptions defines command-line options for the new command.
type NewCLIOptions struct {
	// DirName is the directory to create; its base name becomes the app name.
	DirName string

	// Path is the boilerplate repository URL (ex: github.com/mattma/Ember-Rocks-Template-Basic).
	Path string

	// Version is a tag or branch of the boilerplate.
	Version string

	// Test skips git init and npm/bower installs.
	Test bool

	// Format selects table or json output for the summary.
	Format string
}

// GenerateCLIOptions defines command-line options for the generate command.
type GenerateCLIOptions struct {
	// Args are the positional arguments; exactly one `type:name` is expected.
	Args []string

	// DryRun reports the files without writing them.
	DryRun bool

	// List prints the available types instead of generating.
	List bool

	// Format selects table or json output for results.
	Format string
}
