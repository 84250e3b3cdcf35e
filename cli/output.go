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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cowdogmoo/emrocks/generator"
	"github.com/cowdogmoo/emrocks/templates"
)

// OutputFormatter formats command output for display.
type OutputFormatter struct {
	format string // table, json
	w      io.Writer
}

// NewOutputFormatter creates a new output formatter writing to w.
func NewOutputFormatter(format string, w io.Writer) *OutputFormatter {
	return &OutputFormatter{
		format: format,
		w:      w,
	}
}

// IsJSON reports whether results are printed as JSON.
func (f *OutputFormatter) IsJSON() bool {
	return f.format == "json"
}

// DisplayGenerateResult prints the files a generate run wrote or skipped.
func (f *OutputFormatter) DisplayGenerateResult(result *generator.Result) error {
	if f.IsJSON() {
		return f.displayJSON(result)
	}

	w := tabwriter.NewWriter(f.w, 0, 0, 3, ' ', 0)
	if _, err := fmt.Fprintln(w, "STATUS\tPATH"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "------\t----"); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	status := "created"
	if result.DryRun {
		status = "would create"
	}
	for _, p := range result.Written {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", status, p); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	for _, p := range result.Skipped {
		if _, err := fmt.Fprintf(w, "skipped\t%s\n", p); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return w.Flush()
}

// KindInfo describes a generator type for --list.
type KindInfo struct {
	Kind    string   `json:"kind"`
	Example string   `json:"example"`
	Files   []string `json:"files"`
}

// DisplayKinds prints every generator type with an example and the files it
// produces.
func (f *OutputFormatter) DisplayKinds(layout generator.Layout) error {
	infos := make([]KindInfo, 0, len(generator.Kinds()))
	for _, k := range generator.Kinds() {
		name := "post"
		if k == generator.KindComponent {
			name = "my-post"
		}
		req := generator.Request{Kind: k, Name: name}
		plan, err := generator.NewPlan(req, layout)
		if err != nil {
			return err
		}
		info := KindInfo{Kind: string(k), Example: "em generate " + req.String()}
		for _, op := range plan.Ops {
			info.Files = append(info.Files, op.Path())
		}
		infos = append(infos, info)
	}

	if f.IsJSON() {
		return f.displayJSON(infos)
	}

	w := tabwriter.NewWriter(f.w, 0, 0, 3, ' ', 0)
	if _, err := fmt.Fprintln(w, "TYPE\tEXAMPLE\tGENERATES"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "----\t-------\t---------"); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}
	for _, info := range infos {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", info.Kind, info.Example, strings.Join(info.Files, ", ")); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return w.Flush()
}

// DisplayCreateResult prints the summary of a new project.
func (f *OutputFormatter) DisplayCreateResult(result *templates.CreateResult) error {
	if f.IsJSON() {
		return f.displayJSON(result)
	}

	w := tabwriter.NewWriter(f.w, 0, 0, 3, ' ', 0)
	rows := [][2]string{
		{"NAME", result.Name},
		{"DIR", result.Dir},
	}
	if result.Commit != "" {
		rows = append(rows, [2]string{"COMMIT", result.Commit[:min(8, len(result.Commit))]})
	}
	if len(result.Installed) > 0 {
		rows = append(rows, [2]string{"INSTALLED", strings.Join(result.Installed, ", ")})
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", row[0], row[1]); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return w.Flush()
}

func (f *OutputFormatter) displayJSON(v interface{}) error {
	encoder := json.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
