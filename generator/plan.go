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
	"path"
	"strings"

	emerrors "github.com/cowdogmoo/emrocks/errors"
	"github.com/cowdogmoo/emrocks/naming"
)

// Layout names the project directories generated files are placed under.
type Layout struct {
	ClientDir string
	AppDir    string
}

// DefaultLayout returns the client/app layout of an em project.
func DefaultLayout() Layout {
	return Layout{ClientDir: "client", AppDir: "app"}
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.ClientDir == "" {
		l.ClientDir = d.ClientDir
	}
	if l.AppDir == "" {
		l.AppDir = d.AppDir
	}
	return l
}

// Variants are the replacements for the skeleton placeholder tokens.
type Variants struct {
	// Module replaces __NAMESPACE__, e.g. PostRoute.
	Module string `json:"module"`

	// Dasherized replaces __DASHERIZE_NAMESPACE__, e.g. blog-post.
	Dasherized string `json:"dasherized"`

	// Classified replaces __CLASSIFY_NAMESPACE__, e.g. BlogPost.
	Classified string `json:"classified"`
}

// FileOp is a single file the generator writes.
type FileOp struct {
	// Skeleton is the path of the skeleton inside the skeleton filesystem.
	Skeleton string `json:"skeleton"`

	// Dir is the slash-separated destination directory relative to the
	// project root.
	Dir string `json:"dir"`

	// File is the destination file name including its extension.
	File string `json:"file"`

	// Injection is the policy applied when the destination already exists.
	Injection Injection `json:"-"`
}

// Path returns the slash-separated destination path.
func (op FileOp) Path() string {
	return path.Join(op.Dir, op.File)
}

// Plan is everything a request will write, derived without touching the
// filesystem.
type Plan struct {
	Request  Request
	Variants Variants
	Ops      []FileOp
}

// NewPlan derives the variants and file operations for a request.
func NewPlan(req Request, layout Layout) (*Plan, error) {
	spec, ok := kinds[req.Kind]
	if !ok {
		return nil, emerrors.Usage("%s is not a valid type", req.Kind)
	}
	layout = layout.withDefaults()

	segments := strings.Split(req.Name, "/")
	for _, s := range segments {
		if s == "" {
			return nil, emerrors.Usage("%q contains an empty path segment", req.Name).WithHint(usageExample)
		}
		if s == "." || s == ".." || strings.Contains(s, `\`) {
			return nil, emerrors.Usage("%q must stay inside the project; %q is not a valid path segment", req.Name, s).WithHint(usageExample)
		}
	}
	base := segments[len(segments)-1]
	dirs := segments[:len(segments)-1]

	underComponent := req.Kind == KindTemplate && len(dirs) > 0 && dirs[0] == string(KindComponent)
	if req.Kind == KindComponent || underComponent {
		if !strings.Contains(base, "-") {
			return nil, emerrors.Convention("component name %q must include a '-'", base).
				WithHint("ex: em generate component:my-post")
		}
	}
	if underComponent {
		dirs = append([]string{naming.Pluralize(string(KindComponent))}, dirs[1:]...)
	}

	nameParts := append(append([]string{}, dirs...), base)
	module := naming.Classify(strings.Join(append(nameParts, string(req.Kind)), "_"))
	classified := strings.TrimSuffix(module, spec.suffix)

	variants := Variants{
		Module:     module,
		Classified: classified,
		Dasherized: naming.Dasherize(classified),
	}
	if spec.test {
		variants.Module = strings.TrimSuffix(module, spec.trim)
	}

	fileName := base
	if spec.test {
		fileName += "-test"
	}

	ops := []FileOp{{
		Skeleton: req.Kind.SkeletonFile(),
		Dir:      kindDir(req.Kind, spec, layout, dirs),
		File:     fileName + req.Kind.Ext(),
	}}

	if spec.companion.IsInjection() {
		templateDir := []string{layout.ClientDir, layout.AppDir, naming.Pluralize(string(KindTemplate))}
		if spec.companion == InjectionComponents {
			templateDir = append(templateDir, naming.Pluralize(string(KindComponent)))
		}
		ops = append(ops, FileOp{
			Skeleton:  KindTemplate.SkeletonFile(),
			Dir:       path.Join(append(templateDir, dirs...)...),
			File:      fileName + KindTemplate.Ext(),
			Injection: spec.companion,
		})
	}

	return &Plan{Request: req, Variants: variants, Ops: ops}, nil
}

func kindDir(kind Kind, spec kindSpec, layout Layout, dirs []string) string {
	var parts []string
	switch {
	case !spec.test:
		parts = []string{layout.ClientDir, layout.AppDir, naming.Pluralize(string(kind))}
	case spec.unitOf != "":
		parts = []string{layout.ClientDir, "tests", "unit", naming.Pluralize(string(spec.unitOf))}
	default:
		parts = []string{layout.ClientDir, "tests", "integration"}
	}
	return path.Join(append(parts, dirs...)...)
}
