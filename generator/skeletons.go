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
	"embed"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// Placeholder tokens recognized in skeleton files.
const (
	TokenNamespace          = "__NAMESPACE__"
	TokenDasherizeNamespace = "__DASHERIZE_NAMESPACE__"
	TokenClassifyNamespace  = "__CLASSIFY_NAMESPACE__"
)

//go:embed skeletons
var embedded embed.FS

// EmbeddedSkeletons returns the skeletons compiled into em.
func EmbeddedSkeletons() afero.Fs {
	sub, err := fs.Sub(embedded, "skeletons")
	if err != nil {
		panic(err)
	}
	return afero.NewReadOnlyFs(afero.FromIOFS{FS: sub})
}

// NewSkeletonFs returns the embedded skeletons with overrideDir on base
// layered on top. A skeleton present in overrideDir replaces the embedded
// one with the same path; everything else falls through.
func NewSkeletonFs(base afero.Fs, overrideDir string) afero.Fs {
	if base == nil || overrideDir == "" {
		return EmbeddedSkeletons()
	}
	layer := afero.NewBasePathFs(base, overrideDir)
	return afero.NewReadOnlyFs(afero.NewCopyOnWriteFs(EmbeddedSkeletons(), layer))
}

// Render replaces every placeholder token in content. Replacement is a single
// literal pass, so values are never rescanned for tokens.
func Render(content []byte, v Variants) []byte {
	r := strings.NewReplacer(
		TokenClassifyNamespace, v.Classified,
		TokenDasherizeNamespace, v.Dasherized,
		TokenNamespace, v.Module,
	)
	return []byte(r.Replace(string(content)))
}
